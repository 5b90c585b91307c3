package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/config"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/cypher/mapping"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/database"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/modelconfig"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/sample"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/server"
	"github.com/mkd-neo4j/neo4j-cypher-extension/mappings"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	reg := mapping.NewRegistry(mapping.WithNamingPolicy(cfg.PropertyCasing))
	catalog := sample.Catalog()
	if err := modelconfig.Load(reg, catalog, mappings.Files, cfg.MappingsDir); err != nil {
		return err
	}

	dbService, err := database.NewNeo4jService(cfg.URI, cfg.Username, cfg.Password, cfg.Database)
	if err != nil {
		return err
	}

	srv := server.NewNeo4jMCPServer(version, cfg, dbService, mapping.NewMapper(reg), catalog)
	defer func() {
		if err := srv.Stop(context.Background()); err != nil {
			slog.Warn("failed to close database connection", "error", err)
		}
	}()

	return srv.Start(ctx)
}
