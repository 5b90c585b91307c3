//go:build integration

package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	neo4jImage    = "neo4j:5.26-community"
	neo4jPassword = "integration-password"
)

// databaseServer holds the driver shared by every test in the package.
type databaseServer struct {
	container testcontainers.Container
	driver    neo4j.DriverWithContext
}

func (d *databaseServer) GetDriver() neo4j.DriverWithContext {
	return d.driver
}

var dbs databaseServer

func TestMain(m *testing.M) {
	ctx := context.Background()

	if err := dbs.start(ctx); err != nil {
		log.Fatalf("error starting neo4j container: %v", err)
	}

	code := m.Run()

	if err := dbs.stop(ctx); err != nil {
		log.Printf("error tearing down neo4j container: %v", err)
	}
	os.Exit(code)
}

func (d *databaseServer) start(ctx context.Context) error {
	req := testcontainers.ContainerRequest{
		Image:        neo4jImage,
		ExposedPorts: []string{"7687/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH": "neo4j/" + neo4jPassword,
		},
		WaitingFor: wait.ForLog("Started.").WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}
	d.container = container

	host, err := container.Host(ctx)
	if err != nil {
		return fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "7687")
	if err != nil {
		return fmt.Errorf("failed to get mapped bolt port: %w", err)
	}

	uri := fmt.Sprintf("bolt://%s:%s", host, port.Port())
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth("neo4j", neo4jPassword, ""))
	if err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to verify connectivity: %w", err)
	}
	d.driver = driver
	return nil
}

func (d *databaseServer) stop(ctx context.Context) error {
	if d.driver != nil {
		if err := d.driver.Close(ctx); err != nil {
			log.Printf("error closing driver: %v", err)
		}
	}
	if d.container == nil {
		return nil
	}
	return testcontainers.TerminateContainer(d.container)
}
