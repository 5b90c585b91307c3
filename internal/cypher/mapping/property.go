package mapping

// Property pairs a Go field name with the name it is written as in Cypher.
type Property struct {
	// Name is the struct field name used to read the value.
	Name string
	// WireName is the property key in generated Cypher and parameter payloads.
	WireName string
}

// Properties is an ordered property list. A nil list in an override means "use the registry";
// a non-nil empty list means "no properties".
type Properties []Property

// NoProperties returns an explicit, non-nil empty list.
func NoProperties() Properties {
	return Properties{}
}

// WireNames returns the wire names in order.
func (ps Properties) WireNames() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.WireName
	}
	return names
}

// Dedupe keeps the first occurrence of each wire name.
func (ps Properties) Dedupe() Properties {
	if ps == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(ps))
	out := make(Properties, 0, len(ps))
	for _, p := range ps {
		if _, ok := seen[p.WireName]; ok {
			continue
		}
		seen[p.WireName] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Union concatenates the lists and removes duplicate wire names, keeping first occurrences.
func Union(lists ...Properties) Properties {
	var all Properties
	for _, l := range lists {
		all = append(all, l...)
	}
	if all == nil {
		return Properties{}
	}
	return all.Dedupe()
}

func (ps Properties) clone() Properties {
	if ps == nil {
		return nil
	}
	return append(Properties{}, ps...)
}
