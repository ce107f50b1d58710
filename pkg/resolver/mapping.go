package resolver

// Mapping is an insertion-ordered identity to path map
type Mapping struct {
	keys  []string
	paths map[string]string
}

// NewMapping creates an empty mapping
func NewMapping() *Mapping {
	return &Mapping{paths: make(map[string]string)}
}

// Set records path for id. A repeated id keeps its position and takes the new path.
func (m *Mapping) Set(id, path string) {
	if _, ok := m.paths[id]; !ok {
		m.keys = append(m.keys, id)
	}
	m.paths[id] = path
}

// Get returns the path recorded for id
func (m *Mapping) Get(id string) (string, bool) {
	p, ok := m.paths[id]
	return p, ok
}

// Len returns the number of identities
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns identities in insertion order
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Paths returns paths in insertion order
func (m *Mapping) Paths() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.paths[k])
	}
	return out
}
