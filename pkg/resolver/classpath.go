package resolver

import (
	"path/filepath"
	"strings"
)

// Merge folds layers into one mapping. An identity keeps the position of its
// first layer and takes the path of its last.
func Merge(layers ...*Mapping) *Mapping {
	merged := NewMapping()
	for _, layer := range layers {
		for _, id := range layer.Keys() {
			p, _ := layer.Get(id)
			merged.Set(id, p)
		}
	}
	return merged
}

// Classpath merges the client jar and library layers in order, keeping the
// first occurrence of every normalized path. Layers are merged by identity
// first, see Merge.
func Classpath(versionJar string, layers ...*Mapping) []string {
	var entries []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p == "" {
			return
		}
		p = filepath.Clean(p)
		if seen[p] {
			return
		}
		seen[p] = true
		entries = append(entries, p)
	}

	add(versionJar)
	for _, p := range Merge(layers...).Paths() {
		add(p)
	}
	return entries
}

// Join renders entries with the host path list separator
func Join(entries []string) string {
	return strings.Join(entries, string(filepath.ListSeparator))
}
