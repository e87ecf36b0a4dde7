// Package manifest defines the versioned intermediate format that bridges
// per-module generation to cross-module aggregation. A manifest is written
// once per generated factory and later re-read, possibly many times, by
// aggregation rounds running in downstream modules, so the encoding must
// stay stable across tool versions.
package manifest

import (
	"fmt"
	"strings"
)

// FormatVersion is the current manifest format version. Decoding rejects
// manifests written by a newer tool; a missing version field reads as 1.
const FormatVersion = 1

// Record is the unit of cross-module information for one model: the member
// to invoke to obtain its adapter, that member's declared parameter count
// (0 for a no-arg member, 1 for a context-taking member), and whether the
// member returns a provider rather than a direct adapter.
type Record struct {
	MethodName string `json:"methodName"`
	ArgCount   int    `json:"argCount"`
	IsFactory  bool   `json:"isFactory"`
}

// FactoryManifest records, for one generated factory, every strategy's
// records keyed by model fully-qualified name.
type FactoryManifest struct {
	Version int                          `json:"version"`
	Name    string                       `json:"name"`
	Extras  map[string]map[string]Record `json:"extras"`
}

// New creates an empty manifest for the factory named name.
func New(name string) *FactoryManifest {
	return &FactoryManifest{
		Version: FormatVersion,
		Name:    name,
		Extras:  make(map[string]map[string]Record),
	}
}

// Put records one model's record under the given strategy. Within one
// manifest a model fully-qualified name appears at most once per strategy;
// re-putting the same key is a programming error upstream, so the last call
// simply wins here.
func (m *FactoryManifest) Put(strategyID, modelFQN string, rec Record) {
	byModel := m.Extras[strategyID]
	if byModel == nil {
		byModel = make(map[string]Record)
		m.Extras[strategyID] = byModel
	}
	byModel[modelFQN] = rec
}

// Merged is the flattened view of every loaded manifest: per strategy, one
// mapping from model fully-qualified name to record.
type Merged struct {
	PerStrategy map[string]map[string]Record
}

// Merge flattens manifests in the given order. Duplicate keys resolve
// last-write-wins: the record from the manifest appearing latest in the slice
// survives. The caller fixes the order (the store's documented enumeration
// order); Merge itself only honors it.
func Merge(manifests []*FactoryManifest) *Merged {
	merged := &Merged{PerStrategy: make(map[string]map[string]Record)}
	for _, m := range manifests {
		for strategyID, records := range m.Extras {
			dst := merged.PerStrategy[strategyID]
			if dst == nil {
				dst = make(map[string]Record)
				merged.PerStrategy[strategyID] = dst
			}
			for fqn, rec := range records {
				dst[fqn] = rec
			}
		}
	}
	return merged
}

// SplitFQN splits a model fully-qualified name into package path and simple
// name. The split is at the last dot: simple type names never contain dots,
// while the final package path element may (gopkg.in/yaml.v3).
func SplitFQN(fqn string) (pkgPath, name string) {
	dot := strings.LastIndex(fqn, ".")
	if dot < 0 {
		return "", fqn
	}
	return fqn[:dot], fqn[dot+1:]
}

// Partition groups one strategy's merged records by declaring package path.
func Partition(records map[string]Record) map[string]map[string]Record {
	out := make(map[string]map[string]Record)
	for fqn, rec := range records {
		pkgPath, name := SplitFQN(fqn)
		byName := out[pkgPath]
		if byName == nil {
			byName = make(map[string]Record)
			out[pkgPath] = byName
		}
		byName[name] = rec
	}
	return out
}

// Validate performs the structural checks shared by Encode and Decode.
func (m *FactoryManifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest has no factory name")
	}
	return nil
}
