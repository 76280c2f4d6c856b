package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// KindInfo describes a registered record kind.
type KindInfo struct {
	Key          Kind   `json:"key"`
	Label        string `json:"label"`
	LabelAr      string `json:"labelAr"`
	SerialPrefix string `json:"serialPrefix"`
	SerialField  string `json:"serialField"`
}

// RowEnv carries the per-row collaborators a processor needs.
type RowEnv struct {
	Index   int // 0-based position in the batch
	Actor   string
	Now     time.Time
	Clients *ClientResolver
	Serials *SerialAllocator
}

// ProcessFunc turns one raw row into a validated record ready to save.
// It resolves the client and allocates the serial as side effects.
type ProcessFunc func(ctx context.Context, env *RowEnv, row RawRow) (Record, error)

// KindDefinition binds a kind to its processor, storage type and layouts.
type KindDefinition struct {
	Info      KindInfo
	NewRecord func() Record
	Process   ProcessFunc

	// ExportFields are the Values keys written on export, in column order.
	ExportFields []string
	// Labels overrides ArabicHeaders for this kind's export.
	Labels map[string]string

	// TemplateHeaders and TemplateRow form the downloadable import template.
	TemplateHeaders []string
	TemplateRow     map[string]string
}

// Label returns the export header for a field key.
func (d KindDefinition) Label(key string) string {
	if l, ok := d.Labels[key]; ok {
		return l
	}
	return HeaderLabel(key)
}

var (
	registry   = make(map[Kind]KindDefinition)
	registryMu sync.RWMutex
)

// Register adds a kind definition to the registry.
// Panics if the kind is already registered or the definition is incomplete.
func Register(def KindDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("kind already registered: %s", def.Info.Key))
	}
	if def.NewRecord == nil || def.Process == nil {
		panic(fmt.Sprintf("kind %s: NewRecord and Process are required", def.Info.Key))
	}

	if def.Info.SerialPrefix == "" {
		def.Info.SerialPrefix = SerialPrefix(def.Info.Key)
	}
	if def.Info.SerialField == "" {
		def.Info.SerialField = "serialNo"
	}

	registry[def.Info.Key] = def
}

// Get returns a kind definition by key.
// Returns false if not found.
func Get(key Kind) (KindDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// Lookup is Get with ErrUnknownKind for missing kinds.
func Lookup(key string) (KindDefinition, error) {
	def, ok := Get(Kind(key))
	if !ok {
		return KindDefinition{}, fmt.Errorf("%w: %s", ErrUnknownKind, key)
	}
	return def, nil
}

// All returns all registered kind definitions sorted by key.
func All() []KindDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]KindDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// KindCount returns the number of registered kinds.
func KindCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered kinds.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[Kind]KindDefinition)
}
