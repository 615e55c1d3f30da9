package elements

import (
	"errors"
	"fmt"
	"sort"
)

// ErrAlreadyDefined is returned when a tag is defined a second time.
var ErrAlreadyDefined = errors.New("custom element already defined")

// Registry models the browser's custom element registry: a tag may be defined
// once and never redefined.
type Registry interface {
	Define(tag, typeName string) error
	Has(tag string) bool
	Get(tag string) (string, bool)
	Tags() []string
}

type memoryRegistry struct {
	defs map[string]string
}

// NewRegistry returns an empty in-memory Registry.
func NewRegistry() Registry {
	return &memoryRegistry{defs: make(map[string]string)}
}

func (r *memoryRegistry) Define(tag, typeName string) error {
	if existing, ok := r.defs[tag]; ok {
		return fmt.Errorf("define %q as %s (already %s): %w", tag, typeName, existing, ErrAlreadyDefined)
	}
	r.defs[tag] = typeName
	return nil
}

func (r *memoryRegistry) Has(tag string) bool {
	_, ok := r.defs[tag]
	return ok
}

func (r *memoryRegistry) Get(tag string) (string, bool) {
	typeName, ok := r.defs[tag]
	return typeName, ok
}

func (r *memoryRegistry) Tags() []string {
	tags := make([]string, 0, len(r.defs))
	for tag := range r.defs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
