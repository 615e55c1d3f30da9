package registry

import (
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/elemgen/internal/model"
	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

// Registry holds every discovered component keyed by tag.
type Registry struct {
	mu         sync.RWMutex
	categories []string
	rank       map[string]int
	byTag      map[string]model.Descriptor
	order      []string
}

// New creates an empty Registry. The category order controls All and
// ByCategory; categories not listed sort after the listed ones.
func New(categories []string) *Registry {
	r := &Registry{
		categories: append([]string(nil), categories...),
		rank:       make(map[string]int, len(categories)),
		byTag:      make(map[string]model.Descriptor),
	}
	for i, category := range categories {
		if _, ok := r.rank[category]; !ok {
			r.rank[category] = i
		}
	}
	return r
}

// Build registers every descriptor and reports all duplicate tags at once.
func Build(descs []model.Descriptor, categories []string) (*Registry, error) {
	r := New(categories)

	var dups []*elemerrors.DuplicateTagError
	for _, desc := range descs {
		if err := r.Add(desc); err != nil {
			dup, ok := err.(*elemerrors.DuplicateTagError)
			if !ok {
				return nil, err
			}
			dups = append(dups, dup)
		}
	}

	if len(dups) > 0 {
		return nil, &elemerrors.DuplicateTagsError{Errs: dups}
	}
	return r, nil
}

// Add registers a descriptor. A tag that is already present is rejected and
// the registry is left unchanged.
func (r *Registry) Add(desc model.Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byTag[desc.Tag]; ok {
		return &elemerrors.DuplicateTagError{
			Tag:    desc.Tag,
			First:  existing.Location(),
			Second: desc.Location(),
		}
	}

	r.byTag[desc.Tag] = desc.Clone()
	r.order = append(r.order, desc.Tag)
	return nil
}

// Get retrieves a descriptor by tag.
func (r *Registry) Get(tag string) (model.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.byTag[tag]
	if !ok {
		return model.Descriptor{}, false
	}
	return desc.Clone(), true
}

// Has reports whether a tag is registered.
func (r *Registry) Has(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byTag[tag]
	return ok
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byTag)
}

// All returns every descriptor sorted by category order, then tag.
func (r *Registry) All() []model.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.Descriptor, 0, len(r.byTag))
	for _, tag := range r.order {
		result = append(result, r.byTag[tag].Clone())
	}

	sort.SliceStable(result, func(i, j int) bool {
		ri, rj := r.categoryRank(result[i].Category), r.categoryRank(result[j].Category)
		if ri != rj {
			return ri < rj
		}
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		return result[i].Tag < result[j].Tag
	})
	return result
}

// ByCategory groups descriptors by category, each group sorted by tag.
func (r *Registry) ByCategory() map[string][]model.Descriptor {
	groups := make(map[string][]model.Descriptor)
	for _, desc := range r.All() {
		groups[desc.Category] = append(groups[desc.Category], desc)
	}
	return groups
}

// Categories returns the categories that hold at least one component, in
// configured order followed by any unlisted ones in lexical order.
func (r *Registry) Categories() []string {
	var result []string
	seen := make(map[string]struct{})
	for _, desc := range r.All() {
		if _, ok := seen[desc.Category]; ok {
			continue
		}
		seen[desc.Category] = struct{}{}
		result = append(result, desc.Category)
	}
	return result
}

func (r *Registry) categoryRank(category string) int {
	if rank, ok := r.rank[category]; ok {
		return rank
	}
	return len(r.categories)
}
