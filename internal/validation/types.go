package validation

import "github.com/alexisbeaulieu97/elemgen/internal/model"

// Result captures the outcome of validating a registry.
type Result struct {
	// Descriptors holds every component with unresolved dependencies pruned,
	// in registry order.
	Descriptors []model.Descriptor
	Warnings    []model.Warning
	// Order lists tags dependency-first.
	Order []string
}

// Unresolved returns the unresolved-dependency warnings.
func (r *Result) Unresolved() []model.Warning {
	return r.filter(model.WarningUnresolvedDependency)
}

// Cycles returns the dependency-cycle warnings.
func (r *Result) Cycles() []model.Warning {
	return r.filter(model.WarningDependencyCycle)
}

func (r *Result) filter(kind model.WarningKind) []model.Warning {
	var out []model.Warning
	for _, w := range r.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}
