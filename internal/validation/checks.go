package validation

import (
	"github.com/alexisbeaulieu97/elemgen/internal/graph"
	"github.com/alexisbeaulieu97/elemgen/internal/model"
	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

// Lookup is the part of the component registry validation needs.
type Lookup interface {
	Has(tag string) bool
	All() []model.Descriptor
}

// resolveDependencies prunes dependency references that name unknown tags and
// emits one warning per pruned reference.
func resolveDependencies(reg Lookup) ([]model.Descriptor, []model.Warning) {
	descs := reg.All()
	var warnings []model.Warning

	for i := range descs {
		desc := &descs[i]
		if len(desc.DependsOn) == 0 {
			continue
		}

		kept := desc.DependsOn[:0]
		for _, dep := range desc.DependsOn {
			if reg.Has(dep) {
				kept = append(kept, dep)
				continue
			}
			err := &elemerrors.UnresolvedDependencyError{
				Tag:        desc.Tag,
				Dependency: dep,
				Source:     desc.Location(),
			}
			warnings = append(warnings, model.NewWarning(model.WarningUnresolvedDependency, desc.Tag, desc.SourceModule, err))
		}
		if len(kept) == 0 {
			kept = nil
		}
		desc.DependsOn = kept
	}

	return descs, warnings
}

func buildGraph(descs []model.Descriptor) *graph.DependencyGraph {
	g := graph.New()
	for _, desc := range descs {
		g.AddNode(desc.Tag)
		for _, dep := range desc.DependsOn {
			g.AddEdge(desc.Tag, dep)
		}
	}
	return g
}

// detectCycles reports every distinct cycle once, as an informational warning.
func detectCycles(g *graph.DependencyGraph) []model.Warning {
	var warnings []model.Warning
	for _, cycle := range g.Cycles() {
		err := &elemerrors.CycleError{Cycle: cycle}
		warnings = append(warnings, model.NewWarning(model.WarningDependencyCycle, cycle[0], "", err))
	}
	return warnings
}
