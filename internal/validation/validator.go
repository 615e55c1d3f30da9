package validation

import "github.com/alexisbeaulieu97/elemgen/internal/logger"

// Validate resolves every dependency reference against the registry, prunes
// the unknown ones and reports dependency cycles. Nothing it finds is fatal.
func Validate(reg Lookup, log *logger.Logger) *Result {
	if log == nil {
		log = logger.Nop()
	}

	descs, warnings := resolveDependencies(reg)
	g := buildGraph(descs)
	cycles := detectCycles(g)

	result := &Result{
		Descriptors: descs,
		Warnings:    append(warnings, cycles...),
		Order:       g.TopologicalSort(),
	}
	log.Warnings(result.Warnings)
	return result
}
