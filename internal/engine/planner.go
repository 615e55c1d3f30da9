package engine

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/elemgen/internal/emit"
	"github.com/alexisbeaulieu97/elemgen/internal/logger"
	"github.com/alexisbeaulieu97/elemgen/internal/model"
	"github.com/alexisbeaulieu97/elemgen/internal/registry"
	"github.com/alexisbeaulieu97/elemgen/internal/validation"
)

// Plan is the complete in-memory output of a build.
type Plan struct {
	// Files holds registration modules in registry order, then the manifest.
	Files []emit.File
	// Descriptors are the validated components with unresolved dependencies pruned.
	Descriptors  []model.Descriptor
	Order        []string
	Warnings     []model.Warning
	FilesScanned int
}

// Components returns the number of registration modules in the plan.
func (p *Plan) Components() int {
	return len(p.Descriptors)
}

// Build scans, registers, validates and renders every generated module
// without touching the file system beyond reading sources. Duplicate tags
// fail here, before any file is deleted or written.
func (c *Controller) Build() (*Plan, error) {
	start := c.now()
	scanned, err := c.scanner().Scan()
	if err != nil {
		return nil, err
	}

	reg, err := registry.Build(scanned.Descriptors, c.cfg.Categories)
	if err != nil {
		return nil, err
	}

	result := validation.Validate(reg, c.log.Phase("validate"))
	emitter := c.emitter()

	plan := &Plan{
		Descriptors:  result.Descriptors,
		Order:        result.Order,
		FilesScanned: scanned.FilesScanned,
	}
	plan.Warnings = append(plan.Warnings, scanned.Warnings...)
	plan.Warnings = append(plan.Warnings, result.Warnings...)

	owners := make(map[string]string, len(result.Descriptors))
	for _, desc := range result.Descriptors {
		file, err := emitter.Registration(desc, reg)
		if err != nil {
			return nil, err
		}
		if other, clash := owners[file.Path]; clash {
			return nil, fmt.Errorf("components %q and %q both generate %s; rename one source module", other, desc.Tag, file.Path)
		}
		owners[file.Path] = desc.Tag
		plan.Files = append(plan.Files, file)
	}
	plan.Files = append(plan.Files, emitter.Manifest(reg))

	if plan.FilesScanned > 0 && plan.Components() == 0 {
		plan.Warnings = append(plan.Warnings, model.Warning{
			Kind:    model.WarningEmptyOutput,
			Message: fmt.Sprintf("scanned %d files but found no valid components", plan.FilesScanned),
		})
	}

	c.log.Phase("emit").WithFields(logger.Fields{
		"components": plan.Components(),
		"files":      len(plan.Files),
		"warnings":   len(plan.Warnings),
	}).Timed(start, "build finished")

	return plan, nil
}

// String renders a human readable summary of the plan.
func (p *Plan) String() string {
	if p == nil {
		return ""
	}

	var b strings.Builder
	for _, file := range p.Files {
		fmt.Fprintf(&b, "%-12s %s\n", file.Kind, file.Path)
	}
	return b.String()
}
