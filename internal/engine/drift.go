package engine

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/elemgen/internal/logger"
	"github.com/alexisbeaulieu97/elemgen/pkg/diff"
	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

// FileDrift is a generated file whose content on disk differs from the build.
type FileDrift struct {
	Path string
	Diff string
}

// Drift compares a fresh build against the generated files on disk.
type Drift struct {
	Plan     *Plan
	Stale    []FileDrift
	Missing  []string
	Orphaned []string
}

// InSync reports whether the files on disk match the build exactly.
func (d *Drift) InSync() bool {
	return len(d.Stale) == 0 && len(d.Missing) == 0 && len(d.Orphaned) == 0
}

// Check builds in memory and reports every difference from disk without
// writing anything.
func (c *Controller) Check() (*Drift, error) {
	plan, err := c.Build()
	if err != nil {
		return nil, err
	}

	drift := &Drift{Plan: plan}
	planned := make(map[string]struct{}, len(plan.Files))

	for _, file := range plan.Files {
		planned[file.Path] = struct{}{}
		path := filepath.Join(c.Root(), filepath.FromSlash(file.Path))

		current, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				drift.Missing = append(drift.Missing, file.Path)
				continue
			}
			return nil, elemerrors.NewIOError("read", path, err)
		}

		if !bytes.Equal(current, file.Content) {
			drift.Stale = append(drift.Stale, FileDrift{
				Path: file.Path,
				Diff: diff.GenerateUnifiedDiff(current, file.Content, "a/"+file.Path, "b/"+file.Path),
			})
		}
	}

	existing, err := c.existing()
	if err != nil {
		return nil, err
	}
	for _, rel := range existing {
		if _, ok := planned[rel]; !ok {
			drift.Orphaned = append(drift.Orphaned, rel)
		}
	}

	c.log.Phase("check").WithFields(logger.Fields{
		"stale":    len(drift.Stale),
		"missing":  len(drift.Missing),
		"orphaned": len(drift.Orphaned),
	}).Debug("check finished")

	return drift, nil
}
