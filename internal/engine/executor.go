package engine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/elemgen/internal/logger"
	"github.com/alexisbeaulieu97/elemgen/internal/model"
	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

// Summary reports what a regeneration did.
type Summary struct {
	Generated    int
	Removed      int
	FilesScanned int
	Components   int
	Warnings     []model.Warning
	Duration     time.Duration
}

// Run rebuilds the generated output: Build in memory, then Clean, then write
// every planned file. A failed build leaves the previous output untouched.
func (c *Controller) Run() (*Summary, error) {
	start := c.now()

	plan, err := c.Build()
	if err != nil {
		return nil, err
	}

	removed, err := c.Clean()
	if err != nil {
		return nil, err
	}

	if err := c.write(plan); err != nil {
		return nil, err
	}

	summary := &Summary{
		Generated:    len(plan.Files),
		Removed:      removed,
		FilesScanned: plan.FilesScanned,
		Components:   plan.Components(),
		Warnings:     plan.Warnings,
		Duration:     c.now().Sub(start),
	}

	c.log.Phase("write").WithFields(logger.Fields{
		"generated": summary.Generated,
		"removed":   summary.Removed,
	}).Timed(start, "regeneration finished")

	return summary, nil
}

// Clean deletes every generated file under the source root and returns how
// many were removed. A missing root is not an error.
func (c *Controller) Clean() (int, error) {
	files, err := c.existing()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, rel := range files {
		path := filepath.Join(c.Root(), filepath.FromSlash(rel))
		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, elemerrors.NewIOError("remove", path, err)
		}
		removed++
	}

	c.log.Phase("clean").With("removed", removed).Debug("clean finished")
	return removed, nil
}

// existing lists generated files currently on disk as slash paths relative
// to the source root, in lexical walk order.
func (c *Controller) existing() ([]string, error) {
	root := c.Root()
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return elemerrors.NewIOError("walk", path, err)
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if !model.IsGeneratedName(d.Name(), c.cfg.Output.Suffix) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return elemerrors.NewIOError("resolve", path, err)
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Controller) write(plan *Plan) error {
	for _, file := range plan.Files {
		path := filepath.Join(c.Root(), filepath.FromSlash(file.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return elemerrors.NewIOError("mkdir", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, file.Content, 0o644); err != nil {
			return elemerrors.NewIOError("write", path, err)
		}
	}
	return nil
}
