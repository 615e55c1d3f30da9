package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/elemgen/internal/logger"
	"github.com/alexisbeaulieu97/elemgen/internal/model"
	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

// Options configures which files a Scanner reads.
type Options struct {
	Root       string
	Categories []string
	Extensions []string
	Exclude    []string
	// GeneratedSuffix marks emitted files, which are never scanned.
	GeneratedSuffix string
}

// Result is everything one scan produced.
type Result struct {
	Descriptors  []model.Descriptor
	Warnings     []model.Warning
	FilesScanned int
}

// Scanner walks category directories and extracts component descriptors.
type Scanner struct {
	opts Options
	log  *logger.Logger
}

// New creates a Scanner.
func New(opts Options, log *logger.Logger) *Scanner {
	if log == nil {
		log = logger.Nop()
	}
	return &Scanner{opts: opts, log: log}
}

// Categories returns the configured categories, or every visible
// subdirectory of the root in lexical order when none are configured.
func (s *Scanner) Categories() ([]string, error) {
	if len(s.opts.Categories) > 0 {
		return append([]string(nil), s.opts.Categories...), nil
	}

	entries, err := os.ReadDir(s.opts.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, elemerrors.NewIOError("read", s.opts.Root, err)
	}

	var categories []string
	for _, entry := range entries {
		if entry.IsDir() && !skipDir(entry.Name()) {
			categories = append(categories, entry.Name())
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// Scan reads every candidate module under the category directories. It
// performs no cross-file resolution.
func (s *Scanner) Scan() (*Result, error) {
	categories, err := s.Categories()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, category := range categories {
		dir := filepath.Join(s.opts.Root, category)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			result.Warnings = append(result.Warnings, model.Warning{
				Kind:    model.WarningMissingCategory,
				Path:    filepath.ToSlash(category),
				Message: fmt.Sprintf("category directory %s does not exist", dir),
			})
			continue
		}

		if err := s.scanCategory(category, dir, result); err != nil {
			return nil, err
		}
	}

	s.log.Warnings(result.Warnings)
	s.log.WithFields(logger.Fields{
		"files":       result.FilesScanned,
		"descriptors": len(result.Descriptors),
		"warnings":    len(result.Warnings),
	}).Debug("scan complete")

	return result, nil
}

func (s *Scanner) scanCategory(category, dir string, result *Result) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return elemerrors.NewIOError("walk", path, err)
		}

		if d.IsDir() {
			if path != dir && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.candidate(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(s.opts.Root, path)
		if err != nil {
			return elemerrors.NewIOError("resolve", path, err)
		}
		rel = filepath.ToSlash(rel)

		src, err := os.ReadFile(path)
		if err != nil {
			return elemerrors.NewIOError("read", path, err)
		}
		result.FilesScanned++

		mod, err := ParseModule(rel, src)
		if err != nil {
			var malformed *elemerrors.MalformedModuleError
			if errors.As(err, &malformed) {
				result.Warnings = append(result.Warnings, model.NewWarning(model.WarningMalformedModule, "", rel, err))
				return nil
			}
			return err
		}
		if mod == nil {
			return nil
		}

		if mod.SelfDependency {
			result.Warnings = append(result.Warnings, model.Warning{
				Kind:    model.WarningSelfDependency,
				Tag:     mod.Tag,
				Path:    rel,
				Message: fmt.Sprintf("%q (%s) lists itself as a dependency; ignored", mod.Tag, rel),
			})
		}

		result.Descriptors = append(result.Descriptors, model.Descriptor{
			Tag:          mod.Tag,
			TypeName:     mod.TypeName,
			Export:       mod.Export,
			Category:     category,
			SourceModule: rel,
			DependsOn:    mod.DependsOn,
			Line:         mod.TagLine,
		})
		return nil
	})
}

// candidate reports whether a file name should be parsed.
func (s *Scanner) candidate(name string) bool {
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	if model.IsGeneratedName(name, s.opts.GeneratedSuffix) {
		return false
	}

	ext := filepath.Ext(name)
	matched := false
	for _, allowed := range s.opts.Extensions {
		if ext == allowed {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	for _, pattern := range s.opts.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return false
		}
	}
	return true
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}
