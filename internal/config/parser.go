package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// hclConfig mirrors Config for gohcl decoding; every attribute is optional so
// defaults can fill the gaps exactly as they do for YAML.
type hclConfig struct {
	Root       string     `hcl:"root,optional"`
	Categories []string   `hcl:"categories,optional"`
	Extensions []string   `hcl:"extensions,optional"`
	Exclude    []string   `hcl:"exclude,optional"`
	Output     *hclOutput `hcl:"output,block"`
}

type hclOutput struct {
	Suffix          string `hcl:"suffix,optional"`
	Extension       string `hcl:"extension,optional"`
	ImportExtension string `hcl:"import_extension,optional"`
	Manifest        string `hcl:"manifest,optional"`
	DefineStyle     string `hcl:"define_style,optional"`
}

// ParseConfig loads a configuration file from disk, applies defaults, validates
// it, and returns the resulting model. The format is chosen by file extension.
func ParseConfig(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = parseYAML(path)
	case ".hcl":
		cfg, err = parseHCL(path)
	default:
		return nil, elemerrors.NewParseError(path, 0, fmt.Errorf("unsupported config format %q (want .yaml, .yml or .hcl)", filepath.Ext(path)))
	}
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, elemerrors.NewParseError(path, 0, err)
	}
	cfg.Source = abs
	cfg.Dir = filepath.Dir(abs)
	cfg.applyDefaults()

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, elemerrors.NewParseError(path, 0, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, elemerrors.NewParseError(path, extractLine(err), err)
	}

	return &cfg, nil
}

func parseHCL(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, elemerrors.NewParseError(path, diagnosticLine(diags), diags)
	}

	var raw hclConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, elemerrors.NewParseError(path, diagnosticLine(diags), diags)
	}

	cfg := &Config{
		Root:       raw.Root,
		Categories: raw.Categories,
		Extensions: raw.Extensions,
		Exclude:    raw.Exclude,
	}
	if raw.Output != nil {
		cfg.Output = Output(*raw.Output)
	}

	return cfg, nil
}

func diagnosticLine(diags hcl.Diagnostics) int {
	for _, diag := range diags {
		if diag.Subject != nil {
			return diag.Subject.Start.Line
		}
	}
	return 0
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
