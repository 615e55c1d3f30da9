package config

import (
	"path/filepath"
)

// Default values applied to any field left empty by the configuration file.
const (
	DefaultRoot            = "src/components"
	DefaultSuffix          = ".define"
	DefaultExtension       = ".ts"
	DefaultImportExtension = ".js"
	DefaultManifest        = "index"

	DefineStyleCustomElements = "custom-elements"
	DefineStyleStatic         = "static"
)

// FileNames lists the configuration file names searched during discovery, in priority order.
var FileNames = []string{"elemgen.yaml", "elemgen.yml", "elemgen.hcl"}

// DefaultExtensions are the source extensions scanned when none are configured.
var DefaultExtensions = []string{".ts", ".js"}

// Config is the full elemgen configuration document.
type Config struct {
	Root       string   `yaml:"root" validate:"required"`
	Categories []string `yaml:"categories,omitempty" validate:"omitempty,unique,dive,category"`
	Extensions []string `yaml:"extensions,omitempty" validate:"omitempty,unique,dive,file_ext"`
	Exclude    []string `yaml:"exclude,omitempty" validate:"omitempty,dive,glob"`
	Output     Output   `yaml:"output,omitempty"`

	// Dir is the directory relative paths are resolved against. It is the
	// config file's directory, or the discovery base when no file exists.
	Dir string `yaml:"-"`
	// Source is the path of the file the configuration was read from, if any.
	Source string `yaml:"-"`
}

// Output controls the shape of generated modules.
type Output struct {
	Suffix          string `yaml:"suffix,omitempty" validate:"required,suffix"`
	Extension       string `yaml:"extension,omitempty" validate:"required,oneof=.ts .js .mjs .mts"`
	ImportExtension string `yaml:"import_extension,omitempty" validate:"required,file_ext"`
	Manifest        string `yaml:"manifest,omitempty" validate:"required,excludesall=/\\"`
	DefineStyle     string `yaml:"define_style,omitempty" validate:"required,oneof=custom-elements static"`
}

// Default returns a configuration populated entirely with defaults.
func Default(dir string) *Config {
	cfg := &Config{Dir: dir}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if c.Output.Suffix == "" {
		c.Output.Suffix = DefaultSuffix
	}
	if c.Output.Extension == "" {
		c.Output.Extension = DefaultExtension
	}
	if c.Output.ImportExtension == "" {
		c.Output.ImportExtension = DefaultImportExtension
	}
	if c.Output.Manifest == "" {
		c.Output.Manifest = DefaultManifest
	}
	if c.Output.DefineStyle == "" {
		c.Output.DefineStyle = DefineStyleCustomElements
	}
}

// SourceRoot returns the absolute-or-Dir-relative directory holding the categories.
func (c *Config) SourceRoot() string {
	if filepath.IsAbs(c.Root) || c.Dir == "" {
		return filepath.Clean(c.Root)
	}
	return filepath.Join(c.Dir, c.Root)
}

// ManifestFile is the manifest's file name inside the source root.
func (c *Config) ManifestFile() string {
	return c.Output.Manifest + c.Output.Suffix + c.Output.Extension
}
