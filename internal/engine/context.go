package engine

import (
	"time"

	"github.com/alexisbeaulieu97/elemgen/internal/config"
	"github.com/alexisbeaulieu97/elemgen/internal/emit"
	"github.com/alexisbeaulieu97/elemgen/internal/logger"
	"github.com/alexisbeaulieu97/elemgen/internal/scanner"
)

// Controller drives one regeneration of a source root.
type Controller struct {
	cfg *config.Config
	log *logger.Logger
	now func() time.Time
}

// NewController creates a Controller for an already resolved configuration.
func NewController(cfg *config.Config, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{cfg: cfg, log: log, now: time.Now}
}

// Root is the absolute source root the controller works on.
func (c *Controller) Root() string {
	return c.cfg.SourceRoot()
}

func (c *Controller) scanner() *scanner.Scanner {
	return scanner.New(scanner.Options{
		Root:            c.Root(),
		Categories:      c.cfg.Categories,
		Extensions:      c.cfg.Extensions,
		Exclude:         c.cfg.Exclude,
		GeneratedSuffix: c.cfg.Output.Suffix,
	}, c.log.Phase("scan"))
}

func (c *Controller) emitter() *emit.Emitter {
	return emit.New(emit.Options{
		Suffix:          c.cfg.Output.Suffix,
		Extension:       c.cfg.Output.Extension,
		ImportExtension: c.cfg.Output.ImportExtension,
		Manifest:        c.cfg.Output.Manifest,
		DefineStyle:     c.cfg.Output.DefineStyle,
	})
}
