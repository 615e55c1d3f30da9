package engine

import (
	"os"

	"github.com/alexisbeaulieu97/elemgen/internal/elements"
	"github.com/alexisbeaulieu97/elemgen/internal/logger"
)

// Verify simulates loading the generated modules currently on disk.
func (c *Controller) Verify() (*elements.Report, error) {
	opts := elements.VerifyOptions{
		Options: elements.Options{
			Extension:       c.cfg.Output.Extension,
			ImportExtension: c.cfg.Output.ImportExtension,
		},
		Suffix:   c.cfg.Output.Suffix,
		Manifest: c.cfg.ManifestFile(),
	}

	report, err := elements.Verify(os.DirFS(c.Root()), opts)
	if err != nil {
		return nil, err
	}

	c.log.Phase("verify").WithFields(logger.Fields{
		"modules":  report.Modules,
		"tags":     len(report.Tags),
		"problems": len(report.Problems),
	}).Debug("verify finished")
	return report, nil
}
