package main

import (
	"errors"

	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

func generateSuggestion(err error) string {
	var dup *elemerrors.DuplicateTagError
	var ioErr *elemerrors.IOError
	switch {
	case errors.As(err, &dup):
		return "Rename one of the conflicting @tag annotations; no files were written."
	case errors.As(err, &ioErr):
		return "Check file permissions under the source root and run elemgen again."
	default:
		return "Fix the reported problem and run elemgen again."
	}
}
