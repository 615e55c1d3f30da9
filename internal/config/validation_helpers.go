package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

// fieldNames maps Go field names to their configuration keys.
var fieldNames = map[string]string{
	"ImportExtension": "import_extension",
	"DefineStyle":     "define_style",
}

// convertValidationError normalizes validator errors into elemgen validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s failed validation for tag '%s=%s'", field, ve.Tag(), ve.Param())
		}
		return elemerrors.NewValidationError(field, msg, err)
	}

	return elemerrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		name, index, _ := strings.Cut(part, "[")
		if mapped, ok := fieldNames[name]; ok {
			name = mapped
		} else {
			name = strings.ToLower(name)
		}
		if index != "" {
			name += "[" + index
		}
		lowered = append(lowered, name)
	}
	return strings.Join(lowered, ".")
}
