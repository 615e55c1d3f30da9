package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/elemgen/internal/model"
	"github.com/alexisbeaulieu97/elemgen/internal/registry"
	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

func build(t *testing.T, descs ...model.Descriptor) *registry.Registry {
	t.Helper()
	reg, err := registry.Build(descs, []string{"layout", "media"})
	require.NoError(t, err)
	return reg
}

func component(tag, category string, deps ...string) model.Descriptor {
	return model.Descriptor{
		Tag:          tag,
		TypeName:     "T",
		Export:       model.ExportDefault,
		Category:     category,
		SourceModule: category + "/" + tag + ".ts",
		DependsOn:    deps,
		Line:         2,
	}
}

func TestValidateResolvedGraph(t *testing.T) {
	t.Parallel()

	reg := build(t,
		component("gallery", "media", "card"),
		component("card", "layout", "card-header"),
		component("card-header", "layout"),
	)

	result := Validate(reg, nil)
	require.Empty(t, result.Warnings)
	require.Equal(t, []string{"card-header", "card", "gallery"}, result.Order)
	require.Len(t, result.Descriptors, 3)
	require.Equal(t, "card", result.Descriptors[0].Tag)
	require.Equal(t, []string{"card-header"}, result.Descriptors[0].DependsOn)
}

func TestValidatePrunesUnresolvedDependencies(t *testing.T) {
	t.Parallel()

	reg := build(t,
		component("lightbox", "media", "ghost", "card", "phantom"),
		component("card", "layout"),
	)

	result := Validate(reg, nil)
	unresolved := result.Unresolved()
	require.Len(t, unresolved, 2)
	require.Equal(t, "lightbox", unresolved[0].Tag)
	require.Equal(t, "media/lightbox.ts", unresolved[0].Path)

	var depErr *elemerrors.UnresolvedDependencyError
	require.ErrorAs(t, unresolved[0].Err, &depErr)
	require.Equal(t, "ghost", depErr.Dependency)
	require.Contains(t, unresolved[1].Message, `"phantom"`)

	lightbox := result.Descriptors[1]
	require.Equal(t, "lightbox", lightbox.Tag)
	require.Equal(t, []string{"card"}, lightbox.DependsOn)

	original, _ := reg.Get("lightbox")
	require.Equal(t, []string{"ghost", "card", "phantom"}, original.DependsOn)
}

func TestValidateReportsCyclesOnce(t *testing.T) {
	t.Parallel()

	reg := build(t,
		component("b", "layout", "a"),
		component("a", "layout", "b"),
		component("c", "media", "a"),
	)

	result := Validate(reg, nil)
	cycles := result.Cycles()
	require.Len(t, cycles, 1)
	require.True(t, cycles[0].Informational())
	require.Equal(t, "dependency cycle detected: a -> b -> a", cycles[0].Message)
	require.Equal(t, []string{"a", "b", "c"}, result.Order)
	require.Empty(t, result.Unresolved())
}
