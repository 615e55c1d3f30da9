package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("elemgen.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "elemgen.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "elemgen.yaml:12")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("output.suffix", "must start with a dot", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "output.suffix", validationErr.Field)
	require.Contains(t, err.Error(), "output.suffix: must start with a dot")
}

func TestDuplicateTagErrorNamesBothLocations(t *testing.T) {
	t.Parallel()

	err := &DuplicateTagError{
		Tag:    "card",
		First:  Location{Path: "layout/card.ts", Line: 3},
		Second: Location{Path: "legacy/card.ts", Line: 7},
	}

	require.Contains(t, err.Error(), `"card"`)
	require.Contains(t, err.Error(), "layout/card.ts:3")
	require.Contains(t, err.Error(), "legacy/card.ts:7")
}

func TestDuplicateTagsErrorUnwrapsEachDuplicate(t *testing.T) {
	t.Parallel()

	agg := &DuplicateTagsError{Errs: []*DuplicateTagError{
		{Tag: "card", First: Location{Path: "a.ts"}, Second: Location{Path: "b.ts"}},
		{Tag: "icon", First: Location{Path: "c.ts"}, Second: Location{Path: "d.ts"}},
	}}

	var wrapped error = fmt.Errorf("build registry: %w", agg)

	var dup *DuplicateTagError
	require.ErrorAs(t, wrapped, &dup)
	require.Equal(t, "card", dup.Tag)
	require.Equal(t, []string{"card", "icon"}, agg.Tags())
	require.Contains(t, agg.Error(), "2 duplicate tags")
}

func TestCycleErrorClosesLoop(t *testing.T) {
	t.Parallel()

	err := &CycleError{Cycle: []string{"a", "b", "c"}}
	require.Equal(t, "dependency cycle detected: a -> b -> c -> a", err.Error())
}

func TestMalformedAndUnresolvedMessages(t *testing.T) {
	t.Parallel()

	malformed := &MalformedModuleError{Path: "media/icon.ts", Line: 4, Reason: "no exported class"}
	require.Contains(t, malformed.Error(), "media/icon.ts:4")
	require.Contains(t, malformed.Error(), "no exported class")

	unresolved := &UnresolvedDependencyError{Tag: "gallery", Dependency: "lightbox", Source: Location{Path: "media/gallery.ts", Line: 2}}
	require.Contains(t, unresolved.Error(), `"lightbox"`)
	require.Contains(t, unresolved.Error(), "media/gallery.ts:2")
}

func TestIOErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("permission denied")
	err := NewIOError("remove", "layout/card.define.ts", underlying)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "remove", ioErr.Op)
	require.True(t, stdErrors.Is(err, underlying))
}
