package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codewatch/pkg/diag"
)

func lineRange(startLine, startCol, endLine, endCol int) diag.Range {
	return diag.Range{
		Start: diag.Position{Line: startLine, Column: startCol},
		End:   diag.Position{Line: endLine, Column: endCol},
	}
}

func TestStoreAddAndForFile(t *testing.T) {
	t.Parallel()

	store := diag.NewStore()
	first := &diag.Diagnostic{File: "a.cls", Range: lineRange(0, 0, 0, 5)}
	second := &diag.Diagnostic{File: "a.cls", Range: lineRange(2, 0, 2, 5)}
	other := &diag.Diagnostic{File: "b.cls", Range: lineRange(1, 0, 1, 5)}

	store.Add(first, second, other)

	diags := store.ForFile("a.cls")
	require.Len(t, diags, 2)
	assert.Same(t, first, diags[0], "insertion order preserved")
	assert.Same(t, second, diags[1])

	assert.True(t, store.HasDiagnostics("b.cls"))
	assert.False(t, store.HasDiagnostics("c.cls"))
	assert.Equal(t, []string{"a.cls", "b.cls"}, store.Files())
}

func TestStoreForFileReturnsCopy(t *testing.T) {
	t.Parallel()

	store := diag.NewStore()
	d := &diag.Diagnostic{File: "a.cls"}
	store.Add(d)

	held := store.ForFile("a.cls")
	store.ClearFiles("a.cls")

	require.Len(t, held, 1)
	assert.Same(t, d, held[0], "held slice survives store mutation")
	assert.NotNil(t, store.ForFile("a.cls"))
	assert.Empty(t, store.ForFile("a.cls"))
}

func TestStoreClearFiles(t *testing.T) {
	t.Parallel()

	store := diag.NewStore()
	store.Add(
		&diag.Diagnostic{File: "a.cls"},
		&diag.Diagnostic{File: "b.cls"},
	)

	store.ClearFiles("a.cls")
	assert.False(t, store.HasDiagnostics("a.cls"))
	assert.True(t, store.HasDiagnostics("b.cls"))

	// Idempotent.
	store.ClearFiles("a.cls", "never-seen.cls")
	assert.Equal(t, []string{"b.cls"}, store.Files())
}

func TestStoreClearDiagnostic(t *testing.T) {
	t.Parallel()

	t.Run("matches by identity not value", func(t *testing.T) {
		t.Parallel()

		store := diag.NewStore()
		kept := &diag.Diagnostic{File: "a.cls", Range: lineRange(1, 0, 1, 5)}
		removed := &diag.Diagnostic{File: "a.cls", Range: lineRange(1, 0, 1, 5)}
		store.Add(kept, removed)

		store.ClearDiagnostic(removed)

		diags := store.ForFile("a.cls")
		require.Len(t, diags, 1)
		assert.Same(t, kept, diags[0])
	})

	t.Run("removing last diagnostic prunes the file", func(t *testing.T) {
		t.Parallel()

		store := diag.NewStore()
		d := &diag.Diagnostic{File: "a.cls"}
		store.Add(d)

		store.ClearDiagnostic(d)
		assert.False(t, store.HasDiagnostics("a.cls"))
		assert.Empty(t, store.Files())
	})

	t.Run("absent diagnostic is a no-op", func(t *testing.T) {
		t.Parallel()

		store := diag.NewStore()
		store.Add(&diag.Diagnostic{File: "a.cls"})

		store.ClearDiagnostic(&diag.Diagnostic{File: "a.cls"})
		assert.Len(t, store.ForFile("a.cls"), 1)
	})
}

func TestStoreClearInRange(t *testing.T) {
	t.Parallel()

	t.Run("removes same-line diagnostics regardless of columns", func(t *testing.T) {
		t.Parallel()

		store := diag.NewStore()
		onLine := &diag.Diagnostic{File: "a.cls", Range: lineRange(4, 0, 4, 10)}
		alsoOnLine := &diag.Diagnostic{File: "a.cls", Range: lineRange(4, 20, 4, 30)}
		offLine := &diag.Diagnostic{File: "a.cls", Range: lineRange(5, 0, 5, 10)}
		store.Add(onLine, alsoOnLine, offLine)

		store.ClearInRange("a.cls", lineRange(4, 2, 4, 6))

		diags := store.ForFile("a.cls")
		require.Len(t, diags, 1)
		assert.Same(t, offLine, diags[0])
	})

	t.Run("column overlap on different lines is kept", func(t *testing.T) {
		t.Parallel()

		store := diag.NewStore()
		multiLine := &diag.Diagnostic{File: "a.cls", Range: lineRange(3, 0, 6, 10)}
		store.Add(multiLine)

		// Overlapping span, but not the same start/end lines.
		store.ClearInRange("a.cls", lineRange(4, 0, 4, 10))
		assert.Len(t, store.ForFile("a.cls"), 1)
	})

	t.Run("clearing everything prunes the file", func(t *testing.T) {
		t.Parallel()

		store := diag.NewStore()
		store.Add(&diag.Diagnostic{File: "a.cls", Range: lineRange(2, 0, 2, 5)})

		store.ClearInRange("a.cls", lineRange(2, 0, 2, 99))
		assert.False(t, store.HasDiagnostics("a.cls"))
	})
}
