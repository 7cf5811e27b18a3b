package declscan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/codewatch/pkg/declscan"
)

func TestSuppressionForInsert(t *testing.T) {
	t.Parallel()

	lang := declscan.Apex()
	lines := []string{
		"public class Foo {",
		"    public class Inner {",
		"        void run() {}",
	}

	t.Run("inserts before top-level declaration", func(t *testing.T) {
		t.Parallel()

		edit := lang.SuppressionFor(lines, 0, "ApexCRUDViolation")
		assert.Equal(t, declscan.SuppressionInsertLine, edit.Action)
		assert.Equal(t, 0, edit.Line)
		assert.Equal(t, "@SuppressWarnings('PMD.ApexCRUDViolation')", edit.Text)
	})

	t.Run("matches declaration indentation", func(t *testing.T) {
		t.Parallel()

		edit := lang.SuppressionFor(lines, 1, "ApexCRUDViolation")
		assert.Equal(t, declscan.SuppressionInsertLine, edit.Action)
		assert.Equal(t, 1, edit.Line)
		assert.Equal(t, "    @SuppressWarnings('PMD.ApexCRUDViolation')", edit.Text)
	})
}

func TestSuppressionForMerge(t *testing.T) {
	t.Parallel()

	lang := declscan.Apex()

	t.Run("appends to existing annotation", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"@SuppressWarnings('PMD.EmptyCatchBlock')",
			"public class Foo {",
		}

		edit := lang.SuppressionFor(lines, 1, "ApexCRUDViolation")
		assert.Equal(t, declscan.SuppressionReplaceLine, edit.Action)
		assert.Equal(t, 0, edit.Line)
		assert.Equal(t,
			"@SuppressWarnings('PMD.EmptyCatchBlock,PMD.ApexCRUDViolation')",
			edit.Text)
	})

	t.Run("preserves indentation and quoting on merge", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"    @SuppressWarnings('PMD.EmptyCatchBlock')",
			"    public class Inner {",
		}

		edit := lang.SuppressionFor(lines, 1, "ApexCRUDViolation")
		assert.Equal(t, declscan.SuppressionReplaceLine, edit.Action)
		assert.Equal(t,
			"    @SuppressWarnings('PMD.EmptyCatchBlock,PMD.ApexCRUDViolation')",
			edit.Text)
	})

	t.Run("already suppressed needs no edit", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"@SuppressWarnings('PMD.ApexCRUDViolation')",
			"public class Foo {",
		}

		edit := lang.SuppressionFor(lines, 1, "ApexCRUDViolation")
		assert.Equal(t, declscan.SuppressionNone, edit.Action)
	})

	t.Run("entry comparison is case-insensitive", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"@SuppressWarnings('pmd.apexcrudviolation')",
			"public class Foo {",
		}

		edit := lang.SuppressionFor(lines, 1, "ApexCRUDViolation")
		assert.Equal(t, declscan.SuppressionNone, edit.Action)
	})

	t.Run("entry list with spaces matches", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"@SuppressWarnings('PMD.EmptyCatchBlock, PMD.ApexCRUDViolation')",
			"public class Foo {",
		}

		edit := lang.SuppressionFor(lines, 1, "ApexCRUDViolation")
		assert.Equal(t, declscan.SuppressionNone, edit.Action)
	})

	t.Run("empty annotation list gets the entry alone", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"@SuppressWarnings('')",
			"public class Foo {",
		}

		edit := lang.SuppressionFor(lines, 1, "ApexCRUDViolation")
		assert.Equal(t, declscan.SuppressionReplaceLine, edit.Action)
		assert.Equal(t, "@SuppressWarnings('PMD.ApexCRUDViolation')", edit.Text)
	})
}

func TestSuppressionForJava(t *testing.T) {
	t.Parallel()

	lang := declscan.Java()
	lines := []string{
		"public class Foo {",
		"    int x;",
	}

	edit := lang.SuppressionFor(lines, 0, "EmptyCatchBlock")
	assert.Equal(t, declscan.SuppressionInsertLine, edit.Action)
	assert.Equal(t, `@SuppressWarnings("PMD.EmptyCatchBlock")`, edit.Text)
}

func TestNewAnnotationUnknownLanguage(t *testing.T) {
	t.Parallel()

	lang := declscan.Language{ID: "mystery"}
	assert.Equal(t, "", lang.NewAnnotation("PMD.Whatever"))
}
