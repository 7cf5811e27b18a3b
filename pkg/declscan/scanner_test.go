package declscan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/codewatch/pkg/declscan"
)

func TestForLanguageID(t *testing.T) {
	t.Parallel()

	apex, ok := declscan.ForLanguageID("apex")
	assert.True(t, ok)
	assert.Equal(t, "apex", apex.ID)

	java, ok := declscan.ForLanguageID("java")
	assert.True(t, ok)
	assert.Equal(t, "java", java.ID)

	_, ok = declscan.ForLanguageID("javascript")
	assert.False(t, ok)
}

func TestFindEnclosingDeclarationStart(t *testing.T) {
	t.Parallel()

	scanner := declscan.NewScanner(declscan.Apex())

	tests := []struct {
		name     string
		lines    []string
		fromLine int
		expected int
	}{
		{
			name: "simple class declaration",
			lines: []string{
				"public class Foo {",
				"    void run() {}",
				"}",
			},
			fromLine: 1,
			expected: 0,
		},
		{
			name: "nearest declaration wins",
			lines: []string{
				"public class Outer {",
				"    public class Inner {",
				"        void run() {}",
			},
			fromLine: 2,
			expected: 1,
		},
		{
			name: "declaration below fromLine is ignored",
			lines: []string{
				"public class Outer {",
				"    void run() {}",
				"    public class Inner {",
			},
			fromLine: 1,
			expected: 0,
		},
		{
			name: "line comment is skipped",
			lines: []string{
				"public class Foo {",
				"    // not a real class declaration",
				"    void run() {}",
			},
			fromLine: 2,
			expected: 0,
		},
		{
			name: "block comment is skipped",
			lines: []string{
				"public class Foo {",
				"    /*",
				"     class Phantom",
				"    */",
				"    void run() {}",
			},
			fromLine: 4,
			expected: 0,
		},
		{
			name: "single-line block comment is skipped",
			lines: []string{
				"public class Foo {",
				"    /* class Phantom */",
				"    void run() {}",
			},
			fromLine: 2,
			expected: 0,
		},
		{
			name: "declaration keyword inside string is skipped",
			lines: []string{
				"public class Foo {",
				"    String s = 'my class here';",
				"    void run() {}",
			},
			fromLine: 2,
			expected: 0,
		},
		{
			name: "line with inline block comment is skipped entirely",
			lines: []string{
				"public class Outer {",
				"    /* done */ public class Inner {",
				"    public interface Seen {",
			},
			fromLine: 2,
			expected: 2,
		},
		{
			name: "no declaration defaults to zero",
			lines: []string{
				"int x = 1;",
				"int y = 2;",
			},
			fromLine: 1,
			expected: 0,
		},
		{
			name: "fromLine past end clamps",
			lines: []string{
				"public class Foo {",
				"}",
			},
			fromLine: 99,
			expected: 0,
		},
		{
			name: "trigger declaration",
			lines: []string{
				"trigger AccountTrigger on Account (before insert) {",
				"    doThing();",
			},
			fromLine: 1,
			expected: 0,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			got := scanner.FindEnclosingDeclarationStart(testCase.lines, testCase.fromLine)
			assert.Equal(t, testCase.expected, got)
		})
	}
}

func TestFindEnclosingDeclarationStartJavaStrings(t *testing.T) {
	t.Parallel()

	scanner := declscan.NewScanner(declscan.Java())

	lines := []string{
		"public class Foo {",
		"    String s = \"fake class keyword\";",
		"    int x;",
	}
	assert.Equal(t, 0, scanner.FindEnclosingDeclarationStart(lines, 2))
}
