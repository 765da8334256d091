package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractClassNames(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "single declaration",
			source: "class Real extends Base {}",
			want:   []string{"Real"},
		},
		{
			name:   "line comment is skipped",
			source: "// class Fake {}\n",
			want:   []string{},
		},
		{
			name:   "block comment is skipped",
			source: "<?php\n/* class Hidden {} */\nclass Shown {}\n",
			want:   []string{"Shown"},
		},
		{
			name:   "string literals are skipped",
			source: "<?php\n$a = 'class Quoted {}';\n$b = \"class Doubled {}\";\nclass Actual {}\n",
			want:   []string{"Actual"},
		},
		{
			name:   "declaration order is preserved",
			source: "<?php\nclass First {}\n\nabstract class Second extends First {}\nfinal class Third {}\n",
			want:   []string{"First", "Second", "Third"},
		},
		{
			name:   "no declarations",
			source: "<?php\nfunction helper() { return 1; }\n",
			want:   []string{},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractClassNames(tc.source)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestExtractClassNamesCommentedFakeDoesNotLeak(t *testing.T) {
	t.Parallel()

	got, err := ExtractClassNames("// class Fake {}\nclass Real extends Base {}\n")
	require.NoError(t, err)
	require.Equal(t, []string{"Real"}, got)
	require.NotContains(t, got, "Fake")
}

func TestExtractClassNamesForPicksLexerByFilename(t *testing.T) {
	t.Parallel()

	got, err := ExtractClassNamesFor("widgets.py", "# class Ghost:\nclass Widget(Base):\n    pass\n")
	require.NoError(t, err)
	require.Equal(t, []string{"Widget"}, got)

	got, err = ExtractClassNamesFor("theme.unknownext", "class Classic extends Theme {}")
	require.NoError(t, err)
	require.Equal(t, []string{"Classic"}, got)
}

func TestClassesInFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "classic.php")
	require.NoError(t, os.WriteFile(path, []byte("<?php\nclass Classic extends Theme {}\n"), 0o644))

	got, err := ClassesInFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Classic"}, got)

	_, err = ClassesInFile(filepath.Join(dir, "missing.php"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
