package venn

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExampleFiles(t *testing.T) {
	examples := map[string]int{
		"basic.venn":   4,
		"sizes.venn":   3,
		"labels.venn":  2,
		"styles.venn":  4,
		"complex.venn": 10,
	}

	for example, statements := range examples {
		path := filepath.Join("testdata", example)
		t.Run(example, func(t *testing.T) {
			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()

			doc, err := NewParser().ParseDocument(f)
			require.NoError(t, err)
			assert.Len(t, doc.Statements, statements)

			again, err := Parse(Format(doc))
			require.NoError(t, err)
			assert.Equal(t, doc, again, "format round trip")

			t.Logf("Successfully parsed %s with %d statements", example, len(doc.Statements))
		})
	}
}

func TestParseInvalidExampleFile(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "invalid.venn"))
	require.NoError(t, err)

	doc, err := NewParser().ParseDocument(strings.NewReader(string(content)))
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.Contains(t, err.Error(), "line 3")
}
