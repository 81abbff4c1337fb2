package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoInstances = `***2BP CLASS 1 PROBLEM 1***
  3    N. OF ITEMS
  1  1 RELATIVE AND ABSOLUTE N. OF INSTANCE
 10 10 HBIN,WBIN
  2  3 H(I),W(I),I=1,...,N
  5  5
 10  1

***2BP CLASS 1 PROBLEM 2***
  2
  2  2
 20 15
  7  8
  3  4
`

func TestParseInstances_MultipleBlocks(t *testing.T) {
	instances, err := ParseInstances(strings.NewReader(twoInstances))
	require.NoError(t, err)
	require.Len(t, instances, 2)

	first := instances[0]
	assert.Equal(t, "instance 0", first.Name)
	assert.Equal(t, 10, first.BinWidth)
	assert.Equal(t, 10, first.BinHeight)
	require.Len(t, first.Items, 3)
	assert.Equal(t, 2, first.Items[0].Width)
	assert.Equal(t, 3, first.Items[0].Height)
	assert.Equal(t, "1", first.Items[0].ID)
	assert.Equal(t, 1, first.Items[2].Quantity)

	second := instances[1]
	assert.Equal(t, 20, second.BinWidth)
	assert.Equal(t, 15, second.BinHeight)
	assert.Len(t, second.Items, 2)
}

func TestParseInstances_ExtraBlankLinesAndNoTrailingNewline(t *testing.T) {
	data := "PROBLEM\n1\n1 1\n5 5\n2 2\n\n\n\nPROBLEM\n1\n2 2\n4 4\n1 1"
	instances, err := ParseInstances(strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, instances, 2)
}

func TestParseInstances_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"count mismatch", "PROBLEM\n3\n1 1\n10 10\n1 1\n2 2\n"},
		{"bad number", "PROBLEM\n1\n1 1\n10 ten\n1 1\n"},
		{"short item line", "PROBLEM\n1\n1 1\n10 10\n4\n"},
		{"data before block", "1 2\nPROBLEM\n1\n1 1\n10 10\n1 1\n"},
		{"truncated header", "PROBLEM\n1\n1 1\n"},
		{"no blocks", "\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInstances(strings.NewReader(tt.data))
			assert.True(t, errors.Is(err, ErrMalformedInstance), "got %v", err)
		})
	}
}

func TestSelectInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "class1.2bp")
	require.NoError(t, os.WriteFile(path, []byte(twoInstances), 0644))

	inst, err := SelectInstance(path, 1)
	require.NoError(t, err)
	assert.Equal(t, 20, inst.BinWidth)

	_, err = SelectInstance(path, 2)
	assert.Error(t, err)

	_, err = SelectInstance(filepath.Join(t.TempDir(), "missing"), 0)
	assert.Error(t, err)
}
