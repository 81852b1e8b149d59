package models

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArtifact(t *testing.T) {
	r, err := ParseCrimeRow(sampleRow())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteArtifact(&buf, []CrimeRecord{r, r}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Columns, "\t"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "10508693\tHZ250496\t2016-05-03\t"))
}

func TestArtifactReader(t *testing.T) {
	r, err := ParseCrimeRow(sampleRow())
	require.NoError(t, err)
	r.Description = `PROBATION "VIOLATION", SIMPLE`

	var buf bytes.Buffer
	require.NoError(t, WriteArtifact(&buf, []CrimeRecord{r}))

	reader := NewArtifactReader(&buf)
	header, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, Columns, header)

	row, err := reader.Read()
	require.NoError(t, err)
	back, err := ParseCrimeRow(row)
	require.NoError(t, err)
	assert.Equal(t, r, back)
}

func TestArtifactReader_WrongFieldCount(t *testing.T) {
	reader := NewArtifactReader(strings.NewReader("a\tb\n"))

	_, err := reader.Read()

	assert.Error(t, err)
}

func TestArtifactWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArtifact(&buf, nil))

	assert.Equal(t, strings.Join(Columns, "\t")+"\n", buf.String())
}
