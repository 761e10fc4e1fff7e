package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffReturnsEmptyForIdenticalSource(t *testing.T) {
	diff, err := Diff("out.go", "package foo\n", "out.go", "package foo\n")
	require.NoError(t, err)
	assert.Equal(t, "", diff)
}

func TestDiffReportsChangedLines(t *testing.T) {
	a := "package foo\n\nfunc Old() {}\n"
	b := "package foo\n\nfunc New() {}\n"
	diff, err := Diff("out.go", a, "out.go", b)
	require.NoError(t, err)
	assert.True(t, strings.Contains(diff, "-func Old() {}"))
	assert.True(t, strings.Contains(diff, "+func New() {}"))
}
