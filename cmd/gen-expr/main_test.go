package main

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/GaryCAICHI/ysyx-workbench/go/expr"
	"github.com/GaryCAICHI/ysyx-workbench/go/genexpr"
)

func TestRun_PrintsValueAndExpression(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, newApp(&stdout, &bytes.Buffer{}).Run([]string{"gen-expr", "--seed=1", "5"}))

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		value, text, ok := strings.Cut(line, " ")
		require.True(t, ok, line)
		want, err := strconv.ParseUint(value, 10, 32)
		require.NoError(t, err, line)
		got, err := genexpr.Reference(text)
		require.NoError(t, err, line)
		assert.Equal(t, expr.Word(want), got, line)
	}
}

func TestRun_SameSeedSameOutput(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, newApp(&a, &bytes.Buffer{}).Run([]string{"gen-expr", "--seed=42", "3"}))
	require.NoError(t, newApp(&b, &bytes.Buffer{}).Run([]string{"gen-expr", "--seed=42", "3"}))
	assert.Equal(t, a.String(), b.String())
}

func TestRun_DefaultsToOneExpression(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, newApp(&stdout, &bytes.Buffer{}).Run([]string{"gen-expr", "--seed=7"}))
	assert.Equal(t, 1, strings.Count(stdout.String(), "\n"))
}

func TestRun_InvalidLoop(t *testing.T) {
	for _, loop := range []string{"abc", "-1"} {
		var stdout bytes.Buffer
		err := newApp(&stdout, &bytes.Buffer{}).Run([]string{"gen-expr", "--", loop})
		var ec cli.ExitCoder
		require.True(t, errors.As(err, &ec), loop)
		assert.Equal(t, 2, ec.ExitCode(), loop)
		assert.Contains(t, ec.Error(), "LOOP must be a non-negative integer", loop)
		assert.Empty(t, stdout.String(), loop)
	}
}

func TestRun_Check(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run([]string{"gen-expr", "--check", "--seed=3", "--workers=2", "50"})
	require.NoError(t, err)
	assert.Equal(t, "All 50 expressions evaluated correctly.\n", stdout.String())
	assert.Empty(t, stderr.String())
}
