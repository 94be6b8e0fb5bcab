// AngelaMos | 2026
// main_test.go

package main

import (
	"bytes"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"version"})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestStepsRejectsNonNumericArgument(t *testing.T) {
	_, err := parseInt("two")
	assert.Error(t, err)

	n, err := parseInt("-2")
	require.NoError(t, err)
	assert.Equal(t, -2, n)
}

func TestIgnoreNoChange(t *testing.T) {
	assert.NoError(t, ignoreNoChange(migrate.ErrNoChange))
	assert.ErrorIs(t, ignoreNoChange(migrate.ErrNilVersion), migrate.ErrNilVersion)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"up", "down", "steps", "force", "version"} {
		assert.True(t, names[want], want)
	}
}
