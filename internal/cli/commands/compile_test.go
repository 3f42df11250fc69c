package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCompile(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCompileCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCompileCommand(t *testing.T) {
	out, err := runCompile(t,
		"--select", "id,name",
		"--from", "users",
		"--where", "status=active",
		"--order", "name desc",
		"--limit", "10",
	)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, name FROM users WHERE status = :p0 ORDER BY name DESC LIMIT 10\n"+
			"-- parameters:\n"+
			"--   p0 = active\n",
		out)
}

func TestCompileCommand_NoParameters(t *testing.T) {
	out, err := runCompile(t, "--select", "count(*)", "--from", "orders")
	require.NoError(t, err)

	assert.Equal(t, "SELECT count(*) FROM orders\n", out)
}

func TestCompileCommand_ParametersSorted(t *testing.T) {
	out, err := runCompile(t,
		"--from", "events",
		"--where", "kind=click",
		"--where", "region=EU",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "-- parameters:\n--   p0 = click\n--   p1 = EU\n")
}

func TestCompileCommand_InvalidWhere(t *testing.T) {
	_, err := runCompile(t, "--from", "users", "--where", "status")
	assert.ErrorContains(t, err, "invalid where")
}

func TestCompileCommand_UnresolvedJoin(t *testing.T) {
	_, err := runCompile(t, "--from", "orders", "--join", "customers")
	assert.ErrorContains(t, err, "no join condition")
}
