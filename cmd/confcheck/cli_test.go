package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree with the given args and returns stdout,
// stderr and the execution error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd, err := newRootCommand()
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	execErr := cmd.Execute()
	return out.String(), errOut.String(), execErr
}

// TestValidateCommand_ValidConfiguration verifies the success path over a
// schema and a matching config file.
func TestValidateCommand_ValidConfiguration(t *testing.T) {
	dir := t.TempDir()

	schema := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(schema, []byte(`{
		"app.server/http-port": "int",
		"app/mode": {"one-of": ["dev", "prod"]}
	}`), 0o600))

	conf := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(conf, []byte(`{
		"app.server/http-port": 8080,
		"app/mode": "dev"
	}`), 0o600))

	out, _, err := runCLI(t, "validate", "--schema", schema, "--file", conf, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration valid (2 keys)")
}

// TestValidateCommand_ReportsEveryFailure verifies that the aggregate error
// reaches the operator, one line per failing key.
func TestValidateCommand_ReportsEveryFailure(t *testing.T) {
	dir := t.TempDir()

	schema := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(schema, []byte(`{
		"app.server/http-port": "int",
		"app.server/domain": "non-empty"
	}`), 0o600))

	_, errOut, err := runCLI(t,
		"validate",
		"--schema", schema,
		"--set", "APP__SERVER___HTTP_PORT=not-a-number",
		"--log-level", "error",
	)
	require.Error(t, err)
	assert.Contains(t, errOut, "app.server/http-port")
	assert.Contains(t, errOut, "property APP__SERVER___HTTP_PORT")
	assert.Contains(t, errOut, "app.server/domain")
	assert.Contains(t, errOut, "declared, never set")
}

// TestValidateCommand_RequiresSchema verifies the missing-schema diagnostic.
func TestValidateCommand_RequiresSchema(t *testing.T) {
	_, _, err := runCLI(t, "validate", "--file", "ignored.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema given")
}

// TestShowCommand_PrintsValuesWithProvenance verifies the show output
// format.
func TestShowCommand_PrintsValuesWithProvenance(t *testing.T) {
	dir := t.TempDir()

	schema := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(schema, []byte(`{
		"app.server/http-port": "int",
		"app/owner": null
	}`), 0o600))

	conf := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(conf, []byte(`{"app.server/http-port": 8080}`), 0o600))

	out, _, err := runCLI(t, "show", "--schema", schema, "--file", conf, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "app.server/http-port = 8080 ("+conf+")")
	assert.Contains(t, out, "app/owner = <unset>")
}
