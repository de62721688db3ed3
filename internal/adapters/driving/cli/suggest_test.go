package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestCmd_HasSubcommands(t *testing.T) {
	commands := suggestCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "generate")
	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "apply")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSuggestGenerateCmd_ProducesTable(t *testing.T) {
	workID, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := runCLI(t, "suggest", "generate", workID)

	assert.NoError(t, err)
	assert.Contains(t, out, "Generated 3 suggestions")
	assert.Contains(t, out, "version 1")
}

func TestSuggestShowCmd_ListsRows(t *testing.T) {
	workID, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := runCLI(t, "suggest", "generate", workID)
	require.NoError(t, err)

	out, err := runCLI(t, "suggest", "show", workID)

	assert.NoError(t, err)
	assert.Contains(t, out, "Introduction")
	assert.Contains(t, out, "Background")
	assert.Contains(t, out, "Methods")
}

func TestSuggestSetCmd_TogglesRow(t *testing.T) {
	workID, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := runCLI(t, "suggest", "generate", workID)
	require.NoError(t, err)

	out, err := runCLI(t, "suggest", "set", workID, "1", "--vectorize", "false")
	defer func() { setVectorize = "" }()

	assert.NoError(t, err)
	assert.Contains(t, out, "Updated row 1")
	assert.Contains(t, out, "version 2")
}

func TestSuggestSetCmd_IndexOutOfRange(t *testing.T) {
	workID, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := runCLI(t, "suggest", "generate", workID)
	require.NoError(t, err)

	_, err = runCLI(t, "suggest", "set", workID, "99")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestSuggestApplyCmd_ReportsChunks(t *testing.T) {
	workID, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := runCLI(t, "suggest", "generate", workID)
	require.NoError(t, err)

	out, err := runCLI(t, "suggest", "apply", workID)

	assert.NoError(t, err)
	assert.Contains(t, out, "3 chunks")
}

func TestSuggestApplyCmd_WithoutTable(t *testing.T) {
	workID, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := runCLI(t, "suggest", "apply", workID)

	assert.Error(t, err)
}
