package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Short(t *testing.T) {
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Executes(t *testing.T) {
	// Save and restore build metadata
	originalVersion, originalCommit, originalDate := version, commit, date
	SetVersionInfo("test-version-1.0.0", "abc1234", "2026-03-01")
	defer SetVersionInfo(originalVersion, originalCommit, originalDate)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "fetcha version test-version-1.0.0")
	assert.Contains(t, buf.String(), "commit: abc1234")
	assert.Contains(t, buf.String(), "built:  2026-03-01")
}

func TestVersionCmd_DisplaysDevByDefault(t *testing.T) {
	originalVersion, originalCommit, originalDate := version, commit, date
	SetVersionInfo("dev", "", "")
	defer SetVersionInfo(originalVersion, originalCommit, originalDate)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "fetcha version dev")
	assert.NotContains(t, buf.String(), "commit:")
}
