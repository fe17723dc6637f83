package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	configpkg "github.com/minhyannv/gaia-botchat/pkg/config"
	"github.com/minhyannv/gaia-botchat/pkg/questions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestRunFailsWithoutQuestionFile(t *testing.T) {
	dir := t.TempDir()
	env := testEnv(map[string]string{
		configpkg.EnvEnvFile:       filepath.Join(dir, ".env"),
		configpkg.EnvQuestionsFile: filepath.Join(dir, "missing.txt"),
	})

	err := run(context.Background(), env, strings.NewReader("4\n"), &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, questions.ErrSourceUnavailable)
}

func TestRunMenuSession(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	questionsFile := filepath.Join(dir, "questions.txt")
	require.NoError(t, os.WriteFile(questionsFile, []byte("q1\n\nq2\n"), 0o644))
	require.NoError(t, os.WriteFile(envFile, []byte("UNRELATED=1\n"), 0o644))
	unsetEnv(t, "UNRELATED")

	env := testEnv(map[string]string{
		configpkg.EnvEnvFile:       envFile,
		configpkg.EnvQuestionsFile: questionsFile,
		configpkg.KeyAPIKey:        "from-env",
	})

	var stdout bytes.Buffer
	err := run(context.Background(), env, strings.NewReader("1\nmynode\n4\n"), &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "API Key Set")
	assert.Contains(t, out, "current domain: mynode")
	assert.Contains(t, out, "Exiting...")

	values, err := configpkg.NewStore(envFile).Load()
	require.NoError(t, err)
	assert.Equal(t, "mynode", values[configpkg.KeyDomain])
	assert.Equal(t, "1", values["UNRELATED"])
}

// unsetEnv clears key for the duration of the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfigReadsSettingsFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	questionsFile := filepath.Join(dir, "my-questions.txt")
	content := "GAIA_QUESTIONS_FILE=" + questionsFile + "\nGAIA_LOG_LEVEL=info\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	t.Setenv(configpkg.EnvEnvFile, envFile)
	unsetEnv(t, configpkg.EnvQuestionsFile)
	unsetEnv(t, configpkg.EnvLogLevel)
	unsetEnv(t, configpkg.EnvVerbose)

	cfg := loadConfig(os.Getenv)
	assert.Equal(t, envFile, cfg.EnvFile)
	assert.Equal(t, questionsFile, cfg.QuestionsFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigExportedValuesWin(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GAIA_LOG_LEVEL=debug\n"), 0o644))

	t.Setenv(configpkg.EnvEnvFile, envFile)
	t.Setenv(configpkg.EnvLogLevel, "error")
	unsetEnv(t, configpkg.EnvVerbose)

	cfg := loadConfig(os.Getenv)
	assert.Equal(t, "error", cfg.LogLevel)
}
