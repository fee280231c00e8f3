package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ismaeljda/big-brain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("YOUTUBE_CLIENT_ID", "id")
	t.Setenv("YOUTUBE_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_AI_API_KEY", "key")
	unsetenv(t, "LLM_PROVIDER", "LLM_MODEL", "API_PORT", "SYNC_MAX_RESULTS", "YOUTUBE_REDIRECT_URI", "CATEGORIES_FILE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, int64(50), cfg.Youtube.MaxResults)
	assert.Equal(t, "http://localhost:5000/oauth/callback", cfg.Youtube.RedirectURI)
	assert.Len(t, cfg.Categories, 6)
	assert.Empty(t, cfg.Validate())
}

func TestValidateReportsMissingKeys(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LLM_PROVIDER", "OpenAI")
	unsetenv(t, "LLM_MODEL", "YOUTUBE_CLIENT_ID", "YOUTUBE_CLIENT_SECRET", "OPENAI_API_KEY", "CATEGORIES_FILE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, []string{"YOUTUBE_CLIENT_ID", "YOUTUBE_CLIENT_SECRET", "OPENAI_API_KEY"}, cfg.Validate())
}

func TestLoadCategories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")
	t.Setenv("HOBBY_FOLDER", "Cuisine")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - key: cooking_knowledge
    type: knowledge
    folder: ${HOBBY_FOLDER}
  - key: go_learning
    name: Go
    type: learning
    folder: Go Learning
    moc: Go MOC
`), 0o644))

	cats, err := LoadCategories(path)
	require.NoError(t, err)
	require.Len(t, cats, 2)

	cooking := cats["cooking_knowledge"]
	assert.Equal(t, "Cuisine", cooking.Folder)
	assert.Equal(t, "Cuisine MOC", cooking.MOC)
	assert.Equal(t, model.ModeKnowledge, cooking.Mode)
	assert.Equal(t, "Go MOC", cats["go_learning"].MOC)
}

func TestLoadCategoriesRejectsBadMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - key: x
    type: archive
    folder: X
`), 0o644))

	_, err := LoadCategories(path)
	assert.ErrorContains(t, err, "unknown type")
}
