package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zeeklook.yml")
	content := `contexts:
  - name: lab
    url: https://monitor.lab:8443
    username: operator
    password: secret
    insecure: true
    timeout: 30
  - name: prod
    url: https://monitor.example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Contexts, 2)

	assert.Equal(t, "lab", cfg.Contexts[0].Name)
	assert.Equal(t, "https://monitor.lab:8443", cfg.Contexts[0].URL)
	assert.True(t, cfg.Contexts[0].Insecure)
	assert.Equal(t, 30, cfg.Contexts[0].Timeout)
	assert.Equal(t, "prod", cfg.Contexts[1].Name)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err, "a missing config file is not an error")
	assert.Empty(t, cfg.Contexts)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("contexts: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFindContext(t *testing.T) {
	cfg := &Config{Contexts: []Context{
		{Name: "lab", URL: "https://lab"},
		{Name: "prod", URL: "https://prod"},
	}}

	ctx, found := cfg.FindContext("prod")
	require.True(t, found)
	assert.Equal(t, "https://prod", ctx.URL)

	ctx, found = cfg.FindContext("")
	require.True(t, found, "empty name falls back to the first context")
	assert.Equal(t, "lab", ctx.Name)

	_, found = cfg.FindContext("missing")
	assert.False(t, found)

	_, found = (&Config{}).FindContext("")
	assert.False(t, found)
}
