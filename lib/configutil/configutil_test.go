package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Telegram struct {
		ChatId string `json:"chat_id"`
	} `json:"telegram"`
	Port int `json:"port"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "checkin.json5"), `{
		// comments are allowed
		base_url: "https://a.example",
		username: "alice",
		telegram: { chat_id: "1" },
		port: 25,
	}`)
	writeFile(t, filepath.Join(dir, "checkin.local.json5"), `{
		username: "bob",
	}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "checkin.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://a.example", cfg.BaseUrl)
	require.Equal(t, "bob", cfg.Username)
	require.Equal(t, "1", cfg.Telegram.ChatId)
	require.Equal(t, 25, cfg.Port)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "checkin.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "checkin.json5"), `{ base_url: `)

	_, err := ReadConfig[testConfig](filepath.Join(dir, "checkin.json5"))
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestOverrideAndDefault(t *testing.T) {
	cfg := testConfig{BaseUrl: "https://a.example", Username: "alice"}

	require.NoError(t, Override(&cfg, testConfig{Username: "bob"}))
	require.Equal(t, "https://a.example", cfg.BaseUrl)
	require.Equal(t, "bob", cfg.Username)

	require.NoError(t, Default(&cfg, testConfig{BaseUrl: "https://b.example", Port: 587}))
	require.Equal(t, "https://a.example", cfg.BaseUrl)
	require.Equal(t, 587, cfg.Port)
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "CHECKIN_TEST_FROM_FILE=file\nCHECKIN_TEST_PRESET=file\n")

	t.Setenv("CHECKIN_TEST_PRESET", "env")
	t.Setenv("CHECKIN_TEST_FROM_FILE", "")
	os.Unsetenv("CHECKIN_TEST_FROM_FILE")

	require.NoError(t, LoadDotenv(path, filepath.Join(dir, "missing.env")))
	require.Equal(t, "file", os.Getenv("CHECKIN_TEST_FROM_FILE"))
	require.Equal(t, "env", os.Getenv("CHECKIN_TEST_PRESET"))
}
