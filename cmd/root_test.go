package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tango/internal/config"
	"github.com/abhisek/tango/internal/store"
)

func flagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "tango"}
	c.Flags().String("config", "", "")
	c.Flags().String("db", "", "")
	c.Flags().String("remote", "", "")
	c.Flags().String("log-level", "", "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig(flagCmd(t,
		"--db", "/tmp/cards.db",
		"--remote", "http://127.0.0.1:9000",
		"--log-level", "debug",
	))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cards.db", cfg.DB)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.Remote.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_RejectsBadLogLevel(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := loadConfig(flagCmd(t, "--log-level", "loud"))
	assert.Error(t, err)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tango.yaml")
	require.NoError(t, os.WriteFile(path, []byte("study:\n  quiz_questions: 20\n  quiz_minutes: 3\n"), 0o644))

	cfg, err := loadConfig(flagCmd(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Study.QuizQuestions)
	assert.Equal(t, 3, cfg.Study.QuizMinutes)
}

func TestResolveDBPath_CreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tango.db")

	got, err := resolveDBPath(&config.Config{DB: path})
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.DirExists(t, filepath.Dir(path))
}

func TestCardStore_PicksBackend(t *testing.T) {
	st, err := openStore(&config.Config{DB: filepath.Join(t.TempDir(), "tango.db")})
	require.NoError(t, err)
	defer st.Close()

	local, err := cardStore(&config.Config{}, st)
	require.NoError(t, err)
	assert.IsType(t, &store.CardRepo{}, local)

	cfg := &config.Config{}
	cfg.Remote.URL = "ftp://example.com"
	_, err = cardStore(cfg, st)
	assert.Error(t, err)
}

func TestTUILogPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	got, err := tuiLogPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "tango", "tango.log"), got)

	got, err = tuiLogPath("/var/log/tango.log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/tango.log", got)
}
