package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unscroll-app/unscroll/internal/config"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func TestAfterApply_SettingsFillDefaults(t *testing.T) {
	t.Setenv("UNSCROLL_HOME", t.TempDir())
	// AfterApply exports non-default values for child processes; keep that
	// out of the other tests.
	t.Cleanup(func() { os.Unsetenv("UNSCROLL_MAX_LOG_FILES") })

	cli := &CLI{MaxLogFiles: 1000}
	cli.SetSettings(&config.Settings{
		Debug:       boolPtr(false),
		MaxLogFiles: intPtr(50),
	})

	require.NoError(t, cli.AfterApply())
	defer cli.Close()

	assert.Equal(t, 50, cli.MaxLogFiles)
	assert.False(t, cli.Debug)
	require.NotNil(t, cli.Container)
}

func TestAfterApply_EnvBeatsSettings(t *testing.T) {
	t.Setenv("UNSCROLL_HOME", t.TempDir())
	t.Setenv("UNSCROLL_MAX_LOG_FILES", "25")

	cli := &CLI{MaxLogFiles: 1000}
	cli.SetSettings(&config.Settings{MaxLogFiles: intPtr(50)})

	require.NoError(t, cli.AfterApply())
	defer cli.Close()

	// The env var is present, so the settings value must not apply. The flag
	// keeps its default here; logging reads the env var itself.
	assert.Equal(t, 1000, cli.MaxLogFiles)
}

func TestAfterApply_FlagBeatsSettings(t *testing.T) {
	t.Setenv("UNSCROLL_HOME", t.TempDir())
	t.Cleanup(func() { os.Unsetenv("UNSCROLL_MAX_LOG_FILES") })

	cli := &CLI{MaxLogFiles: 10}
	cli.SetSettings(&config.Settings{MaxLogFiles: intPtr(50)})

	require.NoError(t, cli.AfterApply())
	defer cli.Close()

	assert.Equal(t, 10, cli.MaxLogFiles)
}

func TestContainer_WiresServices(t *testing.T) {
	t.Setenv("UNSCROLL_HOME", t.TempDir())

	container, err := NewContainer(&config.Settings{})
	require.NoError(t, err)
	defer container.Close()

	assert.NotNil(t, container.Accounts)
	assert.NotNil(t, container.Dashboard)
	assert.NotNil(t, container.Ledger)
	assert.NotNil(t, container.Plans)
	assert.NotNil(t, container.Stats)
	assert.NotNil(t, container.Tracker)
}
