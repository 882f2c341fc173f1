package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lorekeep"
	main "github.com/fwojciec/lorekeep/cmd/lorekeep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{"lexicanum", "fandom", "wahapedia", "search", "read", "factions", "clear"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		main.DefaultVars(),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.CachePath = filepath.Join(t.TempDir(), "cache.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func parseCLI(t *testing.T, args ...string) *main.CLI {
	t.Helper()
	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), main.DefaultVars())
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return cli
}

func TestOptions_Config(t *testing.T) {
	t.Parallel()

	t.Run("defaults match the default configuration", func(t *testing.T) {
		t.Parallel()

		cli := parseCLI(t, "factions")

		assert.Equal(t, lorekeep.DefaultConfig(), cli.Options.Config())
		assert.Equal(t, 10*time.Second, cli.Timeout)
		assert.False(t, cli.KeepCache)
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cli := parseCLI(t,
			"--no-fandom-enabled",
			"--lexicanum-results=5",
			"--wahapedia-results=2",
			"--cache-max-age=15m",
			"factions",
		)

		cfg := cli.Options.Config()
		assert.False(t, cfg.Fandom.Enabled)
		assert.Equal(t, 5, cfg.Lexicanum.NumResults)
		assert.Equal(t, 2, cfg.Wahapedia.NumResults)
		assert.Equal(t, 15*time.Minute, cfg.CacheMaxAge)
	})
}

func TestOptions_Env(t *testing.T) {
	t.Setenv("LOREKEEP_WAHAPEDIA_RESULTS", "7")
	t.Setenv("LOREKEEP_LEXICANUM_ENABLED", "false")

	cli := parseCLI(t, "factions")

	cfg := cli.Options.Config()
	assert.Equal(t, 7, cfg.Wahapedia.NumResults)
	assert.False(t, cfg.Lexicanum.Enabled)
}
