package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from the YAML file", func(t *testing.T) {
		// Given: a config file with custom players and redis
		path := writeConfig(t, `
log-level: debug
presentation: terminal
board:
  size: 5
  number-of-players: 1
players:
  first:
    label: A
    color: red
  second:
    label: B
redis:
  host: cache
  port: "6380"
  session-ttl: 1h
`)

		// When: the config is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: every value is taken from the file
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, PresentationTerminal, conf.Presentation)
		assert.Equal(t, 5, conf.Board.Size)
		assert.Equal(t, 1, conf.Board.NumberOfPlayers)
		assert.Equal(t, [2]entity.Player{{Label: "A", Color: "red"}, {Label: "B", Color: "green"}}, conf.GamePlayers())
		assert.True(t, conf.Redis.Enabled())
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.SessionTTL)
	})

	t.Run("Applies defaults for missing values", func(t *testing.T) {
		path := writeConfig(t, "log-level: info\n")

		conf, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, PresentationHTTP, conf.Presentation)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, entity.DefaultBoardSize, conf.Board.Size)
		assert.Equal(t, entity.TwoPlayers, conf.Board.NumberOfPlayers)
		assert.Equal(t, entity.DefaultPlayers, conf.GamePlayers())
		assert.False(t, conf.Redis.Enabled())
		assert.Equal(t, 24*time.Hour, conf.Redis.SessionTTL)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "board:\n  size: 3\n")
		t.Setenv("BOARD_SIZE", "4")
		t.Setenv("HTTP_PORT", "8081")

		conf, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 4, conf.Board.Size)
		assert.Equal(t, "8081", conf.HTTPPort)
	})

	t.Run("Reads the environment when the file is missing", func(t *testing.T) {
		t.Setenv("PRESENTATION", "terminal")

		conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
		require.NoError(t, err)

		assert.Equal(t, PresentationTerminal, conf.Presentation)
	})

	t.Run("Rejects invalid values", func(t *testing.T) {
		tests := []struct {
			name string
			body string
			err  error
		}{
			{name: "board size", body: "board:\n  size: -1\n", err: ErrInvalidBoardSize},
			{name: "players", body: "board:\n  number-of-players: 3\n", err: apperror.ErrInvalidNumberOfPlayers},
			{name: "presentation", body: "presentation: tk\n", err: apperror.ErrUnsupportedPresentation},
			{name: "long label", body: "players:\n  first:\n    label: XX\n", err: ErrInvalidLabel},
			{name: "same labels", body: "players:\n  first:\n    label: O\n", err: ErrInvalidLabel},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Load(writeConfig(t, tt.body))

				require.ErrorIs(t, err, tt.err)
			})
		}
	})
}

func TestMustLoad(t *testing.T) {
	path := writeConfig(t, "board:\n  size: -1\n")

	assert.Panics(t, func() { MustLoad(path) })
}
