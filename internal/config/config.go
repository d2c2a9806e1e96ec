package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	PresentationHTTP     = "http"
	PresentationTerminal = "terminal"
)

var (
	ErrInvalidBoardSize = errors.New("board size must be at least 1")
	ErrInvalidLabel     = errors.New("player labels must be distinct single characters")
)

type Config struct {
	LogLevel     string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Presentation string  `yaml:"presentation" env:"PRESENTATION" env-default:"http"`
	HTTPPort     string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Board        Board   `yaml:"board"`
	Players      Players `yaml:"players"`
	Redis        Redis   `yaml:"redis"`
}

type Board struct {
	Size            int `yaml:"size" env:"BOARD_SIZE" env-default:"3"`
	NumberOfPlayers int `yaml:"number-of-players" env:"NUMBER_OF_PLAYERS" env-default:"2"`
}

type Players struct {
	First  Player `yaml:"first" env-prefix:"FIRST_PLAYER_"`
	Second Player `yaml:"second" env-prefix:"SECOND_PLAYER_"`
}

type Player struct {
	Label string `yaml:"label" env:"LABEL"`
	Color string `yaml:"color" env:"COLOR"`
}

// Redis is optional: an empty host keeps sessions in memory.
type Redis struct {
	Host       string        `yaml:"host" env:"REDIS_HOST"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"REDIS_SESSION_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads the YAML file at path, falling back to the environment alone
// when the file does not exist.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Board.Size < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidBoardSize, that.Board.Size)
	}

	if n := that.Board.NumberOfPlayers; n != entity.SinglePlayer && n != entity.TwoPlayers {
		return fmt.Errorf("%w: got %d", apperror.ErrInvalidNumberOfPlayers, n)
	}

	switch that.Presentation {
	case PresentationHTTP, PresentationTerminal:
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnsupportedPresentation, that.Presentation)
	}

	players := that.GamePlayers()
	for _, player := range players {
		if utf8.RuneCountInString(player.Label) != 1 {
			return fmt.Errorf("%w: %q", ErrInvalidLabel, player.Label)
		}
	}

	if players[0].Label == players[1].Label {
		return fmt.Errorf("%w: both players use %q", ErrInvalidLabel, players[0].Label)
	}

	return nil
}

// GamePlayers returns the configured players, filling blanks from entity.DefaultPlayers.
func (that *Config) GamePlayers() [2]entity.Player {
	players := entity.DefaultPlayers

	for i, configured := range []Player{that.Players.First, that.Players.Second} {
		if configured.Label != "" {
			players[i].Label = configured.Label
		}

		if configured.Color != "" {
			players[i].Color = configured.Color
		}
	}

	return players
}

func (that *Redis) Enabled() bool {
	return that.Host != ""
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
