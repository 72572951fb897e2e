package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Makepad-fr/shoplist/internal/model"
	"github.com/Makepad-fr/shoplist/internal/view"
)

const (
	// FileName is looked up in the working directory and in
	// $SHOPLIST_CONFIG_PATH; the extension is implicit.
	FileName  = ".shoplist"
	EnvPrefix = "SHOPLIST"
)

// Keys shared with the flag layer.
const (
	KeySort            = "sort"
	KeyFilter          = "filter"
	KeySearchThreshold = "search.threshold"
	KeySearchExclusive = "search.exclusive"
	KeySeed            = "seed"
	KeyTheme           = "theme"
	KeyColor           = "color"
	KeyLogLevel        = "log.level"
	KeyLogFile         = "log.file"
)

var ErrInvalid = errors.New("invalid config")

// Config is the resolved settings for one run.
type Config struct {
	View     view.Config
	Seed     string
	Theme    string
	Color    string // auto | always | never
	LogLevel slog.Level
	LogFile  string
	File     string // config file actually read, if any
}

// SetDefaults registers defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySort, string(model.SortByName))
	v.SetDefault(KeyFilter, string(model.FilterAll))
	v.SetDefault(KeySearchThreshold, view.DefaultSearchThreshold)
	v.SetDefault(KeySearchExclusive, false)
	v.SetDefault(KeySeed, "")
	v.SetDefault(KeyTheme, "classic")
	v.SetDefault(KeyColor, "auto")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
}

// New returns a viper instance wired for defaults, the config file search
// path, and SHOPLIST_* environment variables. Flags are bound by the caller.
func New(explicitFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
		return v
	}
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	if override := os.Getenv(EnvPrefix + "_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath(".")
	return v
}

// Load reads the config file, if any, and resolves v into a Config. A
// missing file is fine; a malformed one is not.
func Load(v *viper.Viper, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logger.Debug("no config file found")
	} else {
		logger.Debug("loaded config", slog.String("path", v.ConfigFileUsed()))
	}
	return Resolve(v)
}

// Resolve validates the values currently visible through v.
func Resolve(v *viper.Viper) (*Config, error) {
	sort, err := model.ParseSortMode(v.GetString(KeySort))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, KeySort, err)
	}
	filter, err := model.ParseCheckedFilter(v.GetString(KeyFilter))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, KeyFilter, err)
	}
	threshold := v.GetInt(KeySearchThreshold)
	if threshold < 0 {
		return nil, fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalid, KeySearchThreshold, threshold)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, KeyLogLevel, err)
	}
	color := strings.ToLower(v.GetString(KeyColor))
	switch color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("%w: %s must be auto, always or never, got %q", ErrInvalid, KeyColor, color)
	}

	return &Config{
		View: view.Config{
			Sort:            sort,
			Filter:          filter,
			SearchThreshold: threshold,
			Exclusive:       v.GetBool(KeySearchExclusive),
		},
		Seed:     v.GetString(KeySeed),
		Theme:    v.GetString(KeyTheme),
		Color:    color,
		LogLevel: level,
		LogFile:  v.GetString(KeyLogFile),
		File:     v.ConfigFileUsed(),
	}, nil
}
