package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/leonardomso/ltfind/internal/config"
	"github.com/leonardomso/ltfind/internal/logging"
	"github.com/leonardomso/ltfind/internal/port"
)

// exitOnError prints an error message and exits if err is not nil.
func exitOnError(err error, message string) {
	if err != nil {
		if message != "" {
			fmt.Fprintf(os.Stderr, "%s: %v\n", message, err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}

// LoadConfig loads the configuration file. An explicit path is read as is;
// otherwise the file is searched for from startDir upwards. noConfig yields
// an empty config.
func LoadConfig(path, startDir string, noConfig bool) (*config.Config, error) {
	if noConfig {
		return &config.Config{}, nil
	}

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, fmt.Errorf("loading config: %w", statErr)
		}
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.FindAndLoad(startDir)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}

// ResolveSelectors returns the selectors given on the command line, falling
// back to the config's default paths.
func ResolveSelectors(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return args
	}
	if cfg != nil {
		return cfg.Paths
	}
	return nil
}

// setup loads the config and builds the port used by every command.
func setup(log *zap.Logger) (*config.Config, *port.Base, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := LoadConfig(configPath, wd, noConfig)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case cfg.Source == "":
		log.Debug("no config file found")
	case cfg.IsEmpty():
		log.Warn("config file sets nothing", zap.String(logging.ConfigFile, cfg.Source))
	default:
		log.Debug("loaded config", zap.String(logging.ConfigFile, cfg.Source))
	}

	cfg.Merge(&config.Config{LayoutTestsDir: rootDir})
	return cfg, port.FromConfig(cfg, ""), nil
}
