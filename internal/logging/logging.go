// Package logging builds the process-wide zap logger and holds the field keys
// used across packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field keys.
const (
	Root       = "root"
	Paths      = "paths"
	Path       = "path"
	Candidates = "candidates"
	Tests      = "tests"
	Elapsed    = "elapsed"
	ConfigFile = "config_file"
)

// Encodings accepted by New.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Options configures the logger.
type Options struct {
	// Verbose enables debug output.
	Verbose bool

	// Encoding is "console" or "json".
	Encoding string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// New builds a logger writing to opts.Output at warn level, or debug when
// verbose.
func New(opts Options) (*zap.Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	sink := zapcore.AddSync(out)

	var enc zapcore.Encoder
	switch strings.ToLower(opts.Encoding) {
	case "", EncodingConsole:
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.TimeKey = ""
		enc = zapcore.NewConsoleEncoder(encCfg)
	case EncodingJSON:
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("unknown log encoding %q (supported: %s, %s)",
			opts.Encoding, EncodingConsole, EncodingJSON)
	}

	lvl := zap.NewAtomicLevelAt(zap.WarnLevel)
	if opts.Verbose {
		lvl.SetLevel(zap.DebugLevel)
	}

	return zap.New(zapcore.NewCore(enc, sink, lvl), zap.ErrorOutput(sink)), nil
}
