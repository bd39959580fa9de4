// Package logging builds the shared zap logger from the logging
// configuration section.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a logger writing console-encoded entries to stderr at the
// configured level, optionally teeing JSON entries into a file. Plot output
// goes to stdout, so stderr keeps diagnostics out of the rendered graphs.
// The returned cleanup closes the file sink; call it after the final Sync.
func New(level, file string) (*zap.Logger, func(), error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stderr), zap.NewAtomicLevelAt(lvl)),
	}

	cleanup := func() {}
	if file != "" {
		sink, closeSink, err := zap.Open(file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup = closeSink
		jsonCfg := zap.NewProductionEncoderConfig()
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), sink, zap.NewAtomicLevelAt(lvl)))
	}

	return zap.New(zapcore.NewTee(cores...)), cleanup, nil
}

// Nop returns a disabled logger for tests
func Nop() *zap.Logger { return zap.NewNop() }
