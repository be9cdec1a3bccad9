package app

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"operadoras/internal/domain"
)

// LoggingConfig configures logging wiring.
type LoggingConfig struct {
	// Logger, when set, is used as is.
	Logger *zap.Logger
	// Output defaults to stderr so stdout stays free for command output.
	Output io.Writer
}

// NewLogger builds the process logger from the log section of the config.
func NewLogger(cfg domain.Config, logging LoggingConfig) (*zap.Logger, error) {
	if logging.Logger != nil {
		return logging.Logger.Named("app"), nil
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	switch cfg.Log.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	output := logging.Output
	if output == nil {
		output = os.Stderr
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(output)), level)
	return zap.New(core).Named("app"), nil
}
