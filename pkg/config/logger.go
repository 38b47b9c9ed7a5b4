package config

import (
	"context"
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a zap logger whose Ctx variant stamps trace and span ids.
type Logger struct {
	Logger      *otelzap.Logger
	ServiceName string
}

func NewLogger(serviceName string, environment string) (*Logger, error) {
	config := zap.NewProductionConfig()

	if environment == "development" {
		config = zap.NewDevelopmentConfig()
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build(zap.Fields(zap.String("service", serviceName)))

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return &Logger{
		Logger:      otelzap.New(zapLogger, otelzap.WithMinLevel(zapcore.InfoLevel)),
		ServiceName: serviceName,
	}, nil
}

// NewNopLogger discards everything; used by tests.
func NewNopLogger() *Logger {
	return &Logger{Logger: otelzap.New(zap.NewNop()), ServiceName: "test"}
}

func (l *Logger) Zap() *zap.Logger {
	return l.Logger.Logger
}

func (l *Logger) Sync() error {
	return l.Logger.Sync()
}

func (l *Logger) InfoWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Ctx(ctx).Info(msg, fields...)
}

func (l *Logger) ErrorWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Ctx(ctx).Error(msg, fields...)
}

func LogError(ctx context.Context, logger *Logger, err error, msg string, fields ...zap.Field) {
	logger.ErrorWithTrace(ctx, msg, append(fields, zap.Error(err))...)
}
