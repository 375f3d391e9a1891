package test

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DummyLogger writes plain console entries (message and fields only) to w.
func DummyLogger(w io.Writer) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "message",
	})

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.DebugLevel))
}
