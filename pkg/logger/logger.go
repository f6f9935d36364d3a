package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var L *zap.Logger

func init() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	var err error
	L, err = config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
}

// SetLevel raises the minimum level of the global logger (warn, error).
// Levels at or below info are ignored.
func SetLevel(level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil || lvl <= zapcore.InfoLevel {
		return
	}
	L = L.WithOptions(zap.IncreaseLevel(lvl))
}

// WithComponent returns a logger tagged with a component field (handler, service, mq, gateway...)
func WithComponent(component string) *zap.Logger {
	return L.With(zap.String("component", component))
}

// WithBooking tags a component logger with the booking being reconciled.
func WithBooking(component string, bookingID int64) *zap.Logger {
	return WithComponent(component).With(zap.Int64("booking_id", bookingID))
}
