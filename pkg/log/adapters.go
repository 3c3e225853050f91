package log

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// GooseLogger adapts zerolog to goose's Logger interface.
// Applied migrations ("OK ...") are logged at info, goose's status chatter at debug.
type GooseLogger struct {
	logger zerolog.Logger
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{
		logger: FromCtx(ctx).With().Str("component", "migrations").Logger(),
	}
}

func (g *GooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Fatal().Msg(gooseMessage(format, v...))
}

func (g *GooseLogger) Printf(format string, v ...interface{}) {
	msg := gooseMessage(format, v...)
	if strings.HasPrefix(msg, "OK ") {
		g.logger.Info().Msg(msg)
		return
	}
	g.logger.Debug().Msg(msg)
}

func gooseMessage(format string, v ...interface{}) string {
	return strings.TrimSpace(strings.TrimPrefix(fmt.Sprintf(format, v...), "goose: "))
}

// BadgerLogger adapts zerolog to badger's Logger interface, one level quieter than badger asks.
type BadgerLogger struct {
	logger zerolog.Logger
}

func NewBadgerLoggerFromCtx(ctx context.Context) *BadgerLogger {
	return &BadgerLogger{
		logger: FromCtx(ctx).With().Str("component", "badger").Logger(),
	}
}

func (b *BadgerLogger) Errorf(format string, v ...interface{}) {
	b.logger.Error().Msgf(strings.TrimSpace(format), v...)
}

func (b *BadgerLogger) Warningf(format string, v ...interface{}) {
	b.logger.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (b *BadgerLogger) Infof(format string, v ...interface{}) {
	b.logger.Debug().Msgf(strings.TrimSpace(format), v...)
}

func (b *BadgerLogger) Debugf(format string, v ...interface{}) {
	b.logger.Trace().Msgf(strings.TrimSpace(format), v...)
}
