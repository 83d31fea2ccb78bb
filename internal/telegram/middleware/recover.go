package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/baikal-tours/signup-bot/internal/logger"
	"github.com/baikal-tours/signup-bot/internal/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// Recover catches panics in handlers so a single bad update cannot
// crash the bot process.
func Recover(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				ctx := helpers.BuildContext(c)
				logger.Error(ctx, "tg", "panic",
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}
