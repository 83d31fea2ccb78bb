package bot

import (
	"context"
	"sync/atomic"

	"log/slog"

	"github.com/baikal-tours/signup-bot/internal/config"
	"github.com/baikal-tours/signup-bot/internal/logger"
	"github.com/baikal-tours/signup-bot/internal/metrics"
	"github.com/baikal-tours/signup-bot/internal/notify"
	"github.com/baikal-tours/signup-bot/internal/registration"
	tg "github.com/baikal-tours/signup-bot/internal/telegram"
	"github.com/baikal-tours/signup-bot/internal/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// App wires the registration flow to the Telegram transport.
type App struct {
	cfg   *config.Config
	store *registration.Store
	flow  *registration.Flow
	m     *metrics.Metrics
	fwd   atomic.Pointer[notify.Forwarder]
}

// New assembles the bot application. Metrics may be nil.
func New(cfg *config.Config, m *metrics.Metrics) *App {
	store := registration.NewStore()
	var rec registration.Recorder
	if m != nil {
		rec = m
	}
	return &App{
		cfg:   cfg,
		store: store,
		flow:  registration.NewFlow(store, buildTexts(cfg.Tour), rec),
		m:     m,
	}
}

// InProgress reports whether the user has an active registration.
func (a *App) InProgress(userID int64) bool {
	return a.store.InProgress(userID)
}

var _ router.Conversation = (*App)(nil)

func (a *App) registry() *tg.Registry {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", tg.Command{
		Handler:     a.handleStart,
		Description: "Информация о туре",
	})
	reg.RegisterCommand("/cancel", tg.Command{
		Handler:     a.handleCancel,
		Description: "Отменить запись",
	})

	_ = reg.RegisterText(triggerLabel, a.handleTrigger)
	_ = reg.RegisterText(cancelLabel, a.handleCancel)

	_ = reg.RegisterCallback(registration.ChoiceConfirm, a.callbackConfirm)
	_ = reg.RegisterCallback(registration.ChoiceRestart, a.callbackRestart)

	reg.SetTextFallback(a.handleFallback)
	reg.SetCallbackNotFound(func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "Кнопка устарела, начните заново"})
	})

	return reg
}

// TelegramRunOptions builds the full transport wiring: routes, global
// middlewares and the lifecycle hook that attaches the operator
// forwarder once the bot client exists.
func (a *App) TelegramRunOptions() tg.RunOptions {
	reg := a.registry()

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.MessageRoutes(a, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	logger.Info(logger.Background(), "tg.wire", "complete",
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, a.m, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.attachBot(ctx, rt.Bot)
			return nil
		},
	}
}

func (a *App) attachBot(ctx context.Context, b *tele.Bot) {
	var failures notify.FailureCounter
	if a.m != nil {
		failures = a.m.ForwardFailures
	}
	fwd := notify.New(b, notify.Options{
		OperatorID: a.cfg.Telegram.OperatorID,
		Price:      a.cfg.Tour.Price,
		Deposit:    a.cfg.Tour.Deposit,
		Failures:   failures,
	})
	a.fwd.Store(fwd)
	fwd.Startup(ctx)
}
