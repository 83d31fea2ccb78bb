package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/baikal-tours/signup-bot/internal/logger"
	"github.com/baikal-tours/signup-bot/internal/registration"
	"github.com/baikal-tours/signup-bot/internal/telegram/format"

	tele "gopkg.in/telebot.v4"
)

const errNoteLimit = 200

// API is the slice of the Telegram client the forwarder needs. *tele.Bot
// satisfies it.
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// FailureCounter receives one Inc per failed operator delivery.
type FailureCounter interface {
	Inc()
}

// Options configures the forwarder.
type Options struct {
	// OperatorID is the chat receiving submissions. Zero disables
	// forwarding entirely; submissions are then only logged.
	OperatorID int64
	// Price and Deposit are rendered into the notification block.
	Price   string
	Deposit string
	// Failures is optional; nil disables the counter.
	Failures FailureCounter
}

// Forwarder relays completed submissions to the operator chat. Delivery
// is at-most-once: a failed send is logged, a truncated error note is
// attempted, and a failure of that note is swallowed. Nothing here ever
// reaches the submitting user.
type Forwarder struct {
	api  API
	opts Options
}

// New builds a forwarder on top of a Telegram client.
func New(api API, opts Options) *Forwarder {
	return &Forwarder{api: api, opts: opts}
}

// Forward sends the submission summary and then the receipt attachment
// to the operator. It never returns an error; the caller's acknowledgment
// to the user must not depend on operator delivery.
func (f *Forwarder) Forward(ctx context.Context, sub registration.Submission) {
	attrs := []slog.Attr{
		slog.String("submission_id", sub.ID),
		slog.String("attachment", string(sub.Attachment.Kind)),
		slog.Int64("user_id", sub.User.ID),
	}

	if f.opts.OperatorID == 0 {
		logger.Warn(ctx, "notify", "forward.skip",
			append(attrs, slog.String("cause", "operator_not_configured"))...)
		return
	}

	operator := tele.ChatID(f.opts.OperatorID)
	md := &tele.SendOptions{ParseMode: tele.ModeMarkdown}

	if _, err := f.api.Send(operator, f.renderSummary(sub), md); err != nil {
		f.deliveryFailed(ctx, sub, "summary", err, attrs)
		return
	}

	if _, err := f.api.Send(operator, attachmentOf(sub)); err != nil {
		f.deliveryFailed(ctx, sub, "attachment", err, attrs)
		return
	}

	logger.Info(ctx, "notify", "forward.ok", attrs...)
}

// Startup sends a best-effort liveness note to the operator after the
// bot comes online. Failures are logged and ignored.
func (f *Forwarder) Startup(ctx context.Context) {
	if f.opts.OperatorID == 0 {
		return
	}
	if _, err := f.api.Send(tele.ChatID(f.opts.OperatorID), "🤖 Бот запущен и готов принимать заявки"); err != nil {
		logger.Warn(ctx, "notify", "startup_note.fail",
			slog.String("err", err.Error()),
		)
	}
}

func (f *Forwarder) renderSummary(sub registration.Submission) string {
	username := "нет"
	if sub.User.Username != "" {
		username = "@" + format.EscapeMarkdown(sub.User.Username, format.MarkdownV1)
	}
	var b strings.Builder
	b.WriteString("🔥 *НОВАЯ ЗАЯВКА НА БАЙКАЛ!*\n\n")
	fmt.Fprintf(&b, "👤 *ФИО:* %s\n", format.EscapeMarkdown(sub.Name, format.MarkdownV1))
	fmt.Fprintf(&b, "📞 *Телефон:* %s\n", sub.Phone)
	fmt.Fprintf(&b, "🆔 *ID:* %d\n", sub.User.ID)
	fmt.Fprintf(&b, "👤 *Username:* %s\n", username)
	if sub.User.FullName != "" {
		fmt.Fprintf(&b, "📛 *Имя в Telegram:* %s\n", format.EscapeMarkdown(sub.User.FullName, format.MarkdownV1))
	}
	fmt.Fprintf(&b, "📅 *Время:* %s\n", sub.SubmittedAt.Format("02.01.2006 15:04"))
	fmt.Fprintf(&b, "📎 *Чек:* %s\n", receiptTag(sub.Attachment.Kind))
	fmt.Fprintf(&b, "💵 *Сумма:* %s\n", f.opts.Price)
	fmt.Fprintf(&b, "💰 *Депозит:* %s\n", f.opts.Deposit)
	fmt.Fprintf(&b, "#️⃣ Заявка `%s`", sub.ID)
	return b.String()
}

func receiptTag(kind registration.AttachmentKind) string {
	switch kind {
	case registration.AttachmentPhoto:
		return "фото"
	case registration.AttachmentDocument:
		return "документ"
	}
	return string(kind)
}

func attachmentOf(sub registration.Submission) interface{} {
	file := tele.File{FileID: sub.Attachment.FileID}
	if sub.Attachment.Kind == registration.AttachmentDocument {
		return &tele.Document{File: file, Caption: sub.Name}
	}
	return &tele.Photo{File: file, Caption: sub.Name}
}

// deliveryFailed implements the degraded path: log, count, then try to
// leave a truncated error note in the operator chat. A second failure is
// swallowed on purpose; there is no retry queue, so a failed forward is
// lost apart from the log line.
func (f *Forwarder) deliveryFailed(ctx context.Context, sub registration.Submission, stage string, err error, attrs []slog.Attr) {
	logger.Error(ctx, "notify", "forward.fail",
		append(attrs,
			slog.String("cause", stage),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)...)
	if f.opts.Failures != nil {
		f.opts.Failures.Inc()
	}

	note := fmt.Sprintf("⚠️ Не удалось переслать заявку %s (%s): %s",
		sub.ID, sub.Name, truncate(err.Error(), errNoteLimit))
	if _, noteErr := f.api.Send(tele.ChatID(f.opts.OperatorID), note); noteErr != nil {
		logger.Warn(ctx, "notify", "forward.errnote.fail",
			slog.String("submission_id", sub.ID),
			slog.String("err", noteErr.Error()),
		)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
