package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baikal-tours/signup-bot/internal/config"
	"github.com/baikal-tours/signup-bot/internal/registration"

	tele "gopkg.in/telebot.v4"
)

// fakeCtx captures outbound sends; the embedded interface covers the
// methods the handlers never touch.
type fakeCtx struct {
	tele.Context
	user *tele.User
	msg  *tele.Message
	sent []string
}

func (f *fakeCtx) Sender() *tele.User     { return f.user }
func (f *fakeCtx) Message() *tele.Message { return f.msg }

func (f *fakeCtx) Text() string {
	if f.msg == nil {
		return ""
	}
	return f.msg.Text
}

func (f *fakeCtx) Send(what interface{}, _ ...interface{}) error {
	if s, ok := what.(string); ok {
		f.sent = append(f.sent, s)
	}
	return nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{Telegram: config.TelegramConfig{Token: "test-token"}}
	require.NoError(t, config.Normalize(cfg))
	return New(cfg, nil)
}

func advanceToPayment(t *testing.T, app *App, userID int64) {
	t.Helper()
	app.flow.Begin(userID)
	_, ok := app.flow.SubmitName(userID, "Ivan Petrov")
	require.True(t, ok)
	_, ok = app.flow.SubmitPhone(userID, "89123456789")
	require.True(t, ok)
	_, ok = app.flow.Confirm(userID)
	require.True(t, ok)
	require.Equal(t, registration.StepPayment, app.store.Step(userID))
}

func TestHandleMediaWithoutAttachmentReprompts(t *testing.T) {
	app := newTestApp(t)
	const userID int64 = 7
	advanceToPayment(t, app, userID)

	c := &fakeCtx{
		user: &tele.User{ID: userID},
		msg:  &tele.Message{Sticker: &tele.Sticker{}},
	}
	require.NoError(t, app.HandleMedia(c))

	require.Len(t, c.sent, 1)
	assert.Equal(t, buildTexts(app.cfg.Tour).ReceiptMissing, c.sent[0])
	assert.Equal(t, registration.StepPayment, app.store.Step(userID))
}

func TestHandleMediaPhotoCompletes(t *testing.T) {
	app := newTestApp(t)
	const userID int64 = 7
	advanceToPayment(t, app, userID)

	c := &fakeCtx{
		user: &tele.User{ID: userID, Username: "ivan_p"},
		msg:  &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "receipt-1"}}},
	}
	require.NoError(t, app.HandleMedia(c))

	require.Len(t, c.sent, 1)
	assert.Equal(t, buildTexts(app.cfg.Tour).Accepted, c.sent[0])
	assert.Equal(t, registration.StepIdle, app.store.Step(userID))
}

func TestHandleMediaIgnoredOutsidePayment(t *testing.T) {
	app := newTestApp(t)
	const userID int64 = 7
	app.flow.Begin(userID)

	c := &fakeCtx{
		user: &tele.User{ID: userID},
		msg:  &tele.Message{Sticker: &tele.Sticker{}},
	}
	require.NoError(t, app.HandleMedia(c))

	assert.Empty(t, c.sent)
	assert.Equal(t, registration.StepName, app.store.Step(userID))
}
