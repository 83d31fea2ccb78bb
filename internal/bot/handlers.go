package bot

import (
	"strings"

	"github.com/baikal-tours/signup-bot/internal/registration"
	"github.com/baikal-tours/signup-bot/internal/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

func (a *App) handleStart(c tele.Context) error {
	return helpers.SendMD(c, startText(a.cfg.Tour), mainKeyboard())
}

func (a *App) handleTrigger(c tele.Context) error {
	return a.deliver(c, a.flow.Begin(c.Sender().ID))
}

func (a *App) handleCancel(c tele.Context) error {
	return a.deliver(c, a.flow.Cancel(c.Sender().ID))
}

func (a *App) handleFallback(c tele.Context) error {
	return helpers.SendText(c, fallbackText(), &tele.SendOptions{ReplyMarkup: mainKeyboard()})
}

func (a *App) callbackConfirm(c tele.Context) error {
	reply, ok := a.flow.Confirm(c.Sender().ID)
	if !ok {
		// stale inline keyboard, callback already answered
		return nil
	}
	return a.deliver(c, reply)
}

func (a *App) callbackRestart(c tele.Context) error {
	return a.deliver(c, a.flow.Restart(c.Sender().ID))
}

// HandleText advances the active registration with a free-form message.
func (a *App) HandleText(c tele.Context) error {
	userID := c.Sender().ID
	switch a.store.Step(userID) {
	case registration.StepName:
		reply, ok := a.flow.SubmitName(userID, c.Text())
		if !ok {
			return nil
		}
		return a.deliver(c, reply)
	case registration.StepPhone:
		reply, ok := a.flow.SubmitPhone(userID, c.Text())
		if !ok {
			return nil
		}
		return a.deliver(c, reply)
	case registration.StepPayment:
		reply, ok := a.flow.ReceiptMissing(userID)
		if !ok {
			return nil
		}
		return a.deliver(c, reply)
	default:
		// confirmation step is driven by the inline buttons
		return nil
	}
}

// HandleMedia accepts the payment receipt. Photos and documents both
// count; anything else at the payment step gets a reprompt.
func (a *App) HandleMedia(c tele.Context) error {
	userID := c.Sender().ID
	if a.store.Step(userID) != registration.StepPayment {
		return nil
	}

	att, ok := attachmentFrom(c.Message())
	if !ok {
		reply, valid := a.flow.ReceiptMissing(userID)
		if !valid {
			return nil
		}
		return a.deliver(c, reply)
	}

	sub, reply, ok := a.flow.SubmitReceipt(userID, userMetaFrom(c.Sender()), att)
	if !ok {
		return nil
	}

	// The acknowledgment does not depend on operator delivery.
	err := a.deliver(c, reply)
	if fwd := a.fwd.Load(); fwd != nil {
		fwd.Forward(helpers.BuildContext(c), sub)
	}
	return err
}

func (a *App) deliver(c tele.Context, reply registration.Reply) error {
	markup := markupFor(reply, a.cfg.Tour.OfferLink)
	if reply.Edit {
		if markup != nil {
			return c.EditOrSend(reply.Text, markup)
		}
		return c.EditOrSend(reply.Text)
	}
	if markup != nil {
		return helpers.SendText(c, reply.Text, &tele.SendOptions{ReplyMarkup: markup})
	}
	return helpers.SendText(c, reply.Text)
}

func attachmentFrom(msg *tele.Message) (registration.Attachment, bool) {
	if msg == nil {
		return registration.Attachment{}, false
	}
	if msg.Photo != nil {
		return registration.Attachment{
			Kind:   registration.AttachmentPhoto,
			FileID: msg.Photo.FileID,
		}, true
	}
	if msg.Document != nil {
		return registration.Attachment{
			Kind:   registration.AttachmentDocument,
			FileID: msg.Document.FileID,
		}, true
	}
	return registration.Attachment{}, false
}

func userMetaFrom(user *tele.User) registration.UserMeta {
	if user == nil {
		return registration.UserMeta{}
	}
	return registration.UserMeta{
		ID:       user.ID,
		Username: user.Username,
		FullName: strings.TrimSpace(strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName)),
	}
}
