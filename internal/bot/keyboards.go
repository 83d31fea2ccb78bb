package bot

import (
	"github.com/baikal-tours/signup-bot/internal/registration"
	"github.com/baikal-tours/signup-bot/internal/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

const (
	triggerLabel = "🌊 Записаться на тур"
	cancelLabel  = "❌ Отмена"
)

func mainKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{triggerLabel})
}

func cancelKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{cancelLabel})
}

// markupFor renders the flow's keyboard hint and inline choices into
// Telegram markup. Inline choices win over reply-keyboard hints; the
// confirmation keyboard carries the offer link as a URL button.
func markupFor(reply registration.Reply, offerLink string) *tele.ReplyMarkup {
	if len(reply.Choices) > 0 {
		row := make([]keyboard.InlineBtn, 0, len(reply.Choices))
		for _, ch := range reply.Choices {
			row = append(row, keyboard.InlineBtn{Text: ch.Label, Unique: ch.Key})
		}
		rows := [][]keyboard.InlineBtn{row}
		if offerLink != "" {
			rows = append(rows, []keyboard.InlineBtn{{Text: "📄 Договор-оферта", URL: offerLink}})
		}
		return keyboard.InlineButtonsRows(rows...)
	}
	switch reply.Keyboard {
	case registration.KeyboardMain:
		return mainKeyboard()
	case registration.KeyboardCancel:
		return cancelKeyboard()
	default:
		return nil
	}
}
