package bot

import (
	"fmt"
	"strings"

	"github.com/baikal-tours/signup-bot/internal/config"
	"github.com/baikal-tours/signup-bot/internal/registration"
)

func buildTexts(tour config.TourConfig) registration.Texts {
	return registration.Texts{
		AskName: "Как вас зовут? Напишите ФИО полностью.",
		AskPhone: "Отправьте ваш номер телефона.\n" +
			"Например: +7 912 345-67-89 или 89123456789",
		PhoneInvalid: "Не похоже на номер телефона 🤔\n" +
			"Проверьте формат и отправьте ещё раз.\n" +
			"Например: +7 912 345-67-89 или 89123456789",
		Summary: "Проверьте данные:\n\n" +
			"ФИО: %s\n" +
			"Телефон: %s\n" +
			"💵 Депозит: " + strings.ReplaceAll(tour.Deposit, "%", "%%") + "\n\n" +
			"Всё верно?",
		Payment: fmt.Sprintf(
			"Отлично! Чтобы забронировать место, внесите депозит %s.\n\n"+
				"Оплата по ссылке: %s\n"+
				"или переводом на номер %s (%s)\n\n"+
				"После оплаты отправьте сюда скриншот или файл чека 📸",
			tour.Deposit, tour.PaymentLink, tour.PaymentPhone, tour.RecipientName,
		),
		ReceiptMissing: "Пожалуйста, отправьте фото или файл с чеком об оплате.",
		Accepted: fmt.Sprintf(
			"Спасибо! Заявка принята ✅\n"+
				"Менеджер %s свяжется с вами в ближайшее время.",
			tour.ManagerHandle,
		),
		Cancelled:    "Запись отменена. Возвращайтесь, когда будете готовы 🌊",
		ConfirmLabel: "✅ Всё верно",
		RestartLabel: "🔄 Заполнить заново",
	}
}

func startText(tour config.TourConfig) string {
	return fmt.Sprintf(
		"🌊 *%s*\n\n"+
			"Стоимость тура: %s\n"+
			"Депозит для брони: %s\n\n"+
			"Программа и условия: %s\n\n"+
			"Нажмите «%s», чтобы оставить заявку.",
		tour.Title, tour.Price, tour.Deposit, tour.OfferLink, triggerLabel,
	)
}

func fallbackText() string {
	return fmt.Sprintf("Нажмите «%s», чтобы оставить заявку 🌊", triggerLabel)
}
