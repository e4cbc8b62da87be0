package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/utils"
)

func (b *Bot) backToMain(cb *tgbotapi.CallbackQuery) {
	b.sessions.Clear(cb.From.ID)
	b.toast(cb.ID, "")
	kb := b.mainMenuKeyboard(cb.From.ID)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "Главное меню", &kb)
}

func (b *Bot) showProfile(cb *tgbotapi.CallbackQuery) {
	user, err := b.store.GetUser(cb.From.ID)
	if err != nil || user == nil {
		b.alert(cb.ID, "Вы не зарегистрированы!")
		return
	}
	b.toast(cb.ID, "")

	phone := user.PhoneNumber
	if phone == "" {
		phone = "Не указан"
	}
	status := "👤 Гость"
	if user.IsRegular {
		status = "⭐ Постоянный клиент"
	}

	text := fmt.Sprintf(
		"👤 <b>ВАШ ПРОФИЛЬ</b>\n\nИмя: %s\nТелефон: %s\nСтатус: %s\nID: <code>%d</code>",
		user.FullName, phone, status, user.TelegramID)

	history, err := b.store.BookingHistory(cb.From.ID, 5)
	if err == nil && len(history) > 0 {
		text += "\n\n📖 <b>Последние брони:</b>\n"
		for _, h := range history {
			icon := "❌"
			if h.Status == models.BookingActive {
				icon = "✅"
			}
			text += fmt.Sprintf("%s %s %s — %s\n",
				icon, utils.FormatDate(h.BookingDate), h.BookingTime, h.TableName)
		}
	}

	if order, err := b.store.OpenOrderByInitiator(cb.From.ID); err == nil && order != nil {
		text += fmt.Sprintf("\n🍕 Ваш открытый совместный заказ:\n%s", b.inviteLink(order.LinkToken))
	}

	kb := backKeyboard()
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, text, &kb)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	text := fmt.Sprintf(
		"ℹ️ <b>%s — Справка</b>\n\n"+
			"🍽 <b>Забронировать стол</b> — выберите дату, количество гостей, стол и время\n"+
			"🎫 <b>Моя бронь</b> — просмотр и отмена текущей брони\n"+
			"👤 <b>Кто я?</b> — ваш профиль и история\n"+
			"🍕 <b>Совместный заказ</b> — создайте общий заказ и поделитесь ссылкой\n\n"+
			"Команды:\n/start — главное меню\n/help — эта справка",
		b.cfg.RestaurantName)
	b.send(msg.Chat.ID, text, nil)
}
