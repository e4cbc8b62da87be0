package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// mainMenuKeyboard menyusun menu utama; baris staff dan admin hanya muncul
// untuk user dengan kapabilitas itu (dua sumber yang saling independen).
func (b *Bot) mainMenuKeyboard(userID int64) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍽 Забронировать стол", "start_booking")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎫 Моя бронь", "my_bookings")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍕 Совместный заказ", "create_shared_order")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Кто я?", "my_profile")),
	}
	if b.isEmployee(userID) {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📂 Активные Брони", "emp_bookings")))
	}
	if b.isAdmin(userID) {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛠 Админ-панель", "admin_menu")))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func backRow(callbackData ...string) []tgbotapi.InlineKeyboardButton {
	data := "start_menu"
	if len(callbackData) > 0 {
		data = callbackData[0]
	}
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", data))
}

func cancelRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Отмена", "start_menu"))
}

func backKeyboard(callbackData ...string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(backRow(callbackData...))
}
