package bot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/utils"
)

// startBooking membuka flow pemesanan: pilih tanggal dari beberapa hari
// ke depan sesuai MaxBookingDays.
func (b *Bot) startBooking(cb *tgbotapi.CallbackQuery) {
	b.sessions.Clear(cb.From.ID)
	b.toast(cb.ID, "")

	now := time.Now()
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 1; i <= b.cfg.MaxBookingDays; i++ {
		day := now.AddDate(0, 0, i)
		dateStr := day.Format("2006-01-02")
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(utils.FormatDate(dateStr), "bdate_"+dateStr)))
	}
	rows = append(rows, cancelRow())

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "📅 Выберите дату бронирования:", &kb)
	b.sessions.SetStep(cb.From.ID, StepBookingDate)
}

func (b *Bot) handleBookingDate(cb *tgbotapi.CallbackQuery) {
	sess := b.sessions.Get(cb.From.ID)
	if sess == nil || sess.Step != StepBookingDate {
		b.toast(cb.ID, "")
		return
	}
	dateStr := strings.TrimPrefix(cb.Data, "bdate_")
	b.sessions.SetValue(cb.From.ID, "booking_date", dateStr)
	b.toast(cb.ID, "")
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("📅 Дата: %s\n\nНа сколько человек нужен стол?", utils.FormatDate(dateStr)), nil)
	b.sessions.SetStep(cb.From.ID, StepBookingPeople)
}

// handleBookingPeople memvalidasi jumlah tamu lalu menampilkan meja dengan
// kapasitas cukup. Tanpa meja yang muat, saran penggabungan meja
// bersebelahan ditawarkan bila ada.
func (b *Bot) handleBookingPeople(msg *tgbotapi.Message) {
	count, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil {
		b.send(msg.Chat.ID, "⚠️ Введите число, например: 4", nil)
		return
	}
	if count < 1 {
		b.send(msg.Chat.ID, "⚠️ Минимум 1 человек.", nil)
		return
	}
	b.sessions.SetValue(msg.From.ID, "people_count", count)

	tables, err := b.store.AllTables()
	if err != nil {
		b.send(msg.Chat.ID, "Не удалось загрузить столы, попробуйте позже.", nil)
		return
	}

	sorted := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range sorted {
		if t.Seats >= count {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("%s (%d мест)", t.Name, t.Seats),
					fmt.Sprintf("book_tbl_%d", t.ID))))
		}
	}

	if len(rows) == 0 {
		b.suggestMergedTables(msg.Chat.ID, msg.From.ID, count)
		return
	}

	rows = append(rows, cancelRow())
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(msg.Chat.ID, "Выберите стол:", &kb)
	b.sessions.SetStep(msg.From.ID, StepBookingTable)
}

// suggestMergedTables menampilkan pasangan meja free bersebelahan yang
// digabung cukup untuk rombongan; pemesanannya sendiri lewat staff.
func (b *Bot) suggestMergedTables(chatID, userID int64, count int) {
	defer b.sessions.Clear(userID)
	kb := b.mainMenuKeyboard(userID)

	pairs, err := b.store.MergeSuggestions()
	if err != nil {
		b.send(chatID, "😔 Нет подходящих столов для такого количества гостей.", &kb)
		return
	}

	var fitting []string
	for _, p := range pairs {
		if p.First.Seats+p.Second.Seats >= count {
			fitting = append(fitting, fmt.Sprintf("▪ %s + %s (%d мест)",
				p.First.Name, p.Second.Name, p.First.Seats+p.Second.Seats))
		}
	}
	if len(fitting) == 0 {
		b.send(chatID, "😔 Нет подходящих столов для такого количества гостей.", &kb)
		return
	}

	text := "😔 Одного стола на всех не хватит, но можно сдвинуть соседние:\n\n" +
		strings.Join(fitting, "\n") +
		"\n\nПопросите администратора объединить столы."
	b.send(chatID, text, &kb)
}

// handleBookingTable menampilkan slot jam kerja; slot yang sudah terisi
// (booking aktif meja+tanggal) ditandai dan tidak bisa dipilih.
func (b *Bot) handleBookingTable(cb *tgbotapi.CallbackQuery) {
	dateVal, ok := b.sessions.Value(cb.From.ID, "booking_date")
	date, _ := dateVal.(string)
	if !ok || date == "" {
		b.toast(cb.ID, "")
		return
	}

	tableID, ok := parseUint(strings.TrimPrefix(cb.Data, "book_tbl_"))
	if !ok {
		b.toast(cb.ID, "")
		return
	}
	b.sessions.SetValue(cb.From.ID, "table_id", tableID)

	taken, err := b.store.TakenSlots(tableID, date)
	if err != nil {
		b.alert(cb.ID, "Не удалось загрузить свободное время.")
		return
	}
	takenSet := make(map[string]bool, len(taken))
	for _, slot := range taken {
		takenSet[slot] = true
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	available := 0
	for h := b.cfg.WorkingHoursStart; h < b.cfg.WorkingHoursEnd; h++ {
		slot := utils.Slot(h)
		if takenSet[slot] {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("❌ "+slot, "noop")))
		} else {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🟢 "+slot, fmt.Sprintf("time_%d", h))))
			available++
		}
	}

	b.toast(cb.ID, "")
	if available == 0 {
		kb := backKeyboard("start_booking")
		b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
			"😔 Все слоты на этот день заняты. Попробуйте другую дату.", &kb)
		return
	}

	rows = append(rows, cancelRow())
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("📅 Дата: %s\nВыберите время:", utils.FormatDate(date)), &kb)
	b.sessions.SetStep(cb.From.ID, StepBookingTime)
}

func (b *Bot) handleBookingTime(cb *tgbotapi.CallbackQuery) {
	sess := b.sessions.Get(cb.From.ID)
	if sess == nil || sess.Step != StepBookingTime {
		b.toast(cb.ID, "")
		return
	}
	hour, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "time_"))
	if err != nil {
		b.toast(cb.ID, "")
		return
	}
	slot := utils.Slot(hour)
	b.sessions.SetValue(cb.From.ID, "booking_time", slot)

	dateVal, _ := b.sessions.Value(cb.From.ID, "booking_date")
	date, _ := dateVal.(string)

	b.toast(cb.ID, "")
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Да, предзаказ", "preorder_yes")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Нет", "preorder_no")))
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("📅 Дата: %s\n⏰ Время: %s\n\nПредзаказ?", utils.FormatDate(date), slot), &kb)
	b.sessions.SetStep(cb.From.ID, StepBookingPreorder)
}

func (b *Bot) handlePreorderNo(cb *tgbotapi.CallbackQuery) {
	sess := b.sessions.Get(cb.From.ID)
	if sess == nil || sess.Step != StepBookingPreorder {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")
	b.confirmBooking(cb.Message.Chat.ID, cb.Message.MessageID, cb.From.ID, 0)
}

func (b *Bot) handlePreorderYes(cb *tgbotapi.CallbackQuery) {
	sess := b.sessions.Get(cb.From.ID)
	if sess == nil || sess.Step != StepBookingPreorder {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "Введите сумму предзаказа:", nil)
	b.sessions.SetStep(cb.From.ID, StepBookingPreorderAmount)
}

func (b *Bot) handleBookingPreorderAmount(msg *tgbotapi.Message) {
	val, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil || val < 0 {
		b.send(msg.Chat.ID, "⚠️ Введите сумму числом, например: 5000", nil)
		return
	}
	b.confirmBooking(msg.Chat.ID, 0, msg.From.ID, float64(val))
}

// confirmBooking menulis reservasi dari field session yang terkumpul.
// Rombongan di atas ambang otomatis mendapat shared order tertaut plus
// link undangan. messageID 0 berarti kirim pesan baru, bukan edit.
func (b *Bot) confirmBooking(chatID int64, messageID int, userID int64, preOrderSum float64) {
	tableVal, _ := b.sessions.Value(userID, "table_id")
	dateVal, _ := b.sessions.Value(userID, "booking_date")
	timeVal, _ := b.sessions.Value(userID, "booking_time")
	peopleVal, _ := b.sessions.Value(userID, "people_count")

	tableID, _ := tableVal.(uint)
	date, _ := dateVal.(string)
	timeSlot, _ := timeVal.(string)
	people, _ := peopleVal.(int)
	defer b.sessions.Clear(userID)

	if tableID == 0 || date == "" || timeSlot == "" || people == 0 {
		b.send(chatID, "Что-то пошло не так, начните бронирование заново.", nil)
		return
	}

	if _, err := b.store.CreateBooking(userID, tableID, date, timeSlot, people, preOrderSum); err != nil {
		b.send(chatID, "Не удалось сохранить бронь, попробуйте ещё раз.", nil)
		return
	}
	utils.InfoLogger.Printf("Booking created: user=%d date=%s slot=%q", userID, date, timeSlot)

	kb := b.mainMenuKeyboard(userID)
	var text string
	if preOrderSum > 0 {
		text = fmt.Sprintf("✅ <b>Бронь с предзаказом (%s) подтверждена!</b>", utils.FormatPrice(preOrderSum))
	} else {
		text = "✅ <b>Бронь подтверждена!</b>"
	}

	if people > b.cfg.SharedOrderThreshold {
		if booking, err := b.store.ActiveBooking(userID); err == nil && booking != nil {
			order, err := b.store.CreateOrder(userID, &booking.ID)
			if err == nil {
				text += fmt.Sprintf(
					"\nТак как вас много, создан <b>Совместный заказ</b>.\n"+
						"Ссылка для гостей: %s\n\nОни смогут сами добавить блюда.",
					b.inviteLink(order.LinkToken))
				utils.InfoLogger.Printf("Shared order %d auto-created for booking %d", order.ID, booking.ID)
			}
		}
	}

	if messageID != 0 {
		b.edit(chatID, messageID, text, &kb)
	} else {
		b.send(chatID, text, &kb)
	}
}

// showMyBooking menampilkan booking aktif user, dengan tombol отмена dan,
// bila ada order tertaut, tombol меню заказа.
func (b *Bot) showMyBooking(cb *tgbotapi.CallbackQuery) {
	b.toast(cb.ID, "")
	booking, err := b.store.ActiveBooking(cb.From.ID)
	if err != nil || booking == nil {
		kb := backKeyboard()
		b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "У вас нет активных броней.", &kb)
		return
	}

	text := fmt.Sprintf(
		"🎫 <b>Ваша бронь:</b>\n\n📅 Дата: %s\n⏰ Время: %s\n🪑 Стол: %s\n👥 Гостей: %d",
		utils.FormatDate(booking.BookingDate), booking.BookingTime,
		booking.TableName, booking.PeopleCount)
	if booking.PreOrderSum > 0 {
		text += fmt.Sprintf("\n💰 Предзаказ: %s", utils.FormatPrice(booking.PreOrderSum))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	if order, err := b.store.OpenOrderByBooking(booking.ID); err == nil && order != nil {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍕 Меню заказа", fmt.Sprintf("open_menu_%d", order.ID))))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отменить бронь", "cancel_booking")),
		backRow())

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, text, &kb)
}

func (b *Bot) cancelBooking(cb *tgbotapi.CallbackQuery) {
	cancelled, err := b.store.CancelBooking(cb.From.ID)
	if err != nil {
		b.alert(cb.ID, "Не удалось отменить бронь.")
		return
	}
	if cancelled {
		b.toast(cb.ID, "✅ Бронь отменена")
		utils.InfoLogger.Printf("Booking cancelled: user=%d", cb.From.ID)
	} else {
		b.toast(cb.ID, "Нет активной брони")
	}
	b.sessions.Clear(cb.From.ID)
	kb := b.mainMenuKeyboard(cb.From.ID)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "Главное меню", &kb)
}

// showEmployeeBookings: daftar booking aktif untuk staff (atau admin).
func (b *Bot) showEmployeeBookings(cb *tgbotapi.CallbackQuery) {
	if !b.isEmployee(cb.From.ID) && !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")

	bookings, err := b.store.AllBookingsFull()
	if err != nil {
		b.alert(cb.ID, "Не удалось загрузить брони.")
		return
	}

	text := "📋 <b>Активные брони:</b>\n\n"
	found := false
	for _, bk := range bookings {
		if bk.Status != models.BookingActive {
			continue
		}
		found = true
		phone := bk.PhoneNumber
		if phone == "" {
			phone = "не указан"
		}
		text += fmt.Sprintf("🔹 <b>%s %s</b> — Стол %s\n   Гость: %s (%d чел.)\n   Тел: %s\n",
			utils.FormatDate(bk.BookingDate), bk.BookingTime, bk.TableName,
			bk.UserName, bk.PeopleCount, phone)
		if bk.PreOrderSum > 0 {
			text += fmt.Sprintf("   Предзаказ: %s\n", utils.FormatPrice(bk.PreOrderSum))
		}
		text += "\n"
	}
	if !found {
		text += "Нет активных броней."
	}

	kb := backKeyboard()
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, text, &kb)
}
