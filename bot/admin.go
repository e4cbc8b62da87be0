package bot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/utils"
)

func (b *Bot) showAdminMenu(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍔 Управление меню", "adm_menu_mgmt")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🪑 Управление столами", "adm_tables")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Пользователи", "adm_users")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Все брони", "adm_bookings")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", "adm_stats")),
		backRow())
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "🛠 <b>Админ-панель</b>", &kb)
}

// --- menu ---

func (b *Bot) showAdminMenuMgmt(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")

	items, err := b.store.AllMenuItems()
	if err != nil {
		b.alert(cb.ID, "Не удалось загрузить меню.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s — %s", item.Name, utils.FormatPrice(item.Price)), "noop"),
			tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("adm_del_menu_%d", item.ID))))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Добавить позицию", "adm_add_menu")))
	rows = append(rows, backRow("admin_menu"))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("🍔 <b>Меню</b> (%d поз.)\n\nНажмите 🗑 для удаления.", len(items)), &kb)
}

func (b *Bot) adminDeleteMenuItem(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	itemID, ok := parseUint(strings.TrimPrefix(cb.Data, "adm_del_menu_"))
	if !ok {
		b.toast(cb.ID, "")
		return
	}

	item, _ := b.store.GetMenuItem(itemID)
	if err := b.store.DeleteMenuItem(itemID); err != nil {
		b.alert(cb.ID, "Не удалось удалить.")
		return
	}
	if item != nil {
		b.toast(cb.ID, fmt.Sprintf("🗑 %s удалено", item.Name))
	} else {
		b.toast(cb.ID, "Удалено")
	}
	utils.InfoLogger.Printf("Menu item %d deleted", itemID)
	b.showAdminMenuMgmt(cb)
}

func (b *Bot) adminAddMenuStart(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "Введите название блюда:", nil)
	b.sessions.SetStep(cb.From.ID, StepAdminMenuName)
}

func (b *Bot) handleAdminMenuName(msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		return
	}
	b.sessions.SetValue(msg.From.ID, "m_name", msg.Text)
	b.send(msg.Chat.ID, "Цена (числом):", nil)
	b.sessions.SetStep(msg.From.ID, StepAdminMenuPrice)
}

func (b *Bot) handleAdminMenuPrice(msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		return
	}
	price, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil || price < 0 {
		b.send(msg.Chat.ID, "⚠️ Введите число, например: 500", nil)
		return
	}
	nameVal, _ := b.sessions.Value(msg.From.ID, "m_name")
	name, _ := nameVal.(string)
	b.sessions.Clear(msg.From.ID)

	if _, err := b.store.AddMenuItem(name, float64(price), "", ""); err != nil {
		b.send(msg.Chat.ID, "Не удалось добавить блюдо.", nil)
		return
	}
	utils.InfoLogger.Printf("Menu item added: %s (%d)", name, price)
	b.send(msg.Chat.ID, fmt.Sprintf("✅ Блюдо «%s» добавлено!", name), nil)
}

// --- meja ---

func (b *Bot) showAdminTables(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")

	tables, err := b.store.AllTables()
	if err != nil {
		b.alert(cb.ID, "Не удалось загрузить столы.")
		return
	}

	sorted := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range sorted {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s (%d мест)", t.Name, t.Seats), "noop"),
			tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("adm_del_tbl_%d", t.ID))))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Добавить стол", "adm_add_tbl")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Сбросить все столы", "adm_reset")),
		backRow("admin_menu"))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("🪑 <b>Столы</b> (%d шт.)\n\nНажмите 🗑 для удаления.", len(tables)), &kb)
}

// adminDeleteTable menghapus meja beserta booking-nya (cascade).
func (b *Bot) adminDeleteTable(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	tableID, ok := parseUint(strings.TrimPrefix(cb.Data, "adm_del_tbl_"))
	if !ok {
		b.toast(cb.ID, "")
		return
	}
	if err := b.store.DeleteTable(tableID); err != nil {
		b.alert(cb.ID, "Не удалось удалить стол.")
		return
	}
	b.toast(cb.ID, "🗑 Стол удалён")
	utils.InfoLogger.Printf("Table %d deleted", tableID)
	b.showAdminTables(cb)
}

func (b *Bot) adminResetTables(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	if err := b.store.ResetAllTables(); err != nil {
		b.alert(cb.ID, "Сброс не удался.")
		return
	}
	b.toast(cb.ID, "🔄 Все столы сброшены, брони отменены")
	utils.InfoLogger.Println("All tables reset, active bookings cancelled")
}

func (b *Bot) adminAddTableStart(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "Введите название стола:", nil)
	b.sessions.SetStep(cb.From.ID, StepAdminTableName)
}

func (b *Bot) handleAdminTableName(msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		return
	}
	b.sessions.SetValue(msg.From.ID, "t_name", msg.Text)
	b.send(msg.Chat.ID, "Количество мест (числом):", nil)
	b.sessions.SetStep(msg.From.ID, StepAdminTableSeats)
}

func (b *Bot) handleAdminTableSeats(msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		return
	}
	seats, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil || seats < 1 {
		b.send(msg.Chat.ID, "⚠️ Введите число.", nil)
		return
	}
	b.sessions.SetValue(msg.From.ID, "t_seats", seats)
	b.send(msg.Chat.ID, "ID соседних столов через запятую (или «-», если нет):", nil)
	b.sessions.SetStep(msg.From.ID, StepAdminTableNeighbors)
}

// handleAdminTableNeighbors menutup flow tambah meja. Daftar tetangga
// disimpan apa adanya; simetri dijaga manual oleh admin.
func (b *Bot) handleAdminTableNeighbors(msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		return
	}
	var neighbors []uint
	text := strings.TrimSpace(msg.Text)
	if text != "-" && text != "" {
		for _, part := range strings.Split(text, ",") {
			if id, ok := parseUint(strings.TrimSpace(part)); ok {
				neighbors = append(neighbors, id)
			}
		}
	}

	nameVal, _ := b.sessions.Value(msg.From.ID, "t_name")
	seatsVal, _ := b.sessions.Value(msg.From.ID, "t_seats")
	name, _ := nameVal.(string)
	seats, _ := seatsVal.(int)
	b.sessions.Clear(msg.From.ID)

	if _, err := b.store.CreateTable(name, seats, neighbors); err != nil {
		b.send(msg.Chat.ID, "Не удалось добавить стол.", nil)
		return
	}
	utils.InfoLogger.Printf("Table added: %s (seats=%d, neighbors=%v)", name, seats, neighbors)
	kb := b.mainMenuKeyboard(msg.From.ID)
	b.send(msg.Chat.ID, fmt.Sprintf("✅ Стол «%s» добавлен!", name), &kb)
}

// --- user ---

func (b *Bot) showAdminUsers(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")

	users, err := b.store.AllUsers()
	if err != nil {
		b.alert(cb.ID, "Не удалось загрузить пользователей.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, u := range users {
		icon := "👤"
		if u.IsEmployee() {
			icon = "👮‍♂️"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s", icon, u.FullName),
				fmt.Sprintf("adm_user_%d", u.TelegramID))))
	}
	rows = append(rows, backRow("admin_menu"))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("👥 <b>Пользователи</b> (%d)\n\nНажмите для переключения роли (сотрудник ↔ гость).",
			len(users)), &kb)
}

// adminToggleRole: user ↔ employee. Kapabilitas admin tidak tersentuh,
// dia hidup di allowlist, bukan di kolom role.
func (b *Bot) adminToggleRole(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	userID, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "adm_user_"), 10, 64)
	if err != nil {
		b.toast(cb.ID, "")
		return
	}

	user, err := b.store.GetUser(userID)
	if err != nil || user == nil {
		b.alert(cb.ID, "Пользователь не найден.")
		return
	}

	newRole := models.RoleEmployee
	roleText := "сотрудник"
	if user.IsEmployee() {
		newRole = models.RoleUser
		roleText = "гость"
	}
	if err := b.store.SetUserRole(userID, newRole); err != nil {
		b.alert(cb.ID, "Не удалось изменить роль.")
		return
	}
	b.toast(cb.ID, "Роль изменена: "+roleText)
	utils.InfoLogger.Printf("User %d role changed to %s", userID, newRole)
	b.showAdminUsers(cb)
}

// --- booking ---

func (b *Bot) showAdminBookings(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")

	bookings, err := b.store.AllBookingsFull()
	if err != nil {
		b.alert(cb.ID, "Не удалось загрузить брони.")
		return
	}

	var active []models.BookingFull
	for _, bk := range bookings {
		if bk.Status == models.BookingActive {
			active = append(active, bk)
		}
	}

	text := fmt.Sprintf("📅 <b>Все брони</b> (всего: %d, активных: %d)\n\n", len(bookings), len(active))
	if len(active) == 0 {
		text += "Нет активных броней."
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, bk := range active {
		text += fmt.Sprintf("🔹 <b>%s %s</b>\n   Стол: %s | %s (%d чел.)\n",
			utils.FormatDate(bk.BookingDate), bk.BookingTime, bk.TableName, bk.UserName, bk.PeopleCount)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("❌ Удалить #%d  %s", bk.ID, bk.TableName),
				fmt.Sprintf("adm_del_book_%d", bk.ID))))
	}
	rows = append(rows, backRow("admin_menu"))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, text, &kb)
}

func (b *Bot) adminDeleteBooking(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	bookingID, ok := parseUint(strings.TrimPrefix(cb.Data, "adm_del_book_"))
	if !ok {
		b.toast(cb.ID, "")
		return
	}
	if err := b.store.DeleteBooking(bookingID); err != nil {
		b.alert(cb.ID, "Не удалось удалить бронь.")
		return
	}
	b.toast(cb.ID, fmt.Sprintf("🗑 Бронь #%d удалена", bookingID))
	utils.InfoLogger.Printf("Booking %d deleted by admin", bookingID)
	b.showAdminBookings(cb)
}

// --- statistik ---

func (b *Bot) showAdminStats(cb *tgbotapi.CallbackQuery) {
	if !b.isAdmin(cb.From.ID) {
		b.toast(cb.ID, "")
		return
	}
	stats, err := b.store.GetStats()
	if err != nil {
		b.alert(cb.ID, "Не удалось собрать статистику.")
		return
	}
	b.toast(cb.ID, "")

	text := fmt.Sprintf(
		"📊 <b>Статистика</b>\n\n"+
			"👥 Пользователей: %d\n"+
			"🪑 Столов: %d\n"+
			"🍔 Позиций меню: %d\n\n"+
			"📅 Активных броней: %d\n"+
			"📅 Всего броней: %d\n"+
			"💰 Сумма предзаказов: %s\n\n"+
			"📦 Открытых заказов: %d\n"+
			"✅ Завершённых заказов: %d",
		stats.Users, stats.Tables, stats.MenuItems,
		stats.ActiveBookings, stats.TotalBookings, utils.FormatPrice(stats.PreOrderSum),
		stats.OpenOrders, stats.ClosedOrders)

	kb := backKeyboard("admin_menu")
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, text, &kb)
}
