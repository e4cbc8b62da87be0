package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/utils"
)

// createSharedOrder membuat shared order lepas (tanpa booking) dengan user
// sebagai inisiator sekaligus peserta pertama.
func (b *Bot) createSharedOrder(cb *tgbotapi.CallbackQuery) {
	order, err := b.store.CreateOrder(cb.From.ID, nil)
	if err != nil {
		b.alert(cb.ID, "Не удалось создать заказ.")
		return
	}
	b.toast(cb.ID, "")
	utils.InfoLogger.Printf("Shared order %d created by user %d", order.ID, cb.From.ID)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Открыть меню", fmt.Sprintf("open_menu_%d", order.ID))),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Корзина", fmt.Sprintf("view_cart_%d", order.ID))),
		backRow())
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, fmt.Sprintf(
		"✅ <b>Совместный заказ создан!</b>\n\n"+
			"Отправьте участникам эту ссылку:\n%s\n\n"+
			"Когда они перейдут, они смогут добавлять блюда.\nВы также можете начать выбирать.",
		b.inviteLink(order.LinkToken)), &kb)
}

// showMenuPage merender satu halaman menu dengan navigasi dan tombol
// tambah-ke-keranjang. messageID 0 berarti kirim pesan baru.
func (b *Bot) showMenuPage(chatID int64, messageID int, userID int64, page int) {
	orderID, ok := b.currentOrderID(userID)
	if !ok {
		b.send(chatID, "Сначала создайте или присоединитесь к заказу.", nil)
		return
	}

	items, hasNext, err := b.store.MenuPage(page, b.cfg.ItemsPerPage)
	if err != nil {
		b.send(chatID, "Не удалось загрузить меню.", nil)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s — %s", item.Name, utils.FormatPrice(item.Price)),
				// page ikut dikodekan supaya bisa kembali ke halaman yang sama
				fmt.Sprintf("add_cart_%d_%d", item.ID, page))))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅", fmt.Sprintf("menu_page_%d", page-1)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("📄 %d", page), "noop"))
	if hasNext {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡", fmt.Sprintf("menu_page_%d", page+1)))
	}
	rows = append(rows, nav)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🛒 Корзина", fmt.Sprintf("view_cart_%d", orderID))))
	rows = append(rows, backRow())

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	text := "🍕 <b>МЕНЮ</b>\nВыберите блюда:"
	if messageID != 0 {
		b.edit(chatID, messageID, text, &kb)
	} else {
		b.send(chatID, text, &kb)
	}
}

func (b *Bot) openOrderMenu(cb *tgbotapi.CallbackQuery) {
	orderID, ok := parseUint(strings.TrimPrefix(cb.Data, "open_menu_"))
	if !ok {
		b.toast(cb.ID, "")
		return
	}
	b.sessions.SetValue(cb.From.ID, "current_order_id", orderID)
	b.toast(cb.ID, "")
	b.showMenuPage(cb.Message.Chat.ID, cb.Message.MessageID, cb.From.ID, 1)
}

func (b *Bot) turnMenuPage(cb *tgbotapi.CallbackQuery) {
	page, ok := parseUint(strings.TrimPrefix(cb.Data, "menu_page_"))
	if !ok || page < 1 {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")
	b.showMenuPage(cb.Message.Chat.ID, cb.Message.MessageID, cb.From.ID, int(page))
}

// addToCart menambah satu baris keranjang dan memberi tahu peserta lain.
func (b *Bot) addToCart(cb *tgbotapi.CallbackQuery) {
	parts := strings.Split(cb.Data, "_")
	if len(parts) != 4 {
		b.toast(cb.ID, "")
		return
	}
	itemID, ok := parseUint(parts[2])
	if !ok {
		b.toast(cb.ID, "")
		return
	}

	orderID, ok := b.currentOrderID(cb.From.ID)
	if !ok {
		b.alert(cb.ID, "Нет активного заказа!")
		return
	}

	item, err := b.store.GetMenuItem(itemID)
	if err != nil || item == nil {
		b.alert(cb.ID, "Блюдо не найдено.")
		return
	}

	if err := b.store.AddCartItem(orderID, cb.From.ID, itemID); err != nil {
		b.alert(cb.ID, "Не удалось добавить блюдо.")
		return
	}
	b.toast(cb.ID, fmt.Sprintf("➕ %s добавлено!", item.Name))

	if user, err := b.store.GetUser(cb.From.ID); err == nil && user != nil {
		b.broadcast(orderID,
			fmt.Sprintf("🛒 <b>%s</b> добавил: %s", user.FullName, item.Name),
			cb.From.ID)
	}
}

// viewCart merender keranjang bersama: isi per pemesan, total, tombol
// hapus per baris dan tombol checkout.
func (b *Bot) viewCart(cb *tgbotapi.CallbackQuery) {
	orderID, ok := parseUint(strings.TrimPrefix(cb.Data, "view_cart_"))
	if !ok {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")
	b.sessions.SetValue(cb.From.ID, "current_order_id", orderID)
	b.renderCart(cb.Message.Chat.ID, cb.Message.MessageID, orderID)
}

func (b *Bot) renderCart(chatID int64, messageID int, orderID uint) {
	items, err := b.store.CartItems(orderID)
	if err != nil {
		b.edit(chatID, messageID, "Не удалось загрузить корзину.", nil)
		return
	}

	var total float64
	text := "🛒 <b>Корзина заказа:</b>\n\n"
	if len(items) == 0 {
		text += "Пусто…"
	}
	for i, row := range items {
		total += row.Price
		text += fmt.Sprintf("%d. %s (%s) — %s\n",
			i+1, row.Name, utils.FormatPrice(row.Price), row.FullName)
	}
	text += fmt.Sprintf("\n<b>Итого: %s</b>", utils.FormatPrice(total))

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 "+row.Name,
				fmt.Sprintf("rmcart_%d_%d", row.CartID, orderID))))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", fmt.Sprintf("view_cart_%d", orderID))),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 В меню", fmt.Sprintf("open_menu_%d", orderID))),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Оплатить / Оформить", fmt.Sprintf("checkout_%d", orderID))))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.edit(chatID, messageID, text, &kb)
}

// removeFromCart: peserta mana pun boleh menghapus baris mana pun.
func (b *Bot) removeFromCart(cb *tgbotapi.CallbackQuery) {
	parts := strings.Split(cb.Data, "_")
	if len(parts) != 3 {
		b.toast(cb.ID, "")
		return
	}
	cartID, ok1 := parseUint(parts[1])
	orderID, ok2 := parseUint(parts[2])
	if !ok1 || !ok2 {
		b.toast(cb.ID, "")
		return
	}

	if err := b.store.RemoveCartItem(cartID); err != nil {
		b.alert(cb.ID, "Не удалось удалить позицию.")
		return
	}
	b.toast(cb.ID, "🗑 Удалено из корзины")
	utils.InfoLogger.Printf("Cart row %d removed from order %d", cartID, orderID)
	b.renderCart(cb.Message.Chat.ID, cb.Message.MessageID, orderID)
}

// checkout menutup order. Hanya inisiator, hanya dengan keranjang tidak
// kosong; selain itu ditolak dan order tetap open.
func (b *Bot) checkout(cb *tgbotapi.CallbackQuery) {
	orderID, ok := parseUint(strings.TrimPrefix(cb.Data, "checkout_"))
	if !ok {
		b.toast(cb.ID, "")
		return
	}

	order, err := b.store.OrderByID(orderID)
	if err != nil || order == nil {
		b.alert(cb.ID, "Заказ не найден!")
		return
	}
	if order.InitiatorID != cb.From.ID {
		b.alert(cb.ID, "Только инициатор может завершить заказ!")
		return
	}

	total, err := b.store.OrderTotal(orderID)
	if err != nil {
		b.alert(cb.ID, "Не удалось посчитать сумму.")
		return
	}
	if total == 0 {
		b.alert(cb.ID, "Корзина пуста! Добавьте блюда.")
		return
	}

	if err := b.store.CloseOrder(orderID); err != nil {
		b.alert(cb.ID, "Не удалось оформить заказ.")
		return
	}
	b.toast(cb.ID, "")
	utils.InfoLogger.Printf("Order %d checked out, total=%s", orderID, utils.FormatPrice(total))

	kb := backKeyboard()
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, fmt.Sprintf(
		"✅ <b>Заказ оформлен!</b>\n\nСумма к оплате: %s\nОфициант скоро подойдет.",
		utils.FormatPrice(total)), &kb)

	b.broadcast(orderID,
		fmt.Sprintf("🏁 <b>Заказ завершен!</b>\nИтого: %s", utils.FormatPrice(total)),
		cb.From.ID)
}
