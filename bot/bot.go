package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/config"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/database"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/utils"
)

// TelegramAPI adalah bagian dari tgbotapi.BotAPI yang dipakai bot.
// Dipisah sebagai interface supaya pengiriman bisa di-mock di test.
type TelegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api      TelegramAPI
	store    *database.Store
	cfg      *config.Config
	sessions *SessionStore
	botName  string
}

func New(api TelegramAPI, store *database.Store, cfg *config.Config, botName string) *Bot {
	return &Bot{
		api:      api,
		store:    store,
		cfg:      cfg,
		sessions: NewSessionStore(),
		botName:  botName,
	}
}

// Run memproses update satu per satu sampai channel ditutup.
func (b *Bot) Run(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		b.HandleUpdate(update)
	}
}

// HandleUpdate menangani satu aksi user sampai selesai, termasuk fan-out
// notifikasi, sebelum update berikutnya diproses.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.handleStart(msg)
		case "help":
			b.handleHelp(msg)
		}
		return
	}

	// Teks bebas hanya berarti di tengah flow; di luar itu diabaikan.
	sess := b.sessions.Get(msg.From.ID)
	if sess == nil {
		return
	}

	switch sess.Step {
	case StepRegName:
		b.handleRegName(msg)
	case StepRegPhone:
		b.finishRegistration(msg.Chat.ID, msg.From, msg.Text)
	case StepBookingPeople:
		b.handleBookingPeople(msg)
	case StepBookingPreorderAmount:
		b.handleBookingPreorderAmount(msg)
	case StepAdminTableName:
		b.handleAdminTableName(msg)
	case StepAdminTableSeats:
		b.handleAdminTableSeats(msg)
	case StepAdminTableNeighbors:
		b.handleAdminTableNeighbors(msg)
	case StepAdminMenuName:
		b.handleAdminMenuName(msg)
	case StepAdminMenuPrice:
		b.handleAdminMenuPrice(msg)
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	data := cb.Data

	switch {
	case data == "noop":
		b.toast(cb.ID, "")
	case data == "start_menu":
		b.backToMain(cb)
	case data == "skip_phone":
		b.handleSkipPhone(cb)
	case data == "my_profile":
		b.showProfile(cb)

	case data == "start_booking":
		b.startBooking(cb)
	case strings.HasPrefix(data, "bdate_"):
		b.handleBookingDate(cb)
	case strings.HasPrefix(data, "book_tbl_"):
		b.handleBookingTable(cb)
	case strings.HasPrefix(data, "time_"):
		b.handleBookingTime(cb)
	case data == "preorder_no":
		b.handlePreorderNo(cb)
	case data == "preorder_yes":
		b.handlePreorderYes(cb)
	case data == "my_bookings":
		b.showMyBooking(cb)
	case data == "cancel_booking":
		b.cancelBooking(cb)
	case data == "emp_bookings":
		b.showEmployeeBookings(cb)

	case data == "create_shared_order":
		b.createSharedOrder(cb)
	case strings.HasPrefix(data, "open_menu_"):
		b.openOrderMenu(cb)
	case strings.HasPrefix(data, "menu_page_"):
		b.turnMenuPage(cb)
	case strings.HasPrefix(data, "add_cart_"):
		b.addToCart(cb)
	case strings.HasPrefix(data, "view_cart_"):
		b.viewCart(cb)
	case strings.HasPrefix(data, "rmcart_"):
		b.removeFromCart(cb)
	case strings.HasPrefix(data, "checkout_"):
		b.checkout(cb)

	case data == "admin_menu":
		b.showAdminMenu(cb)
	case data == "adm_menu_mgmt":
		b.showAdminMenuMgmt(cb)
	case strings.HasPrefix(data, "adm_del_menu_"):
		b.adminDeleteMenuItem(cb)
	case data == "adm_add_menu":
		b.adminAddMenuStart(cb)
	case data == "adm_tables":
		b.showAdminTables(cb)
	case strings.HasPrefix(data, "adm_del_tbl_"):
		b.adminDeleteTable(cb)
	case data == "adm_add_tbl":
		b.adminAddTableStart(cb)
	case data == "adm_reset":
		b.adminResetTables(cb)
	case data == "adm_users":
		b.showAdminUsers(cb)
	case strings.HasPrefix(data, "adm_user_"):
		b.adminToggleRole(cb)
	case data == "adm_bookings":
		b.showAdminBookings(cb)
	case strings.HasPrefix(data, "adm_del_book_"):
		b.adminDeleteBooking(cb)
	case data == "adm_stats":
		b.showAdminStats(cb)
	}
}

// --- pengiriman ---

func (b *Bot) send(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := b.api.Send(msg); err != nil {
		utils.ErrorLogger.Printf("send to chat %d failed: %v", chatID, err)
	}
}

func (b *Bot) edit(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		utils.ErrorLogger.Printf("edit message %d failed: %v", messageID, err)
	}
}

// toast: notifikasi kecil di atas chat, tanpa popup.
func (b *Bot) toast(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		utils.ErrorLogger.Printf("answer callback failed: %v", err)
	}
}

// alert: popup yang harus ditutup user, untuk penolakan.
func (b *Bot) alert(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallbackWithAlert(callbackID, text)); err != nil {
		utils.ErrorLogger.Printf("answer callback failed: %v", err)
	}
}

// broadcast mengirim teks ke semua peserta order kecuali excludeUserID.
// Kegagalan per penerima ditelan: dicatat, tidak diulang, tidak dilaporkan.
func (b *Bot) broadcast(orderID uint, text string, excludeUserID int64) {
	participants, err := b.store.Participants(orderID)
	if err != nil {
		utils.ErrorLogger.Printf("broadcast: load participants of order %d: %v", orderID, err)
		return
	}
	for _, p := range participants {
		if p.UserID == excludeUserID {
			continue
		}
		msg := tgbotapi.NewMessage(p.UserID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Send(msg); err != nil {
			utils.ErrorLogger.Printf("broadcast to user %d failed: %v", p.UserID, err)
		}
	}
}

// --- util kecil ---

func (b *Bot) isAdmin(userID int64) bool {
	return b.cfg.IsAdmin(userID)
}

func (b *Bot) isEmployee(userID int64) bool {
	user, err := b.store.GetUser(userID)
	return err == nil && user != nil && user.IsEmployee()
}

func (b *Bot) inviteLink(token string) string {
	return fmt.Sprintf("https://t.me/%s?start=ord_%s", b.botName, token)
}

// currentOrderID membaca order aktif dari session percakapan.
func (b *Bot) currentOrderID(userID int64) (uint, bool) {
	v, ok := b.sessions.Value(userID, "current_order_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func parseUint(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
