package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/utils"
)

// handleStart menangani /start, opsional dengan argumen deep-link
// "ord_<token>" untuk bergabung ke shared order.
func (b *Bot) handleStart(msg *tgbotapi.Message) {
	args := msg.CommandArguments()
	userID := msg.From.ID
	b.sessions.Clear(userID)

	user, err := b.store.GetUser(userID)
	if err != nil {
		b.send(msg.Chat.ID, "Что-то пошло не так, попробуйте ещё раз.", nil)
		return
	}

	// Belum terdaftar → registrasi; argumen start disimpan supaya join
	// bisa dilanjutkan setelah registrasi selesai.
	if user == nil {
		b.send(msg.Chat.ID, "Добро пожаловать! Давайте познакомимся.\nКак вас зовут? (ФИО)", nil)
		b.sessions.SetValue(userID, "next_arg", args)
		b.sessions.SetStep(userID, StepRegName)
		return
	}

	if token, ok := orderToken(args); ok {
		if b.joinOrderByToken(msg.Chat.ID, user, token) {
			return
		}
	}

	kb := b.mainMenuKeyboard(userID)
	b.send(msg.Chat.ID, fmt.Sprintf("👋 Привет, %s!", user.FullName), &kb)
}

func (b *Bot) handleRegName(msg *tgbotapi.Message) {
	b.sessions.SetValue(msg.From.ID, "name", msg.Text)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Пропустить", "skip_phone")))
	b.send(msg.Chat.ID, "Телефон? (можно пропустить):", &kb)
	b.sessions.SetStep(msg.From.ID, StepRegPhone)
}

func (b *Bot) handleSkipPhone(cb *tgbotapi.CallbackQuery) {
	sess := b.sessions.Get(cb.From.ID)
	if sess == nil || sess.Step != StepRegPhone {
		b.toast(cb.ID, "")
		return
	}
	b.toast(cb.ID, "")
	b.finishRegistration(cb.Message.Chat.ID, cb.From, "")
}

// finishRegistration menyimpan profil dan, jika /start membawa token order,
// melanjutkan proses join yang tadi ditunda.
func (b *Bot) finishRegistration(chatID int64, from *tgbotapi.User, phone string) {
	userID := from.ID
	name, _ := b.sessions.Value(userID, "name")
	fullName, _ := name.(string)
	if fullName == "" {
		fullName = from.FirstName
	}

	if err := b.store.RegisterUser(userID, from.UserName, fullName, phone); err != nil {
		b.send(chatID, "Не удалось сохранить профиль, попробуйте ещё раз.", nil)
		return
	}
	utils.InfoLogger.Printf("New user registered: %s (id=%d)", fullName, userID)

	deferred, _ := b.sessions.Value(userID, "next_arg")
	b.sessions.Clear(userID)

	if args, ok := deferred.(string); ok {
		if token, ok := orderToken(args); ok {
			b.send(chatID, "Регистрация успешна! Переход к заказу…", nil)
			user, err := b.store.GetUser(userID)
			if err == nil && user != nil && b.joinOrderByToken(chatID, user, token) {
				return
			}
		}
	}

	kb := b.mainMenuKeyboard(userID)
	b.send(chatID, "Регистрация завершена!", &kb)
}

// joinOrderByToken mendaftarkan user ke order open. Token tak dikenal atau
// order tertutup ditolak dengan pesan, tanpa perubahan state.
func (b *Bot) joinOrderByToken(chatID int64, user *models.User, token string) bool {
	order, err := b.store.OrderByToken(token)
	if err != nil || order == nil || order.Status != models.OrderOpen {
		b.send(chatID, "Ссылка недействительна или заказ закрыт.", nil)
		return false
	}

	if err := b.store.JoinOrder(order.ID, user.TelegramID); err != nil {
		b.send(chatID, "Не удалось присоединиться к заказу.", nil)
		return false
	}

	initiatorName := "Инициатора"
	if initiator, err := b.store.GetUser(order.InitiatorID); err == nil && initiator != nil {
		initiatorName = initiator.FullName
	}
	b.send(chatID, fmt.Sprintf(
		"🍕 Вы присоединились к заказу %s!\nВсё, что вы выберете, попадет в общую корзину.",
		initiatorName), nil)

	b.broadcast(order.ID,
		fmt.Sprintf("👋 <b>%s</b> присоединился к заказу!", user.FullName),
		user.TelegramID)

	b.sessions.SetValue(user.TelegramID, "current_order_id", order.ID)
	b.showMenuPage(chatID, 0, user.TelegramID, 1)
	return true
}

// orderToken mengekstrak token dari argumen deep-link "ord_<token>".
func orderToken(args string) (string, bool) {
	if !strings.HasPrefix(args, "ord_") {
		return "", false
	}
	parts := strings.SplitN(args, "_", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
