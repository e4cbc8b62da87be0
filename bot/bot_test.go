package bot

import (
	"strconv"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/config"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/database"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
	"github.com/Rk-Rk-Rk-Rk/Restor-bot/utils"
)

// mockAPI merekam semua pengiriman alih-alih memanggil Telegram.
type mockAPI struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (m *mockAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.sent = append(m.sent, c)
	return tgbotapi.Message{}, nil
}

func (m *mockAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.requests = append(m.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// messagesTo mengumpulkan teks pesan baru dan pesan teredit untuk satu chat.
func (m *mockAPI) messagesTo(chatID int64) []string {
	var texts []string
	for _, c := range m.sent {
		switch msg := c.(type) {
		case tgbotapi.MessageConfig:
			if msg.ChatID == chatID {
				texts = append(texts, msg.Text)
			}
		case tgbotapi.EditMessageTextConfig:
			if msg.ChatID == chatID {
				texts = append(texts, msg.Text)
			}
		}
	}
	return texts
}

func (m *mockAPI) lastAlert() string {
	for i := len(m.requests) - 1; i >= 0; i-- {
		if cb, ok := m.requests[i].(tgbotapi.CallbackConfig); ok && cb.ShowAlert {
			return cb.Text
		}
	}
	return ""
}

func containsText(texts []string, substr string) bool {
	for _, t := range texts {
		if strings.Contains(t, substr) {
			return true
		}
	}
	return false
}

func utoa(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

func setupTestBot(t *testing.T) (*Bot, *mockAPI, *database.Store) {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	store := database.NewStore(db)

	cfg := &config.Config{
		AdminIDs:             []int64{1},
		RestaurantName:       "RE-STOR",
		ItemsPerPage:         5,
		WorkingHoursStart:    8,
		WorkingHoursEnd:      22,
		MaxBookingDays:       7,
		SharedOrderThreshold: 4,
	}

	api := &mockAPI{}
	return New(api, store, cfg, "restor_test_bot"), api, store
}

func commandUpdate(userID int64, text string) tgbotapi.Update {
	cmdLen := len(text)
	if i := strings.Index(text, " "); i > 0 {
		cmdLen = i
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From:     &tgbotapi.User{ID: userID, UserName: "user", FirstName: "Имя"},
		Chat:     &tgbotapi.Chat{ID: userID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}}
}

func textUpdate(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID, UserName: "user", FirstName: "Имя"},
		Chat: &tgbotapi.Chat{ID: userID},
		Text: text,
	}}
}

func callbackUpdate(userID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: userID, UserName: "user", FirstName: "Имя"},
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: userID}},
	}}
}

func TestJoinByDeepLink(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	store.RegisterUser(200, "olga", "Ольга", "")
	order, _ := store.CreateOrder(100, nil)

	b.HandleUpdate(commandUpdate(200, "/start ord_"+order.LinkToken))

	participants, err := store.Participants(order.ID)
	assert.NoError(t, err)
	assert.Len(t, participants, 2)

	assert.True(t, containsText(api.messagesTo(200), "Вы присоединились к заказу Иван"))
	// Inisiator diberi tahu soal peserta baru.
	assert.True(t, containsText(api.messagesTo(100), "присоединился к заказу"))
	// Setelah join langsung ditampilkan menu.
	assert.True(t, containsText(api.messagesTo(200), "МЕНЮ"))
}

func TestJoinClosedOrderRejected(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	store.RegisterUser(200, "olga", "Ольга", "")
	order, _ := store.CreateOrder(100, nil)
	store.CloseOrder(order.ID)

	b.HandleUpdate(commandUpdate(200, "/start ord_"+order.LinkToken))

	participants, _ := store.Participants(order.ID)
	assert.Len(t, participants, 1, "no join on closed order")
	assert.True(t, containsText(api.messagesTo(200), "Ссылка недействительна"))
}

func TestJoinUnknownTokenRejected(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(200, "olga", "Ольга", "")
	b.HandleUpdate(commandUpdate(200, "/start ord_nope1234"))

	assert.True(t, containsText(api.messagesTo(200), "Ссылка недействительна"))
	_ = store
}

func TestRegistrationThenDeferredJoin(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	order, _ := store.CreateOrder(100, nil)

	// User belum terdaftar datang lewat deep-link.
	b.HandleUpdate(commandUpdate(200, "/start ord_"+order.LinkToken))
	assert.True(t, containsText(api.messagesTo(200), "Как вас зовут"))

	b.HandleUpdate(textUpdate(200, "Ольга Смирнова"))
	assert.True(t, containsText(api.messagesTo(200), "Телефон"))

	b.HandleUpdate(callbackUpdate(200, "skip_phone"))

	user, err := store.GetUser(200)
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "Ольга Смирнова", user.FullName)

	// Join yang ditunda dieksekusi setelah registrasi selesai.
	participants, _ := store.Participants(order.ID)
	assert.Len(t, participants, 2)
}

func TestCheckoutOnlyInitiator(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	store.RegisterUser(200, "olga", "Ольга", "")
	order, _ := store.CreateOrder(100, nil)
	store.JoinOrder(order.ID, 200)

	item, _ := store.AddMenuItem("Борщ", 350, "", "main")
	store.AddCartItem(order.ID, 200, item.ID)

	b.HandleUpdate(callbackUpdate(200, "checkout_"+utoa(order.ID)))

	assert.Equal(t, "Только инициатор может завершить заказ!", api.lastAlert())
	got, _ := store.OrderByID(order.ID)
	assert.Equal(t, models.OrderOpen, got.Status)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	order, _ := store.CreateOrder(100, nil)

	b.HandleUpdate(callbackUpdate(100, "checkout_"+utoa(order.ID)))

	assert.Equal(t, "Корзина пуста! Добавьте блюда.", api.lastAlert())
	got, _ := store.OrderByID(order.ID)
	assert.Equal(t, models.OrderOpen, got.Status)
}

func TestCheckoutClosesAndBroadcasts(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	store.RegisterUser(200, "olga", "Ольга", "")
	order, _ := store.CreateOrder(100, nil)
	store.JoinOrder(order.ID, 200)

	soup, _ := store.AddMenuItem("Борщ", 350, "", "main")
	tea, _ := store.AddMenuItem("Чай", 100, "", "drinks")
	store.AddCartItem(order.ID, 100, soup.ID)
	store.AddCartItem(order.ID, 200, tea.ID)

	b.HandleUpdate(callbackUpdate(100, "checkout_"+utoa(order.ID)))

	got, _ := store.OrderByID(order.ID)
	assert.Equal(t, models.OrderClosed, got.Status)

	assert.True(t, containsText(api.messagesTo(100), "Заказ оформлен"))
	assert.True(t, containsText(api.messagesTo(100), "450₽"))
	// Peserta lain menerima totalnya; inisiator tidak menerima duplikat.
	assert.True(t, containsText(api.messagesTo(200), "Заказ завершен"))
	assert.True(t, containsText(api.messagesTo(200), "450₽"))
}

func TestAddToCartWithoutActiveOrder(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	item, _ := store.AddMenuItem("Борщ", 350, "", "main")

	b.HandleUpdate(callbackUpdate(100, "add_cart_"+utoa(item.ID)+"_1"))

	assert.Equal(t, "Нет активного заказа!", api.lastAlert())
}

func TestAddToCartBroadcastsToOthers(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	store.RegisterUser(200, "olga", "Ольга", "")
	order, _ := store.CreateOrder(100, nil)
	store.JoinOrder(order.ID, 200)
	item, _ := store.AddMenuItem("Борщ", 350, "", "main")

	// open_menu_ menaruh order di session, lalu tambah ke keranjang.
	b.HandleUpdate(callbackUpdate(100, "open_menu_"+utoa(order.ID)))
	b.HandleUpdate(callbackUpdate(100, "add_cart_"+utoa(item.ID)+"_1"))

	rows, err := store.CartItems(order.ID)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(100), rows[0].UserID)

	assert.True(t, containsText(api.messagesTo(200), "добавил: Борщ"))
}

func TestRemoveFromCartRerendersCart(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	order, _ := store.CreateOrder(100, nil)
	item, _ := store.AddMenuItem("Борщ", 350, "", "main")
	store.AddCartItem(order.ID, 100, item.ID)

	rows, _ := store.CartItems(order.ID)
	b.HandleUpdate(callbackUpdate(100, "rmcart_"+utoa(rows[0].CartID)+"_"+utoa(order.ID)))

	rows, _ = store.CartItems(order.ID)
	assert.Empty(t, rows)
	assert.True(t, containsText(api.messagesTo(100), "Пусто"))
}

func TestCreateSharedOrderSendsInvite(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	b.HandleUpdate(callbackUpdate(100, "create_shared_order"))

	var orders []models.Order
	store.DB.Find(&orders)
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(100), orders[0].InitiatorID)

	texts := api.messagesTo(100)
	assert.True(t, containsText(texts, "Совместный заказ создан"))
	assert.True(t, containsText(texts, "https://t.me/restor_test_bot?start=ord_"+orders[0].LinkToken))
}

func TestProfileShowsOpenOrderLink(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван Петров", "+79991112233")
	order, _ := store.CreateOrder(100, nil)

	b.HandleUpdate(callbackUpdate(100, "my_profile"))

	texts := api.messagesTo(100)
	assert.True(t, containsText(texts, "ВАШ ПРОФИЛЬ"))
	assert.True(t, containsText(texts, "Иван Петров"))
	assert.True(t, containsText(texts, "?start=ord_"+order.LinkToken))
}

func TestAdminPanelDeniedForRegularUser(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	b.HandleUpdate(callbackUpdate(100, "admin_menu"))

	// Bukan admin: panel tidak dirender, hanya ack callback kosong.
	assert.Empty(t, api.messagesTo(100))
	assert.Empty(t, api.lastAlert())
}

func TestAdminStatsForAdmin(t *testing.T) {
	b, api, store := setupTestBot(t)

	// id 1 ada di AdminIDs konfigurasi test.
	store.RegisterUser(1, "admin", "Админ", "")
	store.RegisterUser(100, "ivan", "Иван", "")

	b.HandleUpdate(callbackUpdate(1, "adm_stats"))
	assert.True(t, containsText(api.messagesTo(1), "Статистика"))
}
