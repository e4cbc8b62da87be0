package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
)

// walkBookingFlow menjalankan flow dari pilih tanggal sampai pilih jam.
func walkBookingFlow(b *Bot, userID int64, date string, people string, tableID uint, hour string) {
	b.HandleUpdate(callbackUpdate(userID, "start_booking"))
	b.HandleUpdate(callbackUpdate(userID, "bdate_"+date))
	b.HandleUpdate(textUpdate(userID, people))
	b.HandleUpdate(callbackUpdate(userID, "book_tbl_"+utoa(tableID)))
	b.HandleUpdate(callbackUpdate(userID, "time_"+hour))
}

func TestBookingFlowNoPreorder(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	table, _ := store.CreateTable("Стол 1", 4, nil)

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	walkBookingFlow(b, 100, date, "2", table.ID, "18")
	b.HandleUpdate(callbackUpdate(100, "preorder_no"))

	booking, err := store.ActiveBooking(100)
	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, date, booking.BookingDate)
	assert.Equal(t, "18:00 - 19:00", booking.BookingTime)
	assert.Equal(t, 2, booking.PeopleCount)
	assert.Equal(t, 0.0, booking.PreOrderSum)

	assert.True(t, containsText(api.messagesTo(100), "Бронь подтверждена"))
	// Rombongan kecil: tidak ada shared order otomatis.
	var orders []models.Order
	store.DB.Find(&orders)
	assert.Empty(t, orders)
}

func TestBookingFlowWithPreorder(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	table, _ := store.CreateTable("Стол 1", 4, nil)

	date := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	walkBookingFlow(b, 100, date, "3", table.ID, "19")
	b.HandleUpdate(callbackUpdate(100, "preorder_yes"))
	// Input bukan angka diminta ulang, tidak menulis booking.
	b.HandleUpdate(textUpdate(100, "много"))
	booking, _ := store.ActiveBooking(100)
	assert.Nil(t, booking)

	b.HandleUpdate(textUpdate(100, "5000"))
	booking, err := store.ActiveBooking(100)
	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, 5000.0, booking.PreOrderSum)
	assert.True(t, containsText(api.messagesTo(100), "предзаказом"))
}

func TestBookingLargePartyAutoCreatesSharedOrder(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	table, _ := store.CreateTable("Стол 1", 10, nil)

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	// 6 tamu > ambang 4: order bersama dibuat otomatis dan tertaut.
	walkBookingFlow(b, 100, date, "6", table.ID, "20")
	b.HandleUpdate(callbackUpdate(100, "preorder_no"))

	booking, _ := store.ActiveBooking(100)
	assert.NotNil(t, booking)

	order, err := store.OpenOrderByBooking(booking.ID)
	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, int64(100), order.InitiatorID)

	texts := api.messagesTo(100)
	assert.True(t, containsText(texts, "Совместный заказ"))
	assert.True(t, containsText(texts, "?start=ord_"+order.LinkToken))
}

func TestBookingTakenSlotNotOffered(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	store.RegisterUser(200, "olga", "Ольга", "")
	table, _ := store.CreateTable("Стол 1", 4, nil)

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	store.CreateBooking(200, table.ID, date, "18:00 - 19:00", 2, 0)

	// Slot 18 sudah terisi: tombol time_18 tidak ditawarkan, callback
	// di step lain diabaikan lewat session guard.
	b.HandleUpdate(callbackUpdate(100, "start_booking"))
	b.HandleUpdate(callbackUpdate(100, "bdate_"+date))
	b.HandleUpdate(textUpdate(100, "2"))
	b.HandleUpdate(callbackUpdate(100, "book_tbl_"+utoa(table.ID)))
	b.HandleUpdate(callbackUpdate(100, "time_19"))
	b.HandleUpdate(callbackUpdate(100, "preorder_no"))

	booking, _ := store.ActiveBooking(100)
	assert.NotNil(t, booking)
	assert.Equal(t, "19:00 - 20:00", booking.BookingTime)
	_ = api
}

func TestBookingNoFittingTableSuggestsMerge(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	t1, _ := store.CreateTable("Стол 1", 4, nil)
	store.CreateTable("Стол 2", 4, []uint{t1.ID})

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	b.HandleUpdate(callbackUpdate(100, "start_booking"))
	b.HandleUpdate(callbackUpdate(100, "bdate_"+date))
	b.HandleUpdate(textUpdate(100, "7"))

	texts := api.messagesTo(100)
	assert.True(t, containsText(texts, "сдвинуть соседние"))
	assert.True(t, containsText(texts, "Стол 1 + Стол 2 (8 мест)"))

	// Flow berhenti, tidak ada booking yang tertulis.
	booking, _ := store.ActiveBooking(100)
	assert.Nil(t, booking)
}

func TestBookingNoMergePossible(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	store.CreateTable("Стол 1", 4, nil)
	store.CreateTable("Стол 2", 4, nil)

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	b.HandleUpdate(callbackUpdate(100, "start_booking"))
	b.HandleUpdate(callbackUpdate(100, "bdate_"+date))
	b.HandleUpdate(textUpdate(100, "9"))

	assert.True(t, containsText(api.messagesTo(100), "Нет подходящих столов"))
}

func TestCancelBookingViaCallback(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	table, _ := store.CreateTable("Стол 1", 4, nil)
	store.CreateBooking(100, table.ID, "2026-09-01", "18:00 - 19:00", 2, 0)

	b.HandleUpdate(callbackUpdate(100, "cancel_booking"))

	booking, _ := store.ActiveBooking(100)
	assert.Nil(t, booking)
	assert.True(t, containsText(api.messagesTo(100), "Главное меню"))
}

func TestEmployeeBookingsGate(t *testing.T) {
	b, api, store := setupTestBot(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	store.RegisterUser(300, "staff", "Сотрудник", "")
	store.SetUserRole(300, models.RoleEmployee)

	table, _ := store.CreateTable("Стол 1", 4, nil)
	store.CreateBooking(100, table.ID, "2026-09-01", "18:00 - 19:00", 2, 0)

	// Tamu biasa tidak mendapat daftar.
	b.HandleUpdate(callbackUpdate(100, "emp_bookings"))
	assert.Empty(t, api.messagesTo(100))

	b.HandleUpdate(callbackUpdate(300, "emp_bookings"))
	texts := api.messagesTo(300)
	assert.True(t, containsText(texts, "Активные брони"))
	assert.True(t, containsText(texts, "Иван"))
}
