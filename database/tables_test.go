package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
)

func TestCreateTableWithNeighbors(t *testing.T) {
	store := setupTestStore(t)

	t1, err := store.CreateTable("Стол 1", 2, nil)
	assert.NoError(t, err)
	t2, err := store.CreateTable("Стол 2", 2, []uint{t1.ID})
	assert.NoError(t, err)

	got, err := store.GetTable(t2.ID)
	assert.NoError(t, err)
	assert.Equal(t, []uint{t1.ID}, got.NeighborIDs())
	assert.Equal(t, models.TableFree, got.Status)
}

func TestMergeSuggestionsDeduplicated(t *testing.T) {
	store := setupTestStore(t)

	// Adjacency simetris: pasangan harus muncul tepat satu kali.
	t1, _ := store.CreateTable("Стол 1", 2, nil)
	t2, _ := store.CreateTable("Стол 2", 2, []uint{t1.ID})
	store.DB.Model(&models.Table{}).Where("id = ?", t1.ID).
		Update("neighbors", fmt.Sprintf("[%d]", t2.ID))

	pairs, err := store.MergeSuggestions()
	assert.NoError(t, err)
	assert.Len(t, pairs, 1)
	assert.Equal(t, t1.ID, pairs[0].First.ID)
	assert.Equal(t, t2.ID, pairs[0].Second.ID)
}

func TestMergeSuggestionsAsymmetricAdjacency(t *testing.T) {
	store := setupTestStore(t)

	// Hanya satu arah terdaftar; pasangan tetap ditemukan satu kali.
	t1, _ := store.CreateTable("Стол 1", 2, nil)
	t2, _ := store.CreateTable("Стол 2", 3, []uint{t1.ID})

	pairs, err := store.MergeSuggestions()
	assert.NoError(t, err)
	assert.Len(t, pairs, 1)
	assert.Equal(t, t1.ID, pairs[0].First.ID)
	assert.Equal(t, t2.ID, pairs[0].Second.ID)
}

func TestMergeSuggestionsSkipsBusyAndUnknown(t *testing.T) {
	store := setupTestStore(t)

	t1, _ := store.CreateTable("Стол 1", 2, nil)
	t2, _ := store.CreateTable("Стол 2", 2, []uint{t1.ID, 777})
	assert.NoError(t, store.SetTableStatus(t1.ID, models.TableBusy))

	// Tetangga busy dan id tetangga yang tidak ada sama-sama dilewati.
	pairs, err := store.MergeSuggestions()
	assert.NoError(t, err)
	assert.Empty(t, pairs)
	_ = t2
}

func TestResetAllTables(t *testing.T) {
	store := setupTestStore(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	t1, _ := store.CreateTable("Стол 1", 4, nil)
	store.SetTableStatus(t1.ID, models.TableBusy)
	store.CreateBooking(100, t1.ID, "2026-09-01", "18:00 - 19:00", 2, 0)

	assert.NoError(t, store.ResetAllTables())

	got, _ := store.GetTable(t1.ID)
	assert.Equal(t, models.TableFree, got.Status)

	booking, err := store.ActiveBooking(100)
	assert.NoError(t, err)
	assert.Nil(t, booking, "active bookings are cancelled by reset")
}

func TestDeleteTableCascadesBookings(t *testing.T) {
	store := setupTestStore(t)

	store.RegisterUser(100, "ivan", "Иван", "")
	t1, _ := store.CreateTable("Стол 1", 4, nil)
	store.CreateBooking(100, t1.ID, "2026-09-01", "18:00 - 19:00", 2, 0)

	assert.NoError(t, store.DeleteTable(t1.ID))

	tables, err := store.AllTables()
	assert.NoError(t, err)
	assert.Empty(t, tables)

	var count int64
	store.DB.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}
