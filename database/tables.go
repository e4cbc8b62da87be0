package database

import (
	"gorm.io/gorm"

	"github.com/Rk-Rk-Rk-Rk/Restor-bot/models"
)

// MergePair adalah saran penggabungan dua meja bersebelahan yang sama-sama
// kosong, untuk rombongan yang tidak muat di satu meja.
type MergePair struct {
	First  models.Table
	Second models.Table
}

func (s *Store) CreateTable(name string, seats int, neighbors []uint) (*models.Table, error) {
	table := models.Table{
		Name:   name,
		Seats:  seats,
		Status: models.TableFree,
	}
	table.SetNeighborIDs(neighbors)
	if err := s.DB.Create(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// DeleteTable menghapus meja dan semua booking yang menunjuk ke sana.
func (s *Store) DeleteTable(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("table_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Table{}, id).Error
	})
}

// AllTables mengembalikan peta id → meja.
func (s *Store) AllTables() (map[uint]models.Table, error) {
	var tables []models.Table
	if err := s.DB.Find(&tables).Error; err != nil {
		return nil, err
	}
	result := make(map[uint]models.Table, len(tables))
	for _, t := range tables {
		result[t.ID] = t
	}
	return result, nil
}

func (s *Store) GetTable(id uint) (*models.Table, error) {
	var table models.Table
	if err := s.DB.First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *Store) SetTableStatus(id uint, status string) error {
	return s.DB.Model(&models.Table{}).Where("id = ?", id).Update("status", status).Error
}

// ResetAllTables memaksa semua meja free dan membatalkan semua booking aktif.
func (s *Store) ResetAllTables() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Table{}).Where("1 = 1").
			Update("status", models.TableFree).Error; err != nil {
			return err
		}
		return tx.Model(&models.Booking{}).
			Where("status = ?", models.BookingActive).
			Update("status", models.BookingCancelled).Error
	})
}

// MergeSuggestions mengembalikan tiap pasangan free-free bertetangga tepat
// satu kali. Kunci pasangan dinormalisasi (kecil, besar) sehingga adjacency
// yang tidak simetris pun tidak menghasilkan duplikat. Tidak ada gabungan
// transitif tiga meja atau lebih.
func (s *Store) MergeSuggestions() ([]MergePair, error) {
	tables, err := s.AllTables()
	if err != nil {
		return nil, err
	}

	type pairKey struct{ lo, hi uint }
	seen := make(map[pairKey]bool)
	var pairs []MergePair

	for id, table := range tables {
		if table.Status != models.TableFree {
			continue
		}
		for _, nid := range table.NeighborIDs() {
			neighbor, ok := tables[nid]
			if !ok || neighbor.Status != models.TableFree {
				continue
			}
			key := pairKey{lo: id, hi: nid}
			if key.lo > key.hi {
				key.lo, key.hi = key.hi, key.lo
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			pairs = append(pairs, MergePair{First: tables[key.lo], Second: tables[key.hi]})
		}
	}
	return pairs, nil
}
