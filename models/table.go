package models

import "encoding/json"

const (
	TableFree = "free"
	TableBusy = "busy"
)

// Table merepresentasikan meja restoran. Neighbors berisi daftar id meja
// bersebelahan (JSON) untuk saran penggabungan; simetri tidak dijamin.
type Table struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(50);not null" json:"name"`
	Seats     int    `gorm:"not null" json:"seats"`
	Status    string `gorm:"type:varchar(20);not null;default:'free'" json:"status"`
	Neighbors string `gorm:"type:text;default:'[]'" json:"neighbors"`
}

// NeighborIDs mendekode kolom Neighbors; data rusak dianggap kosong.
func (t *Table) NeighborIDs() []uint {
	var ids []uint
	if err := json.Unmarshal([]byte(t.Neighbors), &ids); err != nil {
		return nil
	}
	return ids
}

func (t *Table) SetNeighborIDs(ids []uint) {
	if ids == nil {
		ids = []uint{}
	}
	raw, _ := json.Marshal(ids)
	t.Neighbors = string(raw)
}
