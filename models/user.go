package models

const (
	RoleUser     = "user"
	RoleEmployee = "employee"
)

// User adalah profil pengguna yang dikenali lewat Telegram ID.
// Role admin tidak pernah disimpan di sini (lihat config.IsAdmin).
type User struct {
	TelegramID  int64  `gorm:"primaryKey;autoIncrement:false" json:"telegram_id"`
	Username    string `gorm:"type:varchar(255)" json:"username"`
	FullName    string `gorm:"type:varchar(255);not null" json:"full_name"`
	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`
	Role        string `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsRegular   bool   `gorm:"default:false" json:"is_regular"`
}

func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}
