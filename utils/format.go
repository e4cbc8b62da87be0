package utils

import (
	"fmt"
	"time"
)

var (
	dayNames = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

	monthNames = []string{"янв", "фев", "мар", "апр", "май", "июн",
		"июл", "авг", "сен", "окт", "ноя", "дек"}
)

// FormatDate mengubah "2006-01-02" menjadi tanggal pendek berbahasa Rusia,
// misal "Пн, 2 сен". String yang tidak valid dikembalikan apa adanya.
func FormatDate(dateStr string) string {
	dt, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	// time.Weekday mulai dari Minggu; geser supaya Senin = 0.
	weekday := (int(dt.Weekday()) + 6) % 7
	return fmt.Sprintf("%s, %d %s", dayNames[weekday], dt.Day(), monthNames[dt.Month()-1])
}

// Slot membentuk string slot satu jam dari jam mulainya: "8:00 - 9:00".
func Slot(hour int) string {
	return fmt.Sprintf("%d:00 - %d:00", hour, hour+1)
}

// FormatPrice menampilkan harga tanpa desimal, gaya tampilan bot.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%d₽", int(price))
}
