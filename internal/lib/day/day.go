// Package day содержит функции для работы с календарными сутками в UTC:
// разбор даты YYYY-MM-DD, границы суток и начало скользящего окна в N дней.
package day

import (
	"fmt"
	"math"
	"time"
)

// Layout задаёт формат календарной даты.
const Layout = "2006-01-02"

// Parse разбирает дату YYYY-MM-DD и возвращает начало и конец суток в UTC.
// Конец интервала не включается: [start, end).
func Parse(date string) (start, end time.Time, err error) {
	const op = "day.Parse"
	d, err := time.ParseInLocation(Layout, date, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return d, d.AddDate(0, 0, 1), nil
}

// Format возвращает календарную дату момента t в UTC.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// WindowStart возвращает начало скользящего окна длиной days суток, заканчивающегося в now.
func WindowStart(now time.Time, days int) time.Time {
	return now.UTC().Add(-time.Duration(days) * 24 * time.Hour)
}

// RoundKcal округляет калорийность до целого, отрицательные значения приводит к нулю.
func RoundKcal(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(v))
}

// PortionKcal считает калорийность порции из калорийности на 100 г и веса в граммах.
func PortionKcal(calPer100g int, grams float64) int {
	return RoundKcal(float64(calPer100g) / 100 * grams)
}
