package models

import "time"

// DefaultBrand подставляется, если у продукта не указан бренд.
const DefaultBrand = "Generic"

// FoodLogEntry представляет одну запись дневника питания пользователя.
// Запись создаётся при логировании продукта и удаляется только по паре (ID, UserUID).
type FoodLogEntry struct {
	ID        int64     // Идентификатор записи
	UserUID   string    // Владелец записи
	FoodID    string    // Производный ключ продукта: label + "-" + brand
	Label     string    // Название продукта для отображения
	Kcal      int       // Калорийность порции, ккал
	CreatedAt time.Time // Момент создания, используется для группировки по дням
}

// FoodKey строит производный ключ продукта из названия и бренда.
func FoodKey(label, brand string) string {
	if brand == "" {
		brand = DefaultBrand
	}
	return label + "-" + brand
}

// FoodSearchResult — нормализованный результат поиска во внешней базе продуктов.
type FoodSearchResult struct {
	Label string // Название продукта
	Cal   int    // Калорийность на 100 г, 0 если источник её не вернул
	Brand string // Бренд, DefaultBrand если не указан
}

// DailyTotal хранит сумму калорий пользователя за одни календарные сутки.
type DailyTotal struct {
	Date  string // Дата в формате YYYY-MM-DD
	Total int    // Сумма ккал за дату
}

// MaxEntryKcal ограничивает калорийность одной записи (тег entry_kcal).
const MaxEntryKcal = 100000

// DummyFoodLog используется для приёма и валидации аргументов addFoodLog
// до преобразования в FoodLogEntry.
type DummyFoodLog struct {
	UserUID string `validate:"required,uuid"`
	Label   string `validate:"required,max=255"`
	Brand   string `validate:"max=255"`
	Kcal    int    `validate:"entry_kcal"`
}
