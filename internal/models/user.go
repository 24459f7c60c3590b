// Package models содержит доменные структуры трекера подписок: пользователя,
// подписку, платёж и шаблон подписки из каталога, а также типы запросов,
// приходящих из HTTP и CLI до их валидации.
package models

// User представляет зарегистрированного пользователя трекера.
type User struct {
	ID    int64  `json:"id"`    // Идентификатор, назначенный хранилищем
	Name  string `json:"name"`  // Имя пользователя
	Email string `json:"email"` // Электронная почта (уникальная)
}

// DummyUser используется для приёма данных нового пользователя из JSON-запроса.
type DummyUser struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}
