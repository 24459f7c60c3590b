package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout формат дат подписки во входящих запросах.
const DateLayout = "2006-01-02"

// PlanType тип тарифного плана подписки.
type PlanType string

const (
	PlanMonthly PlanType = "monthly"
	PlanYearly  PlanType = "yearly"
)

// Valid сообщает, входит ли значение в перечисление планов.
func (p PlanType) Valid() bool {
	return p == PlanMonthly || p == PlanYearly
}

// SubscriptionStatus статус подписки.
type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "Active"
	SubscriptionExpired SubscriptionStatus = "Expired"
	SubscriptionPending SubscriptionStatus = "Pending"
)

// Valid сообщает, входит ли значение в перечисление статусов подписки.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionExpired, SubscriptionPending:
		return true
	}
	return false
}

// Subscription представляет подписку, принадлежащую ровно одному пользователю.
type Subscription struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	Name      string             `json:"name"`
	PlanType  PlanType           `json:"plan_type"`
	Cost      decimal.Decimal    `json:"cost"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Status    SubscriptionStatus `json:"status"`
}

// NewSubscription содержит уже распарсенные данные новой подписки.
// Даты приходят строками в формате YYYY-MM-DD и разбираются в сервисе.
type NewSubscription struct {
	Name      string
	PlanType  PlanType
	Cost      decimal.Decimal
	StartDate string
	EndDate   string
}

// DummySubscription используется для приёма данных подписки из JSON-запроса.
type DummySubscription struct {
	Name      string          `json:"name" validate:"required"`
	PlanType  string          `json:"plan_type" validate:"required,oneof=monthly yearly"`
	Cost      decimal.Decimal `json:"cost"`
	StartDate string          `json:"start_date" validate:"required"`
	EndDate   string          `json:"end_date" validate:"required"`
}

// ToNew конвертирует запрос в NewSubscription.
func (d DummySubscription) ToNew() NewSubscription {
	return NewSubscription{
		Name:      d.Name,
		PlanType:  PlanType(d.PlanType),
		Cost:      d.Cost,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
	}
}
