package models

import "github.com/shopspring/decimal"

// Overview сводка для главной страницы дашборда.
type Overview struct {
	Users               int             `json:"users"`
	Subscriptions       int             `json:"subscriptions"`
	Payments            int             `json:"payments"`
	Revenue             decimal.Decimal `json:"revenue"` // Сумма всех Completed платежей
	SubscriptionsByUser map[string]int  `json:"subscriptions_by_user"`
	RecentPayments      []*Payment      `json:"recent_payments"`
}

// SpendBreakdown траты пользователя по названиям подписок.
type SpendBreakdown map[string]decimal.Decimal
