package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod способ оплаты.
type PaymentMethod string

const (
	MethodUPI    PaymentMethod = "UPI"
	MethodCard   PaymentMethod = "Card"
	MethodPayPal PaymentMethod = "PayPal"
	MethodOther  PaymentMethod = "Other"
)

// Valid сообщает, входит ли значение в перечисление способов оплаты.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodUPI, MethodCard, MethodPayPal, MethodOther:
		return true
	}
	return false
}

// PaymentStatus статус платежа. В сумму трат идут только Completed.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "Completed"
	PaymentPending   PaymentStatus = "Pending"
	PaymentFailed    PaymentStatus = "Failed"
)

// Valid сообщает, входит ли значение в перечисление статусов платежа.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentCompleted, PaymentPending, PaymentFailed:
		return true
	}
	return false
}

// Payment представляет платёж по подписке. После создания не изменяется.
type Payment struct {
	ID             int64           `json:"id"`
	SubscriptionID int64           `json:"subscription_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         PaymentMethod   `json:"method"`
	Status         PaymentStatus   `json:"status"`
	PaymentDate    time.Time       `json:"payment_date"` // Назначается хранилищем при вставке
}

// NewPayment содержит данные нового платежа.
type NewPayment struct {
	SubscriptionID int64
	Amount         decimal.Decimal
	Method         PaymentMethod
	Status         PaymentStatus
}

// DummyPayment используется для приёма данных платежа из JSON-запроса.
type DummyPayment struct {
	SubscriptionID int64           `json:"subscription_id" validate:"required,gt=0"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method" validate:"required,oneof=UPI Card PayPal Other"`
	Status         string          `json:"status" validate:"required,oneof=Completed Pending Failed"`
}

// ToNew конвертирует запрос в NewPayment.
func (d DummyPayment) ToNew() NewPayment {
	return NewPayment{
		SubscriptionID: d.SubscriptionID,
		Amount:         d.Amount,
		Method:         PaymentMethod(d.Method),
		Status:         PaymentStatus(d.Status),
	}
}
