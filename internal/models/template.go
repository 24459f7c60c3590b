package models

import "github.com/shopspring/decimal"

// Template шаблон подписки из каталога (таблица default_subscriptions),
// из которого можно склонировать подписку пользователя.
type Template struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	PlanType PlanType        `json:"plan_type"`
	Cost     decimal.Decimal `json:"cost"`
}

// TemplateRef указывает на шаблон каталога по имени или по номеру (с единицы).
// Если шаблона с таким именем нет, а PlanType и Cost заданы, шаблон
// сначала добавляется в каталог.
type TemplateRef struct {
	Name     string
	Index    int
	PlanType PlanType
	Cost     *decimal.Decimal
}

// Custom сообщает, содержит ли ссылка данные для нового шаблона.
func (r TemplateRef) Custom() bool {
	return r.Name != "" && r.PlanType != "" && r.Cost != nil
}

// DummyTemplateSubscription используется для приёма запроса на подписку из шаблона.
type DummyTemplateSubscription struct {
	TemplateName  string           `json:"template_name" validate:"required_without=TemplateIndex"`
	TemplateIndex int              `json:"template_index" validate:"omitempty,gt=0"`
	PlanType      string           `json:"plan_type" validate:"omitempty,oneof=monthly yearly"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	StartDate     string           `json:"start_date" validate:"required"`
	EndDate       string           `json:"end_date" validate:"required"`
}

// Ref возвращает ссылку на шаблон из запроса.
func (d DummyTemplateSubscription) Ref() TemplateRef {
	return TemplateRef{
		Name:     d.TemplateName,
		Index:    d.TemplateIndex,
		PlanType: PlanType(d.PlanType),
		Cost:     d.Cost,
	}
}
