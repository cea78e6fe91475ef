// Package models содержит доменные структуры: клиентов, учётные записи
// стриминговых сервисов и производные результаты распределения,
// а также DTO для приёма полуструктурированных данных из JSON-запросов.
package models

import (
	"time"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/subtoken"
)

// SubscriptionOverride хранит индивидуальные условия одной подписки клиента,
// перекрывающие его значения по умолчанию.
type SubscriptionOverride struct {
	PurchaseDate   string `json:"purchase_date"`
	DurationMonths int    `json:"duration_months"`
}

// Client представляет клиента перепродажи подписок.
// Номер телефона глобально уникален и служит детерминированным ключом сортировки
// при ранжировании. Даты покупки хранятся строками: исходные данные —
// полуструктурированный текст, разбор выполняется лениво с запасным значением.
type Client struct {
	ID                 string                          `json:"id"`
	PhoneNumber        string                          `json:"phone_number"`
	Name               string                          `json:"name,omitempty"`
	Subscriptions      []string                        `json:"subscriptions"`
	DurationMonths     int                             `json:"duration_months"`
	PurchaseDate       string                          `json:"purchase_date"`
	Overrides          map[string]SubscriptionOverride `json:"subscription_overrides,omitempty"`
	IsDebtor           bool                            `json:"is_debtor"`
	OverrideExpiration bool                            `json:"override_expiration"`
	Deleted            bool                            `json:"deleted"`
	ThemeColor         string                          `json:"theme_color,omitempty"`
	BackgroundImage    string                          `json:"background_image,omitempty"`
	ProfileImage       string                          `json:"profile_image,omitempty"`
	CreatedAt          time.Time                       `json:"created_at"`
}

// ValidSubscriptions возвращает токены подписок клиента без пустых записей.
func (c Client) ValidSubscriptions() []string {
	return subtoken.NormalizeList(c.Subscriptions)
}

// DummyClient используется для приёма данных клиента из JSON-запроса.
// Список подписок принимает и массив, и устаревшие строковые кодировки.
type DummyClient struct {
	PhoneNumber        string                          `json:"phone_number" validate:"required"`
	Name               string                          `json:"name"`
	Subscriptions      subtoken.List                   `json:"subscriptions"`
	DurationMonths     int                             `json:"duration_months" validate:"required,gte=1"`
	PurchaseDate       string                          `json:"purchase_date" validate:"required"`
	Overrides          map[string]SubscriptionOverride `json:"subscription_overrides"`
	IsDebtor           bool                            `json:"is_debtor"`
	OverrideExpiration bool                            `json:"override_expiration"`
}

// DummyPreferences используется для самостоятельного обновления
// настроек клиента: имя и оформление. Поля-указатели отличают
// "не менять" от "очистить".
type DummyPreferences struct {
	Name            *string `json:"name"`
	ThemeColor      *string `json:"theme_color"`
	BackgroundImage *string `json:"background_image"`
	ProfileImage    *string `json:"profile_image"`
}
