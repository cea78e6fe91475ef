package models

import "time"

// Credential — одна общая учётная запись стримингового сервиса,
// выдаваемая нескольким клиентам. Создаётся и изменяется только
// администратором; ядро распределения читает её как неизменяемый снимок.
type Credential struct {
	ID          string    `json:"id"`
	Service     string    `json:"service"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	PublishedAt time.Time `json:"published_at"`
	IsVisible   bool      `json:"is_visible"`
}

// DummyCredential используется для приёма данных учётной записи из JSON-запроса.
type DummyCredential struct {
	ID          string `json:"id"`
	Service     string `json:"service" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	PublishedAt string `json:"published_at"`
	IsVisible   *bool  `json:"is_visible"`
}

// Snapshot — неизменяемый снимок входных данных ядра. Одно вычисление
// распределения или выручки всегда выполняется над одним снимком целиком.
type Snapshot struct {
	Clients     []Client     `json:"clients"`
	Credentials []Credential `json:"credentials"`
	TakenAt     time.Time    `json:"taken_at"`
}
