package models

import "time"

// ExpiryNotice — событие об истекающей подписке, публикуемое планировщиком
// в очередь уведомлений и потребляемое отправителем.
type ExpiryNotice struct {
	PhoneNumber   string    `json:"phone_number"`
	Name          string    `json:"name"`
	Service       string    `json:"service"`
	ExpiryDate    time.Time `json:"expiry_date"`
	DaysRemaining int       `json:"days_remaining"`
	State         string    `json:"state"`
}

// Admin — административная учётная запись панели управления.
type Admin struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
