// Package access решает, что из результата распределения можно показать
// клиенту: заблокированная подписка скрывает содержимое учётной записи,
// даже если запись номинально назначена.
package access

import (
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/allocation"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lifecycle"
)

// Decision — видимый клиенту результат оценки пары (клиент, сервис).
type Decision struct {
	Service              string           `json:"service"`
	Status               lifecycle.Status `json:"status"`
	Blocked              bool             `json:"blocked"`
	AssignedCredentialID string           `json:"assigned_credential_id,omitempty"`
	Email                string           `json:"email,omitempty"`
	Password             string           `json:"password,omitempty"`
	DaysActive           int              `json:"days_active"`
	Alert                string           `json:"alert,omitempty"`
}

// Resolve комбинирует временное состояние подписки с результатом
// распределения. Состояния grace, expiring_soon и active раскрывают
// учётные данные; blocked удерживает их независимо от назначения.
func Resolve(status lifecycle.Status, res allocation.Result) Decision {
	d := Decision{
		Service:    res.Service,
		Status:     status,
		Blocked:    status.Blocked(),
		DaysActive: res.DaysActive,
		Alert:      res.Alert,
	}
	if d.Blocked || res.Credential == nil {
		return d
	}
	d.AssignedCredentialID = res.Credential.ID
	d.Email = res.Credential.Email
	d.Password = res.Credential.Password
	return d
}

// Summarize агрегирует решения клиента в флаги глобального предупреждения.
func Summarize(decisions []Decision) lifecycle.Summary {
	var sum lifecycle.Summary
	for _, d := range decisions {
		if d.Blocked {
			sum.AnyBlocked = true
		}
		if d.Status.Expired() {
			sum.AnyExpired = true
		}
	}
	return sum
}
