// Package pool строит упорядоченный пул общих учётных записей сервиса
// и оценивает их возраст относительно цикла ротации.
//
// Пул — основа ранжирования: его порядок (по дате публикации по
// возрастанию) вместе с рангом клиента полностью определяет раздачу.
package pool

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/subtoken"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lifecycle"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// ForService возвращает пул учётных записей для сервиса: видимые,
// не демо (эвристика — подстрока "demo" в email), с совпадением названия
// сервиса без учёта регистра в любую сторону. Результат отсортирован по
// дате публикации по возрастанию; равные даты сохраняют исходный порядок снимка.
func ForService(creds []models.Credential, service string) []models.Credential {
	key := subtoken.ServiceKey(service)
	if key == "" {
		return nil
	}

	result := make([]models.Credential, 0, len(creds))
	for _, c := range creds {
		if !c.IsVisible {
			continue
		}
		if strings.Contains(strings.ToLower(c.Email), "demo") {
			continue
		}
		dbService := strings.ToLower(c.Service)
		if !strings.Contains(dbService, key) && !strings.Contains(key, dbService) {
			continue
		}
		result = append(result, c)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PublishedAt.Before(result[j].PublishedAt)
	})
	return result
}

// IndexOf возвращает позицию учётной записи в пуле или -1.
func IndexOf(p []models.Credential, credentialID string) int {
	for i, c := range p {
		if c.ID == credentialID {
			return i
		}
	}
	return -1
}

// Health — возраст учётной записи и сопутствующее предупреждение.
// Предупреждение сугубо информационное: запись никогда не исключается
// из пула и не блокирует выдачу.
type Health struct {
	DaysActive int
	Alert      string
}

// Evaluate оценивает возраст учётной записи для клиентского пути выдачи.
// Циклы ротации: viki — 14 дней (с предупреждением о последнем дне на 13-й),
// kocowa — 30 дней; у остальных сервисов цикл здесь не проверяется.
func Evaluate(cred models.Credential, service string, now time.Time) Health {
	days := lifecycle.DaysSince(cred.PublishedAt, now)
	key := strings.ToLower(service)

	var alert string
	switch {
	case strings.Contains(key, "viki"):
		if days >= 14 {
			alert = "credential past its 14 day rotation cycle"
		} else if days == 13 {
			alert = "last day of the rotation cycle"
		}
	case strings.Contains(key, "kocowa"):
		if days >= 30 {
			alert = "credential past its 30 day rotation cycle"
		}
	}

	return Health{DaysActive: days, Alert: alert}
}

// AdminHealth — оценка возраста для административной панели.
// Константы циклов здесь другие (kocowa — 25, по умолчанию — 30);
// расхождение с Evaluate унаследовано от исходной системы и сохраняется.
type AdminHealth struct {
	DaysActive    int    `json:"days_active"`
	DaysRemaining int    `json:"days_remaining"`
	CycleDays     int    `json:"cycle_days"`
	Label         string `json:"label"`
}

// AdminEvaluate возвращает административную оценку возраста учётной записи.
func AdminEvaluate(cred models.Credential, now time.Time) AdminHealth {
	days := lifecycle.DaysSince(cred.PublishedAt, now)

	cycle := 30
	key := strings.ToLower(cred.Service)
	if strings.Contains(key, "viki") {
		cycle = 14
	} else if strings.Contains(key, "kocowa") {
		cycle = 25
	}

	remaining := cycle - days
	label := fmt.Sprintf("%d days left", remaining)
	if remaining < 0 {
		label = "expired"
	}

	return AdminHealth{
		DaysActive:    days,
		DaysRemaining: remaining,
		CycleDays:     cycle,
		Label:         label,
	}
}
