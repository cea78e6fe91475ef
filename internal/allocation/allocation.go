// Package allocation реализует детерминированное распределение клиентов
// по общим учётным записям сервиса.
//
// Алгоритм: клиенты сервиса ранжируются по номеру телефона, учётная
// запись выбирается как rank mod poolSize. Распределение — чистая
// функция одного снимка и пересчитывается при каждом вызове; «липких»
// назначений нет, изменение состава клиентов или пула законно
// перетасовывает выдачу (наблюдаемое, намеренное поведение системы).
package allocation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/subtoken"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/pool"
)

// NoCredentialAlert возвращается при пустом пуле: это штатный результат,
// а не ошибка.
const NoCredentialAlert = "no credential available for this service"

// Limits — таблица лимитов вместимости по ключевым словам сервисов.
// Ключ "default" задаёт лимит для неизвестных сервисов.
type Limits map[string]int

// DefaultLimits — лимиты исходной системы. Значение 9999 означает
// фактически неограниченный сервис.
func DefaultLimits() Limits {
	return Limits{
		"viki":     5,
		"kocowa":   7,
		"iqiyi":    20,
		"wetv":     9999,
		"dramabox": 9999,
		"default":  5,
	}
}

// keywordPrecedence фиксирует порядок проверки известных ключевых слов.
// Название вроде "Viki+Kocowa" совпадает с несколькими ключами, и лимит
// берётся по первому в этом порядке.
var keywordPrecedence = []string{"viki", "kocowa", "iqiyi", "wetv", "dramabox"}

// For возвращает лимит вместимости для сервиса: первое совпадение
// ключевого слова как подстроки в порядке keywordPrecedence, затем
// дополнительные ключи конфигурации в алфавитном порядке, иначе
// значение "default".
func (l Limits) For(service string) int {
	key := strings.ToLower(service)
	for _, name := range keywordPrecedence {
		if _, ok := l[name]; !ok {
			continue
		}
		if strings.Contains(key, name) {
			return l[name]
		}
	}
	extra := make([]string, 0, len(l))
	for name := range l {
		if name == "default" || isKnownKeyword(name) {
			continue
		}
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		if strings.Contains(key, name) {
			return l[name]
		}
	}
	if def, ok := l["default"]; ok {
		return def
	}
	return 5
}

func isKnownKeyword(name string) bool {
	for _, known := range keywordPrecedence {
		if name == known {
			return true
		}
	}
	return false
}

// Result — производный результат распределения для пары (клиент, сервис).
// Никогда не сохраняется: действителен только относительно снимка,
// из которого был вычислен.
type Result struct {
	Service    string             // запрошенный сервис
	Credential *models.Credential // назначенная учётная запись, nil при пустом пуле
	Rank       int                // ранг клиента, -1 если клиент не найден в списке
	PoolSize   int                // размер пула сервиса
	UsageCount int                // число клиентов на назначенной записи
	DaysActive int                // возраст назначенной записи в днях
	Alert      string             // информационное предупреждение (перегрузка/возраст)
}

// RankList возвращает список ранжирования: неудалённые клиенты, среди
// нормализованных токенов которых есть вхождение ключа сервиса (без
// учёта регистра), отсортированные по номеру телефона по возрастанию.
func RankList(clients []models.Client, service string) []models.Client {
	key := subtoken.ServiceKey(service)
	if key == "" {
		return nil
	}

	ranked := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if c.Deleted {
			continue
		}
		for _, raw := range c.ValidSubscriptions() {
			if strings.Contains(strings.ToLower(raw), key) {
				ranked = append(ranked, c)
				break
			}
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PhoneNumber < ranked[j].PhoneNumber
	})
	return ranked
}

func rankOf(ranked []models.Client, phoneNumber string) int {
	for i, c := range ranked {
		if c.PhoneNumber == phoneNumber {
			return i
		}
	}
	return -1
}

// Assign вычисляет назначение учётной записи для клиента по сервису.
//
// Пустой пул даёт результат «запись недоступна». Клиент, отсутствующий
// в собственном списке ранжирования (устаревший снимок), получает первую
// запись пула. Перегрузка лимита вместимости порождает только
// предупреждение и никогда не меняет назначение.
func Assign(client models.Client, service string, clients []models.Client, creds []models.Credential, limits Limits, now time.Time) Result {
	serviceCreds := pool.ForService(creds, service)
	if len(serviceCreds) == 0 {
		return Result{Service: service, Rank: -1, Alert: NoCredentialAlert}
	}

	ranked := RankList(clients, service)
	rank := rankOf(ranked, client.PhoneNumber)

	credIndex := 0
	if rank != -1 {
		credIndex = rank % len(serviceCreds)
	}
	assigned := serviceCreds[credIndex]

	usage := 0
	for i := range ranked {
		if i%len(serviceCreds) == credIndex {
			usage++
		}
	}

	var alert string
	limit := limits.For(subtoken.ServiceKey(service))
	if usage > limit {
		alert = fmt.Sprintf("credential overloaded (%d/%d clients), notify support", usage, limit)
	}

	health := pool.Evaluate(assigned, service, now)
	if alert == "" {
		alert = health.Alert
	}

	return Result{
		Service:    service,
		Credential: &assigned,
		Rank:       rank,
		PoolSize:   len(serviceCreds),
		UsageCount: usage,
		DaysActive: health.DaysActive,
		Alert:      alert,
	}
}

// UsageCounts возвращает число клиентов на каждой учётной записи пула
// сервиса (размер доли разбиения, а не накопительный счётчик). Записи
// без клиентов присутствуют в карте с нулём.
func UsageCounts(service string, clients []models.Client, creds []models.Credential) map[string]int {
	serviceCreds := pool.ForService(creds, service)
	counts := make(map[string]int, len(serviceCreds))
	if len(serviceCreds) == 0 {
		return counts
	}
	for i := range serviceCreds {
		counts[serviceCreds[i].ID] = 0
	}

	ranked := RankList(clients, service)
	for i := range ranked {
		counts[serviceCreds[i%len(serviceCreds)].ID]++
	}
	return counts
}

// ClientsOnCredential восстанавливает список клиентов, попадающих на
// данную учётную запись, повторяя распределение по всей системе.
func ClientsOnCredential(cred models.Credential, clients []models.Client, creds []models.Credential) []models.Client {
	serviceCreds := pool.ForService(creds, cred.Service)
	myIndex := pool.IndexOf(serviceCreds, cred.ID)
	if myIndex == -1 {
		return nil
	}

	ranked := RankList(clients, cred.Service)
	result := make([]models.Client, 0, len(ranked)/len(serviceCreds)+1)
	for i, c := range ranked {
		if i%len(serviceCreds) == myIndex {
			result = append(result, c)
		}
	}
	return result
}
