// Package lifecycle реализует календарную арифметику подписок:
// расчёт даты окончания, остатка дней и временного состояния доступа.
//
// Состояние вычисляется заново при каждом вызове, переходы нигде не
// хранятся. Окно толерантности после окончания — 3 дня, предупреждение
// о скором окончании — за 5 дней.
package lifecycle

import (
	"time"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/subtoken"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// State — временное состояние одной подписки.
type State int

const (
	// StateActive — до окончания больше 5 дней.
	StateActive State = iota
	// StateExpiringSoon — осталось от 0 до 5 дней.
	StateExpiringSoon
	// StateGrace — подписка истекла, но окно толерантности ещё не закрыто.
	StateGrace
	// StateBlocked — окно толерантности закрыто либо клиент должник.
	StateBlocked
)

const (
	// GraceDays — длина окна толерантности после окончания подписки.
	GraceDays = 3
	// ExpiringSoonDays — порог предупреждения о скором окончании.
	ExpiringSoonDays = 5
)

// MarshalJSON сериализует состояние его строковым именем.
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateExpiringSoon:
		return "expiring_soon"
	case StateGrace:
		return "grace"
	case StateBlocked:
		return "blocked"
	}
	return "unknown"
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
}

// ParseDate лениво разбирает дату из полуструктурированного текста.
// Неразбираемое значение заменяется запасным (обычно текущим моментом) —
// задокументированная политика: ядро не падает на мусорных данных.
func ParseDate(raw string, fallback time.Time) time.Time {
	raw = trimQuotes(raw)
	if raw == "" {
		return fallback
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return fallback
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Expiry возвращает дату окончания: дата покупки плюс durationMonths
// календарных месяцев. Переполнение месяца решается календарными
// правилами (31 января + 1 месяц = 2/3 марта), не фиксированными 30 днями.
func Expiry(purchase time.Time, durationMonths int) time.Time {
	return purchase.AddDate(0, durationMonths, 0)
}

// Midnight возвращает календарную дату метки как полночь UTC. Даты из
// разных часовых поясов после нормализации вычитаются в одном поясе,
// поэтому разница всегда кратна целым суткам и не зависит от перевода
// часов.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysRemaining возвращает число дней до окончания. Обе метки приводятся
// к своей календарной дате, поэтому результат имеет дневную гранулярность
// и не зависит ни от времени суток, ни от часового пояса меток.
// Отрицательное значение — подписка истекла.
func DaysRemaining(expiry, now time.Time) int {
	diff := Midnight(expiry).Sub(Midnight(now))
	return int(diff.Hours() / 24)
}

// DaysSince возвращает число целых дней, прошедших с момента from.
func DaysSince(from, now time.Time) int {
	return DaysRemaining(now, from)
}

// Status — результат оценки одной подписки клиента.
type Status struct {
	Token         subtoken.Token `json:"-"`
	Service       string         `json:"service"`
	PurchaseDate  time.Time      `json:"purchase_date"`
	ExpiryDate    time.Time      `json:"expiry_date"`
	DaysRemaining int            `json:"days_remaining"`
	State         State          `json:"state"`
}

// Blocked сообщает, закрыт ли доступ по этой подписке.
func (s Status) Blocked() bool { return s.State == StateBlocked }

// Expired сообщает, истёк ли срок подписки (независимо от блокировки).
func (s Status) Expired() bool { return s.DaysRemaining < 0 }

// Classify возвращает состояние по остатку дней без учёта флагов клиента.
func Classify(daysRemaining int) State {
	switch {
	case daysRemaining > ExpiringSoonDays:
		return StateActive
	case daysRemaining >= 0:
		return StateExpiringSoon
	case daysRemaining >= -GraceDays:
		return StateGrace
	default:
		return StateBlocked
	}
}

// EvaluateToken оценивает одну подписку клиента на момент now.
//
// Дата покупки и срок берутся из карты индивидуальных условий клиента
// (ключ — название сервиса из токена), иначе из значений клиента по
// умолчанию. Должник блокируется всегда; флаги OVERRIDE (глобальный или
// в токене) подавляют только блокировку по сроку.
func EvaluateToken(c models.Client, tok subtoken.Token, now time.Time) Status {
	purchaseRaw := c.PurchaseDate
	months := c.DurationMonths
	if ov, ok := c.Overrides[tok.Service]; ok {
		purchaseRaw = ov.PurchaseDate
		months = ov.DurationMonths
	}
	return statusFor(c, tok, purchaseRaw, months, now)
}

// EvaluateByTokenDate оценивает подписку, беря дату покупки из самого
// токена и лишь при её отсутствии — из даты клиента по умолчанию. Карта
// индивидуальных условий здесь не участвует: так работают статусные
// фильтры списка клиентов и проекция выручки.
func EvaluateByTokenDate(c models.Client, rawToken string, now time.Time) Status {
	tok := subtoken.Parse(rawToken)
	purchaseRaw := tok.RawDate
	if purchaseRaw == "" {
		purchaseRaw = c.PurchaseDate
	}
	return statusFor(c, tok, purchaseRaw, c.DurationMonths, now)
}

func statusFor(c models.Client, tok subtoken.Token, purchaseRaw string, months int, now time.Time) Status {
	if months == 0 {
		months = 1
	}
	purchase := ParseDate(purchaseRaw, now)
	expiry := Expiry(purchase, months)
	days := DaysRemaining(expiry, now)

	state := Classify(days)
	override := c.OverrideExpiration || tok.Override
	if state == StateBlocked && override {
		state = StateGrace
	}
	if c.IsDebtor {
		state = StateBlocked
	}

	return Status{
		Token:         tok,
		Service:       tok.Service,
		PurchaseDate:  purchase,
		ExpiryDate:    expiry,
		DaysRemaining: days,
		State:         state,
	}
}

// Evaluate оценивает подписку, заданную сырым токеном.
func Evaluate(c models.Client, rawToken string, now time.Time) Status {
	return EvaluateToken(c, subtoken.Parse(rawToken), now)
}

// Summary — агрегат по всем подпискам клиента.
type Summary struct {
	AnyBlocked bool `json:"any_blocked"`
	AnyExpired bool `json:"any_expired"`
}

// Summarize вычисляет агрегат клиента: логическое ИЛИ по всем его
// подпискам. Каждая подписка оценивается независимо.
func Summarize(c models.Client, now time.Time) Summary {
	var sum Summary
	for _, raw := range c.ValidSubscriptions() {
		st := Evaluate(c, raw, now)
		if st.Blocked() {
			sum.AnyBlocked = true
		}
		if st.Expired() {
			sum.AnyExpired = true
		}
	}
	return sum
}
