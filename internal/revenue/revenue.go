// Package revenue реализует оконную проекцию выручки по историческим
// данным активаций.
//
// За окно анализа A дней считается прирост от новых клиентов, из него
// выводится дневная скорость и линейная проекция на P дней вперёд.
// Потерянная выручка всегда равна нулю — это явное продуктовое решение
// исходной системы, сохранённое дословно.
package revenue

import (
	"sort"
	"strings"
	"time"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/subtoken"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lifecycle"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

// OtherCategory — корзина разбивки для сервисов без известного ключа цены.
const OtherCategory = "other"

// Prices — таблица цен по ключевым словам сервисов. Ключ "default"
// задаёт цену для несовпавших названий.
type Prices map[string]float64

// DefaultPrices — прейскурант исходной системы.
func DefaultPrices() Prices {
	return Prices{
		"viki":     20.00,
		"kocowa":   15.00,
		"iqiyi":    15.00,
		"wetv":     15.00,
		"dramabox": 15.00,
		"default":  15.00,
	}
}

// keywordPrecedence фиксирует порядок проверки известных ключей цен.
// Название вроде "Viki+Kocowa" совпадает с несколькими ключами, и
// категорию задаёт первый в этом порядке.
var keywordPrecedence = []string{"viki", "kocowa", "iqiyi", "wetv", "dramabox"}

// resolve возвращает категорию и цену для названия сервиса: первое
// совпадение ключа как подстроки в порядке keywordPrecedence, затем
// дополнительные ключи прейскуранта в алфавитном порядке, иначе
// категория "other" с ценой по умолчанию.
func (p Prices) resolve(serviceName string) (string, float64) {
	name := strings.ToLower(serviceName)
	for _, k := range keywordPrecedence {
		if _, ok := p[k]; !ok {
			continue
		}
		if strings.Contains(name, k) {
			return k, p[k]
		}
	}
	extra := make([]string, 0, len(p))
	for k := range p {
		if k == "default" || isKnownKeyword(k) {
			continue
		}
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		if strings.Contains(name, k) {
			return k, p[k]
		}
	}
	return OtherCategory, p["default"]
}

func isKnownKeyword(k string) bool {
	for _, known := range keywordPrecedence {
		if k == known {
			return true
		}
	}
	return false
}

// CategoryTotals — строка разбивки выручки по одной категории.
// Loss всегда ноль, см. комментарий пакета.
type CategoryTotals struct {
	Gain    float64 `json:"gain"`
	Loss    float64 `json:"loss"`
	Current float64 `json:"current"`
}

// Report — результат проекции выручки.
type Report struct {
	TotalMonthlyRevenue float64                   `json:"total_monthly_revenue"`
	ActiveClientsCount  int                       `json:"active_clients_count"`
	GainedRevenue       float64                   `json:"gained_revenue"`
	LostRevenue         float64                   `json:"lost_revenue"`
	NetGain             float64                   `json:"net_gain"`
	DailyVelocity       float64                   `json:"daily_velocity"`
	ProjectedTotal      float64                   `json:"projected_total"`
	AnalysisDays        int                       `json:"analysis_days"`
	ProjectionDays      int                       `json:"projection_days"`
	Breakdown           map[string]CategoryTotals `json:"breakdown"`
}

// Project строит проекцию выручки по снимку клиентов на момент now.
//
// Активной считается подписка неудалённого клиента с датой окончания не
// раньше сегодняшнего дня. Дата покупки берётся из токена подписки, при
// отсутствии — из даты клиента по умолчанию. Клиент «новый», если создан
// не раньше, чем A дней назад; прирост считается только по новым клиентам.
func Project(clients []models.Client, prices Prices, analysisDays, projectionDays int, now time.Time) Report {
	breakdown := make(map[string]CategoryTotals, len(prices))
	for k := range prices {
		if k != "default" {
			breakdown[k] = CategoryTotals{}
		}
	}
	breakdown[OtherCategory] = CategoryTotals{}

	pastDate := now.AddDate(0, 0, -analysisDays)

	report := Report{
		AnalysisDays:   analysisDays,
		ProjectionDays: projectionDays,
	}

	for _, c := range clients {
		hasActive := false
		isNew := !c.CreatedAt.Before(pastDate)

		for _, raw := range c.ValidSubscriptions() {
			tok := subtoken.Parse(raw)
			category, price := prices.resolve(tok.Service)

			dateRaw := tok.RawDate
			if dateRaw == "" {
				dateRaw = c.PurchaseDate
			}
			purchase := lifecycle.ParseDate(dateRaw, now)
			expiry := lifecycle.Expiry(purchase, c.DurationMonths)

			if c.Deleted || lifecycle.DaysRemaining(expiry, now) < 0 {
				continue
			}

			report.TotalMonthlyRevenue += price
			totals := breakdown[category]
			totals.Current += price
			hasActive = true

			if isNew {
				report.GainedRevenue += price
				totals.Gain += price
			}
			breakdown[category] = totals
		}

		if hasActive && !c.Deleted {
			report.ActiveClientsCount++
		}
	}

	report.LostRevenue = 0
	report.NetGain = report.GainedRevenue - report.LostRevenue

	denom := analysisDays
	if denom == 0 {
		denom = 1
	}
	report.DailyVelocity = report.NetGain / float64(denom)
	report.ProjectedTotal = report.TotalMonthlyRevenue + report.DailyVelocity*float64(projectionDays)
	report.Breakdown = breakdown
	return report
}
