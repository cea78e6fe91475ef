package revenue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

var now = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func activeClient(phone string, createdAt time.Time, subs ...string) models.Client {
	return models.Client{
		PhoneNumber:    phone,
		Subscriptions:  subs,
		DurationMonths: 1,
		PurchaseDate:   "2024-06-01",
		CreatedAt:      createdAt,
	}
}

func TestProject_LiteralScenario(t *testing.T) {
	prices := Prices{"viki": 20.00, "default": 15.00}
	old := now.AddDate(0, 0, -60)

	clients := []models.Client{
		activeClient("111", old, "Viki Pass|2024-06-01"),
		activeClient("222", old, "Netflix|2024-06-01"),
	}

	report := Project(clients, prices, 7, 30, now)

	assert.InDelta(t, 35.00, report.TotalMonthlyRevenue, 1e-9)
	assert.Equal(t, 2, report.ActiveClientsCount)
	require.Contains(t, report.Breakdown, "viki")
	require.Contains(t, report.Breakdown, OtherCategory)
	assert.InDelta(t, 20.00, report.Breakdown["viki"].Current, 1e-9)
	assert.InDelta(t, 15.00, report.Breakdown[OtherCategory].Current, 1e-9)
}

func TestProject_GainedOnlyFromNewClients(t *testing.T) {
	prices := DefaultPrices()
	clients := []models.Client{
		activeClient("111", now.AddDate(0, 0, -3), "Viki Pass|2024-06-01"), // новый
		activeClient("222", now.AddDate(0, 0, -30), "Viki Pass|2024-06-01"),
	}

	report := Project(clients, prices, 7, 30, now)

	assert.InDelta(t, 40.00, report.TotalMonthlyRevenue, 1e-9)
	assert.InDelta(t, 20.00, report.GainedRevenue, 1e-9)
	assert.InDelta(t, 20.00, report.Breakdown["viki"].Gain, 1e-9)
	assert.Zero(t, report.LostRevenue)
	assert.Zero(t, report.Breakdown["viki"].Loss)

	// velocity = 20/7, projection = total + velocity*30
	assert.InDelta(t, 20.0/7.0, report.DailyVelocity, 1e-9)
	assert.InDelta(t, 40.0+20.0/7.0*30.0, report.ProjectedTotal, 1e-9)
}

func TestProject_ExpiredAndDeletedExcluded(t *testing.T) {
	prices := DefaultPrices()

	expired := activeClient("111", now.AddDate(0, 0, -3), "Viki Pass|2024-01-01")
	deleted := activeClient("222", now.AddDate(0, 0, -3), "Viki Pass|2024-06-01")
	deleted.Deleted = true

	report := Project([]models.Client{expired, deleted}, prices, 7, 30, now)

	assert.Zero(t, report.TotalMonthlyRevenue)
	assert.Zero(t, report.ActiveClientsCount)
	assert.Zero(t, report.GainedRevenue)
}

func TestProject_ExpiryTodayStillCounts(t *testing.T) {
	prices := DefaultPrices()
	c := activeClient("111", now.AddDate(0, 0, -60), "Viki Pass|2024-05-15")

	report := Project([]models.Client{c}, prices, 7, 30, now)
	assert.InDelta(t, 20.00, report.TotalMonthlyRevenue, 1e-9)
	assert.Equal(t, 1, report.ActiveClientsCount)
}

func TestProject_TokenDateFallsBackToClientDefault(t *testing.T) {
	prices := DefaultPrices()
	c := activeClient("111", now.AddDate(0, 0, -60), "Viki Pass")
	c.PurchaseDate = "2024-06-10"

	report := Project([]models.Client{c}, prices, 7, 30, now)
	assert.InDelta(t, 20.00, report.TotalMonthlyRevenue, 1e-9)
}

func TestProject_ZeroAnalysisWindow(t *testing.T) {
	prices := DefaultPrices()
	clients := []models.Client{activeClient("111", now, "Viki Pass|2024-06-01")}

	report := Project(clients, prices, 0, 30, now)
	assert.InDelta(t, 20.00, report.DailyVelocity, 1e-9) // делитель 0 трактуется как 1
	assert.InDelta(t, 20.00+20.00*30, report.ProjectedTotal, 1e-9)
}

func TestProject_DistinctActiveClients(t *testing.T) {
	prices := DefaultPrices()
	c := activeClient("111", now.AddDate(0, 0, -60),
		"Viki Pass|2024-06-01", "Kocowa+|2024-06-01")

	report := Project([]models.Client{c}, prices, 7, 30, now)
	assert.Equal(t, 1, report.ActiveClientsCount)
	assert.InDelta(t, 35.00, report.TotalMonthlyRevenue, 1e-9)
}

func TestPrices_Resolve(t *testing.T) {
	prices := DefaultPrices()

	category, price := prices.resolve("Viki Pass")
	assert.Equal(t, "viki", category)
	assert.InDelta(t, 20.00, price, 1e-9)

	category, price = prices.resolve("Unknown Service")
	assert.Equal(t, OtherCategory, category)
	assert.InDelta(t, 15.00, price, 1e-9)
}

func TestPrices_Resolve_KeywordPrecedence(t *testing.T) {
	prices := DefaultPrices()

	// Название совпадает и с viki, и с kocowa: категорию задаёт viki,
	// первый ключ прейскуранта, а не алфавитно меньший.
	category, price := prices.resolve("Viki+Kocowa Combo")
	assert.Equal(t, "viki", category)
	assert.InDelta(t, 20.00, price, 1e-9)

	// Дополнительные ключи проверяются после известных.
	prices["asiancrush"] = 10.00
	category, price = prices.resolve("Viki AsianCrush")
	assert.Equal(t, "viki", category)
	assert.InDelta(t, 20.00, price, 1e-9)
	category, price = prices.resolve("AsianCrush")
	assert.Equal(t, "asiancrush", category)
	assert.InDelta(t, 10.00, price, 1e-9)
}
