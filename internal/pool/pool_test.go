package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

func cred(id, service, email string, published time.Time, visible bool) models.Credential {
	return models.Credential{
		ID:          id,
		Service:     service,
		Email:       email,
		Password:    "secret",
		PublishedAt: published,
		IsVisible:   visible,
	}
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
}

func TestForService_FilterAndOrder(t *testing.T) {
	creds := []models.Credential{
		cred("c3", "Viki Pass", "third@mail.com", day(20), true),
		cred("c1", "Viki Pass", "first@mail.com", day(5), true),
		cred("hidden", "Viki Pass", "hidden@mail.com", day(1), false),
		cred("demo", "Viki Pass", "demo-account@mail.com", day(1), true),
		cred("demo2", "Viki Pass", "DEMO2@mail.com", day(1), true),
		cred("other", "Kocowa+", "kocowa@mail.com", day(1), true),
		cred("c2", "Viki Pass", "second@mail.com", day(10), true),
	}

	p := ForService(creds, "Viki Pass|2024-01-01")
	require.Len(t, p, 3)
	assert.Equal(t, []string{"c1", "c2", "c3"}, []string{p[0].ID, p[1].ID, p[2].ID})
}

func TestForService_BidirectionalMatch(t *testing.T) {
	creds := []models.Credential{
		cred("a", "viki", "a@mail.com", day(1), true),
		cred("b", "Viki Pass Premium", "b@mail.com", day(2), true),
	}

	// Ключ запроса длиннее названия в базе и наоборот.
	assert.Len(t, ForService(creds, "Viki Pass"), 2)
	assert.Len(t, ForService(creds, "viki"), 2)
}

func TestForService_StableOnEqualTimestamps(t *testing.T) {
	creds := []models.Credential{
		cred("x", "WeTV", "x@mail.com", day(1), true),
		cred("y", "WeTV", "y@mail.com", day(1), true),
	}
	p := ForService(creds, "WeTV")
	require.Len(t, p, 2)
	assert.Equal(t, "x", p[0].ID)
	assert.Equal(t, "y", p[1].ID)
}

func TestForService_EmptyKey(t *testing.T) {
	creds := []models.Credential{cred("a", "viki", "a@mail.com", day(1), true)}
	assert.Nil(t, ForService(creds, ""))
	assert.Nil(t, ForService(creds, "  |2024-01-01"))
}

func TestEvaluate_VikiCycle(t *testing.T) {
	c := cred("a", "Viki Pass", "a@mail.com", day(1), true)

	tests := []struct {
		name      string
		now       time.Time
		wantDays  int
		wantAlert string
	}{
		{name: "fresh", now: day(5), wantDays: 4, wantAlert: ""},
		{name: "last day of cycle", now: day(14), wantDays: 13, wantAlert: "last day of the rotation cycle"},
		{name: "cycle exceeded", now: day(15), wantDays: 14, wantAlert: "credential past its 14 day rotation cycle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Evaluate(c, "Viki Pass", tt.now)
			assert.Equal(t, tt.wantDays, h.DaysActive)
			assert.Equal(t, tt.wantAlert, h.Alert)
		})
	}
}

func TestEvaluate_KocowaCycleIs30Days(t *testing.T) {
	c := cred("a", "Kocowa+", "a@mail.com", day(1), true)
	assert.Empty(t, Evaluate(c, "Kocowa+", day(30)).Alert)
	assert.Equal(t, "credential past its 30 day rotation cycle", Evaluate(c, "Kocowa+", day(31)).Alert)
}

func TestEvaluate_OtherServicesHaveNoCycleAlert(t *testing.T) {
	c := cred("a", "DramaBox", "a@mail.com", day(1), true)
	h := Evaluate(c, "DramaBox", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, h.Alert)
	assert.Greater(t, h.DaysActive, 100)
}

func TestAdminEvaluate_CycleConstantsDifferFromClientPath(t *testing.T) {
	now := day(27)

	viki := AdminEvaluate(cred("a", "Viki Pass", "a@mail.com", day(1), true), now)
	assert.Equal(t, 14, viki.CycleDays)
	assert.Equal(t, "expired", viki.Label)

	// Админская панель считает цикл kocowa равным 25 дням, клиентский путь — 30.
	kocowa := AdminEvaluate(cred("b", "Kocowa+", "b@mail.com", day(1), true), now)
	assert.Equal(t, 25, kocowa.CycleDays)
	assert.Equal(t, -1, kocowa.DaysRemaining)
	assert.Equal(t, "expired", kocowa.Label)

	other := AdminEvaluate(cred("c", "WeTV", "c@mail.com", day(1), true), now)
	assert.Equal(t, 30, other.CycleDays)
	assert.Equal(t, "4 days left", other.Label)
}
