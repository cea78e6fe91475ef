package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/allocation"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lifecycle"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

func testResult() allocation.Result {
	return allocation.Result{
		Service: "Viki Pass|2024-01-01",
		Credential: &models.Credential{
			ID:       "cred-1",
			Service:  "Viki Pass",
			Email:    "shared@mail.com",
			Password: "secret",
		},
		Rank:       2,
		PoolSize:   2,
		UsageCount: 3,
		DaysActive: 4,
		Alert:      "",
	}
}

func statusFor(now time.Time) lifecycle.Status {
	c := models.Client{
		PhoneNumber:    "5511999990000",
		PurchaseDate:   "2024-01-01",
		DurationMonths: 1,
	}
	return lifecycle.Evaluate(c, "Viki Pass|2024-01-01", now)
}

func TestResolve_RevealStates(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want lifecycle.State
	}{
		{name: "active reveals", now: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), want: lifecycle.StateActive},
		{name: "expiring soon reveals", now: time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), want: lifecycle.StateExpiringSoon},
		{name: "grace still reveals", now: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), want: lifecycle.StateGrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := statusFor(tt.now)
			assert.Equal(t, tt.want, st.State)

			d := Resolve(st, testResult())
			assert.False(t, d.Blocked)
			assert.Equal(t, "cred-1", d.AssignedCredentialID)
			assert.Equal(t, "shared@mail.com", d.Email)
			assert.Equal(t, "secret", d.Password)
		})
	}
}

func TestResolve_BlockedWithholdsCredential(t *testing.T) {
	st := statusFor(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, lifecycle.StateBlocked, st.State)

	d := Resolve(st, testResult())
	assert.True(t, d.Blocked)
	assert.Empty(t, d.AssignedCredentialID)
	assert.Empty(t, d.Email)
	assert.Empty(t, d.Password)
	assert.Equal(t, 4, d.DaysActive)
}

func TestResolve_NoCredential(t *testing.T) {
	st := statusFor(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	res := allocation.Result{Service: "Viki Pass", Rank: -1, Alert: allocation.NoCredentialAlert}

	d := Resolve(st, res)
	assert.False(t, d.Blocked)
	assert.Empty(t, d.AssignedCredentialID)
	assert.Equal(t, allocation.NoCredentialAlert, d.Alert)
}

func TestSummarize(t *testing.T) {
	active := Resolve(statusFor(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)), testResult())
	grace := Resolve(statusFor(time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)), testResult())
	blocked := Resolve(statusFor(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)), testResult())

	sum := Summarize([]Decision{active})
	assert.False(t, sum.AnyBlocked)
	assert.False(t, sum.AnyExpired)

	sum = Summarize([]Decision{active, grace})
	assert.False(t, sum.AnyBlocked)
	assert.True(t, sum.AnyExpired)

	sum = Summarize([]Decision{active, blocked})
	assert.True(t, sum.AnyBlocked)
	assert.True(t, sum.AnyExpired)
}
