package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lifecycle"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

func client(phone, purchaseDate string) models.Client {
	return models.Client{
		PhoneNumber:    phone,
		Name:           "Client " + phone,
		Subscriptions:  []string{"Viki Pass|" + purchaseDate},
		DurationMonths: 1,
		PurchaseDate:   purchaseDate,
	}
}

func TestCollectExpiryNotices(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	clients := []models.Client{
		client("111", "2024-06-01"), // активна до 2024-07-01, уведомления нет
		client("222", "2024-05-18"), // истекает 2024-06-18, через 3 дня
		client("333", "2024-05-13"), // истекла 2024-06-13, grace
		client("444", "2024-05-01"), // истекла 2024-06-01, заблокирована
	}

	notices := collectExpiryNotices(clients, now)
	require.Len(t, notices, 2)

	assert.Equal(t, "222", notices[0].PhoneNumber)
	assert.Equal(t, lifecycle.StateExpiringSoon.String(), notices[0].State)
	assert.Equal(t, 3, notices[0].DaysRemaining)

	assert.Equal(t, "333", notices[1].PhoneNumber)
	assert.Equal(t, lifecycle.StateGrace.String(), notices[1].State)
	assert.Equal(t, -2, notices[1].DaysRemaining)
}

func TestCollectExpiryNotices_SkipsDeleted(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	expiring := client("222", "2024-05-18")
	expiring.Deleted = true

	notices := collectExpiryNotices([]models.Client{expiring}, now)
	assert.Empty(t, notices)
}

func TestCollectExpiryNotices_MultipleServicesPerClient(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	c := client("222", "2024-05-18")
	c.Subscriptions = append(c.Subscriptions, "Kocowa+|2024-05-16")

	notices := collectExpiryNotices([]models.Client{c}, now)
	require.Len(t, notices, 2)
	assert.Equal(t, "Viki Pass", notices[0].Service)
	assert.Equal(t, "Kocowa+", notices[1].Service)
}
