package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) SaveClient(ctx context.Context, client models.Client) (string, error) {
	args := m.Called(ctx, client)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) ListClients(ctx context.Context) ([]models.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Client), args.Error(1)
}
func (m *RepoMock) GetClientByPhone(ctx context.Context, phoneNumber string) (*models.Client, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}
func (m *RepoMock) SetClientDeleted(ctx context.Context, phoneNumber string, deleted bool) (int, error) {
	args := m.Called(ctx, phoneNumber, deleted)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) PurgeClient(ctx context.Context, phoneNumber string) (int, error) {
	args := m.Called(ctx, phoneNumber)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) UpdateClientPreferences(ctx context.Context, phoneNumber string, prefs models.DummyPreferences) (int, error) {
	args := m.Called(ctx, phoneNumber, prefs)
	return args.Int(0), args.Error(1)
}

type SnapshotsMock struct{ mock.Mock }

func (m *SnapshotsMock) InvalidateSnapshot() {
	m.Called()
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestClientService_Save(t *testing.T) {
	repo := new(RepoMock)
	snapshots := new(SnapshotsMock)
	service := NewClientService(repo, snapshots, newNoopLogger())

	req := models.DummyClient{
		PhoneNumber:    " 5511999990000 ",
		Name:           "Maria",
		Subscriptions:  []string{"Viki Pass|2024-06-01"},
		DurationMonths: 1,
		PurchaseDate:   "2024-06-01",
	}

	repo.On("SaveClient", mock.Anything, mock.MatchedBy(func(c models.Client) bool {
		return c.PhoneNumber == "5511999990000" && c.ID != "" && len(c.Subscriptions) == 1
	})).Return("client-id", nil).Once()
	snapshots.On("InvalidateSnapshot").Return().Once()

	id, err := service.Save(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "client-id", id)

	repo.AssertExpectations(t)
	snapshots.AssertExpectations(t)
}

func TestClientService_Save_RepoError(t *testing.T) {
	repo := new(RepoMock)
	snapshots := new(SnapshotsMock)
	service := NewClientService(repo, snapshots, newNoopLogger())

	repo.On("SaveClient", mock.Anything, mock.Anything).Return("", errors.New("db down")).Once()

	_, err := service.Save(context.Background(), models.DummyClient{PhoneNumber: "1"})
	assert.Error(t, err)
	snapshots.AssertNotCalled(t, "InvalidateSnapshot")
}

func TestClientService_List_Filters(t *testing.T) {
	repo := new(RepoMock)
	snapshots := new(SnapshotsMock)
	service := NewClientService(repo, snapshots, newNoopLogger())

	now := time.Now()
	activeDate := now.Format("2006-01-02")
	expiringDate := now.AddDate(0, -1, 3).Format("2006-01-02")

	clients := []models.Client{
		{PhoneNumber: "111", DurationMonths: 1, Subscriptions: []string{"Viki Pass|" + activeDate}},
		{PhoneNumber: "222", DurationMonths: 1, Subscriptions: []string{"Kocowa+|" + expiringDate}},
		{PhoneNumber: "333", DurationMonths: 1, IsDebtor: true, Subscriptions: []string{"Viki Pass|" + activeDate}},
		{PhoneNumber: "444", DurationMonths: 1, Deleted: true, Subscriptions: []string{"Viki Pass|" + activeDate}},
	}
	repo.On("ListClients", mock.Anything).Return(clients, nil)

	all, err := service.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	viki, err := service.List(context.Background(), "viki", "")
	require.NoError(t, err)
	require.Len(t, viki, 2)
	assert.Equal(t, "111", viki[0].PhoneNumber)

	trash, err := service.List(context.Background(), "", StatusTrash)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, "444", trash[0].PhoneNumber)

	debtors, err := service.List(context.Background(), "", StatusDebtor)
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.Equal(t, "333", debtors[0].PhoneNumber)

	expiring, err := service.List(context.Background(), "", StatusExpiring)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "222", expiring[0].PhoneNumber)

	// Истекающая подписка ещё не просрочена, клиент 222 остаётся активным.
	active, err := service.List(context.Background(), "", StatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestClientService_RemoveRestore(t *testing.T) {
	repo := new(RepoMock)
	snapshots := new(SnapshotsMock)
	service := NewClientService(repo, snapshots, newNoopLogger())

	repo.On("SetClientDeleted", mock.Anything, "111", true).Return(1, nil).Once()
	repo.On("SetClientDeleted", mock.Anything, "111", false).Return(1, nil).Once()
	repo.On("SetClientDeleted", mock.Anything, "404", true).Return(0, nil).Once()
	snapshots.On("InvalidateSnapshot").Return()

	require.NoError(t, service.Remove(context.Background(), "111"))
	require.NoError(t, service.Restore(context.Background(), "111"))
	assert.ErrorIs(t, service.Remove(context.Background(), "404"), ErrClientNotFound)

	repo.AssertExpectations(t)
}

func TestClientService_Purge(t *testing.T) {
	repo := new(RepoMock)
	snapshots := new(SnapshotsMock)
	service := NewClientService(repo, snapshots, newNoopLogger())

	repo.On("PurgeClient", mock.Anything, "111").Return(1, nil).Once()
	repo.On("PurgeClient", mock.Anything, "404").Return(0, nil).Once()
	snapshots.On("InvalidateSnapshot").Return()

	require.NoError(t, service.Purge(context.Background(), "111"))
	assert.ErrorIs(t, service.Purge(context.Background(), "404"), ErrClientNotFound)
}

func TestClientService_UpdatePreferences(t *testing.T) {
	repo := new(RepoMock)
	snapshots := new(SnapshotsMock)
	service := NewClientService(repo, snapshots, newNoopLogger())

	name := "Maria"
	prefs := models.DummyPreferences{Name: &name}

	repo.On("UpdateClientPreferences", mock.Anything, "111", prefs).Return(1, nil).Once()
	snapshots.On("InvalidateSnapshot").Return().Once()

	require.NoError(t, service.UpdatePreferences(context.Background(), "111", prefs))
	repo.AssertExpectations(t)
}
