package position

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/internal/auth"
	"github.com/folioworks/folio/internal/models"
	"github.com/folioworks/folio/internal/store"
)

var (
	adminPrincipal = auth.Principal{Subject: "admin", Roles: []string{auth.RoleMember, auth.RoleAdmin}}
	user1Principal = auth.Principal{Subject: "user1", Roles: []string{auth.RoleMember}}
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	authz, err := auth.NewAuthorizer()
	require.NoError(t, err)
	return NewService(store.New[models.Position](), authz)
}

func ptr[T any](v T) *T { return &v }

func samplePosition(portfolioID int64, symbol string) models.Position {
	qty := decimal.NewFromInt(100)
	price := decimal.NewFromFloat(150.50)
	return models.Position{
		PortfolioID:   ptr(portfolioID),
		Symbol:        ptr(symbol),
		Quantity:      ptr(qty),
		PurchasePrice: ptr(price),
	}
}

func TestCreate_AdminOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, user1Principal, samplePosition(1, "AAPL"))
	assert.ErrorIs(t, err, auth.ErrForbidden)

	created, err := svc.Create(ctx, adminPrincipal, samplePosition(1, "AAPL"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "AAPL", *created.Symbol)
}

func TestGet_OpenToAnyAuthenticatedPrincipal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminPrincipal, samplePosition(1, "MSFT"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, user1Principal, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.Get(ctx, user1Principal, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestList_FilterByPortfolio(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminPrincipal, samplePosition(1, "AAPL"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, adminPrincipal, samplePosition(1, "MSFT"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, adminPrincipal, samplePosition(2, "GOOG"))
	require.NoError(t, err)
	// A position with no portfolio reference at all.
	_, err = svc.Create(ctx, adminPrincipal, models.Position{})
	require.NoError(t, err)

	all, err := svc.List(ctx, user1Principal, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	one, err := svc.List(ctx, user1Principal, ptr(int64(1)))
	require.NoError(t, err)
	assert.Len(t, one, 2)

	none, err := svc.List(ctx, user1Principal, ptr(int64(42)))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateDelete_AdminOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminPrincipal, samplePosition(1, "AAPL"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, user1Principal, created.ID, samplePosition(1, "TSLA"))
	assert.ErrorIs(t, err, auth.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, user1Principal, created.ID), auth.ErrForbidden)

	updated, err := svc.Update(ctx, adminPrincipal, created.ID, samplePosition(1, "TSLA"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "TSLA", *updated.Symbol)

	_, err = svc.Update(ctx, adminPrincipal, 9999, samplePosition(1, "TSLA"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, adminPrincipal, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, adminPrincipal, created.ID), store.ErrNotFound)
}
