package tenant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/metrics"
	"github.com/kiranshivaraju/cardapio/internal/store/storetest"
	"github.com/kiranshivaraju/cardapio/pkg/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestResolver(st *storetest.Memory) (*Resolver, *metrics.Metrics) {
	m := metrics.New()
	r := NewResolver(st, m)
	r.now = func() time.Time { return fixedNow }
	return r, m
}

// --- Resolve ---

func TestResolve_EmptyIdentity(t *testing.T) {
	r, _ := newTestResolver(storetest.NewMemory())

	_, err := r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestResolve_NotFound(t *testing.T) {
	r, _ := newTestResolver(storetest.NewMemory())

	_, err := r.Resolve(context.Background(), "user_1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResolve_StoreFailure(t *testing.T) {
	st := storetest.NewMemory()
	st.Err = errors.New("connection refused")
	r, _ := newTestResolver(st)

	_, err := r.Resolve(context.Background(), "user_1")
	assert.ErrorIs(t, err, apperr.ErrStore)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}

// --- GetOrCreate ---

func TestGetOrCreate_ProvisionsDefaults(t *testing.T) {
	st := storetest.NewMemory()
	r, m := newTestResolver(st)

	org, err := r.GetOrCreate(context.Background(), "user_2abcDEF123")
	require.NoError(t, err)

	assert.Equal(t, "user_2abcDEF123", org.ExternalID)
	assert.Equal(t, DefaultOrganizationName, org.Name)
	assert.Equal(t, "neo-brutal", org.MenuTemplate)
	assert.Equal(t, "sunset", org.AdminTemplate)
	assert.Equal(t, fmt.Sprintf("menu-%d-def123", fixedNow.UnixMilli()), org.Slug)
	assert.Equal(t, 1, st.OrganizationCount())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrgsProvisioned))
}

func TestGetOrCreate_Idempotent(t *testing.T) {
	st := storetest.NewMemory()
	r, m := newTestResolver(st)
	ctx := context.Background()

	first, err := r.GetOrCreate(ctx, "user_1")
	require.NoError(t, err)
	second, err := r.GetOrCreate(ctx, "user_1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, st.OrganizationCount())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrgsProvisioned))
}

func TestGetOrCreate_Concurrent(t *testing.T) {
	st := storetest.NewMemory()
	r := NewResolver(st, nil)

	const n = 20
	ids := make([]uuid.UUID, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			org, err := r.GetOrCreate(context.Background(), "user_concurrent")
			errs[i] = err
			if org != nil {
				ids[i] = org.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, 1, st.OrganizationCount())
}

func TestGetOrCreate_LostRaceRefetches(t *testing.T) {
	st := storetest.NewMemory()
	r, m := newTestResolver(st)

	winner := &models.Organization{
		ID:         uuid.New(),
		ExternalID: "user_race",
		Name:       "Winner",
		Slug:       "menu-winner",
	}
	var once sync.Once
	st.BeforeCreateOrganization = func(_ *models.Organization) {
		once.Do(func() { st.PutOrganization(winner) })
	}

	org, err := r.GetOrCreate(context.Background(), "user_race")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, org.ID)
	assert.Equal(t, 1, st.OrganizationCount())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.OrgsProvisioned))
}

func TestGetOrCreate_SlugCollisionRetries(t *testing.T) {
	st := storetest.NewMemory()
	r, _ := newTestResolver(st)

	taken := generateSlug("user_abc123", fixedNow, 0)
	st.PutOrganization(&models.Organization{ID: uuid.New(), ExternalID: "someone-else", Slug: taken})

	org, err := r.GetOrCreate(context.Background(), "user_abc123")
	require.NoError(t, err)
	assert.NotEqual(t, taken, org.Slug)
	assert.Contains(t, org.Slug, taken+"-")
	assert.Equal(t, 2, st.OrganizationCount())
}

func TestGetOrCreate_SlugRetriesExhausted(t *testing.T) {
	st := storetest.NewMemory()
	r, _ := newTestResolver(st)

	attempts := 0
	st.BeforeCreateOrganization = func(org *models.Organization) {
		attempts++
		st.PutOrganization(&models.Organization{
			ID:         uuid.New(),
			ExternalID: fmt.Sprintf("squatter-%d", attempts),
			Slug:       org.Slug,
		})
	}

	_, err := r.GetOrCreate(context.Background(), "user_unlucky")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrStore)
	assert.Equal(t, maxSlugAttempts, attempts)
}

func TestGetOrCreate_EmptyIdentity(t *testing.T) {
	st := storetest.NewMemory()
	r, _ := newTestResolver(st)

	_, err := r.EnsureOrganization(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Equal(t, 0, st.OrganizationCount())
}

// --- Slug generation ---

func TestIdentitySuffix(t *testing.T) {
	tests := []struct {
		identity string
		want     string
	}{
		{"user_2abcDEF123", "def123"},
		{"abc", "abc"},
		{"user__-_X", "rx"},
		{"______", "org"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, identitySuffix(tt.identity), tt.identity)
	}
}

func TestGenerateSlug_RetryAddsRandomPart(t *testing.T) {
	base := generateSlug("user_1", fixedNow, 0)
	a := generateSlug("user_1", fixedNow, 1)
	b := generateSlug("user_1", fixedNow, 2)

	assert.Equal(t, fmt.Sprintf("menu-%d-user1", fixedNow.UnixMilli()), base)
	assert.Len(t, a, len(base)+7)
	assert.NotEqual(t, a, b)
}
