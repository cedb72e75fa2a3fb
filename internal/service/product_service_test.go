package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/showcase_api/internal/config"
	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/repository"
	"github.com/GTDGit/showcase_api/internal/utils"
)

func newTestProductService(repo repository.ProductRepository, clock *time.Time) *ProductService {
	s := NewProductService(repo, config.LimitsConfig{FreeMaxURLs: 2, BasicMaxProducts: 2}, "https://show.example.com")
	s.now = func() time.Time { return *clock }
	return s
}

func TestCreateProduct(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	clock := testNow
	svc := newTestProductService(repo, &clock)
	ctx := context.Background()

	doc, err := svc.CreateProduct(ctx, "u1", &CreateProductRequest{
		Tier:           models.TierFree,
		ProductDetails: &models.ProductDetails{ProductName: &models.TextBlock{Content: models.Ptr("Mug")}},
	})
	require.NoError(t, err)
	assert.Len(t, doc.ID, 36)
	assert.Equal(t, "u1", doc.OwnerID)
	assert.True(t, doc.CreatedAt.Equal(testNow))
	assert.Equal(t, models.StatusDraft, doc.EffectiveStatus())

	stored, err := svc.GetProduct(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mug", models.IndexOf(stored).ProductName)

	_, err = svc.CreateProduct(ctx, "u1", &CreateProductRequest{Tier: "gold"})
	assert.ErrorIs(t, err, utils.ErrValidation)
	_, err = svc.CreateProduct(ctx, "u1", &CreateProductRequest{Tier: models.TierFree, Status: models.Ptr(models.ProductStatus("live"))})
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestCreateProduct_BasicLimit(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	clock := testNow
	svc := newTestProductService(repo, &clock)
	ctx := context.Background()
	basic := &CreateProductRequest{Tier: models.TierBasic}

	for i := 0; i < 2; i++ {
		_, err := svc.CreateProduct(ctx, "u1", basic)
		require.NoError(t, err)
	}
	_, err := svc.CreateProduct(ctx, "u1", basic)
	assert.ErrorIs(t, err, utils.ErrProductLimitReached)

	_, err = svc.CreateProduct(ctx, "u2", basic)
	assert.NoError(t, err)
	_, err = svc.CreateProduct(ctx, "u1", &CreateProductRequest{Tier: models.TierFree})
	assert.NoError(t, err)
}

func TestGenerateURL_FreeLimit(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	clock := testNow
	svc := newTestProductService(repo, &clock)
	ctx := context.Background()

	free, err := svc.CreateProduct(ctx, "u1", &CreateProductRequest{Tier: models.TierFree})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		u, err := svc.GenerateURL(ctx, free.ID)
		require.NoError(t, err)
		assert.Equal(t, models.URLActive, u.Status)
		assert.Equal(t, "https://show.example.com/p/"+u.ID, u.URL)
		assert.Equal(t, testNow.Format(time.RFC3339), u.CreatedAt)
	}
	_, err = svc.GenerateURL(ctx, free.ID)
	assert.ErrorIs(t, err, utils.ErrURLLimitReached)

	basic, err := svc.CreateProduct(ctx, "u1", &CreateProductRequest{Tier: models.TierBasic})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := svc.GenerateURL(ctx, basic.ID)
		require.NoError(t, err)
	}

	_, err = svc.GenerateURL(ctx, "missing")
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestViewPublicAndTrackEvent(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	clock := testNow
	svc := newTestProductService(repo, &clock)
	ctx := context.Background()

	doc, err := svc.CreateProduct(ctx, "u1", &CreateProductRequest{Tier: models.TierFree})
	require.NoError(t, err)
	u, err := svc.GenerateURL(ctx, doc.ID)
	require.NoError(t, err)

	public, err := svc.ViewPublic(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, public.ID)
	assert.NotNil(t, public.FAQs)

	require.NoError(t, svc.TrackEvent(ctx, u.ID, EventClick))
	require.NoError(t, svc.TrackEvent(ctx, u.ID, EventEmailClick))

	clock = testNow.Add(24 * time.Hour)
	_, err = svc.ViewPublic(ctx, u.ID)
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, stored.Analytics, 2)
	day1 := models.ProjectAnalytics(stored.Analytics[0])
	assert.Equal(t, models.AnalyticsPoint{Views: 1, Clicks: 1, EmailClicks: 1, Date: "2024-06-01"}, day1)
	assert.Equal(t, "2024-06-02", models.ProjectAnalytics(stored.Analytics[1]).Date)

	assert.Equal(t, int64(2), *stored.URLs[0].UsageCount)
	assert.True(t, stored.URLs[0].LastUsed.Equal(clock))
	assert.True(t, stored.UpdatedAt.Equal(testNow), "public traffic does not touch updatedAt")

	idx := models.IndexOf(stored)
	assert.Equal(t, int64(2), idx.TotalViews)
	assert.Equal(t, int64(1), idx.TotalClicks)
}

func TestViewPublic_InactiveOrUnknown(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	require.NoError(t, repo.Create(context.Background(), &models.ProductDocument{
		ID:   "p1",
		URLs: []models.ShareURL{{ID: "off", Status: models.Ptr(models.URLInactive)}},
	}))
	clock := testNow
	svc := newTestProductService(repo, &clock)
	ctx := context.Background()

	_, err := svc.ViewPublic(ctx, "off")
	assert.ErrorIs(t, err, utils.ErrURLNotFound)
	_, err = svc.ViewPublic(ctx, "unknown")
	assert.ErrorIs(t, err, utils.ErrURLNotFound)

	assert.ErrorIs(t, svc.TrackEvent(ctx, "off", EventClick), utils.ErrURLNotFound)
	assert.ErrorIs(t, svc.TrackEvent(ctx, "off", "hover"), utils.ErrValidation)

	stored, _ := repo.GetByID(ctx, "p1")
	assert.Empty(t, stored.Analytics)
}
