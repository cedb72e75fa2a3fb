package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/utils"
)

func seedMemory(t *testing.T, n int) (*MemoryProductRepository, time.Time) {
	t.Helper()
	repo := NewMemoryProductRepository()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		doc := testDoc(fmt.Sprintf("p%02d", i), fmt.Sprintf("Product %d", i), "Corner Shop", base.Add(time.Duration(i)*time.Hour))
		doc.Analytics = []models.AnalyticsRecord{{Views: models.Ptr(int64(i * 10)), Clicks: models.Ptr(int64(i))}}
		if i%2 == 0 {
			doc.Status = models.Ptr(models.StatusPublished)
		}
		require.NoError(t, repo.Create(context.Background(), doc))
	}
	return repo, base
}

func ids(docs []models.ProductDocument) []string {
	out := make([]string, len(docs))
	for i := range docs {
		out[i] = docs[i].ID
	}
	return out
}

func TestMemoryProductRepository_CreateIsolated(t *testing.T) {
	repo := NewMemoryProductRepository()
	doc := testDoc("p1", "Mug", "Shop", time.Now().UTC())
	require.NoError(t, repo.Create(context.Background(), doc))

	doc.ProductDetails.ProductName.Content = models.Ptr("changed")
	got, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Mug", models.IndexOf(got).ProductName)

	assert.Error(t, repo.Create(context.Background(), testDoc("p1", "Dup", "Shop", time.Now())))
}

func TestMemoryProductRepository_FindPagesAreDisjoint(t *testing.T) {
	repo, _ := seedMemory(t, 7)
	ctx := context.Background()

	var seen []string
	page := &models.PageQuery{SortBy: models.SortCreatedAt, Order: models.OrderDesc, Limit: 3}
	for {
		docs, err := repo.Find(ctx, nil, page)
		require.NoError(t, err)
		seen = append(seen, ids(docs)...)
		if len(docs) < page.Limit {
			break
		}
		last := docs[len(docs)-1]
		page.After = &models.Keyset{ID: last.ID, Value: models.SortKey(page.SortBy, &last)}
	}

	assert.Equal(t, []string{"p06", "p05", "p04", "p03", "p02", "p01", "p00"}, seen)
}

func TestMemoryProductRepository_FindTieBreaksOnID(t *testing.T) {
	repo := NewMemoryProductRepository()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, repo.Create(context.Background(), testDoc(id, "Same", "Shop", at)))
	}

	docs, err := repo.Find(context.Background(), nil,
		&models.PageQuery{SortBy: models.SortProductName, Order: models.OrderAsc, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(docs))

	docs, err = repo.Find(context.Background(), nil, &models.PageQuery{
		SortBy: models.SortProductName, Order: models.OrderAsc, Limit: 2,
		After: &models.Keyset{ID: "b", Value: "Same"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids(docs))
}

func TestMemoryProductRepository_Filters(t *testing.T) {
	repo, base := seedMemory(t, 6)
	ctx := context.Background()
	to := base.Add(2 * time.Hour)

	tests := []struct {
		name   string
		filter *models.ProductFilter
		want   int64
	}{
		{"nil", nil, 6},
		{"status published", &models.ProductFilter{Status: models.StatusPublished}, 3},
		{"status draft matches missing status", &models.ProductFilter{Status: models.StatusDraft}, 3},
		{"search is case insensitive", &models.ProductFilter{Search: "product 3"}, 1},
		{"search matches shop", &models.ProductFilter{Search: "CORNER"}, 6},
		{"date range inclusive", &models.ProductFilter{CreatedFrom: &base, CreatedTo: &to}, 3},
		{"min views", &models.ProductFilter{MinViews: 30}, 3},
		{"min clicks", &models.ProductFilter{MinClicks: 5}, 1},
		{"price range", &models.ProductFilter{MinPrice: models.Ptr(10.0), MaxPrice: models.Ptr(10.0)}, 6},
		{"price above", &models.ProductFilter{MinPrice: models.Ptr(10.01)}, 0},
		{"tier", &models.ProductFilter{Tier: models.TierFree}, 0},
		{"owner", &models.ProductFilter{OwnerID: "owner-1"}, 6},
		{"match none", &models.ProductFilter{MatchNone: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := repo.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestMemoryProductRepository_GetByURLToken(t *testing.T) {
	repo := NewMemoryProductRepository()
	doc := testDoc("p1", "Mug", "Shop", time.Now().UTC())
	doc.URLs = []models.ShareURL{{ID: "abc"}}
	require.NoError(t, repo.Create(context.Background(), doc))

	got, err := repo.GetByURLToken(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	_, err = repo.GetByURLToken(context.Background(), "zzz")
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestMemoryProductRepository_Update(t *testing.T) {
	repo, _ := seedMemory(t, 1)
	ctx := context.Background()

	_, err := repo.Update(ctx, "p00", func(d *models.ProductDocument) error {
		d.TemplateName = models.Ptr("modern")
		return errors.New("abort")
	})
	require.Error(t, err)
	got, _ := repo.GetByID(ctx, "p00")
	assert.Nil(t, got.TemplateName)

	updated, err := repo.Update(ctx, "p00", func(d *models.ProductDocument) error {
		d.TemplateName = models.Ptr("modern")
		d.ID = "hijack"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "p00", updated.ID)
	assert.Equal(t, "modern", *updated.TemplateName)

	_, err = repo.Update(ctx, "missing", func(*models.ProductDocument) error { return nil })
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestMemoryProductRepository_DeleteAndTemplates(t *testing.T) {
	repo := NewMemoryProductRepository()
	ctx := context.Background()
	for i, tpl := range []string{"modern", "", "classic", "modern"} {
		doc := testDoc(fmt.Sprintf("p%d", i), "x", "y", time.Now().UTC())
		if tpl != "" {
			doc.TemplateName = models.Ptr(tpl)
		}
		require.NoError(t, repo.Create(ctx, doc))
	}

	templates, err := repo.DistinctTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"classic", "modern"}, templates)

	require.NoError(t, repo.Delete(ctx, "p0"))
	assert.ErrorIs(t, repo.Delete(ctx, "p0"), utils.ErrProductNotFound)
}
