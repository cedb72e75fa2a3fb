package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/utils"
)

func TestBuildProductFilter_Empty(t *testing.T) {
	f, err := BuildProductFilter(PortfolioParams{})
	require.NoError(t, err)
	assert.Equal(t, &models.ProductFilter{}, f)
}

func TestBuildProductFilter_Fields(t *testing.T) {
	f, err := BuildProductFilter(PortfolioParams{
		Search:    "  mug ",
		Status:    "published",
		Template:  "modern",
		Tier:      "basic",
		MinViews:  "5",
		MinClicks: "0",
	})
	require.NoError(t, err)
	assert.Equal(t, "mug", f.Search)
	assert.Equal(t, models.StatusPublished, f.Status)
	assert.Equal(t, "modern", f.Template)
	assert.Equal(t, models.TierBasic, f.Tier)
	assert.Equal(t, int64(5), f.MinViews)
	assert.Zero(t, f.MinClicks)
	assert.False(t, f.MatchNone)
}

func TestBuildProductFilter_DateRange(t *testing.T) {
	t.Run("date only covers the whole end day", func(t *testing.T) {
		f, err := BuildProductFilter(PortfolioParams{DateRange: "true", StartDate: "2024-01-01", EndDate: "2024-01-31"})
		require.NoError(t, err)
		require.NotNil(t, f.CreatedFrom)
		require.NotNil(t, f.CreatedTo)
		assert.True(t, f.CreatedFrom.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, f.CreatedTo.Equal(time.Date(2024, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)))
	})

	t.Run("rfc3339", func(t *testing.T) {
		f, err := BuildProductFilter(PortfolioParams{DateRange: "1", StartDate: "2024-01-01T10:00:00+02:00", EndDate: "2024-01-02T00:00:00Z"})
		require.NoError(t, err)
		assert.True(t, f.CreatedFrom.Equal(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)))
	})

	t.Run("missing end matches nothing", func(t *testing.T) {
		f, err := BuildProductFilter(PortfolioParams{DateRange: "true", StartDate: "2024-01-01"})
		require.NoError(t, err)
		assert.True(t, f.MatchNone)
	})

	t.Run("invalid date matches nothing", func(t *testing.T) {
		f, err := BuildProductFilter(PortfolioParams{DateRange: "true", StartDate: "yesterday", EndDate: "2024-01-01"})
		require.NoError(t, err)
		assert.True(t, f.MatchNone)
	})

	t.Run("dates without marker are ignored", func(t *testing.T) {
		f, err := BuildProductFilter(PortfolioParams{StartDate: "2024-01-01", EndDate: "2024-01-31"})
		require.NoError(t, err)
		assert.Nil(t, f.CreatedFrom)
		assert.False(t, f.MatchNone)
	})

	t.Run("false marker is absent", func(t *testing.T) {
		f, err := BuildProductFilter(PortfolioParams{DateRange: "false"})
		require.NoError(t, err)
		assert.False(t, f.MatchNone)
	})
}

func TestBuildProductFilter_PriceRange(t *testing.T) {
	f, err := BuildProductFilter(PortfolioParams{PriceRange: "true", MaxPrice: "120.50"})
	require.NoError(t, err)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 0.0, *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 120.5, *f.MaxPrice)

	f, err = BuildProductFilter(PortfolioParams{PriceRange: "true", MinPrice: "10"})
	require.NoError(t, err)
	assert.Equal(t, 10.0, *f.MinPrice)
	assert.Nil(t, f.MaxPrice)

	f, err = BuildProductFilter(PortfolioParams{MinPrice: "10"})
	require.NoError(t, err)
	assert.Nil(t, f.MinPrice)
}

func TestBuildProductFilter_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params PortfolioParams
	}{
		{"status", PortfolioParams{Status: "live"}},
		{"tier", PortfolioParams{Tier: "gold"}},
		{"min price", PortfolioParams{PriceRange: "true", MinPrice: "cheap"}},
		{"max price", PortfolioParams{PriceRange: "true", MaxPrice: "1,5"}},
		{"negative views", PortfolioParams{MinViews: "-1"}},
		{"malformed clicks", PortfolioParams{MinClicks: "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildProductFilter(tt.params)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
}

func TestBuildPageRequest(t *testing.T) {
	req := BuildPageRequest(PortfolioParams{})
	assert.Equal(t, PageRequest{Limit: DefaultPageLimit, SortBy: models.SortCreatedAt, Order: models.OrderDesc}, req)

	req = BuildPageRequest(PortfolioParams{Limit: "500", SortBy: "totalViews", Order: "ASC", Cursor: " c1 "})
	assert.Equal(t, MaxPageLimit, req.Limit)
	assert.Equal(t, models.SortTotalViews, req.SortBy)
	assert.Equal(t, models.OrderAsc, req.Order)
	assert.Equal(t, "c1", req.Cursor)

	req = BuildPageRequest(PortfolioParams{Limit: "-3", SortBy: "password", Order: "sideways"})
	assert.Equal(t, DefaultPageLimit, req.Limit)
	assert.Equal(t, models.SortCreatedAt, req.SortBy)
	assert.Equal(t, models.OrderDesc, req.Order)
}
