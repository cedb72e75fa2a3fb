package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// Page size bounds for the portfolio listing.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PortfolioParams are the raw query parameters of a portfolio listing.
type PortfolioParams struct {
	Cursor string `form:"cursor"`
	Limit  string `form:"limit"`
	SortBy string `form:"sortBy"`
	Order  string `form:"order"`

	Search     string `form:"search"`
	Status     string `form:"status"`
	Template   string `form:"template"`
	Tier       string `form:"tier"`
	DateRange  string `form:"dateRange"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	PriceRange string `form:"priceRange"`
	MinPrice   string `form:"minPrice"`
	MaxPrice   string `form:"maxPrice"`
	MinViews   string `form:"minViews"`
	MinClicks  string `form:"minClicks"`
}

// PageRequest is the normalized pagination part of PortfolioParams.
type PageRequest struct {
	Cursor string
	Limit  int
	SortBy models.SortField
	Order  models.SortOrder
}

// BuildProductFilter translates raw parameters into a ProductFilter.
// Absent parameters impose no constraint. Malformed values fail with
// ErrValidation, except an incomplete or invalid date range which yields a
// filter that matches nothing.
func BuildProductFilter(p PortfolioParams) (*models.ProductFilter, error) {
	f := &models.ProductFilter{
		Search:   strings.TrimSpace(p.Search),
		Template: strings.TrimSpace(p.Template),
	}

	if p.Status != "" {
		status := models.ProductStatus(p.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status must be one of draft, published, archived", utils.ErrValidation)
		}
		f.Status = status
	}

	if p.Tier != "" {
		tier := models.Tier(p.Tier)
		if !tier.Valid() {
			return nil, fmt.Errorf("%w: tier must be free or basic", utils.ErrValidation)
		}
		f.Tier = tier
	}

	if isMarker(p.DateRange) {
		from, okFrom := parseDate(p.StartDate, false)
		to, okTo := parseDate(p.EndDate, true)
		if okFrom && okTo {
			f.CreatedFrom, f.CreatedTo = &from, &to
		} else {
			f.MatchNone = true
		}
	}

	if isMarker(p.PriceRange) {
		minPrice := 0.0
		if p.MinPrice != "" {
			v, err := parseAmount(p.MinPrice)
			if err != nil {
				return nil, fmt.Errorf("%w: minPrice must be a number", utils.ErrValidation)
			}
			minPrice = v
		}
		f.MinPrice = &minPrice
		if p.MaxPrice != "" {
			v, err := parseAmount(p.MaxPrice)
			if err != nil {
				return nil, fmt.Errorf("%w: maxPrice must be a number", utils.ErrValidation)
			}
			f.MaxPrice = &v
		}
	}

	var err error
	if f.MinViews, err = parseThreshold("minViews", p.MinViews); err != nil {
		return nil, err
	}
	if f.MinClicks, err = parseThreshold("minClicks", p.MinClicks); err != nil {
		return nil, err
	}
	return f, nil
}

// BuildPageRequest normalizes the pagination parameters. Out-of-range limits
// and unknown sort fields fall back to their defaults.
func BuildPageRequest(p PortfolioParams) PageRequest {
	req := PageRequest{
		Cursor: strings.TrimSpace(p.Cursor),
		Limit:  DefaultPageLimit,
		SortBy: models.SortCreatedAt,
		Order:  models.OrderDesc,
	}
	if n, err := strconv.Atoi(p.Limit); err == nil && n > 0 {
		req.Limit = n
		if n > MaxPageLimit {
			req.Limit = MaxPageLimit
		}
	}
	if field := models.SortField(p.SortBy); field.Valid() {
		req.SortBy = field
	}
	if strings.EqualFold(p.Order, string(models.OrderAsc)) {
		req.Order = models.OrderAsc
	}
	return req
}

func isMarker(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "0":
		return false
	}
	return true
}

// parseDate accepts RFC3339 or YYYY-MM-DD. A date-only end bound covers the
// whole day.
func parseDate(raw string, endOfDay bool) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return t, true
}

func parseAmount(raw string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

func parseThreshold(name, raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", utils.ErrValidation, name)
	}
	return n, nil
}
