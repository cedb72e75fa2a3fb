package models

import (
	"encoding/json"
	"time"
)

// PortfolioStats aggregates every product matched by a portfolio filter.
type PortfolioStats struct {
	TotalProducts         int            `json:"totalProducts"`
	ActiveProducts        int            `json:"activeProducts"`
	TotalViews            int64          `json:"totalViews"`
	TotalClicks           int64          `json:"totalClicks"`
	TotalEmailClicks      int64          `json:"totalEmailClicks"`
	AverageEngagementRate float64        `json:"averageEngagementRate"`
	TemplateUsage         map[string]int `json:"templateUsage"`
}

// PageInfo is the cursor pagination block of a listing response.
type PageInfo struct {
	NextCursor   *string `json:"nextCursor"`
	HasMore      bool    `json:"hasMore"`
	ItemsPerPage int     `json:"itemsPerPage"`
}

// AvailableFilters lists the values a client can filter and sort by.
type AvailableFilters struct {
	Statuses   []ProductStatus `json:"statuses"`
	Tiers      []Tier          `json:"tiers"`
	Templates  []string        `json:"templates"`
	SortFields []SortField     `json:"sortFields"`
	Orders     []SortOrder     `json:"orders"`
}

// FilterInfo echoes the applied filter next to the available options.
type FilterInfo struct {
	Applied   AppliedFilters   `json:"applied"`
	Available AvailableFilters `json:"available"`
}

// AppliedFilters is the normalized view of the request's filter and sort.
type AppliedFilters struct {
	ProductFilter
	SortBy SortField `json:"sortBy"`
	Order  SortOrder `json:"order"`
}

// Portfolio is the body of a portfolio listing response.
type Portfolio struct {
	Products       []ProductListing `json:"products"`
	PortfolioStats PortfolioStats   `json:"portfolioStats"`
	Pagination     PageInfo         `json:"pagination"`
	Filters        FilterInfo       `json:"filters"`
}

// Draft is the saved wizard state of one user for one tier.
type Draft struct {
	Tier    Tier            `json:"tier"`
	Step    int             `json:"step"`
	Data    json.RawMessage `json:"data"`
	SavedAt time.Time       `json:"savedAt"`
}

// MediaKind is the declared kind of an uploaded file.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Valid reports whether k is a known media kind.
func (k MediaKind) Valid() bool {
	return k == MediaImage || k == MediaVideo
}

// MediaAsset is an uploaded file as returned to clients.
type MediaAsset struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Kind        MediaKind `json:"kind"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
}
