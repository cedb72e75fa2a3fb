package models

import "time"

// ProductFilter is the structured predicate over the product collection.
// Zero-valued fields impose no constraint; all set fields are ANDed.
type ProductFilter struct {
	Search      string        `json:"search,omitempty"`
	Status      ProductStatus `json:"status,omitempty"`
	Template    string        `json:"template,omitempty"`
	Tier        Tier          `json:"tier,omitempty"`
	OwnerID     string        `json:"-"`
	CreatedFrom *time.Time    `json:"startDate,omitempty"`
	CreatedTo   *time.Time    `json:"endDate,omitempty"`
	MinPrice    *float64      `json:"minPrice,omitempty"`
	MaxPrice    *float64      `json:"maxPrice,omitempty"`
	MinViews    int64         `json:"minViews,omitempty"`
	MinClicks   int64         `json:"minClicks,omitempty"`

	// MatchNone makes the filter exclude every document.
	MatchNone bool `json:"-"`
}

// SortField names a sortable listing field.
type SortField string

const (
	SortCreatedAt   SortField = "createdAt"
	SortUpdatedAt   SortField = "updatedAt"
	SortProductName SortField = "productName"
	SortShopName    SortField = "shopName"
	SortPrice       SortField = "productPrice"
	SortTotalViews  SortField = "totalViews"
	SortTotalClicks SortField = "totalClicks"
)

// SortFields lists the accepted sortBy values.
var SortFields = []SortField{
	SortCreatedAt, SortUpdatedAt, SortProductName, SortShopName, SortPrice, SortTotalViews, SortTotalClicks,
}

// Valid reports whether f is an accepted sort field.
func (f SortField) Valid() bool {
	for _, s := range SortFields {
		if s == f {
			return true
		}
	}
	return false
}

// SortOrder is the sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Keyset is the position after which a page starts: the sort key and id of
// the last item of the previous page.
type Keyset struct {
	ID    string
	Value any
}

// PageQuery describes one page fetch against a store.
type PageQuery struct {
	SortBy SortField
	Order  SortOrder
	Limit  int
	After  *Keyset
}

// SortKey returns the value doc is ordered by for field. The concrete type is
// time.Time, string, float64 or int64.
func SortKey(field SortField, doc *ProductDocument) any {
	switch field {
	case SortUpdatedAt:
		return doc.UpdatedAt
	case SortProductName:
		return doc.productName()
	case SortShopName:
		return doc.shopName()
	case SortPrice:
		return IndexOf(doc).Price
	case SortTotalViews:
		return IndexOf(doc).TotalViews
	case SortTotalClicks:
		return IndexOf(doc).TotalClicks
	default:
		return doc.CreatedAt
	}
}
