package models

import (
	"strings"
	"time"
)

// ProductListing is the reduced read-model returned by the portfolio listing.
type ProductListing struct {
	ID                 string                  `json:"id"`
	ProductName        string                  `json:"productName"`
	ShopName           string                  `json:"shopName"`
	TemplateName       string                  `json:"templateName"`
	ProductPrice       string                  `json:"productPrice"`
	ThumbnailImage     string                  `json:"thumbnailImage"`
	Status             ProductStatus           `json:"status"`
	Tier               Tier                    `json:"tier"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
	Analytics          []AnalyticsPoint        `json:"analytics"`
	Summary            AnalyticsSummary        `json:"summary"`
	URLs               []URLView               `json:"urls"`
	SocialMediaMetrics []SocialMediaMetricView `json:"socialMediaMetrics"`
}

// AnalyticsPoint is an analytics record with every counter defaulted.
type AnalyticsPoint struct {
	Views       int64  `json:"views"`
	Clicks      int64  `json:"clicks"`
	EmailClicks int64  `json:"emailClicks"`
	Date        string `json:"date"`
}

// AnalyticsSummary totals the analytics of one product.
type AnalyticsSummary struct {
	TotalViews       int64   `json:"totalViews"`
	TotalClicks      int64   `json:"totalClicks"`
	TotalEmailClicks int64   `json:"totalEmailClicks"`
	EngagementRate   float64 `json:"engagementRate"`
}

// URLView is a share URL as shown to the owner.
type URLView struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Status     URLStatus `json:"status"`
	UsageCount int64     `json:"usageCount"`
	LastUsed   string    `json:"lastUsed"`
	CreatedAt  string    `json:"createdAt"`
}

// SocialMediaMetricView is a social-media metric with defaults applied.
type SocialMediaMetricView struct {
	Template   string `json:"template"`
	Platform   string `json:"platform"`
	UsageCount int64  `json:"usageCount"`
	LastUsed   string `json:"lastUsed"`
}

// ProductIndex holds the flat, defaulted fields every store persists next to
// the document for filtering and sorting.
type ProductIndex struct {
	ProductName  string
	ShopName     string
	TemplateName string
	Status       ProductStatus
	Price        float64
	TotalViews   int64
	TotalClicks  int64
	URLTokens    []string
}

const analyticsDateLayout = "2006-01-02"

// EngagementRate returns (clicks+emailClicks)/views*100, or 0 without views.
func EngagementRate(views, clicks, emailClicks int64) float64 {
	if views == 0 {
		return 0
	}
	return float64(clicks+emailClicks) / float64(views) * 100
}

// Project maps a stored document to its listing view. Absent fields become
// empty strings, zero counters and the default statuses.
func Project(doc *ProductDocument, publicBaseURL string) ProductListing {
	listing := ProductListing{
		ID:                 doc.ID,
		ProductName:        doc.productName(),
		ShopName:           doc.shopName(),
		TemplateName:       str(doc.TemplateName),
		ProductPrice:       doc.productPrice(),
		ThumbnailImage:     doc.thumbnail(),
		Status:             doc.EffectiveStatus(),
		Tier:               doc.Tier,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
		Analytics:          make([]AnalyticsPoint, 0, len(doc.Analytics)),
		URLs:               make([]URLView, 0, len(doc.URLs)),
		SocialMediaMetrics: make([]SocialMediaMetricView, 0, len(doc.SocialMediaMetrics)),
	}

	for _, rec := range doc.Analytics {
		p := ProjectAnalytics(rec)
		listing.Analytics = append(listing.Analytics, p)
		listing.Summary.TotalViews += p.Views
		listing.Summary.TotalClicks += p.Clicks
		listing.Summary.TotalEmailClicks += p.EmailClicks
	}
	listing.Summary.EngagementRate = EngagementRate(
		listing.Summary.TotalViews, listing.Summary.TotalClicks, listing.Summary.TotalEmailClicks)

	for _, u := range doc.URLs {
		listing.URLs = append(listing.URLs, ProjectURL(u, publicBaseURL))
	}

	for _, m := range doc.SocialMediaMetrics {
		listing.SocialMediaMetrics = append(listing.SocialMediaMetrics, SocialMediaMetricView{
			Template:   str(m.Template),
			Platform:   str(m.Platform),
			UsageCount: i64(m.UsageCount),
			LastUsed:   timestamp(m.LastUsed),
		})
	}
	return listing
}

// ProjectURL maps a share URL to its owner view with the absolute public link.
func ProjectURL(u ShareURL, publicBaseURL string) URLView {
	return URLView{
		ID:         u.ID,
		URL:        strings.TrimSuffix(publicBaseURL, "/") + "/p/" + u.ID,
		Status:     EffectiveURLStatus(u),
		UsageCount: i64(u.UsageCount),
		LastUsed:   timestamp(u.LastUsed),
		CreatedAt:  timestamp(u.CreatedAt),
	}
}

// ProjectAnalytics zero-defaults each counter of rec independently.
func ProjectAnalytics(rec AnalyticsRecord) AnalyticsPoint {
	p := AnalyticsPoint{
		Views:       i64(rec.Views),
		Clicks:      i64(rec.Clicks),
		EmailClicks: i64(rec.EmailClicks),
	}
	if rec.Date != nil {
		p.Date = rec.Date.UTC().Format(analyticsDateLayout)
	}
	return p
}

// IndexOf derives the flat index fields of doc.
func IndexOf(doc *ProductDocument) ProductIndex {
	idx := ProductIndex{
		ProductName:  doc.productName(),
		ShopName:     doc.shopName(),
		TemplateName: str(doc.TemplateName),
		Status:       doc.EffectiveStatus(),
		URLTokens:    make([]string, 0, len(doc.URLs)),
	}
	if price, ok := ParsePrice(doc.productPrice()); ok {
		idx.Price = price.InexactFloat64()
	}
	for _, rec := range doc.Analytics {
		idx.TotalViews += i64(rec.Views)
		idx.TotalClicks += i64(rec.Clicks)
	}
	for _, u := range doc.URLs {
		idx.URLTokens = append(idx.URLTokens, u.ID)
	}
	return idx
}

// EffectiveStatus returns the stored status or draft when absent.
func (d *ProductDocument) EffectiveStatus() ProductStatus {
	if d.Status == nil || *d.Status == "" {
		return StatusDraft
	}
	return *d.Status
}

// EffectiveURLStatus returns the stored URL status or active when absent.
func EffectiveURLStatus(u ShareURL) URLStatus {
	if u.Status == nil || *u.Status == "" {
		return URLActive
	}
	return *u.Status
}

func (d *ProductDocument) productName() string {
	if d.ProductDetails == nil {
		return ""
	}
	return content(d.ProductDetails.ProductName)
}

func (d *ProductDocument) productPrice() string {
	if d.ProductDetails == nil {
		return ""
	}
	return content(d.ProductDetails.ProductPrice)
}

func (d *ProductDocument) shopName() string {
	if d.ShopDetails == nil {
		return ""
	}
	return content(d.ShopDetails.ShopName)
}

func (d *ProductDocument) thumbnail() string {
	if d.ProductDetails == nil || len(d.ProductDetails.ProductPictures) == 0 {
		return ""
	}
	return str(d.ProductDetails.ProductPictures[0].URL)
}

func content(b *TextBlock) string {
	if b == nil {
		return ""
	}
	return str(b.Content)
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func i64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func timestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
