package models

import "time"

// Tier enumerates the supported product tiers.
type Tier string

const (
	TierFree  Tier = "free"
	TierBasic Tier = "basic"
)

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t == TierFree || t == TierBasic
}

// ProductStatus is the publication state of a showcase.
type ProductStatus string

const (
	StatusDraft     ProductStatus = "draft"
	StatusPublished ProductStatus = "published"
	StatusArchived  ProductStatus = "archived"
)

// ProductStatuses lists every status in display order.
var ProductStatuses = []ProductStatus{StatusDraft, StatusPublished, StatusArchived}

// Valid reports whether s is a known status.
func (s ProductStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// URLStatus is the state of a shareable link.
type URLStatus string

const (
	URLActive   URLStatus = "active"
	URLInactive URLStatus = "inactive"
)

// Valid reports whether s is a known URL status.
func (s URLStatus) Valid() bool {
	return s == URLActive || s == URLInactive
}

// TextBlock is a rich-text field edited through the style editor.
type TextBlock struct {
	Content *string        `json:"content,omitempty" bson:"content,omitempty"`
	Style   map[string]any `json:"style,omitempty" bson:"style,omitempty"`
}

// Picture references an uploaded media asset.
type Picture struct {
	URL      *string `json:"url,omitempty" bson:"url,omitempty"`
	PublicID *string `json:"publicId,omitempty" bson:"publicId,omitempty"`
}

// ProductDetails is the product step of the wizard.
type ProductDetails struct {
	ProductName        *TextBlock `json:"productName,omitempty" bson:"productName,omitempty"`
	ProductPrice       *TextBlock `json:"productPrice,omitempty" bson:"productPrice,omitempty"`
	ProductDescription *TextBlock `json:"productDescription,omitempty" bson:"productDescription,omitempty"`
	ProductPictures    []Picture  `json:"productPictures,omitempty" bson:"productPictures,omitempty"`
}

// ShopDetails is the shop step of the wizard.
type ShopDetails struct {
	ShopName    *TextBlock        `json:"shopName,omitempty" bson:"shopName,omitempty"`
	ShopAddress *TextBlock        `json:"shopAddress,omitempty" bson:"shopAddress,omitempty"`
	ShopLogo    *Picture          `json:"shopLogo,omitempty" bson:"shopLogo,omitempty"`
	ShopEmail   *string           `json:"shopEmail,omitempty" bson:"shopEmail,omitempty"`
	ShopPhone   *string           `json:"shopPhone,omitempty" bson:"shopPhone,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty" bson:"socialLinks,omitempty"`
}

// FAQ is a single question/answer pair.
type FAQ struct {
	Question *string `json:"question,omitempty" bson:"question,omitempty"`
	Answer   *string `json:"answer,omitempty" bson:"answer,omitempty"`
}

// SocialMediaMetric tracks usage of a social-media post template.
type SocialMediaMetric struct {
	Template   *string    `json:"template,omitempty" bson:"template,omitempty"`
	Platform   *string    `json:"platform,omitempty" bson:"platform,omitempty"`
	UsageCount *int64     `json:"usageCount,omitempty" bson:"usageCount,omitempty"`
	LastUsed   *time.Time `json:"lastUsed,omitempty" bson:"lastUsed,omitempty"`
}

// AnalyticsRecord holds the counters of one period (a UTC day).
type AnalyticsRecord struct {
	Views       *int64     `json:"views,omitempty" bson:"views,omitempty"`
	Clicks      *int64     `json:"clicks,omitempty" bson:"clicks,omitempty"`
	EmailClicks *int64     `json:"emailClicks,omitempty" bson:"emailClicks,omitempty"`
	Date        *time.Time `json:"date,omitempty" bson:"date,omitempty"`
}

// ShareURL is a generated public link. ID doubles as the public token.
type ShareURL struct {
	ID         string     `json:"id" bson:"id"`
	Status     *URLStatus `json:"status,omitempty" bson:"status,omitempty"`
	UsageCount *int64     `json:"usageCount,omitempty" bson:"usageCount,omitempty"`
	LastUsed   *time.Time `json:"lastUsed,omitempty" bson:"lastUsed,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// ProductDocument is the stored showcase. Every nested field is optional;
// read paths go through Project/IndexOf instead of dereferencing directly.
type ProductDocument struct {
	ID                 string              `json:"id" bson:"id"`
	OwnerID            string              `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	Tier               Tier                `json:"tier,omitempty" bson:"tier,omitempty"`
	TemplateName       *string             `json:"templateName,omitempty" bson:"templateName,omitempty"`
	Status             *ProductStatus      `json:"status,omitempty" bson:"status,omitempty"`
	ProductDetails     *ProductDetails     `json:"productDetails,omitempty" bson:"productDetails,omitempty"`
	ShopDetails        *ShopDetails        `json:"shopDetails,omitempty" bson:"shopDetails,omitempty"`
	FAQs               []FAQ               `json:"faqs,omitempty" bson:"faqs,omitempty"`
	SocialMediaMetrics []SocialMediaMetric `json:"socialMediaMetrics,omitempty" bson:"socialMediaMetrics,omitempty"`
	Analytics          []AnalyticsRecord   `json:"analytics,omitempty" bson:"analytics,omitempty"`
	URLs               []ShareURL          `json:"urls,omitempty" bson:"urls,omitempty"`
	CreatedAt          time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// FindURL returns the index of the URL entry with the given id, or -1.
func (d *ProductDocument) FindURL(id string) int {
	for i := range d.URLs {
		if d.URLs[i].ID == id {
			return i
		}
	}
	return -1
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// PublicShowcase is the part of a document visible through a share URL.
type PublicShowcase struct {
	ID                 string              `json:"id"`
	Tier               Tier                `json:"tier"`
	TemplateName       string              `json:"templateName"`
	ProductDetails     *ProductDetails     `json:"productDetails,omitempty"`
	ShopDetails        *ShopDetails        `json:"shopDetails,omitempty"`
	FAQs               []FAQ               `json:"faqs"`
	SocialMediaMetrics []SocialMediaMetric `json:"socialMediaMetrics"`
}

// Public strips owner-only data from d.
func (d *ProductDocument) Public() PublicShowcase {
	p := PublicShowcase{
		ID:                 d.ID,
		Tier:               d.Tier,
		TemplateName:       str(d.TemplateName),
		ProductDetails:     d.ProductDetails,
		ShopDetails:        d.ShopDetails,
		FAQs:               d.FAQs,
		SocialMediaMetrics: d.SocialMediaMetrics,
	}
	if p.FAQs == nil {
		p.FAQs = []FAQ{}
	}
	if p.SocialMediaMetrics == nil {
		p.SocialMediaMetrics = []SocialMediaMetric{}
	}
	return p
}
