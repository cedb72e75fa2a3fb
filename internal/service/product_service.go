package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/showcase_api/internal/config"
	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/repository"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// Events accepted by TrackEvent.
const (
	EventClick      = "click"
	EventEmailClick = "emailClick"
)

// ProductService handles showcase creation, share URLs and public traffic.
type ProductService struct {
	repo          repository.ProductRepository
	limits        config.LimitsConfig
	publicBaseURL string
	now           func() time.Time
}

// NewProductService constructs a ProductService.
func NewProductService(repo repository.ProductRepository, limits config.LimitsConfig, publicBaseURL string) *ProductService {
	return &ProductService{
		repo:          repo,
		limits:        limits,
		publicBaseURL: publicBaseURL,
		now:           utcNow,
	}
}

// CreateProductRequest is the final submission of the showcase wizard.
type CreateProductRequest struct {
	Tier               models.Tier                `json:"tier" binding:"required"`
	TemplateName       *string                    `json:"templateName"`
	Status             *models.ProductStatus      `json:"status"`
	ProductDetails     *models.ProductDetails     `json:"productDetails"`
	ShopDetails        *models.ShopDetails        `json:"shopDetails"`
	FAQs               []models.FAQ               `json:"faqs"`
	SocialMediaMetrics []models.SocialMediaMetric `json:"socialMediaMetrics"`
}

// TrackEventRequest is the body of a public click event.
type TrackEventRequest struct {
	Type string `json:"type" binding:"required"`
}

// CreateProduct stores a new showcase owned by ownerID.
func (s *ProductService) CreateProduct(ctx context.Context, ownerID string, req *CreateProductRequest) (*models.ProductDocument, error) {
	if !req.Tier.Valid() {
		return nil, fmt.Errorf("%w: tier must be free or basic", utils.ErrValidation)
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: status must be one of draft, published, archived", utils.ErrValidation)
	}

	if req.Tier == models.TierBasic && s.limits.BasicMaxProducts > 0 {
		n, err := s.repo.Count(ctx, &models.ProductFilter{OwnerID: ownerID, Tier: models.TierBasic})
		if err != nil {
			return nil, err
		}
		if n >= int64(s.limits.BasicMaxProducts) {
			return nil, fmt.Errorf("%w: basic tier allows %d products", utils.ErrProductLimitReached, s.limits.BasicMaxProducts)
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	now := s.now()
	doc := &models.ProductDocument{
		ID:                 id.String(),
		OwnerID:            ownerID,
		Tier:               req.Tier,
		TemplateName:       req.TemplateName,
		Status:             req.Status,
		ProductDetails:     req.ProductDetails,
		ShopDetails:        req.ShopDetails,
		FAQs:               req.FAQs,
		SocialMediaMetrics: req.SocialMediaMetrics,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		log.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to create product")
		return nil, err
	}
	return doc, nil
}

// GetProduct returns the stored showcase.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.ProductDocument, error) {
	return s.repo.GetByID(ctx, id)
}

// GenerateURL adds a new active share URL to a product. Free products are
// capped at limits.FreeMaxURLs links.
func (s *ProductService) GenerateURL(ctx context.Context, productID string) (*models.URLView, error) {
	token, err := utils.GenerateShareToken()
	if err != nil {
		return nil, err
	}
	now := s.now()

	var created models.ShareURL
	_, err = s.repo.Update(ctx, productID, func(doc *models.ProductDocument) error {
		if doc.Tier == models.TierFree && s.limits.FreeMaxURLs > 0 && len(doc.URLs) >= s.limits.FreeMaxURLs {
			return fmt.Errorf("%w: free tier allows %d share URLs", utils.ErrURLLimitReached, s.limits.FreeMaxURLs)
		}
		created = models.ShareURL{
			ID:         token,
			Status:     models.Ptr(models.URLActive),
			UsageCount: models.Ptr(int64(0)),
			CreatedAt:  &now,
		}
		doc.URLs = append(doc.URLs, created)
		doc.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := models.ProjectURL(created, s.publicBaseURL)
	return &view, nil
}

// ViewPublic resolves a share token, counts the visit and returns the public
// showcase. Unknown and inactive tokens fail with ErrURLNotFound.
func (s *ProductService) ViewPublic(ctx context.Context, token string) (*models.PublicShowcase, error) {
	now := s.now()
	doc, err := s.updateByToken(ctx, token, func(doc *models.ProductDocument, u *models.ShareURL) error {
		u.UsageCount = models.Ptr(valueOf(u.UsageCount) + 1)
		u.LastUsed = &now
		recordAnalytics(doc, now, 1, 0, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	public := doc.Public()
	return &public, nil
}

// TrackEvent records a click or an email click made on a public showcase.
func (s *ProductService) TrackEvent(ctx context.Context, token, eventType string) error {
	var clicks, emailClicks int64
	switch eventType {
	case EventClick:
		clicks = 1
	case EventEmailClick:
		emailClicks = 1
	default:
		return fmt.Errorf("%w: type must be click or emailClick", utils.ErrValidation)
	}

	now := s.now()
	_, err := s.updateByToken(ctx, token, func(doc *models.ProductDocument, _ *models.ShareURL) error {
		recordAnalytics(doc, now, 0, clicks, emailClicks)
		return nil
	})
	return err
}

// updateByToken applies fn to the product and URL entry behind an active token.
func (s *ProductService) updateByToken(ctx context.Context, token string, fn func(doc *models.ProductDocument, u *models.ShareURL) error) (*models.ProductDocument, error) {
	doc, err := s.repo.GetByURLToken(ctx, token)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			return nil, utils.ErrURLNotFound
		}
		return nil, err
	}

	doc, err = s.repo.Update(ctx, doc.ID, func(doc *models.ProductDocument) error {
		// The token may have been regenerated or disabled since the lookup.
		i := doc.FindURL(token)
		if i < 0 || models.EffectiveURLStatus(doc.URLs[i]) != models.URLActive {
			return utils.ErrURLNotFound
		}
		return fn(doc, &doc.URLs[i])
	})
	if errors.Is(err, utils.ErrProductNotFound) {
		return nil, utils.ErrURLNotFound
	}
	return doc, err
}

// recordAnalytics adds counters to the record of the UTC day of at,
// appending a new record when the day has none yet.
func recordAnalytics(doc *models.ProductDocument, at time.Time, views, clicks, emailClicks int64) {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	for i := range doc.Analytics {
		rec := &doc.Analytics[i]
		if rec.Date != nil && rec.Date.UTC().Equal(day) {
			rec.Views = models.Ptr(valueOf(rec.Views) + views)
			rec.Clicks = models.Ptr(valueOf(rec.Clicks) + clicks)
			rec.EmailClicks = models.Ptr(valueOf(rec.EmailClicks) + emailClicks)
			return
		}
	}
	doc.Analytics = append(doc.Analytics, models.AnalyticsRecord{
		Views:       models.Ptr(views),
		Clicks:      models.Ptr(clicks),
		EmailClicks: models.Ptr(emailClicks),
		Date:        &day,
	})
}

func valueOf(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
