package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/repository"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// PortfolioService serves the portfolio dashboard: listing with statistics,
// mutations and deletion.
type PortfolioService struct {
	repo          repository.ProductRepository
	publicBaseURL string
	now           func() time.Time
}

// NewPortfolioService constructs a PortfolioService.
func NewPortfolioService(repo repository.ProductRepository, publicBaseURL string) *PortfolioService {
	return &PortfolioService{
		repo:          repo,
		publicBaseURL: publicBaseURL,
		now:           utcNow,
	}
}

// GetPortfolio lists one page of products matching params together with
// statistics over the whole filtered set.
func (s *PortfolioService) GetPortfolio(ctx context.Context, params PortfolioParams) (*models.Portfolio, error) {
	filter, err := BuildProductFilter(params)
	if err != nil {
		return nil, err
	}
	page := BuildPageRequest(params)

	docs, pageInfo, err := Paginate(ctx, s.repo, filter, page)
	if err != nil {
		return nil, err
	}

	// Statistics always cover the full filtered set, never just the page.
	all, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to scan products for portfolio stats")
		return nil, err
	}

	templates, err := s.repo.DistinctTemplates(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load template names")
		return nil, err
	}

	products := make([]models.ProductListing, 0, len(docs))
	for i := range docs {
		products = append(products, models.Project(&docs[i], s.publicBaseURL))
	}

	return &models.Portfolio{
		Products:       products,
		PortfolioStats: Aggregate(all),
		Pagination:     pageInfo,
		Filters: models.FilterInfo{
			Applied: models.AppliedFilters{
				ProductFilter: *filter,
				SortBy:        page.SortBy,
				Order:         page.Order,
			},
			Available: models.AvailableFilters{
				Statuses:   models.ProductStatuses,
				Tiers:      []models.Tier{models.TierFree, models.TierBasic},
				Templates:  templates,
				SortFields: models.SortFields,
				Orders:     []models.SortOrder{models.OrderAsc, models.OrderDesc},
			},
		},
	}, nil
}

// Mutate decodes req and runs the matching command.
func (s *PortfolioService) Mutate(ctx context.Context, req MutationRequest) (*MutationResult, error) {
	cmd, err := ParseCommand(req)
	if err != nil {
		return nil, err
	}
	res, err := cmd.execute(ctx, s)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("product_id", cmd.ProductID()).
		Str("operation", cmd.Operation()).
		Msg("Portfolio mutation applied")
	return res, nil
}

// DeleteProduct removes a product.
func (s *PortfolioService) DeleteProduct(ctx context.Context, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return fmt.Errorf("%w: productId is required", utils.ErrValidation)
	}
	return s.repo.Delete(ctx, productID)
}

// apply runs fn against the stored product, stamps updatedAt and returns the
// updated listing.
func (s *PortfolioService) apply(ctx context.Context, id, message string, fn func(doc *models.ProductDocument) error) (*MutationResult, error) {
	doc, err := s.repo.Update(ctx, id, func(doc *models.ProductDocument) error {
		if err := fn(doc); err != nil {
			return err
		}
		doc.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	listing := models.Project(doc, s.publicBaseURL)
	return &MutationResult{Message: message, Product: &listing}, nil
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
