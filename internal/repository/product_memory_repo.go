package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// MemoryProductRepository keeps products in process memory. It is used for
// local development and tests and applies the same filter semantics as the
// database-backed stores.
type MemoryProductRepository struct {
	mu   sync.RWMutex
	docs map[string]*models.ProductDocument
}

// NewMemoryProductRepository creates an empty MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{docs: make(map[string]*models.ProductDocument)}
}

var _ ProductRepository = (*MemoryProductRepository)(nil)

// Create inserts a new product document.
func (r *MemoryProductRepository) Create(_ context.Context, doc *models.ProductDocument) error {
	cp, err := cloneDocument(doc)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[doc.ID]; exists {
		return fmt.Errorf("product %s already exists", doc.ID)
	}
	r.docs[doc.ID] = cp
	return nil
}

// GetByID returns a single product by id.
func (r *MemoryProductRepository) GetByID(_ context.Context, id string) (*models.ProductDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, utils.ErrProductNotFound
	}
	return cloneDocument(doc)
}

// GetByURLToken returns the product owning the share URL token.
func (r *MemoryProductRepository) GetByURLToken(_ context.Context, token string) (*models.ProductDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.docs {
		if doc.FindURL(token) >= 0 {
			return cloneDocument(doc)
		}
	}
	return nil, utils.ErrProductNotFound
}

// Find returns one page of products matching filter.
func (r *MemoryProductRepository) Find(_ context.Context, filter *models.ProductFilter, page *models.PageQuery) ([]models.ProductDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.match(filter)
	asc := page.Order == models.OrderAsc
	sort.Slice(matched, func(i, j int) bool {
		c := compareKeyset(
			models.SortKey(page.SortBy, matched[i]), matched[i].ID,
			models.SortKey(page.SortBy, matched[j]), matched[j].ID,
		)
		if asc {
			return c < 0
		}
		return c > 0
	})

	out := make([]models.ProductDocument, 0, len(matched))
	for _, doc := range matched {
		if page.After != nil {
			c := compareKeyset(models.SortKey(page.SortBy, doc), doc.ID, page.After.Value, page.After.ID)
			if (asc && c <= 0) || (!asc && c >= 0) {
				continue
			}
		}
		if page.Limit > 0 && len(out) == page.Limit {
			break
		}
		cp, err := cloneDocument(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *cp)
	}
	return out, nil
}

// FindAll returns every product matching filter, newest first.
func (r *MemoryProductRepository) FindAll(ctx context.Context, filter *models.ProductFilter) ([]models.ProductDocument, error) {
	return r.Find(ctx, filter, &models.PageQuery{SortBy: models.SortCreatedAt, Order: models.OrderDesc})
}

// Count returns the number of products matching filter.
func (r *MemoryProductRepository) Count(_ context.Context, filter *models.ProductFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.match(filter))), nil
}

// Update applies fn to a copy of the product and stores it on success.
func (r *MemoryProductRepository) Update(_ context.Context, id string, fn func(doc *models.ProductDocument) error) (*models.ProductDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.docs[id]
	if !ok {
		return nil, utils.ErrProductNotFound
	}
	doc, err := cloneDocument(stored)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	doc.ID = id

	saved, err := cloneDocument(doc)
	if err != nil {
		return nil, err
	}
	r.docs[id] = saved
	return doc, nil
}

// Delete deletes a product by ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return utils.ErrProductNotFound
	}
	delete(r.docs, id)
	return nil
}

// DistinctTemplates returns all distinct, non-empty template names.
func (r *MemoryProductRepository) DistinctTemplates(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	templates := []string{}
	for _, doc := range r.docs {
		name := models.IndexOf(doc).TemplateName
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		templates = append(templates, name)
	}
	sort.Strings(templates)
	return templates, nil
}

// Ping always succeeds.
func (r *MemoryProductRepository) Ping(context.Context) error { return nil }

// match returns the stored documents satisfying filter. Callers hold r.mu.
func (r *MemoryProductRepository) match(filter *models.ProductFilter) []*models.ProductDocument {
	out := make([]*models.ProductDocument, 0, len(r.docs))
	for _, doc := range r.docs {
		if matchesFilter(doc, filter) {
			out = append(out, doc)
		}
	}
	return out
}

func matchesFilter(doc *models.ProductDocument, f *models.ProductFilter) bool {
	if f == nil {
		return true
	}
	if f.MatchNone {
		return false
	}
	idx := models.IndexOf(doc)

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(idx.ProductName), needle) &&
			!strings.Contains(strings.ToLower(idx.ShopName), needle) {
			return false
		}
	}
	if f.Status != "" && idx.Status != f.Status {
		return false
	}
	if f.Template != "" && idx.TemplateName != f.Template {
		return false
	}
	if f.Tier != "" && doc.Tier != f.Tier {
		return false
	}
	if f.OwnerID != "" && doc.OwnerID != f.OwnerID {
		return false
	}
	if f.CreatedFrom != nil && doc.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && doc.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	if f.MinPrice != nil && idx.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && idx.Price > *f.MaxPrice {
		return false
	}
	if f.MinViews > 0 && idx.TotalViews < f.MinViews {
		return false
	}
	if f.MinClicks > 0 && idx.TotalClicks < f.MinClicks {
		return false
	}
	return true
}

// compareKeyset orders (a, aID) against (b, bID): sort key first, id second.
func compareKeyset(a any, aID string, b any, bID string) int {
	if c := compareKey(a, b); c != 0 {
		return c
	}
	return strings.Compare(aID, bID)
}

func compareKey(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case int64:
		bv, _ := b.(int64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}

// cloneDocument deep-copies doc so callers never share nested state with the store.
func cloneDocument(doc *models.ProductDocument) (*models.ProductDocument, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to copy product: %w", err)
	}
	var cp models.ProductDocument
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, fmt.Errorf("failed to copy product: %w", err)
	}
	return &cp, nil
}
