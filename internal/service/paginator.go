package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/repository"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// Paginate fetches one page of documents matching filter. It asks the store
// for one document more than the limit to learn whether another page exists.
// The cursor is the id of the last item of the previous page; an id that no
// longer resolves fails with ErrInvalidCursor.
func Paginate(ctx context.Context, repo repository.ProductRepository, filter *models.ProductFilter, req PageRequest) ([]models.ProductDocument, models.PageInfo, error) {
	info := models.PageInfo{ItemsPerPage: req.Limit}
	query := &models.PageQuery{
		SortBy: req.SortBy,
		Order:  req.Order,
		Limit:  req.Limit + 1,
	}

	if req.Cursor != "" {
		last, err := repo.GetByID(ctx, req.Cursor)
		if err != nil {
			if errors.Is(err, utils.ErrProductNotFound) {
				return nil, info, fmt.Errorf("%w: cursor %q does not reference a product", utils.ErrInvalidCursor, req.Cursor)
			}
			return nil, info, err
		}
		query.After = &models.Keyset{ID: last.ID, Value: models.SortKey(req.SortBy, last)}
	}

	docs, err := repo.Find(ctx, filter, query)
	if err != nil {
		return nil, info, err
	}

	if len(docs) > req.Limit {
		docs = docs[:req.Limit]
		next := docs[len(docs)-1].ID
		info.HasMore = true
		info.NextCursor = &next
	}
	return docs, info, nil
}
