package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// ProductRepository is the document store holding showcase products.
// Implementations return utils.ErrProductNotFound for missing ids.
type ProductRepository interface {
	Create(ctx context.Context, doc *models.ProductDocument) error
	GetByID(ctx context.Context, id string) (*models.ProductDocument, error)
	GetByURLToken(ctx context.Context, token string) (*models.ProductDocument, error)
	// Find returns at most page.Limit documents matching filter, ordered by
	// page.SortBy/page.Order with id as tie-breaker, starting after page.After.
	Find(ctx context.Context, filter *models.ProductFilter, page *models.PageQuery) ([]models.ProductDocument, error)
	// FindAll returns every document matching filter.
	FindAll(ctx context.Context, filter *models.ProductFilter) ([]models.ProductDocument, error)
	Count(ctx context.Context, filter *models.ProductFilter) (int64, error)
	// Update loads the document, applies fn and persists the result.
	// Returning an error from fn aborts without writing.
	Update(ctx context.Context, id string, fn func(doc *models.ProductDocument) error) (*models.ProductDocument, error)
	Delete(ctx context.Context, id string) error
	DistinctTemplates(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// PostgresProductRepository stores documents as JSONB next to their index columns.
type PostgresProductRepository struct {
	db *sqlx.DB
}

// NewPostgresProductRepository creates a new PostgresProductRepository.
func NewPostgresProductRepository(db *sqlx.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

var _ ProductRepository = (*PostgresProductRepository)(nil)

var pgSortColumns = map[models.SortField]string{
	models.SortCreatedAt:   "created_at",
	models.SortUpdatedAt:   "updated_at",
	models.SortProductName: "product_name",
	models.SortShopName:    "shop_name",
	models.SortPrice:       "price",
	models.SortTotalViews:  "total_views",
	models.SortTotalClicks: "total_clicks",
}

type productRow struct {
	ID       string `db:"id"`
	Document []byte `db:"document"`
}

// Create inserts a new product document.
func (r *PostgresProductRepository) Create(ctx context.Context, doc *models.ProductDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}
	idx := models.IndexOf(doc)

	const q = `
        INSERT INTO products (
            id, owner_id, tier, product_name, shop_name, template_name, status,
            price, total_views, total_clicks, url_tokens, document, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`

	_, err = r.db.ExecContext(ctx, q,
		doc.ID, doc.OwnerID, doc.Tier, idx.ProductName, idx.ShopName, idx.TemplateName, idx.Status,
		idx.Price, idx.TotalViews, idx.TotalClicks, pq.Array(idx.URLTokens), raw, doc.CreatedAt, doc.UpdatedAt,
	)
	return err
}

// GetByID returns a single product by id.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (*models.ProductDocument, error) {
	const q = `SELECT id, document FROM products WHERE id = $1 LIMIT 1`
	return r.getOne(ctx, q, id)
}

// GetByURLToken returns the product owning the share URL token.
func (r *PostgresProductRepository) GetByURLToken(ctx context.Context, token string) (*models.ProductDocument, error) {
	const q = `SELECT id, document FROM products WHERE $1 = ANY(url_tokens) LIMIT 1`
	return r.getOne(ctx, q, token)
}

func (r *PostgresProductRepository) getOne(ctx context.Context, q string, arg interface{}) (*models.ProductDocument, error) {
	var row productRow
	if err := r.db.GetContext(ctx, &row, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return decodeRow(row)
}

// Find returns one page of products matching filter.
func (r *PostgresProductRepository) Find(ctx context.Context, filter *models.ProductFilter, page *models.PageQuery) ([]models.ProductDocument, error) {
	where, args := buildWhere(filter)
	col := pgSortColumns[page.SortBy]
	if col == "" {
		col = pgSortColumns[models.SortCreatedAt]
	}
	dir, cmp := "DESC", "<"
	if page.Order == models.OrderAsc {
		dir, cmp = "ASC", ">"
	}

	if page.After != nil {
		where += fmt.Sprintf(" AND (%s, id) %s ($%d, $%d)", col, cmp, len(args)+1, len(args)+2)
		args = append(args, page.After.Value, page.After.ID)
	}

	q := fmt.Sprintf(`SELECT id, document FROM products %s ORDER BY %s %s, id %s`, where, col, dir, dir)
	if page.Limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, page.Limit)
	}
	return r.selectDocs(ctx, q, args...)
}

// FindAll returns every product matching filter, newest first.
func (r *PostgresProductRepository) FindAll(ctx context.Context, filter *models.ProductFilter) ([]models.ProductDocument, error) {
	where, args := buildWhere(filter)
	q := `SELECT id, document FROM products ` + where + ` ORDER BY created_at DESC, id DESC`
	return r.selectDocs(ctx, q, args...)
}

// Count returns the number of products matching filter.
func (r *PostgresProductRepository) Count(ctx context.Context, filter *models.ProductFilter) (int64, error) {
	where, args := buildWhere(filter)
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM products `+where, args...); err != nil {
		return 0, err
	}
	return total, nil
}

// Update applies fn to the product inside a transaction holding its row lock.
func (r *PostgresProductRepository) Update(ctx context.Context, id string, fn func(doc *models.ProductDocument) error) (*models.ProductDocument, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var row productRow
	if err := tx.GetContext(ctx, &row, `SELECT id, document FROM products WHERE id = $1 FOR UPDATE`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	doc, err := decodeRow(row)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	doc.ID = id

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}
	idx := models.IndexOf(doc)

	const q = `
        UPDATE products SET
            owner_id = $2,
            tier = $3,
            product_name = $4,
            shop_name = $5,
            template_name = $6,
            status = $7,
            price = $8,
            total_views = $9,
            total_clicks = $10,
            url_tokens = $11,
            document = $12,
            updated_at = $13
        WHERE id = $1`

	if _, err := tx.ExecContext(ctx, q,
		id, doc.OwnerID, doc.Tier, idx.ProductName, idx.ShopName, idx.TemplateName, idx.Status,
		idx.Price, idx.TotalViews, idx.TotalClicks, pq.Array(idx.URLTokens), raw, doc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete deletes a product by ID.
func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrProductNotFound
	}
	return nil
}

// DistinctTemplates returns all distinct, non-empty template names.
func (r *PostgresProductRepository) DistinctTemplates(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT template_name FROM products WHERE template_name != '' ORDER BY template_name`
	templates := []string{}
	if err := r.db.SelectContext(ctx, &templates, q); err != nil {
		return nil, err
	}
	return templates, nil
}

// Ping checks the database connection.
func (r *PostgresProductRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresProductRepository) selectDocs(ctx context.Context, q string, args ...interface{}) ([]models.ProductDocument, error) {
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	docs := make([]models.ProductDocument, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeRow(row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

func decodeRow(row productRow) (*models.ProductDocument, error) {
	var doc models.ProductDocument
	if err := json.Unmarshal(row.Document, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", row.ID, err)
	}
	doc.ID = row.ID
	return &doc, nil
}

// buildWhere translates filter into a WHERE clause with positional args.
func buildWhere(filter *models.ProductFilter) (string, []interface{}) {
	where := `WHERE 1=1`
	args := []interface{}{}
	if filter == nil {
		return where, args
	}
	if filter.MatchNone {
		return `WHERE FALSE`, args
	}

	next := func(v interface{}) int {
		args = append(args, v)
		return len(args)
	}

	if filter.Search != "" {
		n := next("%" + escapeLike(filter.Search) + "%")
		where += fmt.Sprintf(" AND (product_name ILIKE $%d OR shop_name ILIKE $%d)", n, n)
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", next(string(filter.Status)))
	}
	if filter.Template != "" {
		where += fmt.Sprintf(" AND template_name = $%d", next(filter.Template))
	}
	if filter.Tier != "" {
		where += fmt.Sprintf(" AND tier = $%d", next(string(filter.Tier)))
	}
	if filter.OwnerID != "" {
		where += fmt.Sprintf(" AND owner_id = $%d", next(filter.OwnerID))
	}
	if filter.CreatedFrom != nil {
		where += fmt.Sprintf(" AND created_at >= $%d", next(*filter.CreatedFrom))
	}
	if filter.CreatedTo != nil {
		where += fmt.Sprintf(" AND created_at <= $%d", next(*filter.CreatedTo))
	}
	if filter.MinPrice != nil {
		where += fmt.Sprintf(" AND price >= $%d", next(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		where += fmt.Sprintf(" AND price <= $%d", next(*filter.MaxPrice))
	}
	if filter.MinViews > 0 {
		where += fmt.Sprintf(" AND total_views >= $%d", next(filter.MinViews))
	}
	if filter.MinClicks > 0 {
		where += fmt.Sprintf(" AND total_clicks >= $%d", next(filter.MinClicks))
	}
	return where, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
