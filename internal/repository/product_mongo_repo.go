package repository

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/utils"
)

const mongoUpdateAttempts = 3

// MongoProductRepository stores one record per product: the index fields at
// the top level and the full document embedded under "document".
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database, collection string) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(collection)}
}

var _ ProductRepository = (*MongoProductRepository)(nil)

type mongoProduct struct {
	ID           string                 `bson:"_id"`
	OwnerID      string                 `bson:"ownerId"`
	Tier         string                 `bson:"tier"`
	ProductName  string                 `bson:"productName"`
	ShopName     string                 `bson:"shopName"`
	TemplateName string                 `bson:"templateName"`
	Status       string                 `bson:"status"`
	Price        float64                `bson:"price"`
	TotalViews   int64                  `bson:"totalViews"`
	TotalClicks  int64                  `bson:"totalClicks"`
	URLTokens    []string               `bson:"urlTokens"`
	Document     models.ProductDocument `bson:"document"`
	Version      int64                  `bson:"version"`
	CreatedAt    time.Time              `bson:"createdAt"`
	UpdatedAt    time.Time              `bson:"updatedAt"`
}

var mongoSortFields = map[models.SortField]string{
	models.SortCreatedAt:   "createdAt",
	models.SortUpdatedAt:   "updatedAt",
	models.SortProductName: "productName",
	models.SortShopName:    "shopName",
	models.SortPrice:       "price",
	models.SortTotalViews:  "totalViews",
	models.SortTotalClicks: "totalClicks",
}

func toMongoProduct(doc *models.ProductDocument, version int64) mongoProduct {
	idx := models.IndexOf(doc)
	return mongoProduct{
		ID:           doc.ID,
		OwnerID:      doc.OwnerID,
		Tier:         string(doc.Tier),
		ProductName:  idx.ProductName,
		ShopName:     idx.ShopName,
		TemplateName: idx.TemplateName,
		Status:       string(idx.Status),
		Price:        idx.Price,
		TotalViews:   idx.TotalViews,
		TotalClicks:  idx.TotalClicks,
		URLTokens:    idx.URLTokens,
		Document:     *doc,
		Version:      version,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

func (p *mongoProduct) toDocument() *models.ProductDocument {
	doc := p.Document
	doc.ID = p.ID
	doc.CreatedAt = doc.CreatedAt.UTC()
	doc.UpdatedAt = doc.UpdatedAt.UTC()
	return &doc
}

// EnsureIndexes creates the indexes backing the listing queries.
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "tier", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "urlTokens", Value: 1}}},
	})
	return err
}

// Create inserts a new product document.
func (r *MongoProductRepository) Create(ctx context.Context, doc *models.ProductDocument) error {
	_, err := r.coll.InsertOne(ctx, toMongoProduct(doc, 1))
	return err
}

// GetByID returns a single product by id.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.ProductDocument, error) {
	rec, err := r.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return rec.toDocument(), nil
}

// GetByURLToken returns the product owning the share URL token.
func (r *MongoProductRepository) GetByURLToken(ctx context.Context, token string) (*models.ProductDocument, error) {
	rec, err := r.findOne(ctx, bson.M{"urlTokens": token})
	if err != nil {
		return nil, err
	}
	return rec.toDocument(), nil
}

func (r *MongoProductRepository) findOne(ctx context.Context, filter bson.M) (*mongoProduct, error) {
	var rec mongoProduct
	if err := r.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Find returns one page of products matching filter.
func (r *MongoProductRepository) Find(ctx context.Context, filter *models.ProductFilter, page *models.PageQuery) ([]models.ProductDocument, error) {
	opts := options.Find().SetSort(buildMongoSort(page))
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}
	return r.findMany(ctx, buildMongoFilter(filter, page), opts)
}

// FindAll returns every product matching filter, newest first.
func (r *MongoProductRepository) FindAll(ctx context.Context, filter *models.ProductFilter) ([]models.ProductDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return r.findMany(ctx, buildMongoFilter(filter, nil), opts)
}

func (r *MongoProductRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.ProductDocument, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []mongoProduct
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	docs := make([]models.ProductDocument, 0, len(recs))
	for i := range recs {
		docs = append(docs, *recs[i].toDocument())
	}
	return docs, nil
}

// Count returns the number of products matching filter.
func (r *MongoProductRepository) Count(ctx context.Context, filter *models.ProductFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, buildMongoFilter(filter, nil))
}

// Update applies fn and replaces the record if nobody wrote it in between.
// Concurrent writers are retried a few times before ErrConflict surfaces.
func (r *MongoProductRepository) Update(ctx context.Context, id string, fn func(doc *models.ProductDocument) error) (*models.ProductDocument, error) {
	for attempt := 0; attempt < mongoUpdateAttempts; attempt++ {
		rec, err := r.findOne(ctx, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		doc := rec.toDocument()
		if err := fn(doc); err != nil {
			return nil, err
		}
		doc.ID = id

		res, err := r.coll.ReplaceOne(ctx,
			bson.M{"_id": id, "version": rec.Version},
			toMongoProduct(doc, rec.Version+1),
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			return doc, nil
		}
	}
	return nil, utils.ErrConflict
}

// Delete deletes a product by ID.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrProductNotFound
	}
	return nil
}

// DistinctTemplates returns all distinct, non-empty template names.
func (r *MongoProductRepository) DistinctTemplates(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "templateName", bson.M{"templateName": bson.M{"$ne": ""}})
	if err != nil {
		return nil, err
	}
	templates := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			templates = append(templates, s)
		}
	}
	sort.Strings(templates)
	return templates, nil
}

// Ping checks the server connection.
func (r *MongoProductRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

// buildMongoSort orders by the page's sort field with _id as tie-breaker.
func buildMongoSort(page *models.PageQuery) bson.D {
	field := mongoSortFields[page.SortBy]
	if field == "" {
		field = mongoSortFields[models.SortCreatedAt]
	}
	dir := -1
	if page.Order == models.OrderAsc {
		dir = 1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

// buildMongoFilter translates filter, plus the keyset of page when given,
// into a query document. Conditions are ANDed so the search $or and the
// keyset $or never collide.
func buildMongoFilter(filter *models.ProductFilter, page *models.PageQuery) bson.M {
	conds := bson.A{}

	if filter != nil {
		if filter.MatchNone {
			return bson.M{"_id": bson.M{"$in": bson.A{}}}
		}
		if filter.Search != "" {
			re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
			conds = append(conds, bson.M{"$or": bson.A{
				bson.M{"productName": re},
				bson.M{"shopName": re},
			}})
		}
		if filter.Status != "" {
			conds = append(conds, bson.M{"status": string(filter.Status)})
		}
		if filter.Template != "" {
			conds = append(conds, bson.M{"templateName": filter.Template})
		}
		if filter.Tier != "" {
			conds = append(conds, bson.M{"tier": string(filter.Tier)})
		}
		if filter.OwnerID != "" {
			conds = append(conds, bson.M{"ownerId": filter.OwnerID})
		}
		if filter.CreatedFrom != nil || filter.CreatedTo != nil {
			rng := bson.M{}
			if filter.CreatedFrom != nil {
				rng["$gte"] = *filter.CreatedFrom
			}
			if filter.CreatedTo != nil {
				rng["$lte"] = *filter.CreatedTo
			}
			conds = append(conds, bson.M{"createdAt": rng})
		}
		if filter.MinPrice != nil || filter.MaxPrice != nil {
			rng := bson.M{}
			if filter.MinPrice != nil {
				rng["$gte"] = *filter.MinPrice
			}
			if filter.MaxPrice != nil {
				rng["$lte"] = *filter.MaxPrice
			}
			conds = append(conds, bson.M{"price": rng})
		}
		if filter.MinViews > 0 {
			conds = append(conds, bson.M{"totalViews": bson.M{"$gte": filter.MinViews}})
		}
		if filter.MinClicks > 0 {
			conds = append(conds, bson.M{"totalClicks": bson.M{"$gte": filter.MinClicks}})
		}
	}

	if page != nil && page.After != nil {
		field := mongoSortFields[page.SortBy]
		if field == "" {
			field = mongoSortFields[models.SortCreatedAt]
		}
		op := "$lt"
		if page.Order == models.OrderAsc {
			op = "$gt"
		}
		conds = append(conds, bson.M{"$or": bson.A{
			bson.M{field: bson.M{op: page.After.Value}},
			bson.M{field: page.After.Value, "_id": bson.M{op: page.After.ID}},
		}})
	}

	if len(conds) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": conds}
}
