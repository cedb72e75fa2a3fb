package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/GTDGit/showcase_api/internal/models"
)

func TestBuildMongoFilter_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, buildMongoFilter(nil, nil))
	assert.Equal(t, bson.M{}, buildMongoFilter(&models.ProductFilter{}, nil))
}

func TestBuildMongoFilter_MatchNone(t *testing.T) {
	got := buildMongoFilter(&models.ProductFilter{MatchNone: true, Status: models.StatusDraft}, nil)
	assert.Equal(t, bson.M{"_id": bson.M{"$in": bson.A{}}}, got)
}

func TestBuildMongoFilter_Fields(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := buildMongoFilter(&models.ProductFilter{
		Search:      "a.b",
		Status:      models.StatusPublished,
		CreatedFrom: &from,
		MaxPrice:    models.Ptr(50.0),
		MinViews:    5,
	}, nil)

	conds, ok := got["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, conds, 5)

	re := primitive.Regex{Pattern: `a\.b`, Options: "i"}
	assert.Equal(t, bson.M{"$or": bson.A{bson.M{"productName": re}, bson.M{"shopName": re}}}, conds[0])
	assert.Equal(t, bson.M{"status": "published"}, conds[1])
	assert.Equal(t, bson.M{"createdAt": bson.M{"$gte": from}}, conds[2])
	assert.Equal(t, bson.M{"price": bson.M{"$lte": 50.0}}, conds[3])
	assert.Equal(t, bson.M{"totalViews": bson.M{"$gte": int64(5)}}, conds[4])
}

func TestBuildMongoFilter_Keyset(t *testing.T) {
	page := &models.PageQuery{
		SortBy: models.SortTotalViews,
		Order:  models.OrderAsc,
		After:  &models.Keyset{ID: "p9", Value: int64(40)},
	}
	got := buildMongoFilter(&models.ProductFilter{Search: "mug"}, page)

	conds := got["$and"].(bson.A)
	require.Len(t, conds, 2)
	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"totalViews": bson.M{"$gt": int64(40)}},
		bson.M{"totalViews": int64(40), "_id": bson.M{"$gt": "p9"}},
	}}, conds[1])
}

func TestBuildMongoSort(t *testing.T) {
	assert.Equal(t,
		bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		buildMongoSort(&models.PageQuery{}))
	assert.Equal(t,
		bson.D{{Key: "shopName", Value: 1}, {Key: "_id", Value: 1}},
		buildMongoSort(&models.PageQuery{SortBy: models.SortShopName, Order: models.OrderAsc}))
}

func TestToMongoProduct(t *testing.T) {
	doc := testDoc("p1", "Mug", "Shop", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	doc.URLs = []models.ShareURL{{ID: "t1"}}
	doc.Analytics = []models.AnalyticsRecord{{Views: models.Ptr(int64(3)), Clicks: models.Ptr(int64(1))}}

	rec := toMongoProduct(doc, 2)
	assert.Equal(t, "p1", rec.ID)
	assert.Equal(t, "draft", rec.Status)
	assert.Equal(t, 10.0, rec.Price)
	assert.Equal(t, int64(3), rec.TotalViews)
	assert.Equal(t, []string{"t1"}, rec.URLTokens)
	assert.Equal(t, int64(2), rec.Version)

	back := rec.toDocument()
	assert.Equal(t, doc.ID, back.ID)
	assert.True(t, doc.CreatedAt.Equal(back.CreatedAt))
}
