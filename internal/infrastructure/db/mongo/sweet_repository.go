package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

const sweetsCollection = "sweets"

// sortFieldKeys maps the service-level sort allow-list onto document keys.
var sortFieldKeys = map[string]string{
	"id":       "_id",
	"name":     "name",
	"price":    "price",
	"quantity": "quantity",
}

// SweetRepository persists catalog entries. A lowercased copy of the name is
// stored alongside the display name so the case-insensitive uniqueness
// checks are exact match lookups rather than regex scans.
type SweetRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewSweetRepository(db *mongo.Database) *SweetRepository {
	return &SweetRepository{db: db, coll: db.Collection(sweetsCollection)}
}

type mongoSweet struct {
	ID           int64   `bson:"_id"`
	Name         string  `bson:"name"`
	NameLower    string  `bson:"name_lower"`
	CategoryID   int64   `bson:"category_id"`
	CategoryName string  `bson:"category_name"`
	Price        float64 `bson:"price"`
	Quantity     int     `bson:"quantity"`
}

func toDomainSweet(m mongoSweet) *domain.Sweet {
	return &domain.Sweet{
		ID:           m.ID,
		Name:         m.Name,
		CategoryID:   m.CategoryID,
		CategoryName: m.CategoryName,
		Price:        m.Price,
		Quantity:     m.Quantity,
	}
}

func toMongoSweet(s *domain.Sweet) mongoSweet {
	return mongoSweet{
		ID:           s.ID,
		Name:         s.Name,
		NameLower:    strings.ToLower(s.Name),
		CategoryID:   s.CategoryID,
		CategoryName: s.CategoryName,
		Price:        s.Price,
		Quantity:     s.Quantity,
	}
}

func (r *SweetRepository) Create(ctx context.Context, sweet *domain.Sweet) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, sweetsCollection)
	if err != nil {
		return nil, err
	}

	doc := toMongoSweet(sweet)
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert sweet: %w", err)
	}

	created := *sweet
	created.ID = id
	return &created, nil
}

func (r *SweetRepository) Update(ctx context.Context, sweet *domain.Sweet) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": sweet.ID}, toMongoSweet(sweet))
	if err != nil {
		return nil, fmt.Errorf("replace sweet: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSweetNotFound
	}
	return sweet, nil
}

func (r *SweetRepository) FindByID(ctx context.Context, id int64) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoSweet
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("find sweet: %w", err)
	}
	return toDomainSweet(m), nil
}

func (r *SweetRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, bson.M{"_id": id})
}

func (r *SweetRepository) ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, bson.M{"name_lower": strings.ToLower(name)})
}

func (r *SweetRepository) ExistsByNameIgnoreCaseExcludingID(ctx context.Context, name string, id int64) (bool, error) {
	return r.exists(ctx, bson.M{
		"name_lower": strings.ToLower(name),
		"_id":        bson.M{"$ne": id},
	})
}

func (r *SweetRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count sweets: %w", err)
	}
	return n > 0, nil
}

func (r *SweetRepository) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSweetNotFound
	}
	return nil
}

// AdjustQuantity applies delta to the stored quantity in one conditional
// update. For decrements the filter requires enough stock, so the read and
// write are atomic with respect to concurrent mutators of the same row; a
// lost race surfaces as ErrPurchaseExceedsStock, never as negative stock.
func (r *SweetRepository) AdjustQuantity(ctx context.Context, id int64, delta int) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["quantity"] = bson.M{"$gte": -delta}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m mongoSweet
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"quantity": delta}}, opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if delta < 0 {
				// Row exists but stock is short, or the row vanished;
				// either way the decrement must not apply.
				exists, exErr := r.ExistsByID(ctx, id)
				if exErr == nil && exists {
					return nil, domain.ErrPurchaseExceedsStock
				}
			}
			return nil, domain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("adjust quantity: %w", err)
	}
	return toDomainSweet(m), nil
}

func (r *SweetRepository) List(ctx context.Context, f ports.ListSweetsFilter) ([]*domain.Sweet, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"category_name": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count sweets: %w", err)
	}

	order := 1
	if f.SortOrder == "DESC" {
		order = -1
	}
	sortKey, ok := sortFieldKeys[f.SortField]
	if !ok {
		sortKey = "_id"
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortKey, Value: order}}).
		SetSkip(int64(f.Page) * int64(f.Size)).
		SetLimit(int64(f.Size))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list sweets: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoSweet
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode sweets: %w", err)
	}

	sweets := make([]*domain.Sweet, 0, len(docs))
	for _, d := range docs {
		sweets = append(sweets, toDomainSweet(d))
	}
	return sweets, total, nil
}

// EnsureIndexes creates the uniqueness and query indexes for the catalog.
func (r *SweetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_lower", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
