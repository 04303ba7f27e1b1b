package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
)

const categoriesCollection = "sweet_categories"

// CategoryRepository persists sweet categories.
type CategoryRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{db: db, coll: db.Collection(categoriesCollection)}
}

type mongoCategory struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

func (r *CategoryRepository) Save(ctx context.Context, category *domain.SweetCategory) (*domain.SweetCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if category.ID == 0 {
		id, err := nextSequence(ctx, r.db, categoriesCollection)
		if err != nil {
			return nil, err
		}
		if _, err := r.coll.InsertOne(ctx, mongoCategory{ID: id, Name: category.Name}); err != nil {
			return nil, fmt.Errorf("insert category: %w", err)
		}
		saved := *category
		saved.ID = id
		return &saved, nil
	}

	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": category.ID}, mongoCategory{ID: category.ID, Name: category.Name}); err != nil {
		return nil, fmt.Errorf("replace category: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.SweetCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoCategory
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &domain.SweetCategory{ID: m.ID, Name: m.Name}, nil
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"name": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	return n > 0, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*domain.SweetCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoCategory
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	categories := make([]*domain.SweetCategory, 0, len(docs))
	for _, d := range docs {
		categories = append(categories, &domain.SweetCategory{ID: d.ID, Name: d.Name})
	}
	return categories, nil
}
