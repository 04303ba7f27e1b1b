package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository persists user accounts with numeric ids and a unique email
// index. The index, not the service-level existence check, is what actually
// prevents two concurrent registrations of the same email.
type UserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID       int64  `bson:"_id"`
	Username string `bson:"username"`
	EmailID  string `bson:"email_id"`
	Password string `bson:"password"`
	Role     string `bson:"role"`
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if user.ID == 0 {
		id, err := nextSequence(ctx, r.db, usersCollection)
		if err != nil {
			return nil, err
		}
		doc := mongoUser{
			ID:       id,
			Username: user.Username,
			EmailID:  user.EmailID,
			Password: user.Password,
			Role:     string(user.Role),
		}
		if _, err := r.coll.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrEmailExists
			}
			return nil, fmt.Errorf("insert user: %w", err)
		}
		saved := *user
		saved.ID = id
		return &saved, nil
	}

	doc := mongoUser{
		ID:       user.ID,
		Username: user.Username,
		EmailID:  user.EmailID,
		Password: user.Password,
		Role:     string(user.Role),
	}
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, doc); err != nil {
		return nil, fmt.Errorf("replace user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email_id": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"email_id": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &domain.User{
		ID:       mu.ID,
		Username: mu.Username,
		EmailID:  mu.EmailID,
		Password: mu.Password,
		Role:     domain.Role(mu.Role),
	}, nil
}

// EnsureIndexes creates the unique email index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
