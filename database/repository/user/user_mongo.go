package userRepo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hormelys/database"
	"hormelys/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "users"

var (
	// ErrDuplicate signals that the email or username is already registered.
	ErrDuplicate = errors.New("user already exists")
	// ErrNotFound signals an unknown user.
	ErrNotFound = errors.New("user not found")
)

// UserRepository defines data access for back-office users.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	manager   *database.Manager
	indexOnce sync.Once
}

// NewMongoUserRepo creates a new UserRepository backed by the shared
// connection manager.
func NewMongoUserRepo(manager *database.Manager) UserRepository {
	return &MongoUserRepo{manager: manager}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoUserRepo) collection(ctx context.Context) (*mongo.Collection, error) {
	coll, err := r.manager.Collection(ctx, collectionName)
	if err != nil {
		return nil, err
	}
	r.indexOnce.Do(func() {
		idxCtx, cancel := newContext(10 * time.Second)
		defer cancel()
		indexModels := []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		}
		if _, idxErr := coll.Indexes().CreateMany(idxCtx, indexModels); idxErr != nil {
			fmt.Printf("failed to create indexes: %v\n", idxErr)
		}
	})
	return coll, nil
}

// Create inserts a new user document.
func (r *MongoUserRepo) Create(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve users collection: %w", err)
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by its email address.
func (r *MongoUserRepo) GetByEmail(email string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users collection: %w", err)
	}

	var user models.User
	if err := coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users collection: %w", err)
	}

	var user models.User
	if err := coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}
