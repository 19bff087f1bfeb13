package articleRepo

import (
	"context"
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

const collectionName = "articles"

// MongoArticleRepo implements ArticleRepository using MongoDB.
type MongoArticleRepo struct {
	manager   *database.Manager
	indexOnce sync.Once
}

// NewMongoArticleRepo creates a new ArticleRepository backed by the shared
// connection manager.
func NewMongoArticleRepo(manager *database.Manager) ArticleRepository {
	return &MongoArticleRepo{manager: manager}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoArticleRepo) collection(ctx context.Context) (*mongo.Collection, error) {
	coll, err := r.manager.Collection(ctx, collectionName)
	if err != nil {
		return nil, err
	}
	r.indexOnce.Do(func() {
		idxCtx, cancel := newContext(10 * time.Second)
		defer cancel()
		indexModels := []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "published", Value: 1}, {Key: "date", Value: -1}}},
		}
		if _, idxErr := coll.Indexes().CreateMany(idxCtx, indexModels); idxErr != nil {
			fmt.Printf("failed to create indexes: %v\n", idxErr)
		}
	})
	return coll, nil
}

// Create inserts a new article document.
func (r *MongoArticleRepo) Create(article *models.Article) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve articles collection: %w", err)
	}

	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.Date.IsZero() {
		article.Date = time.Now()
	}

	if _, err := coll.InsertOne(ctx, article); err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

// GetAll retrieves all articles, newest first.
func (r *MongoArticleRepo) GetAll() ([]models.Article, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve articles collection: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []models.Article
	for cursor.Next(ctx) {
		var a models.Article
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}
	return articles, nil
}

// GetByID retrieves an article and bumps its view counter atomically.
func (r *MongoArticleRepo) GetByID(id string) (*models.Article, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve articles collection: %w", err)
	}

	update := bson.M{"$inc": bson.M{"views": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var article models.Article
	if err := coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&article); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch article %s: %w", id, err)
	}
	return &article, nil
}

// Update applies the non-nil fields of update and returns the new document.
func (r *MongoArticleRepo) Update(id string, update models.ArticleUpdate) (*models.Article, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve articles collection: %w", err)
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Published != nil {
		set["published"] = *update.Published
	}
	if update.ImageURL != nil {
		set["imageUrl"] = *update.ImageURL
	}
	if len(set) == 0 {
		return r.getByIDNoCount(ctx, coll, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var article models.Article
	if err := coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&article); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update article %s: %w", id, err)
	}
	return &article, nil
}

// Unpublish hides an article from the public site without deleting it.
func (r *MongoArticleRepo) Unpublish(id string) (*models.Article, error) {
	published := false
	return r.Update(id, models.ArticleUpdate{Published: &published})
}

// Delete removes an article document by its ID.
func (r *MongoArticleRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve articles collection: %w", err)
	}

	result, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete article %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoArticleRepo) getByIDNoCount(ctx context.Context, coll *mongo.Collection, id string) (*models.Article, error) {
	var article models.Article
	if err := coll.FindOne(ctx, bson.M{"id": id}).Decode(&article); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch article %s: %w", id, err)
	}
	return &article, nil
}
