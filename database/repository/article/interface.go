package articleRepo

import (
	"errors"

	"hormelys/models"
)

// ErrNotFound signals an unknown article id.
var ErrNotFound = errors.New("article not found")

// ArticleRepository defines data access for blog articles.
type ArticleRepository interface {
	Create(article *models.Article) error
	GetAll() ([]models.Article, error)
	// GetByID returns the article and increments its view counter.
	GetByID(id string) (*models.Article, error)
	Update(id string, update models.ArticleUpdate) (*models.Article, error)
	Unpublish(id string) (*models.Article, error)
	Delete(id string) error
}
