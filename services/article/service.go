package article

import (
	"context"
	"errors"
	"time"

	articleRepo "hormelys/database/repository/article"
	"hormelys/models"
	"hormelys/services/storage"
	"hormelys/utils"

	"go.uber.org/zap"
)

// ErrNotFound signals an unknown article id.
var ErrNotFound = errors.New("article not found")

// imageFolder is the Cloudinary folder for article illustrations.
const imageFolder = "articles"

// Service defines the blog article operations.
type Service interface {
	// Create persists a new article, uploading the optional image first.
	// imagePath may be empty.
	Create(article *models.Article, imagePath string) error
	GetAll() ([]models.Article, error)
	GetByID(id string) (*models.Article, error)
	// Update applies the update, replacing the image when imagePath is set.
	Update(id string, update models.ArticleUpdate, imagePath string) (*models.Article, error)
	Unpublish(id string) (*models.Article, error)
	Delete(id string) error
}

// DefaultArticleService implements Service.
type DefaultArticleService struct {
	Repo    articleRepo.ArticleRepository
	Storage storage.StorageService
}

func (s *DefaultArticleService) uploadImage(imagePath string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Storage.UploadFile(ctx, imagePath, imageFolder)
}

// Create uploads the image, if any, then persists the article.
func (s *DefaultArticleService) Create(article *models.Article, imagePath string) error {
	if imagePath != "" {
		imageURL, err := s.uploadImage(imagePath)
		if err != nil {
			return err
		}
		article.ImageURL = imageURL
		utils.GetLogger().Info("article image uploaded", zap.String("url", imageURL))
	}
	return s.Repo.Create(article)
}

// GetAll returns every article.
func (s *DefaultArticleService) GetAll() ([]models.Article, error) {
	return s.Repo.GetAll()
}

// GetByID returns an article, counting the view.
func (s *DefaultArticleService) GetByID(id string) (*models.Article, error) {
	a, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, articleRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Update applies the changes, replacing the hosted image when a new one is
// provided.
func (s *DefaultArticleService) Update(id string, update models.ArticleUpdate, imagePath string) (*models.Article, error) {
	if imagePath != "" {
		imageURL, err := s.uploadImage(imagePath)
		if err != nil {
			return nil, err
		}
		update.ImageURL = &imageURL
	}
	a, err := s.Repo.Update(id, update)
	if err != nil {
		if errors.Is(err, articleRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Unpublish hides the article from the public site.
func (s *DefaultArticleService) Unpublish(id string) (*models.Article, error) {
	a, err := s.Repo.Unpublish(id)
	if err != nil {
		if errors.Is(err, articleRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Delete removes the article.
func (s *DefaultArticleService) Delete(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, articleRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
