package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/alumni-portal-api/internal/constants"
	"github.com/yukikurage/alumni-portal-api/internal/dto"
	"github.com/yukikurage/alumni-portal-api/internal/media"
	"github.com/yukikurage/alumni-portal-api/internal/models"
	"github.com/yukikurage/alumni-portal-api/internal/repository"
	"gorm.io/gorm"
)

// excerptLength bounds excerpts derived from the article body.
const excerptLength = 200

// NewsService handles news article business logic
type NewsService struct {
	repo  repository.NewsRepository
	media *media.Manager
}

// NewNewsService creates a new NewsService
func NewNewsService(repo repository.NewsRepository, media *media.Manager) *NewsService {
	return &NewsService{
		repo:  repo,
		media: media,
	}
}

// List returns articles newest first
func (s *NewsService) List(ctx context.Context, filter repository.NewsFilter) ([]models.News, error) {
	articles, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	return articles, nil
}

// Get returns an article by ID
func (s *NewsService) Get(ctx context.Context, id uint64) (*models.News, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to find news article: %w", err)
	}
	return article, nil
}

// Create uploads the cover image and inserts the article
func (s *NewsService) Create(ctx context.Context, form dto.NewsForm) (*models.News, error) {
	plan := &media.Plan{}

	image, err := s.media.Reconcile(ctx, plan, constants.MediaKindNews, media.NewRef(), media.Slot{File: form.Image})
	if err != nil {
		return nil, err
	}

	article := &models.News{}
	applyNewsForm(article, form)
	article.Image = image

	if err := s.repo.Create(ctx, article); err != nil {
		s.media.Rollback(ctx, plan)
		return nil, fmt.Errorf("failed to create news article: %w", err)
	}

	return article, nil
}

// Update applies form to article, reconciling the cover image
func (s *NewsService) Update(ctx context.Context, article *models.News, form dto.NewsForm) (*models.News, error) {
	plan := &media.Plan{}

	image, err := s.media.Reconcile(ctx, plan, constants.MediaKindNews, strconv.FormatUint(article.ID, 10), media.Slot{
		Current: article.Image,
		Delete:  form.DeleteImage,
		File:    form.Image,
	})
	if err != nil {
		return nil, err
	}

	updated := *article
	applyNewsForm(&updated, form)
	updated.Image = image

	if err := s.repo.Update(ctx, &updated); err != nil {
		s.media.Rollback(ctx, plan)
		return nil, fmt.Errorf("failed to update news article: %w", err)
	}
	s.media.Commit(ctx, plan)

	return &updated, nil
}

// Delete removes the cover image and then the article
func (s *NewsService) Delete(ctx context.Context, article *models.News) error {
	if article.Image != nil {
		s.media.Cleanup(ctx, *article.Image)
	}

	if err := s.repo.Delete(ctx, article.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsNotFound
		}
		return fmt.Errorf("failed to delete news article: %w", err)
	}
	return nil
}

// SetPublished moves an article between drafts and published articles
func (s *NewsService) SetPublished(ctx context.Context, id uint64, published bool) (time.Time, error) {
	updatedAt, err := s.repo.SetPublished(ctx, id, published)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, ErrNewsNotFound
		}
		return time.Time{}, fmt.Errorf("failed to update news article: %w", err)
	}
	return updatedAt, nil
}

func applyNewsForm(article *models.News, form dto.NewsForm) {
	article.Title = strings.TrimSpace(form.Title)
	article.Content = form.Content
	article.Category = strings.TrimSpace(form.Category)
	article.Author = strings.TrimSpace(form.Author)
	article.Excerpt = strings.TrimSpace(form.Excerpt)
	if article.Excerpt == "" {
		article.Excerpt = deriveExcerpt(form.Content)
	}

	article.Published = form.Published
	if article.Published && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}
}

// deriveExcerpt cuts content at a word boundary.
func deriveExcerpt(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(content) <= excerptLength {
		return content
	}

	runes := []rune(content)[:excerptLength]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > excerptLength/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, ".,;:") + "..."
}
