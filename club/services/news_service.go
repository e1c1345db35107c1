package services

import (
	"errors"
	"fmt"
	"time"

	"cueu-api/club/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var ErrNewsNotFound = errors.New("news article not found")

type NewsService struct {
	db *gorm.DB
}

func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

// GetPublished returns published articles, newest first
func (s *NewsService) GetPublished(limit int) ([]models.News, error) {
	if limit <= 0 {
		limit = 20
	}

	var news []models.News
	err := s.db.
		Where("published = ?", true).
		Order("published_at DESC").
		Limit(limit).
		Find(&news).Error

	return news, err
}

func (s *NewsService) GetBySlug(articleSlug string) (*models.News, error) {
	var article models.News
	if err := s.db.Where("slug = ? AND published = ?", articleSlug, true).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (s *NewsService) GetByID(id uint) (*models.News, error) {
	var article models.News
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (s *NewsService) Create(authorID uint, req models.CreateNewsRequest) (*models.News, error) {
	article := models.News{
		Title:     req.Title,
		Slug:      s.uniqueSlug(req.Title),
		Body:      req.Body,
		AuthorID:  authorID,
		Published: req.Published,
	}

	if article.Published {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.db.Create(&article).Error; err != nil {
		return nil, err
	}

	return &article, nil
}

func (s *NewsService) Update(id uint, req models.UpdateNewsRequest) (*models.News, error) {
	article, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != article.Title {
		article.Title = *req.Title
		article.Slug = s.uniqueSlug(*req.Title)
	}
	if req.Body != nil {
		article.Body = *req.Body
	}
	if req.Published != nil {
		// First publication stamps the date, unpublishing keeps it
		if *req.Published && !article.Published && article.PublishedAt == nil {
			now := time.Now()
			article.PublishedAt = &now
		}
		article.Published = *req.Published
	}

	if err := s.db.Save(article).Error; err != nil {
		return nil, err
	}

	return article, nil
}

func (s *NewsService) Delete(id uint) error {
	result := s.db.Delete(&models.News{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}
	return nil
}

// uniqueSlug derives a slug from the title, suffixing on collision
func (s *NewsService) uniqueSlug(title string) string {
	base := slug.Make(title)
	candidate := base

	for i := 2; ; i++ {
		var count int64
		s.db.Model(&models.News{}).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
