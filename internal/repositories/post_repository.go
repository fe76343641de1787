package repositories

import (
	"github.com/gatherly/app/internal/models"
	"gorm.io/gorm"
)

// PostPage is one fixed page of posts, newest first.
type PostPage struct {
	Posts   []models.Post
	Page    int
	PerPage int
	Total   int64
}

func (p *PostPage) HasPrev() bool { return p.Page > 1 }

func (p *PostPage) HasNext() bool {
	return int64(p.Page*p.PerPage) < p.Total
}

func (p *PostPage) PrevPage() int { return p.Page - 1 }
func (p *PostPage) NextPage() int { return p.Page + 1 }

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	PostsByUser(userID uint, page, perPage int) (*PostPage, error)
}

// GormPostRepository implements PostRepository on a gorm database
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *GormPostRepository) PostsByUser(userID uint, page, perPage int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	result := &PostPage{Page: page, PerPage: perPage}
	query := r.db.Model(&models.Post{}).Where("user_id = ?", userID)
	if err := query.Count(&result.Total).Error; err != nil {
		return nil, err
	}
	err := query.Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&result.Posts).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
