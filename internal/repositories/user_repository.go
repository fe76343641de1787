package repositories

import (
	"time"

	"github.com/gatherly/app/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	TouchLastSeen(id uint, seen time.Time) error
	UsernameTaken(username string, excludeID uint) (bool, error)
}

// GormUserRepository implements UserRepository on a gorm database
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// TouchLastSeen persists the last-seen timestamp without rewriting the
// rest of the row.
func (r *GormUserRepository) TouchLastSeen(id uint, seen time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_seen", seen).Error
}

// UsernameTaken reports whether another user already holds the username.
// excludeID carves out the user performing a rename.
func (r *GormUserRepository) UsernameTaken(username string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
