package repositories

import (
	"github.com/gatherly/app/internal/models"
	"gorm.io/gorm"
)

// RSVPRepository defines the interface for RSVP data operations
type RSVPRepository interface {
	CreateRSVP(rsvp *models.RSVP) error
	GetRSVPByID(id uint) (*models.RSVP, error)
	GetRSVPByUserAndEvent(userID, eventID uint) (*models.RSVP, error)
	UpdateStatus(rsvp *models.RSVP, status string) error
	DeleteRSVP(rsvp *models.RSVP) error
	ListByEvent(eventID uint) ([]models.RSVP, error)
	CountByUserAndEvent(userID, eventID uint) (int64, error)
}

// GormRSVPRepository implements RSVPRepository on a gorm database
type GormRSVPRepository struct {
	db *gorm.DB
}

// NewGormRSVPRepository creates a new GormRSVPRepository
func NewGormRSVPRepository(db *gorm.DB) *GormRSVPRepository {
	return &GormRSVPRepository{db: db}
}

// CreateRSVP inserts the RSVP inside a transaction so a persistence
// failure leaves no partial state. The composite unique index on
// (user_id, event_id) rejects a duplicate that slipped past the
// handler's pre-check.
func (r *GormRSVPRepository) CreateRSVP(rsvp *models.RSVP) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(rsvp).Error
	})
}

// GetRSVPByID loads the RSVP with its event, which carries the owner id
// needed for authorization checks.
func (r *GormRSVPRepository) GetRSVPByID(id uint) (*models.RSVP, error) {
	var rsvp models.RSVP
	if err := r.db.Preload("Event").First(&rsvp, id).Error; err != nil {
		return nil, err
	}
	return &rsvp, nil
}

func (r *GormRSVPRepository) GetRSVPByUserAndEvent(userID, eventID uint) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := r.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&rsvp).Error
	if err != nil {
		return nil, err
	}
	return &rsvp, nil
}

func (r *GormRSVPRepository) UpdateStatus(rsvp *models.RSVP, status string) error {
	return r.db.Model(rsvp).Update("status", status).Error
}

func (r *GormRSVPRepository) DeleteRSVP(rsvp *models.RSVP) error {
	return r.db.Delete(rsvp).Error
}

func (r *GormRSVPRepository) ListByEvent(eventID uint) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	err := r.db.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rsvps).Error
	return rsvps, err
}

func (r *GormRSVPRepository) CountByUserAndEvent(userID, eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.RSVP{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count, err
}
