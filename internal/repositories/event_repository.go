package repositories

import (
	"time"

	"github.com/gatherly/app/internal/models"
	"gorm.io/gorm"
)

// EventPage is one fixed page of events plus enough bookkeeping for
// prev/next links.
type EventPage struct {
	Events  []models.Event
	Page    int
	PerPage int
	Total   int64
}

func (p *EventPage) HasPrev() bool { return p.Page > 1 }

func (p *EventPage) HasNext() bool {
	return int64(p.Page*p.PerPage) < p.Total
}

func (p *EventPage) PrevPage() int { return p.Page - 1 }
func (p *EventPage) NextPage() int { return p.Page + 1 }

// EventRepository defines the interface for event data operations
type EventRepository interface {
	CreateEvent(event *models.Event) error
	GetEventByID(id uint) (*models.Event, error)
	DeleteEvent(event *models.Event) error
	UpcomingByOwner(ownerID uint, now time.Time, page, perPage int) (*EventPage, error)
	PastByOwner(ownerID uint, now time.Time, page, perPage int) (*EventPage, error)
	UpcomingAll(now time.Time) ([]models.Event, error)
}

// GormEventRepository implements EventRepository on a gorm database
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) CreateEvent(event *models.Event) error {
	return r.db.Create(event).Error
}

func (r *GormEventRepository) GetEventByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes the event and its RSVPs in one transaction. The
// cascade is explicit so it holds regardless of driver foreign-key
// enforcement.
func (r *GormEventRepository) DeleteEvent(event *models.Event) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.RSVP{}).Error; err != nil {
			return err
		}
		return tx.Delete(event).Error
	})
}

func (r *GormEventRepository) UpcomingByOwner(ownerID uint, now time.Time, page, perPage int) (*EventPage, error) {
	query := r.db.Model(&models.Event{}).
		Where("user_id = ? AND starts_at > ?", ownerID, now)
	return paginateEvents(query, "starts_at ASC", page, perPage)
}

func (r *GormEventRepository) PastByOwner(ownerID uint, now time.Time, page, perPage int) (*EventPage, error) {
	query := r.db.Model(&models.Event{}).
		Where("user_id = ? AND starts_at < ?", ownerID, now)
	return paginateEvents(query, "starts_at DESC", page, perPage)
}

// UpcomingAll returns every event starting at or after now, soonest
// first. The explore page is unpaginated.
func (r *GormEventRepository) UpcomingAll(now time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("starts_at >= ?", now).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}

func paginateEvents(query *gorm.DB, order string, page, perPage int) (*EventPage, error) {
	if page < 1 {
		page = 1
	}
	result := &EventPage{Page: page, PerPage: perPage}
	if err := query.Count(&result.Total).Error; err != nil {
		return nil, err
	}
	err := query.Order(order).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&result.Events).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
