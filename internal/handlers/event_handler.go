package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gatherly/app/internal/auth"
	"github.com/gatherly/app/internal/forms"
	"github.com/gatherly/app/internal/models"
	"github.com/gatherly/app/internal/repositories"
	"github.com/labstack/echo/v4"
)

// Events per dashboard page, for each of the upcoming and past lists.
const eventsPerPage = 10

// EventHandler handles the event lifecycle: create, detail, delete,
// dashboard, and explore.
type EventHandler struct {
	events   repositories.EventRepository
	rsvps    repositories.RSVPRepository
	sessions *auth.SessionManager
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(events repositories.EventRepository, rsvps repositories.RSVPRepository, sessions *auth.SessionManager) *EventHandler {
	return &EventHandler{events: events, rsvps: rsvps, sessions: sessions}
}

// RegisterRoutes registers event-related routes
func (h *EventHandler) RegisterRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.Match(getPost, "/", h.Index)
	e.Match(getPost, "/index", h.Index)
	e.Match(getPost, "/create_event", h.CreateEvent, requireLogin)
	e.GET("/event/:event_id", h.EventDetail)
	e.POST("/remove_event/:event_id", h.RemoveEvent, requireLogin)
	e.Match(getPost, "/user_index", h.Dashboard, requireLogin)
	e.GET("/explore", h.Explore)
}

// Index renders the public landing page.
func (h *EventHandler) Index(c echo.Context) error {
	return render(c, h.sessions, http.StatusOK, "index.html", echo.Map{"Title": "Home"})
}

// CreateEvent renders the event form and handles submissions. The
// separate date and time fields combine into a single timestamp.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	if c.Request().Method == http.MethodGet {
		return render(c, h.sessions, http.StatusOK, "create_event.html", echo.Map{"Title": "Create Event"})
	}

	var form forms.EventForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return render(c, h.sessions, http.StatusOK, "create_event.html", echo.Map{
			"Title":  "Create Event",
			"Form":   &form,
			"Errors": forms.ErrorMessages(err),
		})
	}
	startsAt, err := form.StartsAt()
	if err != nil {
		return render(c, h.sessions, http.StatusOK, "create_event.html", echo.Map{
			"Title":  "Create Event",
			"Form":   &form,
			"Errors": map[string]string{"date": "Invalid date or time format."},
		})
	}

	event := &models.Event{
		Name:        form.Name,
		Description: form.Description,
		Location:    form.Location,
		StartsAt:    startsAt,
		UserID:      h.sessions.CurrentUser(c).ID,
	}
	if err := h.events.CreateEvent(event); err != nil {
		c.Logger().Errorf("create event: %v", err)
		h.sessions.AddFlash(c, "error", "Failed to create the event.")
		return render(c, h.sessions, http.StatusOK, "create_event.html", echo.Map{
			"Title": "Create Event",
			"Form":  &form,
		})
	}

	h.sessions.AddFlash(c, "success", "Your event has been created!")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/event/%d", event.ID))
}

// EventDetail renders the public detail page for one event.
func (h *EventHandler) EventDetail(c echo.Context) error {
	id, err := paramID(c, "event_id")
	if err != nil {
		return err
	}
	event, err := h.events.GetEventByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	rsvps, err := h.rsvps.ListByEvent(event.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	current := h.sessions.CurrentUser(c)
	isOwner := current != nil && current.ID == event.UserID
	return render(c, h.sessions, http.StatusOK, "event_detail.html", echo.Map{
		"Title":   event.Name,
		"Event":   event,
		"RSVPs":   rsvps,
		"IsOwner": isOwner,
	})
}

// RemoveEvent deletes an event and its RSVPs. Only the owner may
// delete; RSVP removal already worked that way and deletion now
// matches it.
func (h *EventHandler) RemoveEvent(c echo.Context) error {
	id, err := paramID(c, "event_id")
	if err != nil {
		return err
	}
	event, err := h.events.GetEventByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if h.sessions.CurrentUser(c).ID != event.UserID {
		return c.NoContent(http.StatusForbidden)
	}
	if err := h.events.DeleteEvent(event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.sessions.AddFlash(c, "success", "Event successfully deleted.")
	return c.Redirect(http.StatusSeeOther, "/user_index")
}

// Dashboard partitions the current user's events into upcoming and
// past relative to now. Upcoming is soonest-first, past is
// most-recent-first, both paginated independently.
func (h *EventHandler) Dashboard(c echo.Context) error {
	current := h.sessions.CurrentUser(c)
	page := pageParam(c)
	now := time.Now().UTC()

	upcoming, err := h.events.UpcomingByOwner(current.ID, now, page, eventsPerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	past, err := h.events.PastByOwner(current.ID, now, page, eventsPerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return render(c, h.sessions, http.StatusOK, "user_index.html", echo.Map{
		"Title":    "My Events",
		"Upcoming": upcoming,
		"Past":     past,
	})
}

// Explore lists every future event, soonest first.
func (h *EventHandler) Explore(c echo.Context) error {
	events, err := h.events.UpcomingAll(time.Now().UTC())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return render(c, h.sessions, http.StatusOK, "explore.html", echo.Map{
		"Title":  "Explore",
		"Events": events,
	})
}
