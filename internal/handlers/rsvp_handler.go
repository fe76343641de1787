package handlers

import (
	"fmt"
	"net/http"

	"github.com/gatherly/app/internal/auth"
	"github.com/gatherly/app/internal/models"
	"github.com/gatherly/app/internal/repositories"
	"github.com/labstack/echo/v4"
)

// RSVPHandler handles RSVP creation plus the owner-only approval and
// removal actions.
type RSVPHandler struct {
	rsvps    repositories.RSVPRepository
	events   repositories.EventRepository
	sessions *auth.SessionManager
}

// NewRSVPHandler creates a new RSVPHandler
func NewRSVPHandler(rsvps repositories.RSVPRepository, events repositories.EventRepository, sessions *auth.SessionManager) *RSVPHandler {
	return &RSVPHandler{rsvps: rsvps, events: events, sessions: sessions}
}

// RegisterRoutes registers RSVP-related routes
func (h *RSVPHandler) RegisterRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.POST("/rsvp/:event_id", h.Create, requireLogin)
	e.GET("/rsvp/approval/:rsvp_id/:status", h.Approve, requireLogin)
	e.GET("/rsvp/removal/:rsvp_id", h.Remove, requireLogin)
}

// Create records the current user's RSVP for an event. A second
// attempt for the same event warns and changes nothing; the unique
// index on (user_id, event_id) covers the race between check and
// insert.
func (h *RSVPHandler) Create(c echo.Context) error {
	eventID, err := paramID(c, "event_id")
	if err != nil {
		return err
	}
	event, err := h.events.GetEventByID(eventID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	current := h.sessions.CurrentUser(c)
	detailURL := fmt.Sprintf("/event/%d", event.ID)

	if _, err := h.rsvps.GetRSVPByUserAndEvent(current.ID, event.ID); err == nil {
		h.sessions.AddFlash(c, "warning", "You have already RSVPed for this event.")
		return c.Redirect(http.StatusSeeOther, detailURL)
	}

	rsvp := &models.RSVP{
		UserID:  current.ID,
		EventID: event.ID,
		Status:  models.RSVPStatusPending,
	}
	if err := h.rsvps.CreateRSVP(rsvp); err != nil {
		c.Logger().Errorf("create rsvp for user %d event %d: %v", current.ID, event.ID, err)
		h.sessions.AddFlash(c, "error", "Failed to RSVP for the event.")
		return c.Redirect(http.StatusSeeOther, detailURL)
	}

	h.sessions.AddFlash(c, "success", "Successfully RSVPed for the event!")
	return c.Redirect(http.StatusSeeOther, detailURL)
}

// Approve sets an RSVP's status. Only the owner of the event may do
// this, and only to a status in the closed set.
func (h *RSVPHandler) Approve(c echo.Context) error {
	rsvpID, err := paramID(c, "rsvp_id")
	if err != nil {
		return err
	}
	rsvp, err := h.rsvps.GetRSVPByID(rsvpID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if h.sessions.CurrentUser(c).ID != rsvp.Event.UserID {
		return c.NoContent(http.StatusForbidden)
	}

	status := c.Param("status")
	if !models.ValidRSVPStatus(status) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid RSVP status")
	}
	if err := h.rsvps.UpdateStatus(rsvp, status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.sessions.AddFlash(c, "success", "RSVP status updated.")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/event/%d", rsvp.EventID))
}

// Remove deletes a participant's RSVP. Owner-only.
func (h *RSVPHandler) Remove(c echo.Context) error {
	rsvpID, err := paramID(c, "rsvp_id")
	if err != nil {
		return err
	}
	rsvp, err := h.rsvps.GetRSVPByID(rsvpID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if h.sessions.CurrentUser(c).ID != rsvp.Event.UserID {
		return c.NoContent(http.StatusForbidden)
	}

	if err := h.rsvps.DeleteRSVP(rsvp); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.sessions.AddFlash(c, "success", "RSVP removed.")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/event/%d", rsvp.EventID))
}
