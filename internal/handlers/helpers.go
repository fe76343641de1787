package handlers

import (
	"net/http"
	"strconv"

	"github.com/gatherly/app/internal/auth"
	"github.com/labstack/echo/v4"
)

var getPost = []string{http.MethodGet, http.MethodPost}

// render executes a page template with the ambient data every layout
// needs: the current user and any queued flash messages.
func render(c echo.Context, sessions *auth.SessionManager, code int, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	data["CurrentUser"] = sessions.CurrentUser(c)
	data["Flashes"] = sessions.Flashes(c)
	return c.Render(code, name, data)
}

// paramID parses a numeric path parameter. Anything that is not a
// positive integer cannot name a record, so it reads as not found.
func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return uint(id), nil
}

// pageParam reads the page query parameter, defaulting to the first
// page on anything unparseable.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
