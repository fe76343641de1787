package handlers

import (
	"net/http"

	"github.com/gatherly/app/internal/auth"
	"github.com/gatherly/app/internal/forms"
	"github.com/gatherly/app/internal/models"
	"github.com/gatherly/app/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles registration, login, and logout
type AuthHandler struct {
	users    repositories.UserRepository
	sessions *auth.SessionManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users repositories.UserRepository, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// RegisterRoutes registers authentication-related routes
func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.Match(getPost, "/login", h.Login)
	e.GET("/logout", h.Logout)
	e.Match(getPost, "/register", h.Register)
}

// Login renders the sign-in form and authenticates submissions. The
// post-login target comes from the next query parameter but falls back
// to the dashboard unless it is a same-site relative path.
func (h *AuthHandler) Login(c echo.Context) error {
	if h.sessions.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/user_index")
	}
	next := c.QueryParam("next")
	if c.Request().Method == http.MethodGet {
		return render(c, h.sessions, http.StatusOK, "login.html", echo.Map{
			"Title": "Sign In",
			"Next":  next,
		})
	}

	var form forms.LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return render(c, h.sessions, http.StatusOK, "login.html", echo.Map{
			"Title":  "Sign In",
			"Next":   next,
			"Errors": forms.ErrorMessages(err),
		})
	}

	user, err := h.users.GetUserByUsername(form.Username)
	if err != nil || !user.CheckPassword(form.Password) {
		// Same message for unknown user and wrong password.
		h.sessions.AddFlash(c, "error", "Invalid username or password")
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	remember := c.FormValue("remember_me") != ""
	if err := h.sessions.Login(c, user, remember); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not establish session")
	}

	if !auth.SafeRedirectTarget(next) {
		next = "/user_index"
	}
	return c.Redirect(http.StatusSeeOther, next)
}

// Logout tears down the session unconditionally.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c); err != nil {
		c.Logger().Errorf("logout: %v", err)
	}
	return c.Redirect(http.StatusSeeOther, "/index")
}

// Register creates a new account.
func (h *AuthHandler) Register(c echo.Context) error {
	if h.sessions.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/user_index")
	}
	if c.Request().Method == http.MethodGet {
		return render(c, h.sessions, http.StatusOK, "register.html", echo.Map{"Title": "Register"})
	}

	var form forms.RegistrationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return render(c, h.sessions, http.StatusOK, "register.html", echo.Map{
			"Title":  "Register",
			"Form":   &form,
			"Errors": forms.ErrorMessages(err),
		})
	}

	fieldErrors := make(map[string]string)
	if taken, err := h.users.UsernameTaken(form.Username, 0); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	} else if taken {
		fieldErrors["username"] = "Please use a different username."
	}
	if _, err := h.users.GetUserByEmail(form.Email); err == nil {
		fieldErrors["email"] = "Please use a different email address."
	}
	if len(fieldErrors) > 0 {
		return render(c, h.sessions, http.StatusOK, "register.html", echo.Map{
			"Title":  "Register",
			"Form":   &form,
			"Errors": fieldErrors,
		})
	}

	user := &models.User{Username: form.Username, Email: form.Email}
	if err := user.SetPassword(form.Password); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}
	if err := h.users.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.sessions.AddFlash(c, "success", "Congratulations, you are now a registered user!")
	return c.Redirect(http.StatusSeeOther, "/login")
}
