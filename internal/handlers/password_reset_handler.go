package handlers

import (
	"fmt"
	"net/http"

	"github.com/gatherly/app/internal/auth"
	"github.com/gatherly/app/internal/forms"
	"github.com/gatherly/app/internal/repositories"
	"github.com/gatherly/app/pkg/mailer"
	"github.com/gatherly/app/pkg/token"
	"github.com/labstack/echo/v4"
)

// PasswordResetHandler handles the email-based password reset flow.
type PasswordResetHandler struct {
	users    repositories.UserRepository
	tokens   *token.ResetIssuer
	mail     mailer.Mailer
	sessions *auth.SessionManager
	baseURL  string
}

// NewPasswordResetHandler creates a new PasswordResetHandler
func NewPasswordResetHandler(users repositories.UserRepository, tokens *token.ResetIssuer, mail mailer.Mailer, sessions *auth.SessionManager, baseURL string) *PasswordResetHandler {
	return &PasswordResetHandler{users: users, tokens: tokens, mail: mail, sessions: sessions, baseURL: baseURL}
}

// RegisterRoutes registers password-reset routes
func (h *PasswordResetHandler) RegisterRoutes(e *echo.Echo) {
	e.Match(getPost, "/reset_password_request", h.Request)
	e.Match(getPost, "/reset_password/:token", h.Reset)
}

// Request emails a reset link when the address is known. The flash is
// identical either way, so the form cannot be used to probe which
// emails are registered.
func (h *PasswordResetHandler) Request(c echo.Context) error {
	if h.sessions.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/index")
	}
	if c.Request().Method == http.MethodGet {
		return render(c, h.sessions, http.StatusOK, "reset_password_request.html", echo.Map{"Title": "Reset Password"})
	}

	var form forms.ResetPasswordRequestForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return render(c, h.sessions, http.StatusOK, "reset_password_request.html", echo.Map{
			"Title":  "Reset Password",
			"Errors": forms.ErrorMessages(err),
		})
	}

	if user, err := h.users.GetUserByEmail(form.Email); err == nil {
		if err := h.sendResetEmail(user.ID, user.Email); err != nil {
			c.Logger().Errorf("send reset email to user %d: %v", user.ID, err)
		}
	}

	h.sessions.AddFlash(c, "success", "Check your email for the instructions to reset your password")
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *PasswordResetHandler) sendResetEmail(userID uint, email string) error {
	tok, err := h.tokens.Issue(userID)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(
		"To reset your password, visit the following link:\n\n%s/reset_password/%s\n\nIf you did not request a password reset, simply ignore this message.",
		h.baseURL, tok,
	)
	return h.mail.Send(email, "Reset Your Password", body)
}

// Reset lets the holder of a valid token set a new password. Invalid
// or expired tokens redirect home with no detail.
func (h *PasswordResetHandler) Reset(c echo.Context) error {
	if h.sessions.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/index")
	}

	tok := c.Param("token")
	userID, err := h.tokens.Verify(tok)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/index")
	}
	user, err := h.users.GetUserByID(userID)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/index")
	}

	if c.Request().Method == http.MethodGet {
		return render(c, h.sessions, http.StatusOK, "reset_password.html", echo.Map{
			"Title": "Reset Password",
			"Token": tok,
		})
	}

	var form forms.ResetPasswordForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return render(c, h.sessions, http.StatusOK, "reset_password.html", echo.Map{
			"Title":  "Reset Password",
			"Token":  tok,
			"Errors": forms.ErrorMessages(err),
		})
	}

	if err := user.SetPassword(form.Password); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}
	if err := h.users.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.sessions.AddFlash(c, "success", "Your password has been reset.")
	return c.Redirect(http.StatusSeeOther, "/login")
}
