package handlers

import (
	"fmt"
	"net/http"

	"github.com/gatherly/app/internal/auth"
	"github.com/gatherly/app/internal/forms"
	"github.com/gatherly/app/internal/models"
	"github.com/gatherly/app/internal/repositories"
	"github.com/labstack/echo/v4"
)

const postsPerPage = 3

// ProfileHandler handles profile pages, profile editing, posts, and
// the follow graph.
type ProfileHandler struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	follows  repositories.FollowRepository
	sessions *auth.SessionManager
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(users repositories.UserRepository, posts repositories.PostRepository, follows repositories.FollowRepository, sessions *auth.SessionManager) *ProfileHandler {
	return &ProfileHandler{users: users, posts: posts, follows: follows, sessions: sessions}
}

// RegisterRoutes registers profile-related routes
func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.GET("/user/:username", h.Profile, requireLogin)
	e.POST("/user/:username/post", h.CreatePost, requireLogin)
	e.Match(getPost, "/edit_profile", h.EditProfile, requireLogin)
	e.GET("/follow/:username", h.Follow, requireLogin)
	e.GET("/unfollow/:username", h.Unfollow, requireLogin)
}

// Profile renders a user's page with their paginated posts.
func (h *ProfileHandler) Profile(c echo.Context) error {
	username := c.Param("username")
	user, err := h.users.GetUserByUsername(username)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	page := pageParam(c)
	posts, err := h.posts.PostsByUser(user.ID, page, postsPerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followers, err := h.follows.GetFollowersCount(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	following, err := h.follows.GetFollowingCount(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	current := h.sessions.CurrentUser(c)
	isFollowing := false
	if current.ID != user.ID {
		isFollowing, err = h.follows.IsFollowing(current.ID, user.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	var prevURL, nextURL string
	if posts.HasPrev() {
		prevURL = fmt.Sprintf("/user/%s?page=%d", username, posts.PrevPage())
	}
	if posts.HasNext() {
		nextURL = fmt.Sprintf("/user/%s?page=%d", username, posts.NextPage())
	}

	return render(c, h.sessions, http.StatusOK, "user.html", echo.Map{
		"Title":          user.Username,
		"ProfileUser":    user,
		"Posts":          posts,
		"IsSelf":         current.ID == user.ID,
		"IsFollowing":    isFollowing,
		"FollowersCount": followers,
		"FollowingCount": following,
		"PrevURL":        prevURL,
		"NextURL":        nextURL,
	})
}

// CreatePost adds a post to the current user's own profile.
func (h *ProfileHandler) CreatePost(c echo.Context) error {
	username := c.Param("username")
	current := h.sessions.CurrentUser(c)
	if current.Username != username {
		return c.NoContent(http.StatusForbidden)
	}

	var form forms.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		h.sessions.AddFlash(c, "error", "Post cannot be empty.")
		return c.Redirect(http.StatusSeeOther, "/user/"+username)
	}

	post := &models.Post{Body: form.Body, UserID: current.ID}
	if err := h.posts.CreatePost(post); err != nil {
		c.Logger().Errorf("create post for user %d: %v", current.ID, err)
		h.sessions.AddFlash(c, "error", "Failed to publish your post.")
		return c.Redirect(http.StatusSeeOther, "/user/"+username)
	}

	h.sessions.AddFlash(c, "success", "Your post is now live!")
	return c.Redirect(http.StatusSeeOther, "/user/"+username)
}

// EditProfile renders the profile form pre-filled on GET and persists
// changes on POST. A new username must not belong to anyone else.
func (h *ProfileHandler) EditProfile(c echo.Context) error {
	current := h.sessions.CurrentUser(c)
	if c.Request().Method == http.MethodGet {
		return render(c, h.sessions, http.StatusOK, "edit_profile.html", echo.Map{
			"Title": "Edit Profile",
			"Form":  &forms.EditProfileForm{Username: current.Username, AboutMe: current.AboutMe},
		})
	}

	var form forms.EditProfileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return render(c, h.sessions, http.StatusOK, "edit_profile.html", echo.Map{
			"Title":  "Edit Profile",
			"Form":   &form,
			"Errors": forms.ErrorMessages(err),
		})
	}

	if taken, err := h.users.UsernameTaken(form.Username, current.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	} else if taken {
		return render(c, h.sessions, http.StatusOK, "edit_profile.html", echo.Map{
			"Title":  "Edit Profile",
			"Form":   &form,
			"Errors": map[string]string{"username": "Please use a different username."},
		})
	}

	current.Username = form.Username
	current.AboutMe = form.AboutMe
	if err := h.users.UpdateUser(current); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.sessions.AddFlash(c, "success", "Your changes have been saved.")
	return c.Redirect(http.StatusSeeOther, "/edit_profile")
}

// Follow adds an edge from the current user to the target. Unknown
// targets and self-follows produce a message, not an error.
func (h *ProfileHandler) Follow(c echo.Context) error {
	username := c.Param("username")
	current := h.sessions.CurrentUser(c)

	target, err := h.users.GetUserByUsername(username)
	if err != nil {
		h.sessions.AddFlash(c, "warning", fmt.Sprintf("User %s not found.", username))
		return c.Redirect(http.StatusSeeOther, "/user_index")
	}
	if target.ID == current.ID {
		h.sessions.AddFlash(c, "warning", "You cannot follow yourself!")
		return c.Redirect(http.StatusSeeOther, "/user/"+username)
	}

	already, err := h.follows.IsFollowing(current.ID, target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !already {
		edge := &models.Follow{FollowerID: current.ID, FolloweeID: target.ID}
		if err := h.follows.CreateFollow(edge); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	h.sessions.AddFlash(c, "success", fmt.Sprintf("You are following %s!", username))
	return c.Redirect(http.StatusSeeOther, "/user/"+username)
}

// Unfollow removes the edge from the current user to the target.
func (h *ProfileHandler) Unfollow(c echo.Context) error {
	username := c.Param("username")
	current := h.sessions.CurrentUser(c)

	target, err := h.users.GetUserByUsername(username)
	if err != nil {
		h.sessions.AddFlash(c, "warning", fmt.Sprintf("User %s not found.", username))
		return c.Redirect(http.StatusSeeOther, "/user_index")
	}
	if target.ID == current.ID {
		h.sessions.AddFlash(c, "warning", "You cannot unfollow yourself!")
		return c.Redirect(http.StatusSeeOther, "/user/"+username)
	}

	if err := h.follows.DeleteFollow(current.ID, target.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.sessions.AddFlash(c, "success", fmt.Sprintf("You are not following %s.", username))
	return c.Redirect(http.StatusSeeOther, "/user/"+username)
}
