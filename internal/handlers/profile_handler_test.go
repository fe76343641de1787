package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gatherly/app/internal/models"
)

func TestFollowAndUnfollow(t *testing.T) {
	app := newTestApp(t)
	alice := newClient(t)
	registerUser(t, app, alice, "alice")
	loginUser(t, app, alice, "alice")

	bob := newClient(t)
	registerUser(t, app, bob, "bob")

	resp, err := alice.Get(app.srv.URL + "/follow/bob")
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "You are following bob!") {
		t.Error("expected follow confirmation flash")
	}

	var count int64
	app.db.Model(&models.Follow{}).Count(&count)
	if count != 1 {
		t.Fatalf("follow edge count = %d, want 1", count)
	}

	// Following again is idempotent.
	resp, err = alice.Get(app.srv.URL + "/follow/bob")
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	resp.Body.Close()
	app.db.Model(&models.Follow{}).Count(&count)
	if count != 1 {
		t.Errorf("follow edge count after repeat = %d, want 1", count)
	}

	resp, err = alice.Get(app.srv.URL + "/unfollow/bob")
	if err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, "You are not following bob.") {
		t.Error("expected unfollow confirmation flash")
	}
	app.db.Model(&models.Follow{}).Count(&count)
	if count != 0 {
		t.Errorf("follow edge count after unfollow = %d, want 0", count)
	}
}

func TestFollowSelfRejected(t *testing.T) {
	app := newTestApp(t)
	alice := newClient(t)
	registerUser(t, app, alice, "alice")
	loginUser(t, app, alice, "alice")

	resp, err := alice.Get(app.srv.URL + "/follow/alice")
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "You cannot follow yourself!") {
		t.Error("expected self-follow warning")
	}

	var count int64
	app.db.Model(&models.Follow{}).Count(&count)
	if count != 0 {
		t.Errorf("follow edge count = %d, want 0", count)
	}
}

func TestFollowUnknownUser(t *testing.T) {
	app := newTestApp(t)
	alice := newClient(t)
	registerUser(t, app, alice, "alice")
	loginUser(t, app, alice, "alice")

	resp := getNoRedirect(t, alice, app.srv.URL+"/follow/ghost")
	resp.Body.Close()
	if got := resp.Header.Get("Location"); got != "/user_index" {
		t.Errorf("unknown user redirect = %q, want /user_index", got)
	}

	followed, err := alice.Get(app.srv.URL + "/follow/ghost")
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	body := readBody(t, followed)
	if !strings.Contains(body, "User ghost not found.") {
		t.Error("expected not-found flash")
	}
}

func TestProfileShowsFollowState(t *testing.T) {
	app := newTestApp(t)
	alice := newClient(t)
	registerUser(t, app, alice, "alice")
	loginUser(t, app, alice, "alice")

	bob := newClient(t)
	registerUser(t, app, bob, "bob")

	resp, err := alice.Get(app.srv.URL + "/user/bob")
	if err != nil {
		t.Fatalf("GET profile: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, `href="/follow/bob"`) {
		t.Error("expected follow link on an unfollowed profile")
	}

	if _, err := alice.Get(app.srv.URL + "/follow/bob"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	resp, err = alice.Get(app.srv.URL + "/user/bob")
	if err != nil {
		t.Fatalf("GET profile: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, `href="/unfollow/bob"`) {
		t.Error("expected unfollow link on a followed profile")
	}
}

func TestProfileNotFound(t *testing.T) {
	app := newTestApp(t)
	alice := newClient(t)
	registerUser(t, app, alice, "alice")
	loginUser(t, app, alice, "alice")

	resp, err := alice.Get(app.srv.URL + "/user/ghost")
	if err != nil {
		t.Fatalf("GET profile: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown profile: status %d, want 404", resp.StatusCode)
	}
}

func TestCreatePostOwnProfileOnly(t *testing.T) {
	app := newTestApp(t)
	alice := newClient(t)
	registerUser(t, app, alice, "alice")
	loginUser(t, app, alice, "alice")

	bob := newClient(t)
	registerUser(t, app, bob, "bob")
	loginUser(t, app, bob, "bob")

	resp, err := alice.PostForm(app.srv.URL+"/user/alice/post", url.Values{
		"body": {"hello from alice"},
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "hello from alice") {
		t.Error("profile does not show the new post")
	}

	// Posting to someone else's profile is forbidden.
	resp = postFormNoRedirect(t, bob, app.srv.URL+"/user/alice/post", url.Values{
		"body": {"graffiti"},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("cross-profile post: status %d, want 403", resp.StatusCode)
	}

	var count int64
	app.db.Model(&models.Post{}).Count(&count)
	if count != 1 {
		t.Errorf("post count = %d, want 1", count)
	}
}

func TestProfilePostsPaginated(t *testing.T) {
	app := newTestApp(t)
	alice := newClient(t)
	registerUser(t, app, alice, "alice")
	loginUser(t, app, alice, "alice")

	for i := 1; i <= 4; i++ {
		resp, err := alice.PostForm(app.srv.URL+"/user/alice/post", url.Values{
			"body": {fmt.Sprintf("post number %d", i)},
		})
		if err != nil {
			t.Fatalf("create post: %v", err)
		}
		resp.Body.Close()
	}

	resp, err := alice.Get(app.srv.URL + "/user/alice")
	if err != nil {
		t.Fatalf("GET profile: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "post number 4") {
		t.Error("page 1 missing the newest post")
	}
	if strings.Contains(body, "post number 1") {
		t.Error("page 1 should not show the oldest post")
	}

	resp, err = alice.Get(app.srv.URL + "/user/alice?page=2")
	if err != nil {
		t.Fatalf("GET profile page 2: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, "post number 1") {
		t.Error("page 2 missing the oldest post")
	}
	if !strings.Contains(body, "/user/alice?page=1") {
		t.Error("page 2 missing the link back to page 1")
	}
}

func TestEditProfile(t *testing.T) {
	app := newTestApp(t)
	alice := newClient(t)
	registerUser(t, app, alice, "alice")
	loginUser(t, app, alice, "alice")

	resp, err := alice.PostForm(app.srv.URL+"/edit_profile", url.Values{
		"username": {"alicia"},
		"about_me": {"Organizer of small gatherings."},
	})
	if err != nil {
		t.Fatalf("edit profile: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Your changes have been saved.") {
		t.Error("expected save confirmation flash")
	}

	var user models.User
	if err := app.db.First(&user, 1).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Username != "alicia" {
		t.Errorf("username = %q, want alicia", user.Username)
	}
	if user.AboutMe != "Organizer of small gatherings." {
		t.Errorf("about me = %q", user.AboutMe)
	}
}

func TestEditProfileRejectsTakenUsername(t *testing.T) {
	app := newTestApp(t)
	alice := newClient(t)
	registerUser(t, app, alice, "alice")
	loginUser(t, app, alice, "alice")

	bob := newClient(t)
	registerUser(t, app, bob, "bob")

	resp, err := alice.PostForm(app.srv.URL+"/edit_profile", url.Values{
		"username": {"bob"},
		"about_me": {""},
	})
	if err != nil {
		t.Fatalf("edit profile: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Please use a different username.") {
		t.Error("expected taken-username message")
	}

	// Keeping your own name is fine.
	resp, err = alice.PostForm(app.srv.URL+"/edit_profile", url.Values{
		"username": {"alice"},
		"about_me": {"unchanged name"},
	})
	if err != nil {
		t.Fatalf("edit profile: %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, "Your changes have been saved.") {
		t.Error("expected save confirmation when keeping own username")
	}
}
