package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gatherly/app/internal/forms"
	"github.com/gatherly/app/internal/models"
	"github.com/gatherly/app/internal/render"
	"github.com/gatherly/app/internal/router"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// captureMailer records outbound mail instead of delivering it.
type captureMailer struct {
	mu     sync.Mutex
	bodies []string
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bodies = append(m.bodies, body)
	return nil
}

func (m *captureMailer) lastBody() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.bodies) == 0 {
		return ""
	}
	return m.bodies[len(m.bodies)-1]
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bodies)
}

type testApp struct {
	srv  *httptest.Server
	db   *gorm.DB
	mail *captureMailer
}

// newTestApp wires the full application over an in-memory SQLite
// database and starts an httptest server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	e := echo.New()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	e.Renderer = renderer
	e.Validator = forms.NewValidator()

	mail := &captureMailer{}
	err = router.SetupRoutes(e, db, router.Options{
		SessionSecret:    []byte("test-session-secret"),
		ResetTokenSecret: []byte("test-reset-secret"),
		ResetTokenTTL:    time.Minute,
		BaseURL:          "http://gatherly.test",
		Mailer:           mail,
	})
	if err != nil {
		t.Fatalf("setup routes: %v", err)
	}

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &testApp{srv: srv, db: db, mail: mail}
}

// newClient returns an HTTP client with a cookie jar, like a browser.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// getNoRedirect performs a GET and returns the first response instead
// of following redirects, so the Location header can be inspected.
func getNoRedirect(t *testing.T, client *http.Client, rawURL string) *http.Response {
	t.Helper()
	prev := client.CheckRedirect
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	defer func() { client.CheckRedirect = prev }()

	resp, err := client.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s: %v", rawURL, err)
	}
	return resp
}

func postFormNoRedirect(t *testing.T, client *http.Client, rawURL string, values url.Values) *http.Response {
	t.Helper()
	prev := client.CheckRedirect
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	defer func() { client.CheckRedirect = prev }()

	resp, err := client.PostForm(rawURL, values)
	if err != nil {
		t.Fatalf("POST %s: %v", rawURL, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func registerUser(t *testing.T, app *testApp, client *http.Client, username string) {
	t.Helper()
	resp, err := client.PostForm(app.srv.URL+"/register", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register %s: status %d", username, resp.StatusCode)
	}
}

func loginUser(t *testing.T, app *testApp, client *http.Client, username string) {
	t.Helper()
	resp, err := client.PostForm(app.srv.URL+"/login", url.Values{
		"username": {username},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
}

// createEvent submits the event form and returns the stored record.
func createEvent(t *testing.T, app *testApp, client *http.Client, name string, startsAt time.Time) *models.Event {
	t.Helper()
	resp, err := client.PostForm(app.srv.URL+"/create_event", url.Values{
		"name":        {name},
		"description": {"A gathering."},
		"location":    {"Town Hall"},
		"date":        {startsAt.Format("2006-01-02")},
		"time":        {startsAt.Format("15:04")},
	})
	if err != nil {
		t.Fatalf("create event %s: %v", name, err)
	}
	resp.Body.Close()

	var event models.Event
	if err := app.db.Where("name = ?", name).First(&event).Error; err != nil {
		t.Fatalf("event %s not persisted: %v", name, err)
	}
	return &event
}

func eventURL(app *testApp, id uint) string {
	return fmt.Sprintf("%s/event/%d", app.srv.URL, id)
}
