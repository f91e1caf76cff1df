package routes_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vendorisk/assessment-server/config"
	"github.com/vendorisk/assessment-server/routes"
	"github.com/vendorisk/assessment-server/store"
	"github.com/vendorisk/assessment-server/templates"
)

type app struct {
	router *gin.Engine
	store  *store.Store
}

func newApp(t *testing.T, cfg config.Config) app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(t.TempDir(), "app.db")
	}
	if cfg.SessionSecret == nil {
		cfg.SessionSecret = []byte("test-secret")
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = time.Hour
	}
	if cfg.AuthRatePerMin == 0 {
		cfg.AuthRatePerMin = 600
	}
	if cfg.AuthRateBurst == 0 {
		cfg.AuthRateBurst = 100
	}

	db, err := config.OpenDatabase(cfg)
	require.NoError(t, err)
	st := store.New(db)
	require.NoError(t, st.SeedDefaultTemplates())

	r := gin.New()
	r.SetHTMLTemplate(templates.Load())
	routes.SetupRoutes(r, db, cfg)
	return app{router: r, store: st}
}

func (a app) do(t *testing.T, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "session" && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// registerAndLogin creates the account and returns a live session cookie.
func (a app) registerAndLogin(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	creds := url.Values{"username": {username}, "password": {password}}

	w := a.do(t, http.MethodPost, "/register", creds)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	w = a.do(t, http.MethodPost, "/login", creds)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/main", w.Header().Get("Location"))
	return sessionCookie(t, w)
}

// idFromLocation pulls the trailing numeric id out of a redirect target.
func idFromLocation(t *testing.T, w *httptest.ResponseRecorder) uint {
	t.Helper()
	loc := w.Header().Get("Location")
	id, err := strconv.ParseUint(loc[strings.LastIndex(loc, "/")+1:], 10, 64)
	require.NoError(t, err, "location %q", loc)
	return uint(id)
}

func TestHealth(t *testing.T) {
	a := newApp(t, config.Config{})
	w := a.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestUnauthenticatedAccessRedirectsToLogin(t *testing.T) {
	a := newApp(t, config.Config{})

	paths := []string{
		"/",
		"/main",
		"/logout",
		"/templates",
		"/templates/new",
		"/templates/1",
		"/assessments",
		"/assessments/1",
		"/assessments/new/1",
		"/assessments/1/export",
	}
	for _, path := range paths {
		w := a.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusFound, w.Code, "GET %s", path)
		require.Equal(t, "/login", w.Header().Get("Location"), "GET %s", path)
	}
}

func TestExpiredSessionRedirectsToLogin(t *testing.T) {
	a := newApp(t, config.Config{SessionTTL: -time.Minute})
	creds := url.Values{"username": {"alice"}, "password": {"pw1"}}
	a.do(t, http.MethodPost, "/register", creds)
	w := a.do(t, http.MethodPost, "/login", creds)
	ck := sessionCookie(t, w)

	w = a.do(t, http.MethodGet, "/main", nil, ck)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRegisterDuplicateRedirectsBack(t *testing.T) {
	a := newApp(t, config.Config{})
	creds := url.Values{"username": {"alice"}, "password": {"pw1"}}

	w := a.do(t, http.MethodPost, "/register", creds)
	require.Equal(t, http.StatusFound, w.Code)

	w = a.do(t, http.MethodPost, "/register", creds)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/register", w.Header().Get("Location"))
}

func TestLoginWrongPasswordRedirectsBack(t *testing.T) {
	a := newApp(t, config.Config{})
	a.do(t, http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {"pw1"}})

	w := a.do(t, http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginRateLimited(t *testing.T) {
	a := newApp(t, config.Config{AuthRatePerMin: 1, AuthRateBurst: 2})
	creds := url.Values{"username": {"alice"}, "password": {"wrong"}}

	for i := 0; i < 2; i++ {
		w := a.do(t, http.MethodPost, "/login", creds)
		require.Equal(t, http.StatusFound, w.Code)
	}
	w := a.do(t, http.MethodPost, "/login", creds)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestDashboardShowsSeededCounts(t *testing.T) {
	a := newApp(t, config.Config{})
	ck := a.registerAndLogin(t, "alice", "pw1")

	w := a.do(t, http.MethodGet, "/main", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Templates</a>: 2")
	require.Contains(t, w.Body.String(), "Assessments</a>: 0")
}

func TestTemplatesListShowsSeededTemplates(t *testing.T) {
	a := newApp(t, config.Config{})
	ck := a.registerAndLogin(t, "alice", "pw1")

	w := a.do(t, http.MethodGet, "/templates", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Third-Party Due Diligence Assessment")
	require.Contains(t, w.Body.String(), "Data Protection Impact Assessment (DPIA)")
}

func TestMissingTemplateRenders404(t *testing.T) {
	a := newApp(t, config.Config{})
	ck := a.registerAndLogin(t, "alice", "pw1")

	w := a.do(t, http.MethodGet, "/templates/999", nil, ck)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodGet, "/assessments/999", nil, ck)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEndToEndAssessmentFlow(t *testing.T) {
	a := newApp(t, config.Config{})
	ck := a.registerAndLogin(t, "alice", "pw1")

	// Create a template.
	w := a.do(t, http.MethodPost, "/templates/new", url.Values{
		"name":          {"Vendor Check"},
		"template_type": {"Due Diligence"},
	}, ck)
	require.Equal(t, http.StatusFound, w.Code)
	templateID := idFromLocation(t, w)

	// Add a question through the edit form.
	w = a.do(t, http.MethodPost, fmt.Sprintf("/templates/%d", templateID), url.Values{
		"question_text": {"Data stored where?"},
		"question_type": {"text"},
	}, ck)
	require.Equal(t, http.StatusFound, w.Code)

	questions, err := a.store.QuestionsByTemplate(templateID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	qid := questions[0].ID

	// The blank assessment form renders the question field.
	w = a.do(t, http.MethodGet, fmt.Sprintf("/assessments/new/%d", templateID), nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), fmt.Sprintf(`name="question_%d"`, qid))

	// Submit the assessment.
	w = a.do(t, http.MethodPost, fmt.Sprintf("/assessments/new/%d", templateID), url.Values{
		"assessment_name":               {"Acme Review"},
		"vendor_name":                   {"Acme"},
		fmt.Sprintf("question_%d", qid): {"EU only"},
	}, ck)
	require.Equal(t, http.StatusFound, w.Code)
	assessmentID := idFromLocation(t, w)

	// The view page shows the recorded answer.
	w = a.do(t, http.MethodGet, fmt.Sprintf("/assessments/%d", assessmentID), nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Data stored where?")
	require.Contains(t, w.Body.String(), "EU only")

	// And so does the CSV export.
	w = a.do(t, http.MethodGet, fmt.Sprintf("/assessments/%d/export", assessmentID), nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, w.Body.String(), "question_id,question,answer")
	require.Contains(t, w.Body.String(), "EU only")
}

func TestBlankQuestionSubmissionIsNoOp(t *testing.T) {
	a := newApp(t, config.Config{})
	ck := a.registerAndLogin(t, "alice", "pw1")

	w := a.do(t, http.MethodPost, "/templates/new", url.Values{
		"name":          {"T"},
		"template_type": {"X"},
	}, ck)
	templateID := idFromLocation(t, w)

	w = a.do(t, http.MethodPost, fmt.Sprintf("/templates/%d", templateID), url.Values{
		"question_text": {""},
	}, ck)
	require.Equal(t, http.StatusFound, w.Code)

	questions, err := a.store.QuestionsByTemplate(templateID)
	require.NoError(t, err)
	require.Empty(t, questions)
}

func TestDeleteTemplateLeavesAssessmentViewable(t *testing.T) {
	a := newApp(t, config.Config{})
	ck := a.registerAndLogin(t, "alice", "pw1")

	w := a.do(t, http.MethodPost, "/templates/new", url.Values{
		"name":          {"Doomed"},
		"template_type": {"X"},
	}, ck)
	templateID := idFromLocation(t, w)

	w = a.do(t, http.MethodPost, fmt.Sprintf("/assessments/new/%d", templateID), url.Values{
		"assessment_name": {"Survivor"},
	}, ck)
	assessmentID := idFromLocation(t, w)

	w = a.do(t, http.MethodPost, fmt.Sprintf("/templates/%d/delete", templateID), nil, ck)
	require.Equal(t, http.StatusFound, w.Code)

	// Listing and viewing still work; the template shows as deleted.
	w = a.do(t, http.MethodGet, "/assessments", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Survivor")
	require.Contains(t, w.Body.String(), "(template deleted)")

	w = a.do(t, http.MethodGet, fmt.Sprintf("/assessments/%d", assessmentID), nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "(template deleted)")
}

func TestLogoutEndsSession(t *testing.T) {
	a := newApp(t, config.Config{})
	ck := a.registerAndLogin(t, "alice", "pw1")

	w := a.do(t, http.MethodGet, "/logout", nil, ck)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	// The cleared cookie no longer grants access.
	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)

	w = a.do(t, http.MethodGet, "/main", nil, cleared)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}
