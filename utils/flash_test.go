package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vendorisk/assessment-server/utils"
)

func flashCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flash" {
			return ck
		}
	}
	t.Fatal("no flash cookie set")
	return nil
}

func TestFlashRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	utils.SetFlash(c, "success", "Template created.")
	ck := flashCookieFrom(t, w)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(ck)

	f, ok := utils.PopFlash(c2)
	require.True(t, ok)
	require.Equal(t, "success", f.Category)
	require.Equal(t, "Template created.", f.Message)

	// Popping clears the cookie.
	cleared := flashCookieFrom(t, w2)
	require.Negative(t, cleared.MaxAge)
}

func TestPopFlashWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := utils.PopFlash(c)
	require.False(t, ok)
}
