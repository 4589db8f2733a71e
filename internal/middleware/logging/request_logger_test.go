package loggingmw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory_admin/internal/logging"
	"github.com/Skotchmaster/inventory_admin/internal/middleware/auth"
	"github.com/Skotchmaster/inventory_admin/internal/tokens"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, ln := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(ln), &m))
		out = append(out, m)
	}
	return out
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "info")))
	e.GET("/ok/:id", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside")
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	req := httptest.NewRequest(http.MethodGet, "/ok/5", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	e.ServeHTTP(httptest.NewRecorder(), req)

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "inside", got[0]["msg"])
	assert.Equal(t, "rid-1", got[0]["request_id"])
	assert.Equal(t, "/ok/:id", got[1]["path"])
	assert.EqualValues(t, 204, got[1]["status"])
	assert.Equal(t, "INFO", got[1]["level"])

	buf.Reset()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	got = lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "WARN", got[0]["level"])
	assert.EqualValues(t, 404, got[0]["status"])
}

func TestRequestLogger_TagsSessionUser(t *testing.T) {
	secret := []byte("test-secret")
	var buf bytes.Buffer

	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "info")))
	e.GET("/Dashboard", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, auth.RequireLogin(secret, nil))

	tok, err := tokens.NewSession(12, "alice", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/Dashboard", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: tok})
	e.ServeHTTP(httptest.NewRecorder(), req)

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.EqualValues(t, 12, got[0]["user_id"])

	buf.Reset()
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/Dashboard", nil))
	got = lines(t, &buf)
	require.Len(t, got, 1)
	assert.NotContains(t, got[0], "user_id")
	assert.EqualValues(t, 302, got[0]["status"])
}
