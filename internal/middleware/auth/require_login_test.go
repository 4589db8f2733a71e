package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory_admin/internal/tokens"
)

var secret = []byte("test-secret")

type knownUsers struct {
	ids map[uint]bool
	err error
}

func (k knownUsers) Exists(_ context.Context, id uint) (bool, error) {
	return k.ids[id], k.err
}

func serve(t *testing.T, users UserChecker, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.GET("/Dashboard", func(c echo.Context) error {
		id, name, ok := CurrentUser(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, map[string]any{"id": id, "name": name})
	}, RequireLogin(secret, users))

	req := httptest.NewRequest(http.MethodGet, "/Dashboard", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, id uint, exp time.Time, key []byte) *http.Cookie {
	t.Helper()
	tok, err := tokens.NewSession(id, "alice", exp, key)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookie, Value: tok}
}

func TestRequireLogin_ValidSession(t *testing.T) {
	cookie := sessionCookie(t, 7, time.Now().Add(time.Hour), secret)

	for _, users := range []UserChecker{nil, knownUsers{ids: map[uint]bool{7: true}}} {
		rec := serve(t, users, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":7,"name":"alice"}`, rec.Body.String())
	}
}

func TestRequireLogin_Redirects(t *testing.T) {
	tests := []struct {
		name   string
		users  UserChecker
		cookie *http.Cookie
	}{
		{name: "no cookie"},
		{name: "garbage", cookie: &http.Cookie{Name: SessionCookie, Value: "garbage"}},
		{name: "expired", cookie: sessionCookie(t, 7, time.Now().Add(-time.Minute), secret)},
		{name: "wrong secret", cookie: sessionCookie(t, 7, time.Now().Add(time.Hour), []byte("other"))},
		{name: "deleted user", users: knownUsers{ids: map[uint]bool{8: true}}, cookie: sessionCookie(t, 7, time.Now().Add(time.Hour), secret)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, tc.users, tc.cookie)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestRequireLogin_DeletedUserClearsCookie(t *testing.T) {
	rec := serve(t, knownUsers{}, sessionCookie(t, 7, time.Now().Add(time.Hour), secret))
	require.Equal(t, http.StatusFound, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestRequireLogin_UserLookupFails(t *testing.T) {
	rec := serve(t, knownUsers{err: errors.New("db down")}, sessionCookie(t, 7, time.Now().Add(time.Hour), secret))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
