package visitor

import (
	"SchoolPick/internal/lib/api/cont"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var seen string
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), Options{CookieName: "visitor_id", MaxAge: 24 * time.Hour})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = cont.GetVisitor(r.Context())
		}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestIssuesCookieToNewVisitor(t *testing.T) {
	rec, seen := serve(t, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "visitor_id", cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestKeepsKnownVisitor(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "visitor_id", Value: id})

	rec, seen := serve(t, req)
	assert.Equal(t, id, seen)
	assert.Empty(t, rec.Result().Cookies())
}

func TestReplacesForgedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "visitor_id", Value: "../../admin"})

	rec, seen := serve(t, req)
	assert.NotEqual(t, "../../admin", seen)
	require.Len(t, rec.Result().Cookies(), 1)
}
