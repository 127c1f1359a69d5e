package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cwkr/peopledir/internal/directory"
	"github.com/cwkr/peopledir/internal/people"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, ttl int) *manager {
	t.Helper()
	var store = sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	var factory = func(r *http.Request) (*directory.Directory, error) {
		return directory.New(people.NewInMemoryStore(nil), directory.Settings{}), nil
	}
	return NewManager(store, ttl, factory).(*manager)
}

func withCookies(r *http.Request, rec *httptest.ResponseRecorder) *http.Request {
	for _, cookie := range rec.Result().Cookies() {
		r.AddCookie(cookie)
	}
	return r
}

func TestManager_ReusesViewForSession(t *testing.T) {
	var m = newTestManager(t, 3600)

	var rec = httptest.NewRecorder()
	first, err := m.Directory(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, err)
	require.NotEmpty(t, rec.Result().Cookies())

	var r = withCookies(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	second, err := m.Directory(r, httptest.NewRecorder())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, m.Len())

	var info ViewInfo
	require.True(t, m.GetViewInfo(&info, r))
	assert.Len(t, info.ViewID, 26)
}

func TestManager_NewViewWithoutCookie(t *testing.T) {
	var m = newTestManager(t, 3600)

	first, err := m.Directory(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NoError(t, err)
	second, err := m.Directory(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, m.Len())
	assert.False(t, m.GetViewInfo(&ViewInfo{}, httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestManager_ExpiresIdleViews(t *testing.T) {
	var m = newTestManager(t, 60)
	var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	var rec = httptest.NewRecorder()
	first, err := m.Directory(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	second, err := m.Directory(withCookies(httptest.NewRequest(http.MethodGet, "/", nil), rec), httptest.NewRecorder())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 1, m.Len())
}

func TestManager_FactoryError(t *testing.T) {
	var store = sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	var m = NewManager(store, 60, func(r *http.Request) (*directory.Directory, error) {
		return nil, errors.New("no people store configured")
	})

	_, err := m.Directory(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.EqualError(t, err, "no people store configured")
	assert.Zero(t, m.Len())
}

func TestNewViewID(t *testing.T) {
	var a = NewViewID(time.Now())
	var b = NewViewID(time.Now())
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}
