package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cwkr/peopledir/internal/odata"
	"github.com/cwkr/peopledir/internal/people"
	"github.com/cwkr/peopledir/internal/server/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forwardedHeaders(t *testing.T, r *http.Request) http.Header {
	t.Helper()
	var received http.Header
	var ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Clone()
		w.Header().Set("Content-Type", people.AcceptVerboseJSON)
		w.Write([]byte(`{"d":{"results":[]}}`))
	}))
	defer ts.Close()

	store, err := people.NewSharePointStore(ts.URL, ts.Client())
	require.NoError(t, err)

	var h = ForwardSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var query, _ = odata.ByInitial("A")
		if _, err := store.Query(r.Context(), query); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
	}))

	var rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)
	return received
}

func TestForwardSession(t *testing.T) {
	var r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc")
	r.Header.Set("Cookie", "FedAuth=xyz")
	r.Header.Set("X-Request-Id", "1")

	var received = forwardedHeaders(t, r)
	assert.Equal(t, "Bearer abc", received.Get("Authorization"))
	assert.Equal(t, "FedAuth=xyz", received.Get("Cookie"))
	assert.Empty(t, received.Get("X-Request-Id"))
}

func TestForwardSession_KeepsViewCookie(t *testing.T) {
	var r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Cookie", session.SessionName+"=MTcxMA; FedAuth=xyz; rtFa=abc")

	var received = forwardedHeaders(t, r)
	assert.Equal(t, "FedAuth=xyz; rtFa=abc", received.Get("Cookie"))
	assert.Equal(t, session.SessionName+"=MTcxMA; FedAuth=xyz; rtFa=abc", r.Header.Get("Cookie"))
}

func TestForwardSession_OnlyViewCookie(t *testing.T) {
	var r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.SessionName, Value: "MTcxMA"})

	var received = forwardedHeaders(t, r)
	assert.Empty(t, received.Values("Cookie"))
}

func TestForwardSession_NoHeaders(t *testing.T) {
	var h = ForwardSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Nil(t, r.Context().Value("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	var rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
