package session

import (
	"crypto/rand"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cwkr/peopledir/internal/directory"
	"github.com/gorilla/sessions"
	"github.com/oklog/ulid/v2"
)

const (
	SessionName = "_directory"

	keyViewID = "vid"
)

type Factory func(r *http.Request) (*directory.Directory, error)

type ViewInfo struct {
	ViewID    string
	CreatedAt time.Time
	LastUsed  time.Time
}

// Manager keeps one directory view per browser session. The cookie only
// carries the view id; the view itself stays on the server.
type Manager interface {
	Directory(r *http.Request, w http.ResponseWriter) (*directory.Directory, error)
	GetViewInfo(v *ViewInfo, r *http.Request) bool
	Len() int
}

type view struct {
	directory *directory.Directory
	createdAt time.Time
	lastUsed  time.Time
}

type manager struct {
	mu           sync.Mutex
	sessionStore sessions.Store
	sessionTTL   time.Duration
	factory      Factory
	views        map[string]*view
	now          func() time.Time
}

func NewManager(sessionStore sessions.Store, sessionTTL int, factory Factory) Manager {
	return &manager{
		sessionStore: sessionStore,
		sessionTTL:   time.Duration(sessionTTL) * time.Second,
		factory:      factory,
		views:        make(map[string]*view),
		now:          time.Now,
	}
}

func NewViewID(timestamp time.Time) string {
	id, _ := ulid.New(ulid.Timestamp(timestamp), rand.Reader)
	return id.String()
}

// expire drops views idle longer than the session TTL. Callers hold mu.
func (m *manager) expire(now time.Time) {
	if m.sessionTTL <= 0 {
		return
	}
	for id, v := range m.views {
		if v.lastUsed.Add(m.sessionTTL).Before(now) {
			log.Printf("Expiring directory view %s", id)
			delete(m.views, id)
		}
	}
}

func (m *manager) Directory(r *http.Request, w http.ResponseWriter) (*directory.Directory, error) {
	var session, _ = m.sessionStore.Get(r, SessionName)
	var now = m.now()

	m.mu.Lock()
	m.expire(now)
	if viewID, valid := session.Values[keyViewID].(string); valid {
		if v, found := m.views[viewID]; found {
			v.lastUsed = now
			m.mu.Unlock()
			return v.directory, nil
		}
	}
	m.mu.Unlock()

	var d, err = m.factory(r)
	if err != nil {
		return nil, err
	}

	var viewID = NewViewID(now)
	m.mu.Lock()
	m.views[viewID] = &view{directory: d, createdAt: now, lastUsed: now}
	m.mu.Unlock()

	session.Values[keyViewID] = viewID
	if err := session.Save(r, w); err != nil {
		return nil, err
	}
	return d, nil
}

func (m *manager) GetViewInfo(v *ViewInfo, r *http.Request) bool {
	var session, _ = m.sessionStore.Get(r, SessionName)
	var viewID, valid = session.Values[keyViewID].(string)
	if session.IsNew || !valid {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if found, exists := m.views[viewID]; exists {
		v.ViewID = viewID
		v.CreatedAt = found.createdAt
		v.LastUsed = found.lastUsed
		return true
	}
	return false
}

func (m *manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.views)
}
