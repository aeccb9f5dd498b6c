package session

import (
	"context"
	"sync"
	"time"

	"stayhub/models"
	"stayhub/services/auth"
	"stayhub/utils"

	"go.uber.org/zap"
)

// persistTimeout bounds the background credential-store writes.
const persistTimeout = 5 * time.Second

// DefaultSessionManager is the production implementation. The in-memory
// session is guarded by mu; every mutation bumps seq, and background
// persistence goroutines recheck seq before writing so that a later
// mutation's persisted value is always the final one (last caller wins,
// acceptable for single-user-local state).
type DefaultSessionManager struct {
	Auth  auth.AuthService
	Store CredentialStore

	mu   sync.RWMutex
	cur  models.Session
	seq  uint64
	subs []chan models.Session

	persistMu sync.Mutex
}

// NewDefaultSessionManager constructs a session manager in the idle state.
func NewDefaultSessionManager(authSvc auth.AuthService, store CredentialStore) *DefaultSessionManager {
	return &DefaultSessionManager{
		Auth:  authSvc,
		Store: store,
		cur:   models.Session{Status: models.SessionIdle},
	}
}

// Session returns the current in-memory session snapshot.
func (m *DefaultSessionManager) Session() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// Subscribe returns a channel receiving a snapshot after every change.
// Notifications are dropped rather than blocked when the receiver lags.
func (m *DefaultSessionManager) Subscribe() <-chan models.Session {
	ch := make(chan models.Session, 8)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

func (m *DefaultSessionManager) notifyLocked() {
	for _, ch := range m.subs {
		select {
		case ch <- m.cur:
		default:
		}
	}
}

// Login authenticates against the collaborator and adopts the credentials.
// On failure the stored credentials are left untouched and the in-memory
// session records the classified error.
func (m *DefaultSessionManager) Login(ctx context.Context, username, password string) (models.Session, error) {
	m.setLoading()

	creds, err := m.Auth.Authenticate(ctx, username, password)
	if err != nil {
		return m.setFailed(err)
	}
	return m.adopt(*creds), nil
}

// Register creates an account through the collaborator and adopts the
// credentials, with the same persistence contract as Login.
func (m *DefaultSessionManager) Register(ctx context.Context, email, username, password string) (models.Session, error) {
	m.setLoading()

	creds, err := m.Auth.CreateAccount(ctx, email, username, password)
	if err != nil {
		return m.setFailed(err)
	}
	return m.adopt(*creds), nil
}

// SetCredentials replaces the session directly and persists immediately.
func (m *DefaultSessionManager) SetCredentials(ctx context.Context, creds models.Credentials) {
	m.adopt(creds)
}

// Logout clears the in-memory session and deletes the persisted record.
// Idempotent, but the invalidation always happens: even with no active
// session the mutation counter bumps and the store is cleared, so a
// rehydration read still in flight cannot adopt the old credentials.
func (m *DefaultSessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	alreadyIdle := m.cur.Token == "" && m.cur.Status == models.SessionIdle
	m.cur = models.Session{Status: models.SessionIdle}
	m.seq++
	seq := m.seq
	if !alreadyIdle {
		m.notifyLocked()
	}
	m.mu.Unlock()

	m.persist(seq, nil)
	return nil
}

// Rehydrate reads the credential store in the background and adopts the
// persisted session, if any, as the initial in-memory value. Best effort:
// consumers see the default empty session until the read completes, and
// the read never overrides a session established in the meantime.
func (m *DefaultSessionManager) Rehydrate() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		creds, err := m.Store.Load(ctx)
		if err != nil {
			utils.GetLogger().Warn("session rehydrate failed", zap.Error(err))
			return
		}
		if creds == nil {
			return
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if m.seq != 0 {
			// A login/logout already happened; the stored value is stale.
			return
		}
		m.cur = sessionFrom(*creds)
		m.notifyLocked()
	}()
	return done
}

func (m *DefaultSessionManager) setLoading() {
	m.mu.Lock()
	m.cur.Status = models.SessionLoading
	m.cur.Error = ""
	m.notifyLocked()
	m.mu.Unlock()
}

func (m *DefaultSessionManager) setFailed(err error) (models.Session, error) {
	serr := classify(err)
	m.mu.Lock()
	m.cur.Status = models.SessionFailed
	m.cur.Error = serr.Message
	snap := m.cur
	m.notifyLocked()
	m.mu.Unlock()
	return snap, serr
}

func (m *DefaultSessionManager) adopt(creds models.Credentials) models.Session {
	m.mu.Lock()
	m.cur = sessionFrom(creds)
	m.seq++
	seq := m.seq
	snap := m.cur
	m.notifyLocked()
	m.mu.Unlock()

	m.persist(seq, &creds)
	return snap
}

// persist writes the credential record (or clears it when creds is nil) in
// the background. The write is skipped when a later mutation has bumped
// seq, so out-of-order goroutine scheduling cannot resurrect stale state.
func (m *DefaultSessionManager) persist(seq uint64, creds *models.Credentials) {
	go func() {
		m.persistMu.Lock()
		defer m.persistMu.Unlock()

		m.mu.RLock()
		stale := m.seq != seq
		m.mu.RUnlock()
		if stale {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		var err error
		if creds == nil {
			err = m.Store.Clear(ctx)
		} else {
			err = m.Store.Save(ctx, *creds)
		}
		if err != nil {
			utils.GetLogger().Error("session persistence failed", zap.Error(err))
		}
	}()
}

func sessionFrom(creds models.Credentials) models.Session {
	return models.Session{
		UserID:   creds.UserID,
		Username: creds.Username,
		Token:    creds.Token,
		IsAdmin:  creds.IsAdmin,
		Status:   models.SessionSucceeded,
	}
}
