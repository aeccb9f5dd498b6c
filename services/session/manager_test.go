package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"stayhub/models"
	"stayhub/services/auth"
)

// fakeAuth is a scripted authentication collaborator.
type fakeAuth struct {
	creds models.Credentials
	err   error
}

func (f *fakeAuth) Authenticate(ctx context.Context, username, password string) (*models.Credentials, error) {
	if f.err != nil {
		return nil, f.err
	}
	c := f.creds
	return &c, nil
}

func (f *fakeAuth) CreateAccount(ctx context.Context, email, username, password string) (*models.Credentials, error) {
	return f.Authenticate(ctx, username, password)
}

// fakeStore is an in-memory credential store. loadGate, when set, blocks
// Load until released so tests can observe the rehydration window.
type fakeStore struct {
	mu       sync.Mutex
	rec      *models.Credentials
	loadGate chan struct{}
}

func (f *fakeStore) Save(ctx context.Context, creds models.Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := creds
	f.rec = &c
	return nil
}

func (f *fakeStore) Load(ctx context.Context) (*models.Credentials, error) {
	if f.loadGate != nil {
		<-f.loadGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rec == nil {
		return nil, nil
	}
	c := *f.rec
	return &c, nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rec = nil
	return nil
}

func (f *fakeStore) stored() *models.Credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rec == nil {
		return nil
	}
	c := *f.rec
	return &c
}

var testCreds = models.Credentials{
	UserID:   "u-1",
	Username: "ada",
	Token:    "tok-123",
	IsAdmin:  false,
}

// waitFor polls until cond holds or the test times out. Session persistence
// is fire-and-forget, so tests observe it eventually.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestLoginAdoptsAndPersists(t *testing.T) {
	store := &fakeStore{}
	m := NewDefaultSessionManager(&fakeAuth{creds: testCreds}, store)

	sess, err := m.Login(context.Background(), "ada", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Status != models.SessionSucceeded || sess.Token != "tok-123" {
		t.Errorf("unexpected session: %+v", sess)
	}
	if got := m.Session(); got != sess {
		t.Errorf("Session() = %+v, want %+v", got, sess)
	}

	waitFor(t, func() bool {
		rec := store.stored()
		return rec != nil && *rec == testCreds
	})
}

func TestLoginFailureClassification(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"unauthorized", &auth.Error{Status: http.StatusUnauthorized, Message: "bad credentials"}, CodeUnauthorized},
		{"bad request", &auth.Error{Status: http.StatusBadRequest, Message: "missing field"}, CodeBadRequest},
		{"conflict", &auth.Error{Status: http.StatusConflict, Message: "taken"}, CodeConflict},
		{"server error", &auth.Error{Status: http.StatusBadGateway, Message: "upstream"}, CodeServerError},
		{"unclassified", errors.New("weird"), CodeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{rec: &testCreds}
			m := NewDefaultSessionManager(&fakeAuth{err: tc.err}, store)

			sess, err := m.Login(context.Background(), "ada", "wrong")
			if err == nil {
				t.Fatal("expected error")
			}
			var serr *SessionError
			if !errors.As(err, &serr) || serr.Code != tc.wantCode {
				t.Errorf("error = %v, want code %s", err, tc.wantCode)
			}
			if sess.Status != models.SessionFailed || sess.Error == "" {
				t.Errorf("session not marked failed: %+v", sess)
			}
			// A failed login must not mutate stored credentials.
			if rec := store.stored(); rec == nil || *rec != testCreds {
				t.Errorf("stored credentials mutated: %+v", rec)
			}
		})
	}
}

func TestRehydrateWindow(t *testing.T) {
	gate := make(chan struct{})
	store := &fakeStore{rec: &testCreds, loadGate: gate}
	m := NewDefaultSessionManager(&fakeAuth{}, store)

	done := m.Rehydrate()

	// Before the read completes the session is the default empty value.
	if got := m.Session(); got.Status != models.SessionIdle || got.Token != "" {
		t.Errorf("expected empty session during rehydration, got %+v", got)
	}

	close(gate)
	<-done

	got := m.Session()
	if got.Status != models.SessionSucceeded || got.Token != testCreds.Token || got.Username != "ada" {
		t.Errorf("rehydrated session = %+v", got)
	}
}

func TestRehydrateEmptyStore(t *testing.T) {
	m := NewDefaultSessionManager(&fakeAuth{}, &fakeStore{})
	<-m.Rehydrate()
	if got := m.Session(); got.Status != models.SessionIdle {
		t.Errorf("expected idle session, got %+v", got)
	}
}

func TestRehydrateDoesNotOverrideNewerSession(t *testing.T) {
	gate := make(chan struct{})
	stale := models.Credentials{UserID: "old", Username: "old", Token: "old-token"}
	store := &fakeStore{rec: &stale, loadGate: gate}
	m := NewDefaultSessionManager(&fakeAuth{creds: testCreds}, store)

	done := m.Rehydrate()
	if _, err := m.Login(context.Background(), "ada", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	close(gate)
	<-done

	if got := m.Session(); got.Token != "tok-123" {
		t.Errorf("rehydration overrode a fresher login: %+v", got)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	store := &fakeStore{}
	m := NewDefaultSessionManager(&fakeAuth{creds: testCreds}, store)

	if _, err := m.Login(context.Background(), "ada", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if got := m.Session(); got.Status != models.SessionIdle || got.Token != "" {
		t.Errorf("session not cleared: %+v", got)
	}
	waitFor(t, func() bool { return store.stored() == nil })

	// Second logout is a no-op and does not error.
	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestLogoutDuringRehydrateStaysLoggedOut(t *testing.T) {
	gate := make(chan struct{})
	store := &fakeStore{rec: &testCreds, loadGate: gate}
	m := NewDefaultSessionManager(&fakeAuth{}, store)

	// Logout lands while the rehydration read is still in flight. The
	// stored credentials must not be adopted afterwards, and the persisted
	// record must end up deleted.
	done := m.Rehydrate()
	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	close(gate)
	<-done

	if got := m.Session(); got.Status != models.SessionIdle || got.Token != "" {
		t.Errorf("logged-out session was resurrected: %+v", got)
	}
	waitFor(t, func() bool { return store.stored() == nil })
}

func TestLogoutAfterLoginPersistsCleared(t *testing.T) {
	store := &fakeStore{}
	m := NewDefaultSessionManager(&fakeAuth{creds: testCreds}, store)

	// Logout immediately after login: whatever the goroutine interleaving,
	// the final persisted value must be the cleared one.
	if _, err := m.Login(context.Background(), "ada", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	waitFor(t, func() bool { return store.stored() == nil })

	// And it stays cleared.
	time.Sleep(50 * time.Millisecond)
	if rec := store.stored(); rec != nil {
		t.Errorf("stale login persist resurrected credentials: %+v", rec)
	}
}

func TestSetCredentialsPersists(t *testing.T) {
	store := &fakeStore{}
	m := NewDefaultSessionManager(&fakeAuth{}, store)

	refreshed := models.Credentials{UserID: "u-1", Username: "ada", Token: "tok-456"}
	m.SetCredentials(context.Background(), refreshed)

	if got := m.Session(); got.Token != "tok-456" || got.Status != models.SessionSucceeded {
		t.Errorf("session = %+v", got)
	}
	waitFor(t, func() bool {
		rec := store.stored()
		return rec != nil && rec.Token == "tok-456"
	})
}

func TestSubscribeReceivesChanges(t *testing.T) {
	store := &fakeStore{}
	m := NewDefaultSessionManager(&fakeAuth{creds: testCreds}, store)
	ch := m.Subscribe()

	if _, err := m.Login(context.Background(), "ada", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	var saw bool
	timeout := time.After(time.Second)
	for !saw {
		select {
		case sess := <-ch:
			if sess.Status == models.SessionSucceeded && sess.Token == "tok-123" {
				saw = true
			}
		case <-timeout:
			t.Fatal("no session change notification received")
		}
	}
}
