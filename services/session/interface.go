package session

import (
	"context"

	"stayhub/models"
)

// CredentialStore is the durable key-value persistence for the single
// active session record. Load returns (nil, nil) when no record exists.
type CredentialStore interface {
	Save(ctx context.Context, creds models.Credentials) error
	Load(ctx context.Context) (*models.Credentials, error)
	Clear(ctx context.Context) error
}

// SessionManager owns the session lifecycle: login, register, rehydrate,
// logout. It holds the single in-memory session and mirrors its
// authenticated subset into the credential store.
type SessionManager interface {
	// Login authenticates and adopts the resulting credentials. The
	// persistence write is fire-and-forget relative to the return.
	Login(ctx context.Context, username, password string) (models.Session, error)

	// Register creates an account and adopts the resulting credentials,
	// with the same persistence contract as Login.
	Register(ctx context.Context, email, username, password string) (models.Session, error)

	// Rehydrate starts the one-shot background read of the credential
	// store. The returned channel closes when the read has completed,
	// whether or not a persisted session was found. Until then Session()
	// returns the default empty value.
	Rehydrate() <-chan struct{}

	// Logout clears the in-memory session and deletes the persisted
	// record. Calling it with no active session is a no-op.
	Logout(ctx context.Context) error

	// SetCredentials replaces the session directly (out-of-band credential
	// refresh) and persists immediately.
	SetCredentials(ctx context.Context, creds models.Credentials)

	// Session returns the current in-memory session snapshot.
	Session() models.Session

	// Subscribe returns a channel that receives a snapshot after every
	// session change.
	Subscribe() <-chan models.Session
}
