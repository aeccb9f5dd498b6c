package models

// SessionStatus tracks the lifecycle of the in-memory session.
type SessionStatus string

const (
	SessionIdle      SessionStatus = "idle"
	SessionLoading   SessionStatus = "loading"
	SessionSucceeded SessionStatus = "succeeded"
	SessionFailed    SessionStatus = "failed"
)

// Credentials is the authenticated subset of a session. It is the record
// persisted by the credential store and the seed for rehydration.
type Credentials struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Token    string `json:"token"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Session is the full in-memory session snapshot exposed to callers.
type Session struct {
	UserID   string        `json:"userId,omitempty"`
	Username string        `json:"username,omitempty"`
	Token    string        `json:"token,omitempty"`
	IsAdmin  bool          `json:"isAdmin"`
	Status   SessionStatus `json:"status"`
	Error    string        `json:"error,omitempty"`
}

// Authenticated reports whether the session carries a usable credential.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Status == SessionSucceeded
}

// Credentials extracts the persistable subset of the session.
func (s Session) Credentials() Credentials {
	return Credentials{
		UserID:   s.UserID,
		Username: s.Username,
		Token:    s.Token,
		IsAdmin:  s.IsAdmin,
	}
}
