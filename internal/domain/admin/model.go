package admin

import "time"

// User is an admin account. Only the password hash is stored.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// State is the position of a login attempt in the session gate.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session is the outcome of a login attempt. User is set only when authenticated.
type Session struct {
	State State
	User  *User
}

// Authenticated reports whether the gate accepted the credentials.
func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}
