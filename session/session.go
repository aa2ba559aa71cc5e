// session/session.go

/* Package session holds the token the client currently authenticates with.
The authentication handler is the only writer; the retry handler reads it to build the
bearer for each protected call. */
package session

import (
	"sync"
	"time"
)

// Payload is the decoded body of the JWT access token.
type Payload struct {
	Subject    string    `json:"sub,omitempty"`
	UniqueName []string  `json:"unique_name,omitempty"`
	ID         string    `json:"jti,omitempty"`
	NotBefore  *time.Time `json:"nbf,omitempty"` // nil when the claim is absent
	Expiry     *time.Time `json:"exp,omitempty"`
	IssuedAt   *time.Time `json:"iat,omitempty"`
	Issuer     string    `json:"iss,omitempty"`
	Audience   []string  `json:"aud,omitempty"`
}

// Token is the artifact returned by the login endpoint together with its decoded payload.
// Authenticated is true only when AccessToken came from the most recent successful exchange.
type Token struct {
	Authenticated bool     `json:"authenticated"`
	Created       string   `json:"created,omitempty"`
	Expiration    string   `json:"expiration,omitempty"`
	AccessToken   string   `json:"accessToken,omitempty"`
	Message       string   `json:"message,omitempty"`
	Payload       *Payload `json:"-"`
}

// BearerValue returns the Authorization header value for the token, or "" when the
// token is nil or not authenticated.
func (t *Token) BearerValue() string {
	if t == nil || !t.Authenticated || t.AccessToken == "" {
		return ""
	}
	return "Bearer " + t.AccessToken
}

func (t *Token) clone() *Token {
	if t == nil {
		return nil
	}
	c := *t
	if t.Payload != nil {
		p := *t.Payload
		p.UniqueName = append([]string(nil), t.Payload.UniqueName...)
		p.Audience = append([]string(nil), t.Payload.Audience...)
		c.Payload = &p
	}
	return &c
}

// State is the session state owned by one client instance.
type State struct {
	mu    sync.RWMutex
	token *Token
}

// New returns an empty, unauthenticated State.
func New() *State {
	return &State{}
}

// Current returns a copy of the current token, or nil when none has been stored.
// Changing the copy does not change the session; use Replace.
func (s *State) Current() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token.clone()
}

// Replace stores a copy of t as the current token.
func (s *State) Replace(t *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = t.clone()
}

// IsAuthenticated reports whether the current token is authenticated.
func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != nil && s.token.Authenticated
}

// AccessToken returns the raw bearer string of the current token, or "" if the
// session is not authenticated.
func (s *State) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil || !s.token.Authenticated {
		return ""
	}
	return s.token.AccessToken
}

// Reset drops the current token.
func (s *State) Reset() {
	s.Replace(nil)
}
