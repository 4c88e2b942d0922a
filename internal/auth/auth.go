// Package auth implements the authenticator and the authorization error
// kinds shared by the middleware and handlers.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/audit"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/store"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers unknown usernames, wrong passwords and
	// locked accounts alike, so responses never reveal which one happened.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrUnauthenticated means no usable session accompanied the request.
	ErrUnauthenticated = errors.New("auth: unauthenticated")
	// ErrForbidden means the session's role does not match the required one.
	ErrForbidden = errors.New("auth: forbidden")
)

// ClientInfo carries request metadata into audit records.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// Options tunes the authenticator.
type Options struct {
	Secret           string
	SessionTimeout   time.Duration
	LockoutThreshold int           // consecutive failures before lockout
	LockoutWindow    time.Duration // how long a locked account stays locked
}

type failState struct {
	count       int
	lockedUntil time.Time
}

// Authenticator verifies credentials and manages sessions. The user
// directory is read-only at runtime, so lockout counters live here in
// memory instead of on the user records.
type Authenticator struct {
	users store.UserStore
	db    *gorm.DB
	sink  audit.Sink
	opts  Options

	mu       sync.Mutex
	failures map[string]*failState // keyed by lowercase username
}

func New(users store.UserStore, db *gorm.DB, sink audit.Sink, opts Options) *Authenticator {
	if opts.SessionTimeout <= 0 {
		opts.SessionTimeout = time.Hour
	}
	if opts.LockoutThreshold <= 0 {
		opts.LockoutThreshold = 5
	}
	if opts.LockoutWindow <= 0 {
		opts.LockoutWindow = 15 * time.Minute
	}
	return &Authenticator{
		users:    users,
		db:       db,
		sink:     sink,
		opts:     opts,
		failures: make(map[string]*failState),
	}
}

// dummyHash is compared against when the username does not exist, so the
// unknown-user path costs the same as a wrong password.
const dummyHash = "c2FsdHNhbHRzYWx0c2FsdA$3KpjYEnFges7DMbiyQ0EJbrrUkGBVXBBKauS6e5sq8Y"

// Login verifies a username/password pair. On success it revokes the session
// referenced by priorToken (if any), issues a fresh session with a new
// identifier and returns the signed cookie token. Every call appends exactly
// one audit record; if that append fails the login fails with the sink error.
func (a *Authenticator) Login(ctx context.Context, username, password string, priorToken string, client ClientInfo) (*models.Session, string, *models.User, error) {
	username = strings.TrimSpace(username)
	key := strings.ToLower(username)

	user, err := a.users.FindByUsername(username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		recErr := a.record(ctx, audit.Record{
			Actor: username, Kind: audit.KindError,
			Detail: "credential store unavailable", IP: client.IP, UserAgent: client.UserAgent,
		})
		if recErr != nil {
			return nil, "", nil, recErr
		}
		return nil, "", nil, err
	}

	if a.locked(key) {
		if err := a.failure(ctx, username, "account locked", client); err != nil {
			return nil, "", nil, err
		}
		return nil, "", nil, ErrInvalidCredentials
	}

	stored := dummyHash
	if user != nil {
		stored = user.PasswordHash
	}
	if !util.VerifyPassword(password, stored) || user == nil {
		a.markFailure(key)
		if err := a.failure(ctx, username, "invalid credentials provided", client); err != nil {
			return nil, "", nil, err
		}
		return nil, "", nil, ErrInvalidCredentials
	}

	a.clearFailures(key)

	// rotate: any session presented with the login request dies here
	if priorToken != "" {
		if prior, err := a.Resolve(ctx, priorToken); err == nil {
			_ = a.revoke(ctx, prior.ID)
		}
	}

	now := time.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: now.Add(a.opts.SessionTimeout),
		CreatedAt: now,
	}
	if err := a.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, "", nil, fmt.Errorf("create session: %w", err)
	}

	token, err := GenerateToken(a.opts.Secret, session.ID, a.opts.SessionTimeout)
	if err != nil {
		return nil, "", nil, fmt.Errorf("sign token: %w", err)
	}

	if err := a.record(ctx, audit.Record{
		Actor: user.Username, Kind: audit.KindLoginSuccess,
		Detail: fmt.Sprintf("%s %s logged in", user.Role, user.FullName),
		IP:     client.IP, UserAgent: client.UserAgent,
	}); err != nil {
		// do not hand out a session the audit trail never saw
		_ = a.revoke(ctx, session.ID)
		return nil, "", nil, err
	}

	return session, token, user, nil
}

// Resolve maps a cookie token to its live session. Missing, forged, revoked
// and expired tokens all come back as ErrUnauthenticated.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := ParseToken(a.opts.Secret, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	var session models.Session
	if err := a.db.WithContext(ctx).First(&session, "id = ?", claims.SessionID).Error; err != nil {
		return nil, ErrUnauthenticated
	}
	if session.Revoked || session.Expired(time.Now()) {
		return nil, ErrUnauthenticated
	}
	return &session, nil
}

// Logout revokes the session behind the token and appends a logout record.
// A token that no longer resolves is not an error; logout is idempotent.
func (a *Authenticator) Logout(ctx context.Context, token string, client ClientInfo) (*models.Session, error) {
	session, err := a.Resolve(ctx, token)
	if err != nil {
		return nil, nil
	}
	if err := a.revoke(ctx, session.ID); err != nil {
		return nil, err
	}
	if err := a.record(ctx, audit.Record{
		Actor: session.Username, Kind: audit.KindLogout,
		Detail: fmt.Sprintf("user logged out from %s role", session.Role),
		IP:     client.IP, UserAgent: client.UserAgent,
	}); err != nil {
		return nil, err
	}
	return session, nil
}

// DenyRole appends the single authz_denied record for a role mismatch. The
// caller must fail the request if this returns an error.
func (a *Authenticator) DenyRole(ctx context.Context, session *models.Session, requiredRole, path string, client ClientInfo) error {
	return a.record(ctx, audit.Record{
		Actor: session.Username, Kind: audit.KindAuthzDenied,
		Detail: fmt.Sprintf("%s access required for %s, session role is %s", requiredRole, path, session.Role),
		IP:     client.IP, UserAgent: client.UserAgent,
	})
}

func (a *Authenticator) revoke(ctx context.Context, sessionID string) error {
	return a.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("revoked", true).Error
}

func (a *Authenticator) record(ctx context.Context, rec audit.Record) error {
	if err := a.sink.Record(ctx, rec); err != nil {
		return fmt.Errorf("audit login event: %w", err)
	}
	return nil
}

func (a *Authenticator) failure(ctx context.Context, username, detail string, client ClientInfo) error {
	return a.record(ctx, audit.Record{
		Actor: username, Kind: audit.KindLoginFailure,
		Detail: detail, IP: client.IP, UserAgent: client.UserAgent,
	})
}

func (a *Authenticator) locked(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.failures[key]
	if !ok {
		return false
	}
	if st.lockedUntil.IsZero() {
		return false
	}
	if time.Now().After(st.lockedUntil) {
		delete(a.failures, key)
		return false
	}
	return true
}

func (a *Authenticator) markFailure(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := a.failures[key]
	if st == nil {
		st = &failState{}
		a.failures[key] = st
	}
	st.count++
	if st.count >= a.opts.LockoutThreshold {
		st.lockedUntil = time.Now().Add(a.opts.LockoutWindow)
		st.count = 0
	}
}

func (a *Authenticator) clearFailures(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.failures, key)
}
