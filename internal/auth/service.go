// Package auth implements the session-based authentication core:
// password verification, token issuance, the session lifecycle and
// session-to-user resolution. It is pure logic over the credential
// and session stores; the HTTP cookie transport lives elsewhere.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
)

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

const minPasswordLen = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Policy captures the product decisions around sessions so that a
// future multi-device mode is a configuration change, not a rewrite.
type Policy struct {
	BcryptCost int
	SessionTTL time.Duration
	// SingleDevice deletes all prior sessions of a user on login.
	SingleDevice bool
	// RevokeOnPasswordChange deletes the user's other sessions after a
	// password change, keeping only the session that made the change.
	RevokeOnPasswordChange bool
}

func (p Policy) withDefaults() Policy {
	if p.BcryptCost <= 0 {
		p.BcryptCost = DefaultBcryptCost
	}
	if p.SessionTTL <= 0 {
		p.SessionTTL = DefaultSessionTTL
	}
	return p
}

// Service orchestrates the session lifecycle over the two stores.
// It never caches store state between calls.
type Service struct {
	users    store.CredentialStore
	sessions store.SessionStore
	policy   Policy
	now      func() time.Time
}

// NewService builds the auth core. The stores are whichever backend
// was composed at startup.
func NewService(users store.CredentialStore, sessions store.SessionStore, policy Policy) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		policy:   policy.withDefaults(),
		now:      time.Now,
	}
}

// ProfileUpdate carries the five mutable profile fields; all are required.
type ProfileUpdate struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// Login verifies the credentials and, on success, replaces any prior
// sessions of the user with a fresh one and returns the new token.
// Unknown user, wrong password and inactive account are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.UserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateToken()
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}

	// delete-then-insert, in that order: the single-device invariant
	// must not leave a stale session alive next to the new one
	if s.policy.SingleDevice {
		if err := s.sessions.DeleteForUser(ctx, user.ID); err != nil {
			return nil, "", fmt.Errorf("login: %w", err)
		}
	}

	now := s.now()
	sess := &models.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(s.policy.SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Resolve maps a token to its live session, or (nil, nil) when the
// token is absent, unknown, expired or owned by a deactivated user.
// The lookup is a single joined read, so there is no window between
// checking expiry and loading the user.
func (s *Service) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}
	sess, err := s.sessions.ByToken(ctx, token, s.now())
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	sess.User.PasswordHash = ""
	return sess, nil
}

// Logout deletes the session matching the token. Deleting a token
// that never existed is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// ChangePassword validates and applies a password change for an
// already-authenticated user. keepToken is the caller's own session;
// when the revocation policy is on, every other session dies.
func (s *Service) ChangePassword(ctx context.Context, userID uint, current, newPassword, confirm, keepToken string) error {
	if current == "" || newPassword == "" || confirm == "" {
		return validationErr("All fields are required")
	}
	if newPassword != confirm {
		return validationErr("New passwords do not match")
	}
	if len(newPassword) < minPasswordLen {
		return validationErr("New password must be at least 6 characters long")
	}

	hash, err := s.users.PasswordHash(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return validationErr("User not found")
	}
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if !VerifyPassword(current, hash) {
		return validationErr("Current password is incorrect")
	}

	newHash, err := HashPassword(newPassword, s.policy.BcryptCost)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	if s.policy.RevokeOnPasswordChange {
		if err := s.sessions.DeleteForUserExcept(ctx, userID, keepToken); err != nil {
			return fmt.Errorf("change password: %w", err)
		}
	}
	return nil
}

// UpdateProfile validates and persists the public profile fields,
// returning the updated user without the password hash.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, p ProfileUpdate) (*models.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	if p.Username == "" || p.Email == "" || p.FirstName == "" || p.LastName == "" || p.PhoneNumber == "" {
		return nil, validationErr("All fields are required")
	}
	if !emailRe.MatchString(p.Email) {
		return nil, validationErr("Invalid email format")
	}

	// friendly pre-checks; the store's unique constraints are the
	// backstop for the race between check and write
	taken, err := s.users.UsernameTaken(ctx, p.Username, userID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if taken {
		return nil, validationErr("Username is already taken")
	}
	taken, err = s.users.EmailTaken(ctx, p.Email, userID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if taken {
		return nil, validationErr("Email is already in use by another account")
	}

	user, err := s.users.UpdateProfile(ctx, userID, store.ProfileFields{
		Username:    p.Username,
		Email:       p.Email,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		PhoneNumber: p.PhoneNumber,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, validationErr("Username or email is already in use by another account")
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, validationErr("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// CleanupExpired bulk-deletes expired session rows. Safe to run
// repeatedly and concurrently; a no-op when nothing expired.
func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("cleanup sessions: %w", err)
	}
	return n, nil
}
