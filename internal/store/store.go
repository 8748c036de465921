// Package store defines the persistence collaborators of the
// application. Every domain gets one interface with exactly two
// implementations: local (SQLite via gorm) and remote (hosted
// Postgres via pgx). Which one serves a domain is decided once at
// composition time, never per call.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("store: duplicate")
)

// ProfileFields carries the mutable public profile of a user.
type ProfileFields struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// CredentialStore holds user records. Lookups return active users
// only; a deactivated account behaves exactly like a missing one.
type CredentialStore interface {
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)
	// PasswordHash reads the stored hash regardless of the active flag.
	PasswordHash(ctx context.Context, id uint) (string, error)
	// UpdateProfile checks that username and email are not held by a
	// different user and writes all fields in one transaction. A lost
	// race surfaces as ErrDuplicate from the unique constraints.
	UpdateProfile(ctx context.Context, id uint, p ProfileFields) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
}

// SessionStore holds session tokens and their expiry.
type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	// ByToken returns the live session joined with its owner: token
	// match, unexpired at now, owner active. One atomic read; a miss
	// is ErrNotFound.
	ByToken(ctx context.Context, token string, now time.Time) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID uint) error
	DeleteForUserExcept(ctx context.Context, userID uint, keepToken string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TransactionStore holds income/expense records.
type TransactionStore interface {
	List(ctx context.Context) ([]models.Transaction, error)
	Create(ctx context.Context, t *models.Transaction) error
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, id uint) error
}

// AccountStore holds balance buckets.
type AccountStore interface {
	List(ctx context.Context) ([]models.Account, error)
	UpdateBalance(ctx context.Context, id uint, balance float64) error
}

// CommitmentStore holds recurring commitments.
type CommitmentStore interface {
	List(ctx context.Context, status string) ([]models.Commitment, error)
	Create(ctx context.Context, c *models.Commitment) error
	Update(ctx context.Context, c *models.Commitment) error
	Delete(ctx context.Context, id uint) error
}

// PaymentFilter narrows a commitment-payment listing.
type PaymentFilter struct {
	Month        int
	Year         int
	CommitmentID uint
}

// PaymentStore holds monthly paid/unpaid marks for commitments.
type PaymentStore interface {
	List(ctx context.Context, f PaymentFilter) ([]models.CommitmentPayment, error)
	// Upsert inserts the mark or updates its status in one conditional
	// write keyed on (commitment_id, month, year).
	Upsert(ctx context.Context, p *models.CommitmentPayment) error
	Delete(ctx context.Context, id uint) error
}

// WishlistStore holds planned purchases.
type WishlistStore interface {
	List(ctx context.Context, status string) ([]models.WishlistItem, error)
	Create(ctx context.Context, w *models.WishlistItem) error
	Update(ctx context.Context, w *models.WishlistItem) error
	Delete(ctx context.Context, id uint) error
}

// DebtFilter narrows a debt listing.
type DebtFilter struct {
	Status string
	Type   string
}

// DebtStore holds informal person-to-person debts.
type DebtStore interface {
	List(ctx context.Context, f DebtFilter) ([]models.Debt, error)
	Create(ctx context.Context, d *models.Debt) error
	Update(ctx context.Context, d *models.Debt) error
	Delete(ctx context.Context, id uint) error
}

// Stores bundles one bound implementation per domain.
type Stores struct {
	Users        CredentialStore
	Sessions     SessionStore
	Transactions TransactionStore
	Accounts     AccountStore
	Commitments  CommitmentStore
	Payments     PaymentStore
	Wishlist     WishlistStore
	Debts        DebtStore
}
