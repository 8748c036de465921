package store

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

// Backend names one of the two store implementations.
type Backend string

const (
	BackendLocal  Backend = "local"
	BackendRemote Backend = "remote"
)

func (b Backend) valid() bool {
	return b == BackendLocal || b == BackendRemote || b == ""
}

// remote reports whether this domain is served by the hosted backend.
// An empty value falls back to local.
func (b Backend) remote() bool {
	return b == BackendRemote
}

// Backends pins each data domain to one backend. The choice is made
// here, once, at startup; a request can never switch backends
// mid-flight.
type Backends struct {
	Auth         Backend
	Transactions Backend
	Accounts     Backend
	Commitments  Backend
	Wishlist     Backend
	Debts        Backend
}

// AnyRemote reports whether at least one domain needs the hosted backend.
func (b Backends) AnyRemote() bool {
	for _, c := range []Backend{b.Auth, b.Transactions, b.Accounts, b.Commitments, b.Wishlist, b.Debts} {
		if c.remote() {
			return true
		}
	}
	return false
}

func (b Backends) validate() error {
	domains := map[string]Backend{
		"auth":         b.Auth,
		"transactions": b.Transactions,
		"accounts":     b.Accounts,
		"commitments":  b.Commitments,
		"wishlist":     b.Wishlist,
		"debts":        b.Debts,
	}
	for name, c := range domains {
		if !c.valid() {
			return fmt.Errorf("store: unknown backend %q for domain %q", c, name)
		}
	}
	return nil
}

// Compose binds every domain to its configured implementation.
// pool may be nil when no domain is remote.
func Compose(b Backends, db *gorm.DB, pool *pgxpool.Pool) (*Stores, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if b.AnyRemote() && pool == nil {
		return nil, fmt.Errorf("store: a domain is set to remote but no remote database is configured")
	}

	s := &Stores{}

	if b.Auth.remote() {
		s.Users = NewRemoteCredentialStore(pool)
		s.Sessions = NewRemoteSessionStore(pool)
	} else {
		s.Users = NewLocalCredentialStore(db)
		s.Sessions = NewLocalSessionStore(db)
	}

	if b.Transactions.remote() {
		s.Transactions = NewRemoteTransactionStore(pool)
	} else {
		s.Transactions = NewLocalTransactionStore(db)
	}

	if b.Accounts.remote() {
		s.Accounts = NewRemoteAccountStore(pool)
	} else {
		s.Accounts = NewLocalAccountStore(db)
	}

	if b.Commitments.remote() {
		s.Commitments = NewRemoteCommitmentStore(pool)
		s.Payments = NewRemotePaymentStore(pool)
	} else {
		s.Commitments = NewLocalCommitmentStore(db)
		s.Payments = NewLocalPaymentStore(db)
	}

	if b.Wishlist.remote() {
		s.Wishlist = NewRemoteWishlistStore(pool)
	} else {
		s.Wishlist = NewLocalWishlistStore(db)
	}

	if b.Debts.remote() {
		s.Debts = NewRemoteDebtStore(pool)
	} else {
		s.Debts = NewLocalDebtStore(db)
	}

	return s, nil
}
