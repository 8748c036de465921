package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
)

// localUsers is the SQLite-backed CredentialStore.
type localUsers struct {
	db *gorm.DB
}

// NewLocalCredentialStore returns a CredentialStore over the local gorm DB.
func NewLocalCredentialStore(db *gorm.DB) CredentialStore {
	return &localUsers{db: db}
}

func (s *localUsers) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? AND is_active = 1", username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user by username: %w", err)
	}
	return &user, nil
}

func (s *localUsers) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = 1", id).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user by id: %w", err)
	}
	return &user, nil
}

func (s *localUsers) PasswordHash(ctx context.Context, id uint) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("password_hash").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("password hash: %w", err)
	}
	return user.PasswordHash, nil
}

func (s *localUsers) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND id != ?", username, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("username taken: %w", err)
	}
	return count > 0, nil
}

func (s *localUsers) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id != ?", email, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("email taken: %w", err)
	}
	return count > 0, nil
}

func (s *localUsers) UpdateProfile(ctx context.Context, id uint, p ProfileFields) (*models.User, error) {
	var updated models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("(username = ? OR email = ?) AND id != ?", p.Username, p.Email, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		res := tx.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
			"username":     p.Username,
			"email":        p.Email,
			"first_name":   p.FirstName,
			"last_name":    p.LastName,
			"phone_number": p.PhoneNumber,
			"updated_at":   time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrNotFound) {
			return nil, err
		}
		// the unique indexes are the backstop for a lost race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &updated, nil
}

func (s *localUsers) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash": hash,
		"updated_at":    time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// localSessions is the SQLite-backed SessionStore.
type localSessions struct {
	db *gorm.DB
}

// NewLocalSessionStore returns a SessionStore over the local gorm DB.
func NewLocalSessionStore(db *gorm.DB) SessionStore {
	return &localSessions{db: db}
}

func (s *localSessions) Create(ctx context.Context, sess *models.Session) error {
	if err := s.db.WithContext(ctx).Omit("User").Create(sess).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *localSessions) ByToken(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	var sess models.Session
	err := s.db.WithContext(ctx).
		Joins("User").
		Where("sessions.session_token = ? AND sessions.expires_at > ?", token, now).
		Where("User.is_active = 1").
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session by token: %w", err)
	}
	return &sess, nil
}

func (s *localSessions) DeleteByToken(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).
		Where("session_token = ?", token).
		Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *localSessions) DeleteForUser(ctx context.Context, userID uint) error {
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func (s *localSessions) DeleteForUserExcept(ctx context.Context, userID uint, keepToken string) error {
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND session_token != ?", userID, keepToken).
		Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("delete other sessions: %w", err)
	}
	return nil
}

func (s *localSessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// localTransactions is the SQLite-backed TransactionStore.
type localTransactions struct {
	db *gorm.DB
}

// NewLocalTransactionStore returns a TransactionStore over the local gorm DB.
func NewLocalTransactionStore(db *gorm.DB) TransactionStore {
	return &localTransactions{db: db}
}

func (s *localTransactions) List(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.WithContext(ctx).
		Order("date DESC, time DESC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *localTransactions) Create(ctx context.Context, t *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (s *localTransactions) Update(ctx context.Context, t *models.Transaction) error {
	res := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", t.ID).
		Select("*").Omit("id", "created_at").
		Updates(t)
	if res.Error != nil {
		return fmt.Errorf("update transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *localTransactions) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error; err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// localAccounts is the SQLite-backed AccountStore.
type localAccounts struct {
	db *gorm.DB
}

// NewLocalAccountStore returns an AccountStore over the local gorm DB.
func NewLocalAccountStore(db *gorm.DB) AccountStore {
	return &localAccounts{db: db}
}

func (s *localAccounts) List(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	err := s.db.WithContext(ctx).
		Order("category, sub_category, card_type").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *localAccounts) UpdateBalance(ctx context.Context, id uint, balance float64) error {
	res := s.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).
		Update("balance", balance)
	if res.Error != nil {
		return fmt.Errorf("update balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// localCommitments is the SQLite-backed CommitmentStore.
type localCommitments struct {
	db *gorm.DB
}

// NewLocalCommitmentStore returns a CommitmentStore over the local gorm DB.
func NewLocalCommitmentStore(db *gorm.DB) CommitmentStore {
	return &localCommitments{db: db}
}

func (s *localCommitments) List(ctx context.Context, status string) ([]models.Commitment, error) {
	q := s.db.WithContext(ctx).Order("name")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var commitments []models.Commitment
	if err := q.Find(&commitments).Error; err != nil {
		return nil, fmt.Errorf("list commitments: %w", err)
	}
	return commitments, nil
}

func (s *localCommitments) Create(ctx context.Context, c *models.Commitment) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create commitment: %w", err)
	}
	return nil
}

func (s *localCommitments) Update(ctx context.Context, c *models.Commitment) error {
	res := s.db.WithContext(ctx).Model(&models.Commitment{}).
		Where("id = ?", c.ID).
		Select("*").Omit("id").
		Updates(c)
	if res.Error != nil {
		return fmt.Errorf("update commitment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the commitment and its payment marks together, so a
// dangling mark can never survive its commitment.
func (s *localCommitments) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("commitment_id = ?", id).
			Delete(&models.CommitmentPayment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Commitment{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete commitment: %w", err)
	}
	return nil
}

// localPayments is the SQLite-backed PaymentStore.
type localPayments struct {
	db *gorm.DB
}

// NewLocalPaymentStore returns a PaymentStore over the local gorm DB.
func NewLocalPaymentStore(db *gorm.DB) PaymentStore {
	return &localPayments{db: db}
}

func (s *localPayments) List(ctx context.Context, f PaymentFilter) ([]models.CommitmentPayment, error) {
	q := s.db.WithContext(ctx).Model(&models.CommitmentPayment{}).
		Select("commitment_payments.*, commitments.name AS commitment_name").
		Joins("JOIN commitments ON commitments.id = commitment_payments.commitment_id")
	if f.Month != 0 {
		q = q.Where("commitment_payments.month = ?", f.Month)
	}
	if f.Year != 0 {
		q = q.Where("commitment_payments.year = ?", f.Year)
	}
	if f.CommitmentID != 0 {
		q = q.Where("commitment_payments.commitment_id = ?", f.CommitmentID)
	}
	var payments []models.CommitmentPayment
	if err := q.Scan(&payments).Error; err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (s *localPayments) Upsert(ctx context.Context, p *models.CommitmentPayment) error {
	err := s.db.WithContext(ctx).Omit("Commitment").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "commitment_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("upsert payment: %w", err)
	}
	return nil
}

func (s *localPayments) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.CommitmentPayment{}, id).Error; err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// localWishlist is the SQLite-backed WishlistStore.
type localWishlist struct {
	db *gorm.DB
}

// NewLocalWishlistStore returns a WishlistStore over the local gorm DB.
func NewLocalWishlistStore(db *gorm.DB) WishlistStore {
	return &localWishlist{db: db}
}

func (s *localWishlist) List(ctx context.Context, status string) ([]models.WishlistItem, error) {
	q := s.db.WithContext(ctx).Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var items []models.WishlistItem
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}

func (s *localWishlist) Create(ctx context.Context, w *models.WishlistItem) error {
	if err := s.db.WithContext(ctx).Create(w).Error; err != nil {
		return fmt.Errorf("create wishlist item: %w", err)
	}
	return nil
}

func (s *localWishlist) Update(ctx context.Context, w *models.WishlistItem) error {
	res := s.db.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("id = ?", w.ID).
		Select("*").Omit("id").
		Updates(w)
	if res.Error != nil {
		return fmt.Errorf("update wishlist item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *localWishlist) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.WishlistItem{}, id).Error; err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	return nil
}

// localDebts is the SQLite-backed DebtStore.
type localDebts struct {
	db *gorm.DB
}

// NewLocalDebtStore returns a DebtStore over the local gorm DB.
func NewLocalDebtStore(db *gorm.DB) DebtStore {
	return &localDebts{db: db}
}

func (s *localDebts) List(ctx context.Context, f DebtFilter) ([]models.Debt, error) {
	q := s.db.WithContext(ctx).Order("created_date DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	var debts []models.Debt
	if err := q.Find(&debts).Error; err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	return debts, nil
}

func (s *localDebts) Create(ctx context.Context, d *models.Debt) error {
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("create debt: %w", err)
	}
	return nil
}

func (s *localDebts) Update(ctx context.Context, d *models.Debt) error {
	res := s.db.WithContext(ctx).Model(&models.Debt{}).
		Where("id = ?", d.ID).
		Select("*").Omit("id").
		Updates(d)
	if res.Error != nil {
		return fmt.Errorf("update debt: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *localDebts) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Debt{}, id).Error; err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return nil
}
