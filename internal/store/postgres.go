package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
)

// uniqueViolation is the Postgres SQLSTATE for unique-constraint errors.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// remoteUsers is the hosted-Postgres CredentialStore.
type remoteUsers struct {
	pool *pgxpool.Pool
}

// NewRemoteCredentialStore returns a CredentialStore over the hosted backend.
func NewRemoteCredentialStore(pool *pgxpool.Pool) CredentialStore {
	return &remoteUsers{pool: pool}
}

const userColumns = `id, username, email, password_hash, phone_number, first_name, last_name, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.PhoneNumber,
		&u.FirstName, &u.LastName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *remoteUsers) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND is_active = 1`
	return scanUser(s.pool.QueryRow(ctx, query, username))
}

func (s *remoteUsers) UserByID(ctx context.Context, id uint) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active = 1`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

func (s *remoteUsers) PasswordHash(ctx context.Context, id uint) (string, error) {
	var hash string
	err := s.pool.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, id).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("password hash: %w", err)
	}
	return hash, nil
}

func (s *remoteUsers) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id != $2)`,
		username, exceptID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("username taken: %w", err)
	}
	return exists, nil
}

func (s *remoteUsers) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id != $2)`,
		email, exceptID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("email taken: %w", err)
	}
	return exists, nil
}

func (s *remoteUsers) UpdateProfile(ctx context.Context, id uint, p ProfileFields) (*models.User, error) {
	query := `
		UPDATE users
		SET username = $1, email = $2, first_name = $3, last_name = $4,
		    phone_number = $5, updated_at = now()
		WHERE id = $6
		RETURNING ` + userColumns
	user, err := scanUser(s.pool.QueryRow(ctx, query,
		p.Username, p.Email, p.FirstName, p.LastName, p.PhoneNumber, id))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return user, nil
}

func (s *remoteUsers) UpdatePassword(ctx context.Context, id uint, hash string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// remoteSessions is the hosted-Postgres SessionStore.
type remoteSessions struct {
	pool *pgxpool.Pool
}

// NewRemoteSessionStore returns a SessionStore over the hosted backend.
func NewRemoteSessionStore(pool *pgxpool.Pool) SessionStore {
	return &remoteSessions{pool: pool}
}

func (s *remoteSessions) Create(ctx context.Context, sess *models.Session) error {
	query := `
		INSERT INTO sessions (user_id, session_token, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := s.pool.QueryRow(ctx, query,
		sess.UserID, sess.Token, sess.ExpiresAt, sess.CreatedAt).Scan(&sess.ID)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *remoteSessions) ByToken(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	query := `
		SELECT s.id, s.user_id, s.session_token, s.expires_at, s.created_at,
		       u.id, u.username, u.email, u.phone_number, u.first_name, u.last_name,
		       u.is_active, u.created_at, u.updated_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.session_token = $1 AND s.expires_at > $2 AND u.is_active = 1`
	var sess models.Session
	err := s.pool.QueryRow(ctx, query, token, now).Scan(
		&sess.ID, &sess.UserID, &sess.Token, &sess.ExpiresAt, &sess.CreatedAt,
		&sess.User.ID, &sess.User.Username, &sess.User.Email, &sess.User.PhoneNumber,
		&sess.User.FirstName, &sess.User.LastName, &sess.User.IsActive,
		&sess.User.CreatedAt, &sess.User.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session by token: %w", err)
	}
	return &sess, nil
}

func (s *remoteSessions) DeleteByToken(ctx context.Context, token string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE session_token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *remoteSessions) DeleteForUser(ctx context.Context, userID uint) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func (s *remoteSessions) DeleteForUserExcept(ctx context.Context, userID uint, keepToken string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM sessions WHERE user_id = $1 AND session_token != $2`, userID, keepToken)
	if err != nil {
		return fmt.Errorf("delete other sessions: %w", err)
	}
	return nil
}

func (s *remoteSessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// remoteTransactions is the hosted-Postgres TransactionStore.
type remoteTransactions struct {
	pool *pgxpool.Pool
}

// NewRemoteTransactionStore returns a TransactionStore over the hosted backend.
func NewRemoteTransactionStore(pool *pgxpool.Pool) TransactionStore {
	return &remoteTransactions{pool: pool}
}

const transactionColumns = `id, "date", "time", description, amount, category, sub_category,
	card_choice, income_source, expense_usage, usage_category, hobby_category, created_at, updated_at`

func (s *remoteTransactions) List(ctx context.Context) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY "date" DESC, "time" DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Time, &t.Description, &t.Amount,
			&t.Category, &t.SubCategory, &t.CardChoice, &t.IncomeSource,
			&t.ExpenseUsage, &t.UsageCategory, &t.HobbyCategory,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (s *remoteTransactions) Create(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions ("date", "time", description, amount, category, sub_category,
			card_choice, income_source, expense_usage, usage_category, hobby_category,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		RETURNING id`
	err := s.pool.QueryRow(ctx, query,
		t.Date, t.Time, t.Description, t.Amount, t.Category, t.SubCategory,
		t.CardChoice, t.IncomeSource, t.ExpenseUsage, t.UsageCategory, t.HobbyCategory).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (s *remoteTransactions) Update(ctx context.Context, t *models.Transaction) error {
	query := `
		UPDATE transactions
		SET "date" = $1, "time" = $2, description = $3, amount = $4, category = $5,
		    sub_category = $6, card_choice = $7, income_source = $8, expense_usage = $9,
		    usage_category = $10, hobby_category = $11, updated_at = now()
		WHERE id = $12`
	tag, err := s.pool.Exec(ctx, query,
		t.Date, t.Time, t.Description, t.Amount, t.Category, t.SubCategory,
		t.CardChoice, t.IncomeSource, t.ExpenseUsage, t.UsageCategory, t.HobbyCategory, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *remoteTransactions) Delete(ctx context.Context, id uint) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// remoteAccounts is the hosted-Postgres AccountStore.
type remoteAccounts struct {
	pool *pgxpool.Pool
}

// NewRemoteAccountStore returns an AccountStore over the hosted backend.
func NewRemoteAccountStore(pool *pgxpool.Pool) AccountStore {
	return &remoteAccounts{pool: pool}
}

func (s *remoteAccounts) List(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT id, category, sub_category, card_type, balance
		FROM accounts
		ORDER BY category, sub_category, card_type`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Category, &a.SubCategory, &a.CardType, &a.Balance); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *remoteAccounts) UpdateBalance(ctx context.Context, id uint, balance float64) error {
	tag, err := s.pool.Exec(ctx, `UPDATE accounts SET balance = $1 WHERE id = $2`, balance, id)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// remoteCommitments is the hosted-Postgres CommitmentStore.
type remoteCommitments struct {
	pool *pgxpool.Pool
}

// NewRemoteCommitmentStore returns a CommitmentStore over the hosted backend.
func NewRemoteCommitmentStore(pool *pgxpool.Pool) CommitmentStore {
	return &remoteCommitments{pool: pool}
}

const commitmentColumns = `id, name, description, per_month, per_year, notes, status, start_month, start_year`

func (s *remoteCommitments) List(ctx context.Context, status string) ([]models.Commitment, error) {
	query := `SELECT ` + commitmentColumns + ` FROM commitments`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list commitments: %w", err)
	}
	defer rows.Close()

	var commitments []models.Commitment
	for rows.Next() {
		var c models.Commitment
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.PerMonth, &c.PerYear,
			&c.Notes, &c.Status, &c.StartMonth, &c.StartYear); err != nil {
			return nil, fmt.Errorf("scan commitment: %w", err)
		}
		commitments = append(commitments, c)
	}
	return commitments, rows.Err()
}

func (s *remoteCommitments) Create(ctx context.Context, c *models.Commitment) error {
	query := `
		INSERT INTO commitments (name, description, per_month, per_year, notes, status, start_month, start_year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := s.pool.QueryRow(ctx, query,
		c.Name, c.Description, c.PerMonth, c.PerYear, c.Notes, c.Status,
		c.StartMonth, c.StartYear).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create commitment: %w", err)
	}
	return nil
}

func (s *remoteCommitments) Update(ctx context.Context, c *models.Commitment) error {
	query := `
		UPDATE commitments
		SET name = $1, description = $2, per_month = $3, per_year = $4,
		    notes = $5, status = $6, start_month = $7, start_year = $8
		WHERE id = $9`
	tag, err := s.pool.Exec(ctx, query,
		c.Name, c.Description, c.PerMonth, c.PerYear, c.Notes, c.Status,
		c.StartMonth, c.StartYear, c.ID)
	if err != nil {
		return fmt.Errorf("update commitment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the commitment and its payment marks together.
func (s *remoteCommitments) Delete(ctx context.Context, id uint) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete commitment: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM commitment_payments WHERE commitment_id = $1`, id); err != nil {
		return fmt.Errorf("delete commitment: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM commitments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete commitment: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("delete commitment: %w", err)
	}
	return nil
}

// remotePayments is the hosted-Postgres PaymentStore.
type remotePayments struct {
	pool *pgxpool.Pool
}

// NewRemotePaymentStore returns a PaymentStore over the hosted backend.
func NewRemotePaymentStore(pool *pgxpool.Pool) PaymentStore {
	return &remotePayments{pool: pool}
}

func (s *remotePayments) List(ctx context.Context, f PaymentFilter) ([]models.CommitmentPayment, error) {
	query := `
		SELECT p.id, p.commitment_id, p.month, p.year, p.status, c.name
		FROM commitment_payments p
		JOIN commitments c ON c.id = p.commitment_id
		WHERE 1=1`
	args := []interface{}{}
	n := 0
	if f.Month != 0 {
		n++
		query += fmt.Sprintf(" AND p.month = $%d", n)
		args = append(args, f.Month)
	}
	if f.Year != 0 {
		n++
		query += fmt.Sprintf(" AND p.year = $%d", n)
		args = append(args, f.Year)
	}
	if f.CommitmentID != 0 {
		n++
		query += fmt.Sprintf(" AND p.commitment_id = $%d", n)
		args = append(args, f.CommitmentID)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.CommitmentPayment
	for rows.Next() {
		var p models.CommitmentPayment
		if err := rows.Scan(&p.ID, &p.CommitmentID, &p.Month, &p.Year, &p.Status, &p.CommitmentName); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *remotePayments) Upsert(ctx context.Context, p *models.CommitmentPayment) error {
	query := `
		INSERT INTO commitment_payments (commitment_id, month, year, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (commitment_id, month, year)
		DO UPDATE SET status = EXCLUDED.status
		RETURNING id`
	err := s.pool.QueryRow(ctx, query, p.CommitmentID, p.Month, p.Year, p.Status).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("upsert payment: %w", err)
	}
	return nil
}

func (s *remotePayments) Delete(ctx context.Context, id uint) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM commitment_payments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// remoteWishlist is the hosted-Postgres WishlistStore.
type remoteWishlist struct {
	pool *pgxpool.Pool
}

// NewRemoteWishlistStore returns a WishlistStore over the hosted backend.
func NewRemoteWishlistStore(pool *pgxpool.Pool) WishlistStore {
	return &remoteWishlist{pool: pool}
}

const wishlistColumns = `id, name, category, estimate_price, final_price, purchase_date, url_link, url_picture, status`

func (s *remoteWishlist) List(ctx context.Context, status string) ([]models.WishlistItem, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlist_items`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY id DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	var items []models.WishlistItem
	for rows.Next() {
		var w models.WishlistItem
		if err := rows.Scan(&w.ID, &w.Name, &w.Category, &w.EstimatePrice, &w.FinalPrice,
			&w.PurchaseDate, &w.URLLink, &w.URLPicture, &w.Status); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func (s *remoteWishlist) Create(ctx context.Context, w *models.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (name, category, estimate_price, final_price,
			purchase_date, url_link, url_picture, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := s.pool.QueryRow(ctx, query,
		w.Name, w.Category, w.EstimatePrice, w.FinalPrice,
		w.PurchaseDate, w.URLLink, w.URLPicture, w.Status).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("create wishlist item: %w", err)
	}
	return nil
}

func (s *remoteWishlist) Update(ctx context.Context, w *models.WishlistItem) error {
	query := `
		UPDATE wishlist_items
		SET name = $1, category = $2, estimate_price = $3, final_price = $4,
		    purchase_date = $5, url_link = $6, url_picture = $7, status = $8
		WHERE id = $9`
	tag, err := s.pool.Exec(ctx, query,
		w.Name, w.Category, w.EstimatePrice, w.FinalPrice,
		w.PurchaseDate, w.URLLink, w.URLPicture, w.Status, w.ID)
	if err != nil {
		return fmt.Errorf("update wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *remoteWishlist) Delete(ctx context.Context, id uint) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	return nil
}

// remoteDebts is the hosted-Postgres DebtStore.
type remoteDebts struct {
	pool *pgxpool.Pool
}

// NewRemoteDebtStore returns a DebtStore over the hosted backend.
func NewRemoteDebtStore(pool *pgxpool.Pool) DebtStore {
	return &remoteDebts{pool: pool}
}

const debtColumns = `id, type, created_date, due_date, person_name, amount, notes, status, settled_date`

func (s *remoteDebts) List(ctx context.Context, f DebtFilter) ([]models.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE 1=1`
	args := []interface{}{}
	n := 0
	if f.Status != "" {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, f.Status)
	}
	if f.Type != "" {
		n++
		query += fmt.Sprintf(" AND type = $%d", n)
		args = append(args, f.Type)
	}
	query += ` ORDER BY created_date DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		var d models.Debt
		if err := rows.Scan(&d.ID, &d.Type, &d.CreatedDate, &d.DueDate, &d.PersonName,
			&d.Amount, &d.Notes, &d.Status, &d.SettledDate); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (s *remoteDebts) Create(ctx context.Context, d *models.Debt) error {
	query := `
		INSERT INTO debts (type, created_date, due_date, person_name, amount, notes, status, settled_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := s.pool.QueryRow(ctx, query,
		d.Type, d.CreatedDate, d.DueDate, d.PersonName, d.Amount,
		d.Notes, d.Status, d.SettledDate).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("create debt: %w", err)
	}
	return nil
}

func (s *remoteDebts) Update(ctx context.Context, d *models.Debt) error {
	query := `
		UPDATE debts
		SET type = $1, created_date = $2, due_date = $3, person_name = $4,
		    amount = $5, notes = $6, status = $7, settled_date = $8
		WHERE id = $9`
	tag, err := s.pool.Exec(ctx, query,
		d.Type, d.CreatedDate, d.DueDate, d.PersonName, d.Amount,
		d.Notes, d.Status, d.SettledDate, d.ID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *remoteDebts) Delete(ctx context.Context, id uint) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM debts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return nil
}
