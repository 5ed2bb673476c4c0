package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/guidewell/guidewell-server/internal/models"
)

// ErrNoLinkedItem is returned when a user has no linked bank item yet.
var ErrNoLinkedItem = errors.New("no linked item found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(query, user.ID, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpsertUser ensures a user row exists for the given id, used by the link
// flow where users arrive without registering first.
func (r *Repository) UpsertUser(id, email string) error {
	query := `
		INSERT INTO users (id, email, created_at, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.Exec(query, id, email); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, COALESCE(password_hash, ''), created_at, updated_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(id string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, COALESCE(email, ''), COALESCE(password_hash, ''), created_at, updated_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// LinkedItem is a stored bank-link credential row.
type LinkedItem struct {
	UserID         string
	ItemID         string
	AccessToken    string // encrypted at rest
	AccessTokenMAC string
}

// SaveLinkedItem stores the linking credentials for a user's item. The row
// doubles as the item-level account record, keyed on (user_id, account_id).
func (r *Repository) SaveLinkedItem(item *LinkedItem) error {
	query := `
		INSERT INTO accounts (user_id, plaid_item_id, plaid_access_token, access_token_hmac,
		                      account_id, account_name, account_type, account_subtype, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $2, 'Linked Item', 'item', 'item', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, account_id) DO UPDATE SET
			plaid_access_token = EXCLUDED.plaid_access_token,
			access_token_hmac = EXCLUDED.access_token_hmac,
			updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.Exec(query, item.UserID, item.ItemID, item.AccessToken, item.AccessTokenMAC); err != nil {
		return fmt.Errorf("failed to save linked item: %w", err)
	}
	return nil
}

// GetLinkedItem retrieves the linking credentials for a user, or
// ErrNoLinkedItem when the user has not linked a bank yet.
func (r *Repository) GetLinkedItem(userID string) (*LinkedItem, error) {
	item := &LinkedItem{UserID: userID}
	query := `
		SELECT plaid_item_id, plaid_access_token, COALESCE(access_token_hmac, '')
		FROM accounts
		WHERE user_id = $1 AND account_type = 'item'
		LIMIT 1`
	err := r.db.QueryRow(query, userID).
		Scan(&item.ItemID, &item.AccessToken, &item.AccessTokenMAC)
	if err == sql.ErrNoRows {
		return nil, ErrNoLinkedItem
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get linked item: %w", err)
	}
	return item, nil
}

// ListLinkedItems returns every stored item across all users, for the
// scheduled balance refresh.
func (r *Repository) ListLinkedItems() ([]LinkedItem, error) {
	query := `
		SELECT user_id, plaid_item_id, plaid_access_token, COALESCE(access_token_hmac, '')
		FROM accounts
		WHERE account_type = 'item'`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked items: %w", err)
	}
	defer rows.Close()

	var items []LinkedItem
	for rows.Next() {
		var item LinkedItem
		if err := rows.Scan(&item.UserID, &item.ItemID, &item.AccessToken, &item.AccessTokenMAC); err != nil {
			return nil, fmt.Errorf("failed to scan linked item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read linked items: %w", err)
	}
	return items, nil
}

// UpsertAccount stores a reconciled or manually entered account for a user,
// keyed on (user_id, account_id).
func (r *Repository) UpsertAccount(userID, itemID string, account models.Account) error {
	query := `
		INSERT INTO accounts (user_id, plaid_item_id, account_id, account_name,
		                      account_type, account_subtype, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, account_id) DO UPDATE SET
			account_name = EXCLUDED.account_name,
			account_type = EXCLUDED.account_type,
			balance = EXCLUDED.balance,
			updated_at = CURRENT_TIMESTAMP`
	_, err := r.db.Exec(query, userID, itemID, account.ID, account.Name, string(account.Type), account.Balance)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}
	return nil
}

// UpsertTransaction stores a transaction, keyed on
// (account_id, plaid_transaction_id).
func (r *Repository) UpsertTransaction(t *models.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, plaid_transaction_id, amount, date,
		                          name, merchant_name, category, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), CURRENT_TIMESTAMP)
		ON CONFLICT (account_id, plaid_transaction_id) DO UPDATE SET
			amount = EXCLUDED.amount,
			date = EXCLUDED.date,
			name = EXCLUDED.name`
	_, err := r.db.Exec(query, t.AccountID, t.ExternalID, t.Amount, t.Date, t.Name, t.MerchantName, t.Category)
	if err != nil {
		return fmt.Errorf("failed to upsert transaction: %w", err)
	}
	return nil
}
