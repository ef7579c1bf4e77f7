package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/davron17/finflow/internal/models"
)

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
		INSERT INTO users (id, email, username, password_hash, business_type, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRow(query, user.ID, user.Email, user.Username, user.PasswordHash, user.BusinessType).
		Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, username, password_hash, business_type, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.BusinessType, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by primary key
func (r *Repository) FindUserByID(id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, username, password_hash, business_type, created_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.BusinessType, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns every registered user, for the daily digest scan
func (r *Repository) ListUsers() ([]models.User, error) {
	query := `
		SELECT id, email, username, password_hash, business_type, created_at
		FROM users
		ORDER BY created_at`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.BusinessType, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// CreateTransaction inserts a single transaction
func (r *Repository) CreateTransaction(txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, date, amount, description, category, is_expense, is_fixed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRow(query,
		txn.ID, txn.UserID, txn.Date, txn.Amount, txn.Description, txn.Category, txn.IsExpense, txn.IsFixed).
		Scan(&txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactionsByUser returns a user's transactions ordered by date
func (r *Repository) ListTransactionsByUser(userID uuid.UUID) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, date, amount, description, category, is_expense, is_fixed, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date, created_at`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(&txn.ID, &txn.UserID, &txn.Date, &txn.Amount, &txn.Description,
			&txn.Category, &txn.IsExpense, &txn.IsFixed, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}

// BulkInsertTransactions loads an imported statement in one COPY
func (r *Repository) BulkInsertTransactions(txns []models.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(pq.CopyIn("transactions",
		"id", "user_id", "date", "amount", "description", "category", "is_expense", "is_fixed"))
	if err != nil {
		return fmt.Errorf("failed to prepare bulk insert: %w", err)
	}

	for _, txn := range txns {
		if _, err := stmt.Exec(txn.ID, txn.UserID, txn.Date, txn.Amount, txn.Description,
			txn.Category, txn.IsExpense, txn.IsFixed); err != nil {
			stmt.Close()
			return fmt.Errorf("failed to buffer transaction: %w", err)
		}
	}
	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush bulk insert: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close bulk insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return nil
}
