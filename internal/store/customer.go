package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/azadehm/bazaar-golang/internal/models"
)

// CreateUser inserts a user and its paired customer row in one
// transaction, so every identity has exactly one customer from the
// moment it exists.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var taken int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email = ?", user.Email).Scan(&taken)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, &models.ValidationError{Msg: "email is already registered"}
	}

	user.CreatedAt = time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, is_staff, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.IsStaff, user.CreatedAt)
	if err != nil {
		return nil, err
	}
	user.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO customers (user_id) VALUES (?)", user.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail is the login lookup.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, is_staff, created_at
		FROM users WHERE email = ?`, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, is_staff, created_at
		FROM users WHERE id = ?`, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetCustomer fetches a customer by id with the user's name joined in.
func (s *Store) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customerBy(ctx, "c.id = ?", id)
}

// GetCustomerByUserID resolves the customer paired with a user.
func (s *Store) GetCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	return s.customerBy(ctx, "c.user_id = ?", userID)
}

func (s *Store) customerBy(ctx context.Context, where string, arg interface{}) (*models.Customer, error) {
	var c models.Customer
	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.user_id, c.birth_date, u.first_name, u.last_name
		FROM customers c
		JOIN users u ON c.user_id = u.id
		WHERE `+where, arg).Scan(
		&c.ID, &c.UserID, &c.BirthDate, &c.FirstName, &c.LastName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpdateCustomerBirthDate sets the only mutable customer field.
func (s *Store) UpdateCustomerBirthDate(ctx context.Context, customerID int64, birthDate *time.Time) (*models.Customer, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE customers SET birth_date = ? WHERE id = ?", birthDate, customerID)
	if err != nil {
		return nil, err
	}
	return s.GetCustomer(ctx, customerID)
}

// ListCustomers returns every customer, staff only at the API surface.
func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.birth_date, u.first_name, u.last_name
		FROM customers c
		JOIN users u ON c.user_id = u.id
		ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.UserID, &c.BirthDate, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
