package rental

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/miniapartment/e2e/internal/errs"
)

// User roles.
const (
	RoleLandlord = "LANDLORD"
	RoleRenter   = "RENTER"
)

// User is an account in the system under test. PasswordHash is bcrypt and
// never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateUser inserts a user account. Email must be unique.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash, role string) (User, error) {
	if strings.TrimSpace(email) == "" {
		return User{}, errs.New(errs.InvalidArgument, "email is required")
	}
	if role != RoleLandlord && role != RoleRenter {
		return User{}, errs.New(errs.InvalidArgument, "role must be LANDLORD or RENTER")
	}
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.CreatedAt.UnixNano())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return User{}, errs.New(errs.FailedPrecondition, "an account with this email already exists")
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetUserByEmail fetches an account by its unique email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	var created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &created)
	if err == sql.ErrNoRows {
		return User{}, errs.New(errs.NotFound, "user not found")
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	u.CreatedAt = time.Unix(0, created).UTC()
	return u, nil
}

// ListUsers returns one page of accounts. Landlord-only surface.
func (s *Store) ListUsers(ctx context.Context, p ListParams) ([]User, Pagination, error) {
	if err := normalizeListParams(&p); err != nil {
		return nil, Pagination{}, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, Pagination{}, fmt.Errorf("count users: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users
		 ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`,
		p.Limit, (p.Page-1)*p.Limit)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	items := []User{}
	for rows.Next() {
		var u User
		var created int64
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &created); err != nil {
			return nil, Pagination{}, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedAt = time.Unix(0, created).UTC()
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, fmt.Errorf("iterate users: %w", err)
	}
	return items, NewPagination(p.Page, p.Limit, total), nil
}

// ClearUsers removes all accounts. Test fixtures re-seed after calling it.
func (s *Store) ClearUsers(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}
