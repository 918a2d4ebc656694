package sqlite

import (
	"context"
	"time"

	"github.com/example/lecture-allocator/internal/persistence"
)

// UserRepository implements persistence.UserRepository using SQLite.
type UserRepository struct {
	pool *ConnectionPool
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateUser inserts a new institution account.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" || user.Email == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	query := `
		INSERT INTO users (id, display_name, email, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.pool.db.ExecContext(ctx, query,
		user.ID,
		user.DisplayName,
		user.Email,
		string(user.Role),
		user.CreatedAt.Format(time.RFC3339),
		user.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// ListUsersByRole returns accounts carrying the given role ordered by ID.
// The resolution fan-out uses it to address every administrator.
func (r *UserRepository) ListUsersByRole(ctx context.Context, role persistence.UserRole) ([]persistence.User, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, display_name, email, role, created_at, updated_at
		FROM users
		WHERE role = ?
		ORDER BY id
	`, string(role))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	users := make([]persistence.User, 0)
	for rows.Next() {
		var (
			user      persistence.User
			roleValue string
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&user.ID, &user.DisplayName, &user.Email, &roleValue, &createdAt, &updatedAt); err != nil {
			return nil, mapError(err)
		}
		user.Role = persistence.UserRole(roleValue)
		user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		user.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		users = append(users, user)
	}

	return users, rows.Err()
}
