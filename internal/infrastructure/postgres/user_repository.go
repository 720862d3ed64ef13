package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/devconnect/api/internal/domain/entity"
	"github.com/devconnect/api/internal/domain/repository"
	"github.com/devconnect/api/pkg/helpers"
)

const userColumns = `id, name, email, password, role, status, photo_url, bio, skills, created_at, updated_at`

// DB is the subset of pgxpool.Pool the repository needs. Narrowed so tests
// can substitute a mock pool.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UserRepository is the Postgres-backed account directory. The unique index
// on users.email is the authoritative guard against concurrent registrations
// with the same address.
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Status,
		&u.PhotoURL, &u.Bio, &u.Skills, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create hashes the plaintext credential and inserts the account. The stored
// record never holds the plaintext password.
func (r *UserRepository) Create(ctx context.Context, in repository.CreateUserInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleClient
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns+`
	`, in.Name, in.Email, hash, role)

	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id string, status entity.Status) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET status = $1, updated_at = now()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListExcept(ctx context.Context, id string) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id <> $1
		ORDER BY created_at DESC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateProfile mutates only the profile-owned fields; COALESCE keeps a
// column untouched when the corresponding input is empty.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, upd repository.ProfileUpdate) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET name      = COALESCE(NULLIF($1, ''), name),
		    photo_url = COALESCE(NULLIF($2, ''), photo_url),
		    bio       = COALESCE(NULLIF($3, ''), bio),
		    skills    = COALESCE($4, skills),
		    updated_at = now()
		WHERE id = $5
		RETURNING `+userColumns+`
	`, upd.Name, upd.PhotoURL, upd.Bio, upd.Skills, id)

	return scanUser(row)
}

var _ repository.UserRepository = (*UserRepository)(nil)
