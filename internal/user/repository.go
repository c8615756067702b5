package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists user records. Implementations report failures as
// *Error values so the service can map them to outcomes without knowing
// the backing store.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	List(ctx context.Context) ([]User, error)
	// Delete removes the record with the given id. The boolean reports
	// whether a row actually existed; an absent id is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
}

// PostgresRepository implements Repository against the users table.
//
// Uniqueness on email and phone_number is enforced by the store's unique
// constraints alone. There is no pre-check before insert, so concurrent
// registrations racing on the same value resolve to one winner and one
// conflict outcome.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const (
	insertUserSQL = `INSERT INTO users (name, age, email, phone_number, date_of_birth)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
	// Listing order is a documented guarantee: alphabetical by name,
	// ties broken by id.
	listUsersSQL = `SELECT id, name, age, email, phone_number, date_of_birth
        FROM users
        ORDER BY name, id`
	deleteUserSQL = `DELETE FROM users WHERE id = $1`
)

// Create inserts a record and returns it with the store-assigned id.
func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	row := r.db.QueryRow(ctx, insertUserSQL, u.Name, u.Age, u.Email, u.Phone, u.DateOfBirth)
	if err := row.Scan(&u.ID); err != nil {
		return User{}, classifyStoreError(err)
	}
	return u, nil
}

// List returns all records ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, listUsersSQL)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Age, &u.Email, &u.Phone, &u.DateOfBirth); err != nil {
			return nil, classifyStoreError(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError(err)
	}
	return users, nil
}

// Delete removes the record with the given id if present.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, deleteUserSQL, id)
	if err != nil {
		return false, classifyStoreError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Postgres error codes the repository distinguishes. Connectivity-class
// errors (08xxx), bad credentials and a missing database all collapse to
// the same generic outcome for callers, but the code is preserved for
// logging.
const (
	codeUniqueViolation = "23505"
	codeInvalidPassword = "28P01"
	codeInvalidCatalog  = "3D000"

	connectionErrorClass = "08"
)

func classifyStoreError(err error) *Error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			// The constraint name tells us which field collided, matching
			// the users_email_key / users_phone_number_key constraints.
			if strings.Contains(pgErr.ConstraintName, "email") {
				return &Error{Kind: KindConflict, Field: "email", Message: MsgEmailTaken, Code: pgErr.Code, Err: err}
			}
			return &Error{Kind: KindConflict, Field: "phone", Message: MsgPhoneTaken, Code: pgErr.Code, Err: err}
		case pgErr.Code == codeInvalidPassword,
			pgErr.Code == codeInvalidCatalog,
			strings.HasPrefix(pgErr.Code, connectionErrorClass):
			return &Error{Kind: KindStoreUnavailable, Code: pgErr.Code, Err: err}
		default:
			return &Error{Kind: KindUnknown, Code: pgErr.Code, Err: err}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindStoreUnavailable, Err: err}
	}
	return &Error{Kind: KindUnknown, Err: err}
}
