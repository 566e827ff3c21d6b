package users

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("user not found")
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Register(ctx context.Context, name, email, password, mobile, address string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO users(name, email, password, role, mobile, address)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		name, email, hash, string(RoleUser), mobile, address)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

// Authenticate verifies the password for the email. Legacy rows that still
// hold plaintext are upgraded to a bcrypt hash on a successful match.
func (r *Repo) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := r.getByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}

	if isHashed(u.password) {
		if bcrypt.CompareHashAndPassword([]byte(u.password), []byte(password)) != nil {
			return User{}, ErrInvalidCredentials
		}
		return u, nil
	}

	if u.password != password {
		return User{}, ErrInvalidCredentials
	}
	// lazy migration: rehash on the spot, best-effort
	if hash, herr := HashPassword(password); herr == nil {
		if _, uerr := r.DB.Exec(ctx,
			`UPDATE users SET password = $2 WHERE email = $1`, email, hash); uerr != nil {
			log.Printf("password upgrade for %s: %v", email, uerr)
		}
	}
	return u, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getByEmail(ctx, email)
}

func (r *Repo) getByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, email, password, role, COALESCE(mobile,''), COALESCE(address,'')
		FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.password, &u.Role, &u.Mobile, &u.Address)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// UpdateProfile edits name, mobile and address. Email and password are not
// editable through this path.
func (r *Repo) UpdateProfile(ctx context.Context, email, name, mobile, address string) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE users SET name = $2, mobile = $3, address = $4 WHERE email = $1`,
		email, name, mobile, address)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
