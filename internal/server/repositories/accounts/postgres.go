package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/dbx"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
)

const accountColumns = `user_id, email, password, first_name, last_name, confirmed_email, role, created_at, updated_at`

// PostgresRepository stores accounts in the accounts table.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a repository over db.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Put(ctx context.Context, a *models.Account) error {
	query :=
		`INSERT INTO accounts (user_id, email, password, first_name, last_name, confirmed_email, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
		   email = EXCLUDED.email,
		   password = EXCLUDED.password,
		   first_name = EXCLUDED.first_name,
		   last_name = EXCLUDED.last_name,
		   confirmed_email = EXCLUDED.confirmed_email,
		   role = EXCLUDED.role,
		   created_at = EXCLUDED.created_at,
		   updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Email, a.Password, a.FirstName, a.LastName,
		string(a.ConfirmedEmail), string(a.Role), a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Scan(ctx context.Context) ([]*models.Account, error) {
	return r.list(ctx, `SELECT `+accountColumns+` FROM accounts`)
}

func (r *PostgresRepository) QueryByEmail(ctx context.Context, email string) ([]*models.Account, error) {
	return r.list(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

// FindByCredentials loads every account and matches email and password in
// memory, the same full scan the DynamoDB repository performs.
func (r *PostgresRepository) FindByCredentials(ctx context.Context, email, password string) (*models.Account, error) {
	all, err := r.Scan(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range all {
		if a.Email == email && a.Password == password {
			return a, nil
		}
	}

	return nil, common.ErrorNotFound
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	a := &models.Account{}
	var confirmed, role string
	err := row.Scan(&a.ID, &a.Email, &a.Password, &a.FirstName, &a.LastName,
		&confirmed, &role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.ConfirmedEmail = models.Confirmation(confirmed)
	a.Role = models.Role(role)
	return a, nil
}
