package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"loan-manager/domain"
)

const loanColumns = `id, amount, interest_rate, term, loan_type, monthly_payment`

// PostgresLoanStore keeps loans in the loans table. Ids come from the
// loan_id_seq sequence.
type PostgresLoanStore struct {
	pool *pgxpool.Pool
}

// NewPostgresLoanStore connects to dsn and applies pending migrations.
func NewPostgresLoanStore(ctx context.Context, dsn string) (*PostgresLoanStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "postgres: ping")
	}
	if err := ApplyMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresLoanStore{pool: pool}, nil
}

func (s *PostgresLoanStore) NextID(ctx context.Context) (int64, error) {
	var id int64
	if err := s.pool.QueryRow(ctx, `SELECT nextval('loan_id_seq')`).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "postgres: next loan id")
	}
	return id, nil
}

func (s *PostgresLoanStore) Insert(ctx context.Context, loan domain.Loan) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO loans(`+loanColumns+`)
		VALUES($1,$2,$3,$4,$5,$6)
	`, loan.ID, loan.Amount, loan.InterestRate, loan.Term, loan.LoanType, loan.MonthlyPayment)
	return errors.Wrap(err, "postgres: insert loan")
}

func (s *PostgresLoanStore) FindAll(ctx context.Context) ([]domain.Loan, error) {
	return s.Find(ctx, domain.LoanFilter{})
}

func (s *PostgresLoanStore) FindByID(ctx context.Context, id int64) (domain.Loan, error) {
	var l domain.Loan
	err := s.pool.QueryRow(ctx, `SELECT `+loanColumns+` FROM loans WHERE id=$1`, id).
		Scan(&l.ID, &l.Amount, &l.InterestRate, &l.Term, &l.LoanType, &l.MonthlyPayment)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Loan{}, domain.ErrLoanNotFound
	}
	if err != nil {
		return domain.Loan{}, errors.Wrap(err, "postgres: find loan")
	}
	return l, nil
}

func (s *PostgresLoanStore) Find(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	query, args := buildFindQuery(filter)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: find loans")
	}
	defer rows.Close()

	out := []domain.Loan{}
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.Amount, &l.InterestRate, &l.Term, &l.LoanType, &l.MonthlyPayment); err != nil {
			return nil, errors.Wrap(err, "postgres: scan loan")
		}
		out = append(out, l)
	}
	return out, errors.Wrap(rows.Err(), "postgres: iterate loans")
}

func buildFindQuery(filter domain.LoanFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.LoanType != nil {
		args = append(args, *filter.LoanType)
		where = append(where, fmt.Sprintf("loan_type=$%d", len(args)))
	}
	if filter.MaxInterestRate != nil {
		args = append(args, *filter.MaxInterestRate)
		where = append(where, fmt.Sprintf("interest_rate<=$%d", len(args)))
	}

	query := `SELECT ` + loanColumns + ` FROM loans`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	return query + ` ORDER BY id`, args
}

func (s *PostgresLoanStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM loans WHERE id=$1`, id)
	if err != nil {
		return 0, errors.Wrap(err, "postgres: delete loan")
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresLoanStore) Ping(ctx context.Context) error {
	return errors.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresLoanStore) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}
