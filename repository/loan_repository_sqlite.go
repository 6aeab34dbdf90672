package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"lending-core/domain"
)

// fixed width so created_at sorts lexically
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// LoanRepositorySQLite persists calculations in a local SQLite file.
// Decimals are stored as TEXT so nothing is lost to float conversion.
type LoanRepositorySQLite struct {
	db *sql.DB
}

func OpenLoanRepositorySQLite(path string) (*LoanRepositorySQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	repo := &LoanRepositorySQLite{db: db}
	if err := repo.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *LoanRepositorySQLite) Close() error { return r.db.Close() }

func (r *LoanRepositorySQLite) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *LoanRepositorySQLite) ensureSchema() error {
	const createTable = `
CREATE TABLE IF NOT EXISTS loan_calculations (
  id TEXT PRIMARY KEY,
  amount TEXT NOT NULL,
  annual_rate TEXT NOT NULL,
  term_months INTEGER NOT NULL,
  monthly_payment TEXT NOT NULL,
  total_interest TEXT NOT NULL,
  total_repayment TEXT NOT NULL,
  clamped INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);
`
	if _, err := r.db.Exec(createTable); err != nil {
		return fmt.Errorf("create loan_calculations: %w", err)
	}
	if _, err := r.db.Exec(`CREATE INDEX IF NOT EXISTS idx_loan_calculations_created ON loan_calculations(created_at);`); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

func (r *LoanRepositorySQLite) Save(ctx context.Context, record domain.CalculationRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO loan_calculations
(id, amount, annual_rate, term_months, monthly_payment, total_interest, total_repayment, clamped, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		record.ID,
		record.Terms.Amount.String(),
		record.Terms.AnnualRatePercent.String(),
		record.Terms.TermMonths,
		record.Result.MonthlyPayment.String(),
		record.Result.TotalInterest.String(),
		record.Result.TotalRepayment.String(),
		record.Clamped,
		record.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert calculation %s: %w", record.ID, err)
	}
	return nil
}

func (r *LoanRepositorySQLite) Recent(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, amount, annual_rate, term_months, monthly_payment, total_interest, total_repayment, clamped, created_at
FROM loan_calculations
ORDER BY created_at DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	var out []domain.CalculationRecord
	for rows.Next() {
		var rec domain.CalculationRecord
		var amount, rate, payment, interest, repaid, createdAt string
		if err := rows.Scan(&rec.ID, &amount, &rate, &rec.Terms.TermMonths, &payment, &interest, &repaid, &rec.Clamped, &createdAt); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		if rec.Terms.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount of %s: %w", rec.ID, err)
		}
		if rec.Terms.AnnualRatePercent, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("parse rate of %s: %w", rec.ID, err)
		}
		if rec.Result.MonthlyPayment, err = decimal.NewFromString(payment); err != nil {
			return nil, fmt.Errorf("parse monthly payment of %s: %w", rec.ID, err)
		}
		if rec.Result.TotalInterest, err = decimal.NewFromString(interest); err != nil {
			return nil, fmt.Errorf("parse total interest of %s: %w", rec.ID, err)
		}
		if rec.Result.TotalRepayment, err = decimal.NewFromString(repaid); err != nil {
			return nil, fmt.Errorf("parse total repayment of %s: %w", rec.ID, err)
		}
		if rec.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at of %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
