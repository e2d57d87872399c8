// Package archive keeps the combined line items of each batch in SQLite
package archive

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/garyjia/election-finance/internal/models"
	"github.com/garyjia/election-finance/pkg/database"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the schema of the archive
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Repository stores combined line items keyed by batch
type Repository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewRepository creates a new repository
func NewRepository(db *database.DB, logger *zap.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Open opens the database at path and brings its schema up to date
func Open(ctx context.Context, path string, logger *zap.Logger) (*Repository, error) {
	db, err := database.New(database.Config{Path: path}, logger)
	if err != nil {
		return nil, err
	}
	if err := database.NewMigrator(db, logger).RunMigrations(ctx, Migrations()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewRepository(db, logger), nil
}

// Close closes the underlying database
func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveBatch replaces the stored items of batch with items, in one transaction.
// Items must already carry their data_id.
func (r *Repository) SaveBatch(ctx context.Context, batch string, items []*models.LineItem) error {
	err := r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM line_items WHERE batch = ?`, batch); err != nil {
			return fmt.Errorf("failed to clear batch: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO line_items (
				data_id, batch, seq, category, date, price, type,
				purpose, non_monetary_basis, note, public_expense_amount
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for seq, item := range items {
			if item.DataID == "" {
				return fmt.Errorf("item %d of batch %s has no data_id", seq, batch)
			}
			var publicExpense sql.NullString
			if item.PublicExpenseAmount != nil {
				publicExpense = sql.NullString{String: item.PublicExpenseAmount.String(), Valid: true}
			}
			_, err := stmt.ExecContext(ctx,
				item.DataID,
				batch,
				seq,
				string(item.Category),
				nullString(item.Date),
				item.Price.String(),
				nullString(item.Type),
				nullString(item.Purpose),
				nullString(item.NonMonetaryBasis),
				nullString(item.Note),
				publicExpense,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item %d: %w", seq, err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to archive batch", zap.String("batch", batch), zap.Error(err))
		return err
	}

	r.logger.Debug("Archived batch", zap.String("batch", batch), zap.Int("item_count", len(items)))
	return nil
}

// CountByBatch returns the number of stored items of batch
func (r *Repository) CountByBatch(ctx context.Context, batch string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM line_items WHERE batch = ?`, batch).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count batch items: %w", err)
	}
	return n, nil
}

// ListByBatch returns the stored items of batch in their combined order
func (r *Repository) ListByBatch(ctx context.Context, batch string) ([]*models.LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT data_id, category, date, price, type, purpose,
			non_monetary_basis, note, public_expense_amount
		FROM line_items
		WHERE batch = ?
		ORDER BY seq
	`, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch items: %w", err)
	}
	defer rows.Close()

	items := []*models.LineItem{}
	for rows.Next() {
		var (
			item                                               models.LineItem
			category, price                                    string
			date, typ, purpose, basis, note, publicExpenseText sql.NullString
		)
		if err := rows.Scan(&item.DataID, &category, &date, &price, &typ, &purpose, &basis, &note, &publicExpenseText); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		item.Category = models.Category(category)
		if item.Price, err = models.ParseAmount(price); err != nil {
			return nil, fmt.Errorf("item %s: %w", item.DataID, err)
		}
		if publicExpenseText.Valid {
			amount, err := models.ParseAmount(publicExpenseText.String)
			if err != nil {
				return nil, fmt.Errorf("item %s: %w", item.DataID, err)
			}
			item.PublicExpenseAmount = &amount
		}
		item.Date = stringPtr(date)
		item.Type = stringPtr(typ)
		item.Purpose = stringPtr(purpose)
		item.NonMonetaryBasis = stringPtr(basis)
		item.Note = stringPtr(note)
		items = append(items, &item)
	}
	return items, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
