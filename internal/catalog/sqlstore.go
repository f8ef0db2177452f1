package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/shopbot/core/logger"
	"log/slog"
)

// SQLStore implements Store on top of sqlx. Queries are written with `?`
// bindvars and rebound per driver, so postgres and sqlite share one
// implementation.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open sqlx connection.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// ListSections returns a page of sections in insertion order.
func (s *SQLStore) ListSections(ctx context.Context, page, pageSize int) ([]Section, bool, error) {
	return listPage[Section](ctx, s, page, pageSize,
		`SELECT id, name FROM sections ORDER BY id LIMIT ? OFFSET ?`)
}

// ListSubsections returns a page of subsections for a section.
// It fails with ErrNotFound when the section no longer exists.
func (s *SQLStore) ListSubsections(ctx context.Context, sectionID int64, page, pageSize int) ([]Subsection, bool, error) {
	if _, err := s.GetSection(ctx, sectionID); err != nil {
		return nil, false, err
	}
	return listPage[Subsection](ctx, s, page, pageSize,
		`SELECT id, section_id, name FROM subsections WHERE section_id = ? ORDER BY id LIMIT ? OFFSET ?`,
		sectionID)
}

// ListProducts returns a page of products for a subsection.
// It fails with ErrNotFound when the subsection no longer exists.
func (s *SQLStore) ListProducts(ctx context.Context, subsectionID int64, page, pageSize int) ([]Product, bool, error) {
	if _, err := s.GetSubsection(ctx, subsectionID); err != nil {
		return nil, false, err
	}
	return listPage[Product](ctx, s, page, pageSize,
		`SELECT id, subsection_id, name, price FROM products WHERE subsection_id = ? ORDER BY id LIMIT ? OFFSET ?`,
		subsectionID)
}

// listPage fetches one row beyond the page to detect a following page.
func listPage[T any](ctx context.Context, s *SQLStore, page, pageSize int, query string, args ...any) ([]T, bool, error) {
	if page < 0 || pageSize <= 0 {
		return nil, false, fmt.Errorf("catalog: invalid page %d size %d", page, pageSize)
	}
	args = append(args, pageSize+1, page*pageSize)

	var rows []T
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, false, fmt.Errorf("catalog: list: %w", err)
	}
	hasNext := len(rows) > pageSize
	if hasNext {
		rows = rows[:pageSize]
	}
	return rows, hasNext, nil
}

// GetSection fetches a section by id.
func (s *SQLStore) GetSection(ctx context.Context, id int64) (Section, error) {
	var row Section
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT id, name FROM sections WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Section{}, fmt.Errorf("section %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Section{}, fmt.Errorf("catalog: get section: %w", err)
	}
	return row, nil
}

// GetSubsection fetches a subsection by id.
func (s *SQLStore) GetSubsection(ctx context.Context, id int64) (Subsection, error) {
	var row Subsection
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT id, section_id, name FROM subsections WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Subsection{}, fmt.Errorf("subsection %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Subsection{}, fmt.Errorf("catalog: get subsection: %w", err)
	}
	return row, nil
}

// GetProduct fetches a product by id.
func (s *SQLStore) GetProduct(ctx context.Context, id int64) (Product, error) {
	var row Product
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT id, subsection_id, name, price FROM products WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Product{}, fmt.Errorf("catalog: get product: %w", err)
	}
	return row, nil
}

// CountSections returns the total number of sections.
func (s *SQLStore) CountSections(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM sections`)
}

// CountSubsections returns the number of subsections under a section.
func (s *SQLStore) CountSubsections(ctx context.Context, sectionID int64) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM subsections WHERE section_id = ?`, sectionID)
}

// CountProducts returns the number of products under a subsection.
func (s *SQLStore) CountProducts(ctx context.Context, subsectionID int64) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM products WHERE subsection_id = ?`, subsectionID)
}

func (s *SQLStore) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("catalog: count: %w", err)
	}
	return n, nil
}

// CreateSection inserts a section and returns its id.
func (s *SQLStore) CreateSection(ctx context.Context, name string) (int64, error) {
	id, err := s.insert(ctx, `INSERT INTO sections (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("catalog: create section: %w", err)
	}
	s.logMutation(ctx, "section.create", slog.Int64("section_id", id))
	return id, nil
}

// DeleteSection removes a section; subsections and products cascade.
func (s *SQLStore) DeleteSection(ctx context.Context, id int64) error {
	if err := s.deleteByID(ctx, `DELETE FROM sections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("catalog: delete section %d: %w", id, err)
	}
	s.logMutation(ctx, "section.delete", slog.Int64("section_id", id))
	return nil
}

// CreateSubsection inserts a subsection under an existing section.
func (s *SQLStore) CreateSubsection(ctx context.Context, sectionID int64, name string) (int64, error) {
	if _, err := s.GetSection(ctx, sectionID); err != nil {
		return 0, err
	}
	id, err := s.insert(ctx, `INSERT INTO subsections (section_id, name) VALUES (?, ?)`, sectionID, name)
	if err != nil {
		return 0, fmt.Errorf("catalog: create subsection: %w", err)
	}
	s.logMutation(ctx, "subsection.create",
		slog.Int64("section_id", sectionID), slog.Int64("subsection_id", id))
	return id, nil
}

// DeleteSubsection removes a subsection; its products cascade.
func (s *SQLStore) DeleteSubsection(ctx context.Context, id int64) error {
	if err := s.deleteByID(ctx, `DELETE FROM subsections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("catalog: delete subsection %d: %w", id, err)
	}
	s.logMutation(ctx, "subsection.delete", slog.Int64("subsection_id", id))
	return nil
}

// CreateProduct inserts a product under an existing subsection.
// The price is rounded to the nearest multiple of 5 before storage.
func (s *SQLStore) CreateProduct(ctx context.Context, subsectionID int64, name string, price int64) (int64, error) {
	if _, err := s.GetSubsection(ctx, subsectionID); err != nil {
		return 0, err
	}
	rounded := RoundPrice(price)
	id, err := s.insert(ctx, `INSERT INTO products (subsection_id, name, price) VALUES (?, ?, ?)`,
		subsectionID, name, rounded)
	if err != nil {
		return 0, fmt.Errorf("catalog: create product: %w", err)
	}
	s.logMutation(ctx, "product.create",
		slog.Int64("subsection_id", subsectionID),
		slog.Int64("product_id", id),
		slog.Int64("total", rounded),
	)
	return id, nil
}

// DeleteProduct removes a single product.
func (s *SQLStore) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.deleteByID(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("catalog: delete product %d: %w", id, err)
	}
	s.logMutation(ctx, "product.delete", slog.Int64("product_id", id))
	return nil
}

func (s *SQLStore) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if s.db.DriverName() == "postgres" {
		var id int64
		err := s.db.GetContext(ctx, &id, s.db.Rebind(query+` RETURNING id`), args...)
		return id, err
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLStore) deleteByID(ctx context.Context, query string, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) logMutation(ctx context.Context, event string, attrs ...slog.Attr) {
	if logger.SVCCatalog == nil {
		return
	}
	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.String("event", event))
	for _, a := range attrs {
		args = append(args, a)
	}
	logger.SVCCatalog.InfoContext(ctx, "catalog mutation", args...)
}
