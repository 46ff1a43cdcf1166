package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"interior-catalog-service/internal/catalog"
	"interior-catalog-service/internal/domain"
)

// Predefined errors for store operations
var (
	ErrUserNotFound = errors.New("store: user not found")
)

// SQLSTATE foreign_key_violation, reported by both lib/pq and pgx.
const foreignKeyViolation = "23503"

// PostgresStore implements CatalogStorer and FilterStorer using PostgreSQL.
type PostgresStore struct {
	db     *sqlx.DB
	logger logrus.FieldLogger
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sqlx.DB, logger logrus.FieldLogger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// --- CatalogStorer Implementation ---

func (s *PostgresStore) ListDoors(ctx context.Context, filter catalog.DoorFilter) ([]domain.Door, error) {
	q, err := catalog.DoorsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("store: ListDoors failed to build query: %w", err)
	}
	s.logger.WithField("args", len(q.Args)).Debug("store: listing doors")

	doors := []domain.Door{}
	if err := s.db.SelectContext(ctx, &doors, q.SQL, q.Args...); err != nil {
		return nil, fmt.Errorf("store: ListDoors failed to query doors: %w", err)
	}
	return doors, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]domain.Product, error) {
	q, err := catalog.ProductsQuery(filter)
	if err != nil {
		// Unknown categories surface as-is; nothing has been sent to the database.
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"category": filter.CategoryName,
		"args":     len(q.Args),
	}).Debug("store: listing products")

	products := []domain.Product{}
	if err := s.db.SelectContext(ctx, &products, q.SQL, q.Args...); err != nil {
		return nil, fmt.Errorf("store: ListProducts failed to query %q products: %w", filter.CategoryName, err)
	}
	return products, nil
}

// --- FilterStorer Implementation ---

func (s *PostgresStore) SaveFilter(ctx context.Context, filter *domain.SavedFilter) error {
	payload, err := json.Marshal(filter.Filters)
	if err != nil {
		return fmt.Errorf("store: SaveFilter failed to encode filters: %w", err)
	}
	query := `INSERT INTO user_saved_filters (user_id, name, filters) VALUES ($1, $2, $3);`
	if _, err := s.db.ExecContext(ctx, query, filter.UserID, filter.Name, payload); err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("store: SaveFilter failed to insert filter: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListFilters(ctx context.Context, userID int64) ([]domain.SavedFilter, error) {
	query := `SELECT user_id, name, filters FROM user_saved_filters WHERE user_id = $1;`
	filters := []domain.SavedFilter{}
	if err := s.db.SelectContext(ctx, &filters, query, userID); err != nil {
		return nil, fmt.Errorf("store: ListFilters failed to query filters: %w", err)
	}
	return filters, nil
}

// Ping checks that a pooled connection can reach the database.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.logger.Info("Closing database connection pool...")
	if err := s.db.Close(); err != nil {
		s.logger.WithError(err).Error("Failed to close database connection pool")
		return err
	}
	s.logger.Info("Database connection pool closed successfully.")
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == foreignKeyViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == foreignKeyViolation
	}
	return false
}
