package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"interior-catalog-service/internal/catalog"
	"interior-catalog-service/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var doorColumns = []string{"product_id", "name", "price", "description", "category", "style", "brand", "material", "room_type", "textures"}

// Helper function to create a mock DB and PostgresStore for testing
func newMockDBAndStore(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, *PostgresStore) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	db := sqlx.NewDb(mockDB, "sqlmock")
	logger, _ := logrustest.NewNullLogger()
	store := NewPostgresStore(db, logger)
	require.NotNil(t, store, "Store should not be nil")

	return db, mock, store
}

func PtrTo[T any](v T) *T {
	return &v
}

func TestPostgresStore_ListDoors_StyleAndMaxPrice(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := `SELECT p\.product_id, .* FROM products p JOIN doors d ON p\.product_id = d\.product_id ` +
		`LEFT JOIN categories cat .* WHERE p\.is_active = TRUE AND sty\.name ILIKE \$1 AND p\.price <= \$2`

	rows := sqlmock.NewRows(doorColumns).
		AddRow(int64(1), "Oak Classic", "450.00", "Solid oak door", "Doors", "Modern", "Volkhovets", "oak", "bedroom",
			[]byte(`[{"texture_id":3,"name":"Oak","texture_file_url":"https://cdn.example.com/oak.jpg","application_area":"panel"},`+
				`{"texture_id":4,"name":"Glass","texture_file_url":"https://cdn.example.com/glass.jpg","application_area":null}]`)).
		AddRow(int64(2), "Plain", nil, nil, nil, "Modern", nil, nil, nil, []byte(`[]`))

	mock.ExpectQuery(query).WithArgs("%Modern%", float64(500)).WillReturnRows(rows)

	doors, err := store.ListDoors(context.Background(), catalog.DoorFilter{
		Style:    PtrTo("Modern"),
		MaxPrice: PtrTo(float64(500)),
	})

	require.NoError(t, err)
	require.Len(t, doors, 2)

	assert.Equal(t, int64(1), doors[0].ID)
	require.True(t, doors[0].Price.Valid)
	assert.Equal(t, "450", doors[0].Price.Decimal.String())
	require.NotNil(t, doors[0].Material)
	assert.Equal(t, "oak", *doors[0].Material)
	require.Len(t, doors[0].Textures, 2)
	assert.Equal(t, int64(3), doors[0].Textures[0].ID)
	require.NotNil(t, doors[0].Textures[0].ApplicationArea)
	assert.Equal(t, "panel", *doors[0].Textures[0].ApplicationArea)
	assert.Nil(t, doors[0].Textures[1].ApplicationArea)

	assert.False(t, doors[1].Price.Valid)
	assert.Nil(t, doors[1].Description)
	assert.NotNil(t, doors[1].Textures, "Zero textures should decode to an empty list")
	assert.Empty(t, doors[1].Textures)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListDoors_NoFilters(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := `FROM products p JOIN doors d .* WHERE p\.is_active = TRUE`
	mock.ExpectQuery(query).WithArgs().WillReturnRows(sqlmock.NewRows(doorColumns))

	doors, err := store.ListDoors(context.Background(), catalog.DoorFilter{})

	require.NoError(t, err)
	assert.NotNil(t, doors, "An empty result should be an empty slice, not nil")
	assert.Empty(t, doors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListDoors_QueryError(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(`FROM products p JOIN doors d`).WillReturnError(dbErr)

	doors, err := store.ListDoors(context.Background(), catalog.DoorFilter{})

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, doors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListProducts_Attributes(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := `to_jsonb\(d\) - 'product_id' AS attributes, .* FROM products p JOIN windows d ON p\.product_id = d\.product_id ` +
		`.* WHERE p\.is_active = TRUE AND b\.name ILIKE \$1 AND p\.price >= \$2`

	rows := sqlmock.NewRows([]string{"product_id", "name", "price", "description", "category", "style", "brand", "attributes", "textures"}).
		AddRow(int64(10), "Skylight", "1200.50", nil, "Windows", nil, "Velux", []byte(`{"frame":"pvc","panes":2}`), nil)

	mock.ExpectQuery(query).WithArgs("Velux", float64(1000)).WillReturnRows(rows)

	products, err := store.ListProducts(context.Background(), catalog.ProductFilter{
		CategoryName: "Windows",
		Brand:        PtrTo("Velux"),
		MinPrice:     PtrTo(float64(1000)),
	})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Skylight", products[0].Name)
	assert.Equal(t, "pvc", products[0].Attributes["frame"])
	assert.Equal(t, float64(2), products[0].Attributes["panes"])
	assert.NotNil(t, products[0].Textures)
	assert.Empty(t, products[0].Textures)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListProducts_UnknownCategory(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	products, err := store.ListProducts(context.Background(), catalog.ProductFilter{CategoryName: "Unknown"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrUnknownCategory), "Error should be ErrUnknownCategory")
	assert.Nil(t, products)
	// No expectations were registered, so any executed SQL would have failed the call above.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveFilter(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	filter := &domain.SavedFilter{
		UserID:  7,
		Name:    "cheap doors",
		Filters: domain.FilterPayload{"max_price": float64(200)},
	}

	query := regexp.QuoteMeta(`INSERT INTO user_saved_filters (user_id, name, filters) VALUES ($1, $2, $3);`)
	mock.ExpectExec(query).
		WithArgs(int64(7), "cheap doors", []byte(`{"max_price":200}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SaveFilter(context.Background(), filter)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveFilter_UnknownUser(t *testing.T) {
	testCases := []struct {
		name  string
		dbErr error
	}{
		{name: "lib/pq", dbErr: &pq.Error{Code: "23503", Constraint: "user_saved_filters_user_id_fkey"}},
		{name: "pgx", dbErr: &pgconn.PgError{Code: "23503", ConstraintName: "user_saved_filters_user_id_fkey"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, store := newMockDBAndStore(t)
			defer db.Close()

			query := regexp.QuoteMeta(`INSERT INTO user_saved_filters (user_id, name, filters) VALUES ($1, $2, $3);`)
			mock.ExpectExec(query).WillReturnError(tc.dbErr)

			err := store.SaveFilter(context.Background(), &domain.SavedFilter{UserID: 404, Name: "x", Filters: domain.FilterPayload{}})

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUserNotFound), "Error should be ErrUserNotFound")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStore_ListFilters(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := regexp.QuoteMeta(`SELECT user_id, name, filters FROM user_saved_filters WHERE user_id = $1;`)
	rows := sqlmock.NewRows([]string{"user_id", "name", "filters"}).
		AddRow(int64(7), "cheap doors", []byte(`{"max_price":200}`)).
		AddRow(int64(7), "oak", []byte(`{"material":"oak"}`))
	mock.ExpectQuery(query).WithArgs(int64(7)).WillReturnRows(rows)

	filters, err := store.ListFilters(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, filters, 2)
	assert.Equal(t, "cheap doors", filters[0].Name)
	assert.Equal(t, float64(200), filters[0].Filters["max_price"])
	assert.Equal(t, "oak", filters[1].Filters["material"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PingAndClose(t *testing.T) {
	_, mock, store := newMockDBAndStore(t)

	require.NoError(t, store.Ping(context.Background()))

	mock.ExpectClose()
	require.NoError(t, store.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}
