package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var priceColumns = []string{"id", "item_type", "service_type", "price", "created_at", "updated_at"}

func TestRepository_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM service_prices`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(24))

	n, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(24), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_BulkInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()
	prices := []*ServicePrice{
		{ID: "p-1", ItemType: ItemShirt, ServiceType: ServiceWashIron, Price: decimal.NewFromInt(3), CreatedAt: now, UpdatedAt: now},
		{ID: "p-2", ItemType: ItemShirt, ServiceType: ServiceIronOnly, Price: decimal.NewFromInt(2), CreatedAt: now, UpdatedAt: now},
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO service_prices").
			WithArgs("p-1", "shirt", "wash_iron", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO service_prices").
			WithArgs("p-2", "shirt", "iron_only", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.BulkInsert(context.Background(), prices))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO service_prices").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO service_prices").
			WillReturnError(errors.New("unique violation"))
		mock.ExpectRollback()

		err := repo.BulkInsert(context.Background(), prices)
		assert.ErrorContains(t, err, "unique violation")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindByPair(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM service_prices WHERE item_type = \\$1 AND service_type = \\$2").
			WithArgs("suit", "dry_clean").
			WillReturnRows(sqlmock.NewRows(priceColumns).AddRow("p-9", "suit", "dry_clean", "25", now, now))

		p, err := repo.FindByPair(context.Background(), ItemSuit, ServiceDryClean)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "p-9", p.ID)
		assert.Equal(t, ItemSuit, p.ItemType)
		assert.True(t, p.Price.Equal(decimal.NewFromInt(25)))
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM service_prices").
			WithArgs("suit", "iron_only").
			WillReturnRows(sqlmock.NewRows(priceColumns))

		p, err := repo.FindByPair(context.Background(), ItemSuit, ServiceIronOnly)
		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM service_prices").
			WillReturnError(errors.New("disk I/O error"))

		_, err := repo.FindByPair(context.Background(), ItemSuit, ServiceIronOnly)
		assert.Error(t, err)
	})
}

func TestRepository_UpdatePrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE service_prices SET price = \\$1, updated_at = \\$2 WHERE id = \\$3").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "p-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		found, err := repo.UpdatePrice(context.Background(), "p-1", decimal.NewFromInt(7), time.Now())
		assert.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectExec("UPDATE service_prices").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		found, err := repo.UpdatePrice(context.Background(), "nope", decimal.NewFromInt(7), time.Now())
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT .* FROM service_prices ORDER BY item_type ASC, service_type ASC").
		WillReturnRows(sqlmock.NewRows(priceColumns).
			AddRow("p-1", "blanket", "iron_only", 0.0, now, now).
			AddRow("p-2", "blanket", "wash_iron", 25.0, now, now))

	prices, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.True(t, prices[0].Price.IsZero())
	assert.Equal(t, ServiceWashIron, prices[1].ServiceType)
}
