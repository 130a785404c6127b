package repository

import (
	"testing"
	"time"

	"hms-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB renders SQL for the postgres dialect without opening a connection.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=hms dbname=hms sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestMonthlyTotalsQuery_GroupsByUTCMonth(t *testing.T) {
	db := dryRunDB(t)
	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var totals []entity.MonthlyRevenue
		return monthlyTotalsQuery(tx, since, &totals)
	})

	assert.Contains(t, sql, "date_trunc('month', payment_date AT TIME ZONE 'UTC')")
	assert.Contains(t, sql, `FROM "payments"`)
	assert.Contains(t, sql, "GROUP BY")
	assert.Contains(t, sql, "2026-02-01")
}
