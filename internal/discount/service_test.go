package discount

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dbMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)
	return gdb, mock
}

// Lookup upper-cases and trims the code before querying.
func TestLookupUppercasesCode(t *testing.T) {
	gdb, mock := dbMock(t)
	svc := NewService(gdb)

	rows := sqlmock.NewRows([]string{"id", "code", "type", "value", "status"}).
		AddRow(1, "SAVE15", "percentage", 15.0, "enabled")
	mock.ExpectQuery(`SELECT \* FROM "discount_code" WHERE .+`).
		WithArgs("SAVE15", "enabled", 1).
		WillReturnRows(rows)

	dc, err := svc.Lookup(" save15 ")
	assert.NoError(t, err)
	assert.Equal(t, "SAVE15", dc.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckNotFound(t *testing.T) {
	gdb, mock := dbMock(t)
	svc := NewService(gdb)

	mock.ExpectQuery(`SELECT \* FROM "discount_code" WHERE .+`).
		WithArgs("NOPE", "enabled", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	res := svc.Check("nope", 100, time.Now())
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonNotFound, res.Reason)
	assert.Equal(t, "NOPE", res.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckValidCode(t *testing.T) {
	gdb, mock := dbMock(t)
	svc := NewService(gdb)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "code", "type", "value", "min_purchase_amount",
		"usage_limit", "times_used", "valid_from", "valid_until", "status",
	}).AddRow(1, "SAVE15", "percentage", 15.0, 0.0,
		int64(0), int64(0), now.Add(-time.Hour), now.Add(time.Hour), "enabled")
	mock.ExpectQuery(`SELECT \* FROM "discount_code" WHERE .+`).
		WithArgs("SAVE15", "enabled", 1).
		WillReturnRows(rows)

	res := svc.Check("save15", 200, now)
	assert.True(t, res.Valid)
	assert.InDelta(t, 30.0, res.Amount, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemIncrementsUsage(t *testing.T) {
	gdb, mock := dbMock(t)
	svc := NewService(gdb)

	mock.ExpectExec(`UPDATE "discount_code" SET "times_used"=times_used \+ 1 WHERE .+`).
		WithArgs("SAVE15").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.Redeem("save15")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
