package auth

import (
	"testing"

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

// Duplicate email detection is case-insensitive: the query argument is the
// lower-cased email regardless of the submitted casing.
func TestRegisterDuplicateEmail(t *testing.T) {
	gdb, mock := dbMock(t)
	svc := NewService(gdb, "secret-key")

	mock.ExpectQuery(`SELECT count\(\*\) FROM "customer" WHERE LOWER\(email\) = .+`).
		WithArgs("jamie@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Register(&RegisterRequest{
		Name:     "Jamie Tan",
		Email:    "Jamie@Example.COM",
		Password: "protein42",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicatePhone(t *testing.T) {
	gdb, mock := dbMock(t)
	svc := NewService(gdb, "secret-key")

	mock.ExpectQuery(`SELECT count\(\*\) FROM "customer" WHERE LOWER\(email\) = .+`).
		WithArgs("jamie@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "customer" WHERE phone = .+`).
		WithArgs("+6591234567").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Register(&RegisterRequest{
		Name:     "Jamie Tan",
		Email:    "jamie@example.com",
		Phone:    "+6591234567",
		Password: "protein42",
	})
	assert.ErrorIs(t, err, ErrDuplicatePhone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
