package storeapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/config"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/app"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/webserver"
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

func wishlistCtx(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder, sqlmock.Sqlmock) {
	gdb, mock := dbMock(t)
	actx := app.NewApplication(config.DefaultAppConfig)
	actx.OverrideDB(gdb)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ctxApp, actx)
	c.Set(webserver.CtxCustomer, &domain.Customer{ID: 7})
	return c, rec, mock
}

func expectWishlistPrechecks(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT count\(\*\) FROM "product" WHERE .+`).
		WithArgs(int64(5), "enabled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "wishlist_item" WHERE .+`).
		WithArgs(int64(7), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
}

// A racing duplicate insert hits the unique index and still reports 409.
func TestAddWishlistItemRacingDuplicate(t *testing.T) {
	c, rec, mock := wishlistCtx(t, `{"product_id":"5"}`)

	expectWishlistPrechecks(mock)
	mock.ExpectQuery(`INSERT INTO "wishlist_item" .+`).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "idx_wishlist_customer_product" (SQLSTATE 23505)`))

	assert.NoError(t, addWishlistItem(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "ALREADY_WISHLISTED")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Store failures that are not duplicates surface as 500, not 409.
func TestAddWishlistItemStoreFailure(t *testing.T) {
	c, rec, mock := wishlistCtx(t, `{"product_id":"5"}`)

	expectWishlistPrechecks(mock)
	mock.ExpectQuery(`INSERT INTO "wishlist_item" .+`).
		WillReturnError(errors.New("connection reset by peer"))

	assert.NoError(t, addWishlistItem(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "DATABASE_ERROR")
	assert.NoError(t, mock.ExpectationsWereMet())
}
