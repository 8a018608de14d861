package adminapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/config"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/app"
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

func exportCtx(t *testing.T, target, exportType string) (echo.Context, *httptest.ResponseRecorder, sqlmock.Sqlmock) {
	gdb, mock := dbMock(t)
	actx := app.NewApplication(config.DefaultAppConfig)
	actx.OverrideDB(gdb)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("type")
	c.SetParamValues(exportType)
	c.Set(ctxApp, actx)
	return c, rec, mock
}

// An empty result set is a 404, never an empty attachment.
func TestExportEmptyReturnsNotFound(t *testing.T) {
	c, rec, mock := exportCtx(t, "/api/v1/admin/export/orders?format=csv", "orders")

	mock.ExpectQuery(`SELECT \* FROM "store_order" .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	assert.NoError(t, exportData(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_DATA")
	assert.Empty(t, rec.Header().Get(echo.HeaderContentDisposition))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportEmptyXlsxReturnsNotFound(t *testing.T) {
	c, rec, mock := exportCtx(t, "/api/v1/admin/export/customers?format=xlsx", "customers")

	mock.ExpectQuery(`SELECT \* FROM "customer" .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	assert.NoError(t, exportData(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_DATA")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportUnknownType(t *testing.T) {
	c, rec, _ := exportCtx(t, "/api/v1/admin/export/invoices", "invoices")

	assert.NoError(t, exportData(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TYPE")
}
