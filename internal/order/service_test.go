package order

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/discount"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
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

// A session-attributed checkout persists the customer id on the order row;
// a guest checkout leaves it at zero.
func TestCreateAttributesCustomer(t *testing.T) {
	gdb, mock := dbMock(t)
	svc := NewService(gdb, discount.NewService(gdb), nil, nil)

	mock.ExpectQuery(`INSERT INTO "store_order" .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	req := &IntakeRequest{
		CustomerId:    42,
		CustomerName:  "Jamie Tan",
		CustomerEmail: "jamie@example.com",
		Items: []domain.OrderItem{
			{ProductId: 1, Name: "Pea Protein", PricePerUnit: 25.0, Weight: 1.0, Quantity: 2},
		},
		ShippingAddress: domain.OrderAddress{
			Line1: "1 Orchard Rd", City: "Singapore", Postal: "238801", Country: "SG",
		},
		Total:         50.0,
		PaymentMethod: "card",
	}

	o, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), o.CustomerId)
	assert.True(t, strings.HasPrefix(o.OrderNo, "PP"))
	assert.Equal(t, domain.OrderPending, o.FulfillmentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGuestHasNoCustomer(t *testing.T) {
	gdb, mock := dbMock(t)
	svc := NewService(gdb, discount.NewService(gdb), nil, nil)

	mock.ExpectQuery(`INSERT INTO "store_order" .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	req := &IntakeRequest{
		CustomerName:  "Guest Buyer",
		CustomerEmail: "guest@example.com",
		Items: []domain.OrderItem{
			{ProductId: 1, Name: "Pea Protein", PricePerUnit: 25.0, Weight: 1.0, Quantity: 2},
		},
		ShippingAddress: domain.OrderAddress{
			Line1: "1 Orchard Rd", City: "Singapore", Postal: "238801", Country: "SG",
		},
		Total:         50.0,
		PaymentMethod: "card",
	}

	o, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
	assert.Zero(t, o.CustomerId)
	assert.NoError(t, mock.ExpectationsWereMet())
}
