package storeapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/webserver"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/pkg/common"
)

func registerAddressRoutes(priv *echo.Group) {
	priv.GET("/addresses", listAddresses)
	priv.POST("/addresses", createAddress)
	priv.PUT("/addresses/:id", updateAddress)
	priv.DELETE("/addresses/:id", deleteAddress)
	priv.PUT("/addresses/:id/default", setDefaultAddress)
}

type addressPayload struct {
	Label     string `json:"label"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postal    string `json:"postal"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

func (p *addressPayload) validate() error {
	if strings.TrimSpace(p.Line1) == "" || strings.TrimSpace(p.City) == "" ||
		strings.TrimSpace(p.Postal) == "" || strings.TrimSpace(p.Country) == "" {
		return errors.New("line1, city, postal and country are required")
	}
	return nil
}

func listAddresses(c echo.Context) error {
	var rows []domain.CustomerAddress
	err := GetDB(c).Where("customer_id = ?", webserver.CurrentCustomer(c).ID).
		Order("is_default DESC, created_at ASC").Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query addresses", nil)
	}
	return ok(c, rows)
}

func createAddress(c echo.Context) error {
	var payload addressPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse address", nil)
	}
	if err := payload.validate(); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ADDRESS", err.Error(), nil)
	}

	cid := webserver.CurrentCustomer(c).ID
	addr := domain.CustomerAddress{
		ID:         common.UUIDint64(),
		CustomerId: cid,
		Label:      strings.TrimSpace(payload.Label),
		Line1:      strings.TrimSpace(payload.Line1),
		Line2:      strings.TrimSpace(payload.Line2),
		City:       strings.TrimSpace(payload.City),
		State:      strings.TrimSpace(payload.State),
		Postal:     strings.TrimSpace(payload.Postal),
		Country:    strings.TrimSpace(payload.Country),
		IsDefault:  payload.IsDefault,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	err := GetDB(c).Transaction(func(tx *gorm.DB) error {
		if addr.IsDefault {
			if err := tx.Model(&domain.CustomerAddress{}).
				Where("customer_id = ?", cid).Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&addr).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create address", nil)
	}
	return ok(c, addr)
}

func loadOwnAddress(c echo.Context) (*domain.CustomerAddress, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var addr domain.CustomerAddress
	err = GetDB(c).Where("id = ? AND customer_id = ?", id, webserver.CurrentCustomer(c).ID).
		First(&addr).Error
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func updateAddress(c echo.Context) error {
	addr, err := loadOwnAddress(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "ADDRESS_NOT_FOUND", "Address not found", nil)
	} else if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid address ID", nil)
	}

	var payload addressPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse address", nil)
	}
	if err := payload.validate(); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ADDRESS", err.Error(), nil)
	}

	addr.Label = strings.TrimSpace(payload.Label)
	addr.Line1 = strings.TrimSpace(payload.Line1)
	addr.Line2 = strings.TrimSpace(payload.Line2)
	addr.City = strings.TrimSpace(payload.City)
	addr.State = strings.TrimSpace(payload.State)
	addr.Postal = strings.TrimSpace(payload.Postal)
	addr.Country = strings.TrimSpace(payload.Country)
	addr.UpdatedAt = time.Now()

	if err := GetDB(c).Save(addr).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update address", nil)
	}
	return ok(c, addr)
}

func deleteAddress(c echo.Context) error {
	addr, err := loadOwnAddress(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "ADDRESS_NOT_FOUND", "Address not found", nil)
	} else if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid address ID", nil)
	}

	if err := GetDB(c).Delete(addr).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete address", nil)
	}
	return ok(c, map[string]interface{}{"success": true})
}

// setDefaultAddress clears the previous default and sets the new one inside
// a single transaction so two concurrent flips cannot leave a customer with
// zero or two defaults.
func setDefaultAddress(c echo.Context) error {
	addr, err := loadOwnAddress(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "ADDRESS_NOT_FOUND", "Address not found", nil)
	} else if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid address ID", nil)
	}

	cid := webserver.CurrentCustomer(c).ID
	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.CustomerAddress{}).
			Where("customer_id = ? AND is_default = ?", cid, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&domain.CustomerAddress{}).
			Where("id = ?", addr.ID).
			Updates(map[string]interface{}{"is_default": true, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to set default address", nil)
	}
	addr.IsDefault = true
	return ok(c, addr)
}
