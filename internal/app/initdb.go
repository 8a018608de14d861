package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/auth"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/pkg/common"
)

func (a *Application) checkSuper() {
	adminEmail := strings.ToLower(strings.TrimSpace(a.appConfig.Web.AdminEmail))
	if adminEmail == "" {
		adminEmail = "admin@ppstore.local"
	}
	const defaultPassword = "ppstore2024"

	hashed, err := auth.HashPassword(defaultPassword)
	if err != nil {
		zap.L().Error("failed to hash default admin password", zap.Error(err))
		return
	}

	var admin domain.Customer
	err = a.gormDB.Where("LOWER(email) = ?", adminEmail).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.Customer{
			ID:        common.UUIDint64(),
			Name:      "administrator",
			Email:     adminEmail,
			Password:  hashed,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin account", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("email", adminEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
		return
	}

	resetLevel := !admin.IsAdmin()
	resetStatus := !strings.EqualFold(admin.Status, common.ENABLED)
	if !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}
	if err := a.gormDB.Model(&domain.Customer{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair admin account", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default admin account",
		zap.String("email", adminEmail),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

func (a *Application) checkSettings() {
	schemas, err := DecodeConfigSchemas()
	if err != nil {
		zap.L().Error("failed to decode config schemas", zap.Error(err))
		return
	}

	for sortid, schema := range schemas {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}
		category := parts[0]
		name := parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     0,
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

// checkProducts seeds the starter catalog
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{Name: "Pea Protein Isolate", Flavor: "unflavored", Price: 1299, Stock: 200, Status: common.ENABLED},
		{Name: "Pea Protein Isolate", Flavor: "chocolate", Price: 1399, Stock: 180, Status: common.ENABLED},
		{Name: "Brown Rice Protein", Flavor: "vanilla", Price: 1199, Stock: 150, Status: common.ENABLED},
		{Name: "Hemp Protein Blend", Flavor: "berry", Price: 1599, Stock: 90, Status: common.ENABLED},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).
			Where("name = ? AND flavor = ?", p.Name, p.Flavor).Count(&count)
		if count == 0 {
			p.ID = common.UUIDint64()
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product",
					zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product",
					zap.String("name", p.Name), zap.String("flavor", p.Flavor))
			}
		}
	}
}

// checkDiscounts seeds the welcome discount code
func (a *Application) checkDiscounts() {
	maxCap := 300.0
	welcome := domain.DiscountCode{
		Code:              "WELCOME10",
		Type:              domain.DiscountPercentage,
		Value:             10,
		MinPurchaseAmount: 500,
		MaxDiscountAmount: &maxCap,
		UsageLimit:        0,
		ValidFrom:         time.Now(),
		ValidUntil:        time.Now().AddDate(1, 0, 0),
		Status:            common.ENABLED,
		Remark:            "First order welcome discount",
	}

	var count int64
	a.gormDB.Model(&domain.DiscountCode{}).Where("code = ?", welcome.Code).Count(&count)
	if count == 0 {
		welcome.ID = common.UUIDint64()
		welcome.CreatedAt = time.Now()
		welcome.UpdatedAt = time.Now()
		if err := a.gormDB.Create(&welcome).Error; err != nil {
			zap.L().Error("failed to create default discount code", zap.Error(err))
		} else {
			zap.L().Info("initialized default discount code", zap.String("code", welcome.Code))
		}
	}
}
