package app

import (
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

// ConfigSchema describes one settings entry seeded into sys_config
type ConfigSchema struct {
	Key         string `mapstructure:"key"`
	Default     string `mapstructure:"default"`
	Description string `mapstructure:"description"`
}

// configSchemasData seeds the editable runtime settings. Key format is
// "category.name".
var configSchemasData = []map[string]interface{}{
	{"key": "store.name", "default": "Plant Protein Store", "description": "Storefront display name"},
	{"key": "store.support_email", "default": "support@ppstore.local", "description": "Customer support contact"},
	{"key": "order.free_shipping_min", "default": "999", "description": "Minimum order total for free shipping"},
	{"key": "analytics.retention_days", "default": "180", "description": "Days of analytics events retained"},
	{"key": "analytics.pool_size", "default": "8", "description": "Analytics writer pool size"},
	{"key": "mail.notify_fulfillment", "default": "true", "description": "Send shipped/delivered notification mail"},
}

// DecodeConfigSchemas decodes the schema seed maps into typed entries
func DecodeConfigSchemas() ([]ConfigSchema, error) {
	schemas := make([]ConfigSchema, 0, len(configSchemasData))
	for _, raw := range configSchemasData {
		var s ConfigSchema
		if err := mapstructure.Decode(raw, &s); err != nil {
			return nil, err
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

// ConfigManager serves typed access to sys_config rows with a small
// read-through cache.
type ConfigManager struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]string
}

func NewConfigManager(db *gorm.DB) *ConfigManager {
	return &ConfigManager{db: db, cache: make(map[string]string)}
}

func (m *ConfigManager) lookup(category, name string) string {
	key := category + "." + name
	m.mu.RLock()
	if v, ok := m.cache[key]; ok {
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	var cfg domain.SysConfig
	if err := m.db.Where("type = ? AND name = ?", category, name).First(&cfg).Error; err != nil {
		return ""
	}
	m.mu.Lock()
	m.cache[key] = cfg.Value
	m.mu.Unlock()
	return cfg.Value
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.lookup(category, name)
}

func (m *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(m.lookup(category, name))
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.lookup(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.lookup(category, name))
}

func (m *ConfigManager) GetFloat64(category, name string) float64 {
	return cast.ToFloat64(m.lookup(category, name))
}

// Set updates a settings row and invalidates the cached value
func (m *ConfigManager) Set(category, name, value string) error {
	err := m.db.Model(&domain.SysConfig{}).
		Where("type = ? AND name = ?", category, name).
		Update("value", value).Error
	if err != nil {
		zap.L().Error("settings update failed",
			zap.String("category", category), zap.String("name", name), zap.Error(err))
		return err
	}
	m.mu.Lock()
	delete(m.cache, category+"."+name)
	m.mu.Unlock()
	return nil
}
