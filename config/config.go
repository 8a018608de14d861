package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host       string `yaml:"host" json:"host"`
	Port       int    `yaml:"port" json:"port"`
	Secret     string `yaml:"secret" json:"secret"`
	AdminEmail string `yaml:"admin_email" json:"admin_email"`
	AdminKey   string `yaml:"admin_key" json:"admin_key"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type PaymentConfig struct {
	ApiURL         string `yaml:"api_url" json:"api_url"`
	SecretKey      string `yaml:"secret_key" json:"-"`
	PublishableKey string `yaml:"publishable_key" json:"publishable_key"`
	Currency       string `yaml:"currency" json:"currency"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"-"`
	From     string `yaml:"from" json:"from"`
	Enable   bool   `yaml:"enable" json:"enable"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system" json:"system"`
	Web      WebConfig     `yaml:"web" json:"web"`
	Database DBConfig      `yaml:"database" json:"database"`
	Logger   LoggerConfig  `yaml:"logger" json:"logger"`
	Payment  PaymentConfig `yaml:"payment" json:"payment"`
	Smtp     SmtpConfig    `yaml:"smtp" json:"smtp"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "PPStore",
		Location: "Asia/Kolkata",
		Workdir:  "/var/ppstore",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6d1bff-4747-7264",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "ppstore",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/ppstore/ppstore.log",
	},
	Payment: PaymentConfig{
		ApiURL:   "https://api.payment.example.com/v1",
		Currency: "inr",
	},
	Smtp: SmtpConfig{
		Host: "localhost",
		Port: 25,
		From: "noreply@ppstore.local",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		f(v)
	}
}

func setEnvInt64Value(name string, f func(v int64)) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		var i int64
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			f(i)
		}
	}
}

// LoadConfig loads yaml config from file if present, then applies env overrides.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(fmt.Sprintf("parse config %s: %v", cfile, err))
			}
		}
	}

	setEnvValue("PPSTORE_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("PPSTORE_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = v == "true" })

	setEnvValue("PPSTORE_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvInt64Value("PPSTORE_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })
	setEnvValue("PPSTORE_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("PPSTORE_ADMIN_EMAIL", func(v string) { cfg.Web.AdminEmail = v })
	setEnvValue("PPSTORE_ADMIN_KEY", func(v string) { cfg.Web.AdminKey = v })

	setEnvValue("PPSTORE_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt64Value("PPSTORE_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })
	setEnvValue("PPSTORE_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("PPSTORE_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("PPSTORE_DB_PWD", func(v string) { cfg.Database.Passwd = v })

	setEnvValue("PPSTORE_PAYMENT_API_URL", func(v string) { cfg.Payment.ApiURL = v })
	setEnvValue("PPSTORE_PAYMENT_SECRET_KEY", func(v string) { cfg.Payment.SecretKey = v })
	setEnvValue("PPSTORE_PAYMENT_PUBLISHABLE_KEY", func(v string) { cfg.Payment.PublishableKey = v })

	setEnvValue("PPSTORE_SMTP_HOST", func(v string) { cfg.Smtp.Host = v })
	setEnvInt64Value("PPSTORE_SMTP_PORT", func(v int64) { cfg.Smtp.Port = int(v) })
	setEnvValue("PPSTORE_SMTP_USERNAME", func(v string) { cfg.Smtp.Username = v })
	setEnvValue("PPSTORE_SMTP_PASSWORD", func(v string) { cfg.Smtp.Password = v })

	return cfg
}
