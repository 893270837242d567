package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool
	// DefaultWarehouse is the location name receiving initial stock on
	// product creation and CSV imports. Configured, not a magic string.
	DefaultWarehouse string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:          GetEnv("APP_NAME", "tillpoint"),
			Port:             os.Getenv("PORT"),
			Env:              os.Getenv("APP_ENV"),
			Debug:            os.Getenv("DEBUG") == "true",
			DefaultWarehouse: GetEnv("DEFAULT_WAREHOUSE", "Warehouse"),
		}
	})
}
