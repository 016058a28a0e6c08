package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	sdk "github.com/matrixorigin/moi-go-sdk"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
	MOI      MOIConfig      `yaml:"moi"`
	Stats    StatsConfig    `yaml:"stats"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	Name        string `yaml:"name"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

// MOIConfig points the optional daily status export at a MatrixOne catalog.
type MOIConfig struct {
	BaseURL            string `yaml:"base_url"`
	APIKey             string `yaml:"api_key"`
	CatalogID          int64  `yaml:"catalog_id"`
	DatabaseID         int64  `yaml:"database_id"`
	DailyStatusTableID int64  `yaml:"daily_status_table_id"`
}

type StatsConfig struct {
	// Timezone is used for users without one of their own.
	Timezone string `yaml:"timezone"`
}

func Load(configFile string) *Config {
	c := &Config{
		Server:   ServerConfig{Port: 9871},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 10, MaxBackups: 5, MaxAgeDays: 30},
		Database: DatabaseConfig{Host: "localhost", Port: 3306, User: "root", Name: "data_load"},
		Auth:     AuthConfig{JWTSecret: "datasync-dev-secret", TokenTTLMinutes: 30},
		CORS:     CORSConfig{AllowOrigins: []string{"http://localhost:5173"}},
		Stats:    StatsConfig{Timezone: "Asia/Shanghai"},
	}

	paths := []string{"etc/config-dev.yaml", "/etc/datasync/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.Database.Host, "DB_HOST")
	envOverride(&c.Database.User, "DB_USER")
	envOverride(&c.Database.Password, "DB_PASS")
	envOverride(&c.Database.Name, "DB_NAME")
	envOverride(&c.Auth.JWTSecret, "JWT_SECRET")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverride(&c.MOI.BaseURL, "MOI_BASE_URL")
	envOverride(&c.MOI.APIKey, "MOI_API_KEY")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideInt(&c.Database.Port, "DB_PORT")

	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) TokenTTL() time.Duration {
	if c.Auth.TokenTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// OpenGormDB connects to MySQL and reports through gl.
func (c *Config) OpenGormDB(gl gormlogger.Interface) (*gorm.DB, error) {
	cfg := gomysql.NewConfig()
	cfg.User = c.Database.User
	cfg.Passwd = c.Database.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port)
	cfg.DBName = c.Database.Name
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}

	connector, err := gomysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	sqlDB := sql.OpenDB(connector)
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return gorm.Open(mysql.New(mysql.Config{Conn: sqlDB}), &gorm.Config{Logger: gl})
}

func (c *Config) NewRawClient() (*sdk.RawClient, error) {
	return sdk.NewRawClient(c.MOI.BaseURL, c.MOI.APIKey)
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
