package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if c.Server.Port != 9871 {
		t.Errorf("port = %d", c.Server.Port)
	}
	if c.TokenTTL() != 30*time.Minute {
		t.Errorf("ttl = %s", c.TokenTTL())
	}
	if c.Stats.Timezone != "Asia/Shanghai" {
		t.Errorf("timezone = %q", c.Stats.Timezone)
	}
	if len(c.CORS.AllowOrigins) != 1 || c.CORS.AllowOrigins[0] != "http://localhost:5173" {
		t.Errorf("cors = %v", c.CORS.AllowOrigins)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 8080
database:
  host: db.internal
  name: datasync
  auto_migrate: true
auth:
  token_ttl_minutes: 90
moi:
  daily_status_table_id: 42
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DB_PORT", "3307")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "not-a-number")

	c := Load(path)
	if c.Server.Port != 8080 {
		t.Errorf("port = %d, want file value kept on bad env", c.Server.Port)
	}
	if c.Database.Host != "db.internal" || c.Database.Name != "datasync" || !c.Database.AutoMigrate {
		t.Errorf("database = %+v", c.Database)
	}
	if c.Database.Port != 3307 {
		t.Errorf("db port = %d", c.Database.Port)
	}
	if c.Auth.JWTSecret != "s3cret" {
		t.Errorf("secret = %q", c.Auth.JWTSecret)
	}
	if c.TokenTTL() != 90*time.Minute {
		t.Errorf("ttl = %s", c.TokenTTL())
	}
	if c.MOI.DailyStatusTableID != 42 {
		t.Errorf("moi = %+v", c.MOI)
	}
	if c.Addr() != ":8080" {
		t.Errorf("addr = %s", c.Addr())
	}
}
