package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"exports": map[string]any{
			"bucketUrl": "",
		},
		"database": map[string]any{
			"sqlite": map[string]any{
				"path": "",
			},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "EXPORTS_BUCKETURL", want: "exports.bucketUrl"},
		{envKey: "DATABASE_SQLITE_PATH", want: "database.sqlite.path"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsEmptyConfig(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.applyDefaults())
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, defaultSQLitePath, cfg.Database.SQLite.Path)
	assert.Equal(t, "Asia/Manila", cfg.Business.Timezone)
	assert.Equal(t, "Asia/Manila", cfg.Location().String())
	require.NotNil(t, cfg.QRCode)
	assert.Equal(t, defaultQRCodeSize, cfg.QRCode.Size)
	assert.Equal(t, defaultQRCodeLevel, cfg.QRCode.ErrorCorrectionLevel)
}

func TestApplyDefaults_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Driver = "oracle"

	assert.Error(t, cfg.applyDefaults())
}

func TestApplyDefaults_PostgresNeedsSection(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Driver = "Postgres"

	assert.Error(t, cfg.applyDefaults())
}

func TestApplyDefaults_RejectsUnknownTimezone(t *testing.T) {
	cfg := &Config{}
	cfg.Business.Timezone = "Mars/Olympus_Mons"

	assert.Error(t, cfg.applyDefaults())
}

func TestLoadWithEnv_OverridesFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_SQLITE_PATH", ":memory:")
	t.Setenv("STATUS_PERSIST", "false")

	cfg, err := LoadWithEnv[Config]("config", ".")
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.Database.SQLite.Path)
	assert.False(t, cfg.Status.Persist)
	assert.Equal(t, 8765, cfg.HTTP.Port)
	assert.Equal(t, "Asia/Manila", cfg.Business.Timezone)
}
