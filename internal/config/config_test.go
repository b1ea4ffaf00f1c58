package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	content := `
server:
  host: "127.0.0.1"
  port: 9090
  max_connections: 5000

redis:
  addr: "redis:6379"
  password: "secret"
  db: 1

database:
  path: "/data/missions.db"

game:
  max_rooms: 50
  max_players: 8
  min_players: 4
  tally_delay: 3
  room_idle_timeout: 15
  cleanup_interval: 2

ai:
  api_key: "sk-test"
  base_url: "https://llm.internal/v1"
  model: "gpt-4o"

admin:
  password: "hunter2"

security:
  allowed_origins:
    - "http://localhost:3000"
    - "https://example.com"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5000, cfg.Server.MaxConnections)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "/data/missions.db", cfg.Database.Path)
	assert.Equal(t, 50, cfg.Game.MaxRooms)
	assert.Equal(t, 8, cfg.Game.MaxPlayers)
	assert.Equal(t, 4, cfg.Game.MinPlayers)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, "https://llm.internal/v1", cfg.AI.BaseURL)
	assert.Equal(t, "hunter2", cfg.Admin.Password)
	assert.Len(t, cfg.Security.AllowedOrigins, 2)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")
	err := os.WriteFile(configPath, []byte("invalid: yaml: :::"), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	content := `{}`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, defaultHost, cfg.Server.Host)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, defaultMaxConnections, cfg.Server.MaxConnections)
	assert.Equal(t, defaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, defaultMaxRooms, cfg.Game.MaxRooms)
	assert.Equal(t, defaultMaxPlayers, cfg.Game.MaxPlayers)
	assert.Equal(t, defaultMinPlayers, cfg.Game.MinPlayers)
	assert.Equal(t, defaultAIModel, cfg.AI.Model)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, defaultHost, cfg.Server.Host)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, defaultTallyDelay, cfg.Game.TallyDelay)
	assert.Equal(t, defaultAIBaseURL, cfg.AI.BaseURL)
}

func TestGameConfig_DurationMethods(t *testing.T) {
	t.Parallel()

	cfg := &GameConfig{
		TallyDelay:      2,
		RoomIdleTimeout: 30,
		CleanupInterval: 5,
	}

	assert.Equal(t, 2*time.Second, cfg.TallyDelayDuration())
	assert.Equal(t, 30*time.Minute, cfg.RoomIdleTimeoutDuration())
	assert.Equal(t, 5*time.Minute, cfg.CleanupIntervalDuration())
}

func TestRateLimitConfig_BanDurationTime(t *testing.T) {
	t.Parallel()

	cfg := &RateLimitConfig{BanDuration: 120}
	assert.Equal(t, 120*time.Second, cfg.BanDurationTime())
}

func TestLoadFromEnv(t *testing.T) {
	// 修改环境变量，不能并行

	t.Setenv("SERVER_HOST", "env-host")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("REDIS_ADDR", "env-redis:6380")
	t.Setenv("AI_API_KEY", "sk-env")
	t.Setenv("ADMIN_PASSWORD", "env-pass")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "http://a.com,http://b.com")

	content := `{}`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "env.yaml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "env-host", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "env-redis:6380", cfg.Redis.Addr)
	assert.Equal(t, "sk-env", cfg.AI.APIKey)
	assert.Equal(t, "env-pass", cfg.Admin.Password)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, cfg.Security.AllowedOrigins)
}
