package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 8080
logging:
  level: debug
  format: json
database:
  driver: mysql
  host: localhost
  port: 3306
  user: farmtech
  password: secret
  name: farmtech
ai:
  apiKey: sk-test
  model: gpt-4o
  timeoutSeconds: 45
cors:
  allowedOrigins:
    - https://app.farmtech.example
rateLimit:
  capacity: 100
  refillRate: 10
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 45, cfg.AI.TimeoutSeconds)
	assert.Equal(t, []string{"https://app.farmtech.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 100, cfg.RateLimit.Capacity)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("DB_PASSWORD", "env-secret")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.AI.APIKey)
	assert.Equal(t, "env-secret", cfg.Database.Password)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing port", "database:\n  driver: mysql\n  host: h\n  port: 3306\n  user: u\n  name: n\n"},
		{"bad driver", "server:\n  port: 8080\ndatabase:\n  driver: oracle\n  host: h\n  port: 3306\n  user: u\n  name: n\n"},
		{"bad level", "server:\n  port: 8080\nlogging:\n  level: loud\ndatabase:\n  driver: mysql\n  host: h\n  port: 3306\n  user: u\n  name: n\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDSNHelpers(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	dsn := cfg.MySQLDSN()
	assert.Contains(t, dsn, "farmtech:secret@tcp(localhost:3306)/farmtech")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "multiStatements=true")

	cfg.Database.Driver = "postgres"
	pg := cfg.PostgresDSN()
	assert.Contains(t, pg, "host=localhost")
	assert.Contains(t, pg, "sslmode=disable")
}
