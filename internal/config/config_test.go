package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"database": {"host": "localhost", "user": "classboard", "dbname": "classboard"},
		"jwt_secret": "secret",
		"mail": {"host": "smtp.example.com", "from": "noreply@example.com"}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 1, cfg.JWTTTLHours)
	require.Equal(t, 587, cfg.Mail.Port)
	require.Equal(t, "info", cfg.LogConfig.Level)
}

func TestLoadRejectsMissingRequiredFields(t *testing.T) {
	cases := map[string]string{
		"no database": `{
			"jwt_secret": "secret",
			"mail": {"host": "smtp.example.com", "from": "noreply@example.com"}
		}`,
		"no jwt secret": `{
			"database": {"dsn": "postgres://localhost/classboard"},
			"mail": {"host": "smtp.example.com", "from": "noreply@example.com"}
		}`,
		"no mail": `{
			"database": {"dsn": "postgres://localhost/classboard"},
			"jwt_secret": "secret"
		}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
		})
	}
}
