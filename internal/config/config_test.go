package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("GRIST_ROOT_URL", "https://grist.example.com")
	t.Setenv("GRIST_DOC_ID", "doc1")
	t.Setenv("GRIST_API_KEY", "key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "key", cfg.Records.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Records.Timeout)
	assert.Equal(t, []string{"local", "UTC"}, cfg.CalTimezones)
	assert.False(t, cfg.Notify.EmailEnabled())
	assert.False(t, cfg.Notify.SMSEnabled())
	assert.False(t, cfg.Admin.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("GRIST_TIMEOUT", "5")
	t.Setenv("CAL_TIMEZONES", "Europe/Berlin, America/New_York ,")
	t.Setenv("NOTIFY_FROM", "bot@example.com")
	t.Setenv("NOTIFY_TO", "organizer@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Records.Timeout)
	assert.Equal(t, []string{"Europe/Berlin", "America/New_York"}, cfg.CalTimezones)
	assert.True(t, cfg.Notify.EmailEnabled())
}

func TestLoad_APIKeyFile(t *testing.T) {
	setRequired(t)
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))
	t.Setenv("GRIST_API_KEY_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Records.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing doc id", map[string]string{"GRIST_DOC_ID": ""}},
		{"bad url", map[string]string{"GRIST_ROOT_URL": "not a url"}},
		{"bad email", map[string]string{"NOTIFY_TO": "nobody"}},
		{"secret without password hash", map[string]string{"ADMIN_JWT_SECRET": "s"}},
		{"missing key file", map[string]string{"GRIST_API_KEY_FILE": "/does/not/exist"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
