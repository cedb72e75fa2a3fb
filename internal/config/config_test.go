package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MemoryDriverDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverMemory)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3, cfg.Limits.FreeMaxURLs)
	assert.Equal(t, 15, cfg.Limits.BasicMaxProducts)
	assert.Equal(t, 168*time.Hour, cfg.Draft.TTL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("postgres requires database settings", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", DriverPostgres)
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_HOST", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "sqlite")
		t.Setenv("JWT_SECRET", "secret")

		_, err := Load()
		assert.ErrorContains(t, err, "unknown STORE_DRIVER")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", DriverMemory)
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("invalid draft ttl", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", DriverMemory)
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DRAFT_TTL", "soon")

		_, err := Load()
		assert.ErrorContains(t, err, "DRAFT_TTL")
	})
}
