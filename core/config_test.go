package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_DATABASE_ENGINE", "sqlite")
	t.Setenv("TEST_DATABASE_NAME", ":memory:")
	t.Setenv("TEST_SERVER_ADDRESS", ":9000")
	t.Setenv("TEST_STAFF_USERNAME", "registrar")

	conf := NewConfig()
	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.False(t, conf.Debug)
	assert.Equal(t, "sqlite", conf.Database.Engine)
	assert.Equal(t, ":memory:", conf.Database.Name)
	assert.Equal(t, ":9000", conf.Server.Address)
	assert.Equal(t, "registrar", conf.Staff.Username)
	assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, "localhost:5432", conf.Database.Address())
}
