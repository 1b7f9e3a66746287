//go:build conntest

package conntest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/tvload/internal/db"
)

func TestPrecedence_EnvPasswordUsedWithGranularFlags(t *testing.T) {
	config := parseStdConnString(t)

	t.Setenv("PGPASSWORD", "wrong-password-from-env")

	flagConfig := &db.GranularConnFlags{
		Host:     config.Host,
		Port:     config.Port,
		Username: config.Username,
		Database: config.Database,
	}

	envVars := db.LoadFromEnvironment()

	resolved, err := db.ResolveConnectionParams("", flagConfig, nil, nil, nil, nil, envVars, nil)
	require.NoError(t, err)

	// Password has no flag; it must come from the environment.
	assert.Equal(t, "wrong-password-from-env", resolved.Password)

	// With the real password back in place the resolved config connects.
	resolved.Password = config.Password
	resolved.SSLMode = "disable"

	pool := connectWithConfig(t, resolved)
	pingSucceeds(t, pool)
}

func TestPrecedence_ConnectionStringWins(t *testing.T) {
	config := parseStdConnString(t)

	t.Setenv("PGHOST", "wrong-host-from-env")
	t.Setenv("PGPORT", "1")

	envVars := db.LoadFromEnvironment()

	resolved, err := db.ResolveConnectionParams(
		db.BuildConnectionString(config),
		nil, nil, nil, nil, nil,
		envVars,
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, config.Host, resolved.Host)
	assert.Equal(t, config.Port, resolved.Port)

	resolved.SSLMode = "disable"
	pool := connectWithConfig(t, resolved)
	pingSucceeds(t, pool)
}
