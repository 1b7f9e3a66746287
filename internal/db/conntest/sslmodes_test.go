//go:build conntest

package conntest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/tvload/internal/db"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// The test container runs without server certificates, so modes that
// tolerate plaintext succeed and modes that demand TLS fail.

func TestSSLMode_Disable(t *testing.T) {
	config := parseStdConnString(t)
	config.SSLMode = "disable"

	pool := connectWithConfig(t, config)
	pingSucceeds(t, pool)
}

func TestSSLMode_Prefer_FallsBackToPlaintext(t *testing.T) {
	config := parseStdConnString(t)
	config.SSLMode = "prefer"

	pool := connectWithConfig(t, config)
	pingSucceeds(t, pool)
}

func TestSSLMode_Require_FailsWithoutServerTLS(t *testing.T) {
	config := parseStdConnString(t)
	config.SSLMode = "require"

	connector, err := db.NewConnector(config)
	require.NoError(t, err)

	_, err = connector.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, tvload.ErrConnectionFailed))
}
