package db

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingWithRetry_Cancelled(t *testing.T) {
	// A directory path is not a valid database file, so every ping fails
	// and the retry loop is forced through its backoff.
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s", t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	database := &DB{conn: conn}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err = database.pingWithRetry(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), initialWait, "cancellation should cut the backoff short")
}
