package memdb

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_AcceptsConnectionsUntilClosed(t *testing.T) {
	srv, err := Start(context.Background(), "policies_test")
	require.NoError(t, err)

	addr := fmt.Sprintf("%s:%d", host, srv.Port)
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	conn.Close()

	assert.Equal(t, fmt.Sprintf("root:@tcp(%s)/policies_test?charset=utf8mb4&parseTime=True&loc=UTC", addr), srv.DSN())

	require.NoError(t, srv.Close())
	assert.NoError(t, srv.Close())
}

func TestStart_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv, err := Start(ctx, "policies_test")
	require.NoError(t, err)

	cancel()

	addr := fmt.Sprintf("%s:%d", host, srv.Port)
	assert.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err != nil {
			return true
		}
		conn.Close()
		return false
	}, 5*time.Second, 50*time.Millisecond)
}

func TestGetFreePort(t *testing.T) {
	port, err := GetFreePort()
	require.NoError(t, err)
	assert.Greater(t, port, 0)
}
