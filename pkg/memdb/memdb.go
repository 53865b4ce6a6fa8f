// Package memdb runs an in-process MySQL-compatible server backed by
// go-mysql-server memory tables. It backs DB_DRIVER=embedded and the
// repository tests; data lives only as long as the process.
package memdb

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	sqle "github.com/dolthub/go-mysql-server"
	"github.com/dolthub/go-mysql-server/memory"
	"github.com/dolthub/go-mysql-server/server"
	"github.com/dolthub/go-mysql-server/sql"

	"healthagentapi/pkg/logger"
)

const host = "127.0.0.1"

// Server is a running embedded MySQL server exposing a single database.
type Server struct {
	Database string
	Port     int

	srv       *server.Server
	cancel    context.CancelFunc
	closeOnce sync.Once
	closeErr  error
}

// Start creates the database, starts the server on a free port and waits until it accepts connections.
// The server shuts down when ctx is cancelled or Close is called.
func Start(ctx context.Context, dbName string) (*Server, error) {
	port, err := GetFreePort()
	if err != nil {
		return nil, fmt.Errorf("failed to get free port: %w", err)
	}

	db := memory.NewDatabase(dbName)
	db.BaseDatabase.EnablePrimaryKeyIndexes()
	provider := memory.NewDBProvider(db)
	engine := sqle.NewDefault(provider)

	addr := fmt.Sprintf("%s:%d", host, port)
	cfg := server.Config{
		Protocol: "tcp",
		Address:  addr,
	}

	s, err := server.NewServer(cfg, engine, sql.NewContext, memory.NewSessionBuilder(provider), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	m := &Server{Database: dbName, Port: port, srv: s, cancel: cancel}

	go func() {
		if err := s.Start(); err != nil {
			logger.Errorf("Embedded MySQL server on %s stopped: %v", addr, err)
		}
	}()

	go func() {
		<-serverCtx.Done()
		if err := m.shutdown(); err != nil {
			logger.Warnf("Failed to close embedded MySQL server on %s: %v", addr, err)
		}
	}()

	if err := waitReady(ctx, addr, 5*time.Second); err != nil {
		cancel()
		return nil, err
	}

	logger.Infof("Started embedded MySQL server on %s (database %s)", addr, dbName)
	return m, nil
}

func waitReady(ctx context.Context, addr string, timeout time.Duration) error {
	readyCtx, readyCancel := context.WithTimeout(ctx, timeout)
	defer readyCancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-readyCtx.Done():
			return fmt.Errorf("embedded server on %s not ready: %w", addr, readyCtx.Err())
		case <-ticker.C:
			conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
			if err == nil {
				conn.Close()
				return nil
			}
		}
	}
}

// DSN returns a go-sql-driver/mysql DSN for the embedded database.
// The embedded server accepts any user without a password.
func (m *Server) DSN() string {
	return fmt.Sprintf("root:@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC", host, m.Port, m.Database)
}

// Close stops the server. It is safe to call more than once.
func (m *Server) Close() error {
	m.cancel()
	return m.shutdown()
}

func (m *Server) shutdown() error {
	m.closeOnce.Do(func() {
		if err := m.srv.Close(); err != nil {
			m.closeErr = fmt.Errorf("failed to close server: %w", err)
			return
		}
		logger.Infof("Closed embedded MySQL server on port %d", m.Port)
	})
	return m.closeErr
}

// GetFreePort finds an available TCP port.
func GetFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", host+":0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port, nil
}
