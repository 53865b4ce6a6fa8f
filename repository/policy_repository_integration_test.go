//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"healthagentapi/bootstrap"
	"healthagentapi/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// openPostgres starts a throwaway Postgres and returns a migrated connection.
func openPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("policies_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get postgres host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get postgres port: %v", err)
	}

	db, err := config.OpenDB(ctx, config.AppConfig{
		DBDriver:          config.DriverPostgres,
		DBHost:            host,
		DBPort:            port.Int(),
		DBUser:            "postgres",
		DBPass:            "postgres",
		DBName:            "policies_test",
		DBSSL:             "disable",
		DBMaxOpenConns:    10,
		DBMaxIdleConns:    5,
		DBConnMaxLifetime: time.Minute,
		LogLevel:          "ERROR",
	})
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("failed to migrate postgres: %v", err)
	}
	return db
}

func TestPolicyRepositoryPostgresSuite(t *testing.T) {
	db := openPostgres(t)
	suite.Run(t, &PolicyRepositorySuite{
		keepOpen: true,
		open: func(t *testing.T) *gorm.DB {
			require.NoError(t, db.Exec("TRUNCATE TABLE policies RESTART IDENTITY").Error)
			return db
		},
	})
}

func TestPostgres_ConcurrentSamePANOneInsertWins(t *testing.T) {
	db := openPostgres(t)
	repo := NewPolicyRepositoryWithDB(db)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := newPolicy("ABCDE1234F")
			p.CustomerName = fmt.Sprintf("Customer %d", i)
			errs[i] = repo.Create(ctx, nil, p)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, errors.Is(err, ErrDuplicatePAN), "got %v", err)
	}
	assert.Equal(t, 1, created)

	all, err := repo.GetAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
