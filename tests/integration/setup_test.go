package integration

import (
	"context"
	"net/http"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/aman-soni-070202/my-finances/internal/adapter/http"
	"github.com/aman-soni-070202/my-finances/internal/adapter/http/handler"
	"github.com/aman-soni-070202/my-finances/internal/adapter/repository/postgres"
	redisrepo "github.com/aman-soni-070202/my-finances/internal/adapter/repository/redis"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
	"github.com/aman-soni-070202/my-finances/tests/testutil"
)

// testEnv wires the full stack against a real Postgres and an in-process
// Redis.
type testEnv struct {
	DB     *testutil.TestDB
	Router http.Handler
	Redis  *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	mr := miniredis.RunT(t)
	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	cardRepo := postgres.NewCardRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)
	idGen := postgres.NewULIDGenerator()

	transactionUC := usecase.NewTransactionUseCase(
		txManager, transactionRepo, accountRepo, cardRepo, categoryRepo, auditRepo, idGen, cache,
	).WithRetrier(postgres.NewRetrier())
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	cardUC := usecase.NewCardUseCase(cardRepo, idGen)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	statsUC := usecase.NewStatsUseCase(transactionRepo, cache, 0, zerolog.Nop())
	backupUC := usecase.NewBackupUseCase(
		txManager, transactionRepo, accountRepo, cardRepo, categoryRepo, auditRepo, idGen, cache,
	)
	reconciliationUC := usecase.NewReconciliationUseCase(ledgerRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		CardHandler:        handler.NewCardHandler(cardUC),
		CategoryHandler:    handler.NewCategoryHandler(categoryUC),
		StatsHandler:       handler.NewStatsHandler(statsUC),
		BackupHandler:      handler.NewBackupHandler(backupUC),
		LedgerHandler:      handler.NewLedgerHandler(reconciliationUC, auditUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   idempotencyStore,
	})

	return &testEnv{
		DB:     testDB,
		Router: router,
		Redis:  mr,
	}
}
