package api

import (
	"os"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"solo-skies/skyledger/internal/admingate"
	"solo-skies/skyledger/internal/balance"
	"solo-skies/skyledger/internal/common"
	"solo-skies/skyledger/internal/constants"
	"solo-skies/skyledger/internal/db/repositories"
	"solo-skies/skyledger/internal/ledger"
	"solo-skies/skyledger/internal/logging"
	"solo-skies/skyledger/internal/metrics"
	"solo-skies/skyledger/internal/workers"
)

// Dependencies wires the whole service together: admin gate, balance
// service, ledger, event fan-out and repositories.
type Dependencies struct {
	Metrics     *metrics.MetricsRegistry
	Gate        *admingate.Gate
	Balance     *balance.InMemory
	Ledger      *ledger.Ledger
	FlightCache *common.FlightCache
	Worker      *workers.EventWorker
	Journal     *repositories.EventJournalRepository
	EventReads  *repositories.EventReadRepository
}

// InitDependencies builds the dependency graph. sqlxDB may be nil
// when the journal runs on sqlite; the journal read endpoints then
// report unavailable.
func InitDependencies(metricsReg *metrics.MetricsRegistry, gormDB *gorm.DB, sqlxDB *sqlx.DB) (*Dependencies, error) {
	owner := os.Getenv("OWNER_ACCOUNT")
	if owner == "" {
		owner = "operator"
	}
	treasury := os.Getenv("TREASURY_ACCOUNT")
	if treasury == "" {
		treasury = "skyledger-treasury"
	}

	journal := repositories.NewEventJournalRepository(gormDB)
	sinks := []workers.Sink{journal, metrics.NewEventSink(metricsReg)}

	if os.Getenv("REDIS_HOST") != "" {
		client := common.NewRedisClient()
		sinks = append(sinks, common.NewRedisEventPublisher(client, constants.LedgerEventStream))
		logging.Info("Redis event publisher enabled")
	}

	worker := workers.NewEventWorker(256, sinks...)
	gate := admingate.New(owner, worker)
	bal := balance.NewInMemory(treasury)
	led := ledger.New(gate, bal, treasury, worker)

	deps := &Dependencies{
		Metrics:     metricsReg,
		Gate:        gate,
		Balance:     bal,
		Ledger:      led,
		FlightCache: common.NewFlightCache(30, 60),
		Worker:      worker,
		Journal:     journal,
	}
	if sqlxDB != nil {
		deps.EventReads = repositories.NewEventReadRepository(sqlxDB)
	}

	logging.Info("Dependencies initialized",
		"owner", owner,
		"treasury", treasury,
		"event_sinks", len(sinks),
	)
	return deps, nil
}
