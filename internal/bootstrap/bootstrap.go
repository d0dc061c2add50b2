// Package bootstrap arma el grafo de casos de uso sobre el almacenamiento configurado.
// Lo comparten el servidor HTTP, la CLI y las pruebas.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/comercial-api/internal/application/accounts"
	"github.com/jhoicas/comercial-api/internal/application/catalog"
	"github.com/jhoicas/comercial-api/internal/application/documents"
	"github.com/jhoicas/comercial-api/internal/application/fiscal"
	"github.com/jhoicas/comercial-api/internal/application/inventory"
	"github.com/jhoicas/comercial-api/internal/application/payments"
	"github.com/jhoicas/comercial-api/internal/application/ports"
	"github.com/jhoicas/comercial-api/internal/clock"
	"github.com/jhoicas/comercial-api/internal/domain/repository"
	"github.com/jhoicas/comercial-api/internal/infrastructure/memory"
	"github.com/jhoicas/comercial-api/internal/infrastructure/postgres"
	"github.com/jhoicas/comercial-api/pkg/config"
	"github.com/jhoicas/comercial-api/pkg/logger"
)

// Store almacenamiento transaccional más los repositorios de lectura.
type Store struct {
	Tx    repository.TxRunner
	Reads repository.Repos
	Close func()
}

// OpenStore abre el almacenamiento según STORE_DRIVER. Con postgres aplica las
// migraciones si DB_AUTO_MIGRATE está activo.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	if cfg.Store.Driver == config.StoreMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		return &Store{Tx: mem, Reads: mem.Repos(), Close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateFromPool(pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &Store{
		Tx:    postgres.NewTxRunner(pool),
		Reads: postgres.NewRepos(pool),
		Close: pool.Close,
	}, nil
}

// Services casos de uso listos para usar.
type Services struct {
	Ledger      *inventory.Ledger
	Adjustments *inventory.AdjustmentUseCase
	Allocator   *fiscal.Allocator
	Sequences   *fiscal.SequenceUseCase
	Catalog     *catalog.UseCase
	Accounts    *accounts.Engine
	Payments    *payments.Processor
	Documents   *documents.Service
}

// Options dependencias de salida de los casos de uso. PDF puede ser nil si no se sirven comprobantes.
type Options struct {
	Clock   clock.Clock
	Metrics ports.MetricsRecorder
	PDF     documents.ReceiptPDFGenerator
	Log     *logger.Logger
}

// NewServices construye los casos de uso sobre tx y reads.
func NewServices(tx repository.TxRunner, reads repository.Repos, opts Options) *Services {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Metrics == nil {
		opts.Metrics = ports.NopMetrics{}
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	ledger := inventory.NewLedger(tx, reads, opts.Clock, opts.Metrics, opts.Log)
	allocator := fiscal.NewAllocator(tx, opts.Clock, opts.Metrics, opts.Log)
	engine := accounts.NewEngine(tx, reads, opts.Clock, opts.Log)
	return &Services{
		Ledger:      ledger,
		Adjustments: inventory.NewAdjustmentUseCase(ledger),
		Allocator:   allocator,
		Sequences:   fiscal.NewSequenceUseCase(tx, reads.Sequences, opts.Clock),
		Catalog:     catalog.NewUseCase(tx, reads, ledger, opts.Clock),
		Accounts:    engine,
		Payments:    payments.NewProcessor(tx, reads, engine, opts.Clock, opts.Metrics, opts.Log),
		Documents: documents.NewService(documents.Deps{
			Tx:        tx,
			Reads:     reads,
			Ledger:    ledger,
			Allocator: allocator,
			Accounts:  engine,
			PDF:       opts.PDF,
			Clock:     opts.Clock,
			Metrics:   opts.Metrics,
			Log:       opts.Log,
		}),
	}
}
