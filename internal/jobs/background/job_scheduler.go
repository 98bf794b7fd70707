package background

import (
	"context"
	"time"

	"notesaas/internal/repositories"
	"notesaas/internal/services"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const exportPageSize = 100

// JobScheduler runs the nightly tenant export job.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	exportSvc  services.ExportService
	tenantRepo repositories.TenantRepository
	log        *zap.Logger
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(exportSvc services.ExportService, tenantRepo repositories.TenantRepository, log *zap.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		exportSvc:  exportSvc,
		tenantRepo: tenantRepo,
		log:        log,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}

	return js, nil
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(2, 0, 0))),
		gocron.NewTask(js.exportAllTenants),
		gocron.WithName("nightly-notes-export"),
	)
	return err
}

// exportAllTenants writes a snapshot for every tenant. Failures are logged
// per tenant and do not stop the sweep.
func (js *JobScheduler) exportAllTenants() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	offset := 0
	for {
		tenants, err := js.tenantRepo.List(ctx, exportPageSize, offset)
		if err != nil {
			js.log.Error("tenant export sweep aborted", zap.Error(err))
			return
		}
		if len(tenants) == 0 {
			return
		}

		for _, tenant := range tenants {
			result, err := js.exportSvc.ExportTenantNotes(ctx, tenant.ID, tenant.Slug)
			if err != nil {
				js.log.Error("tenant export failed",
					zap.String("tenant_id", tenant.ID.String()),
					zap.Error(err))
				continue
			}
			js.log.Info("tenant export completed",
				zap.String("tenant_id", tenant.ID.String()),
				zap.String("object", result.Object),
				zap.Int("note_count", result.NoteCount))
		}

		offset += len(tenants)
	}
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs.
func (js *JobScheduler) Stop() error {
	return js.scheduler.Shutdown()
}
