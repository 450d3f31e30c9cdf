package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_processor.go -package=mocks github.com/Fauli/screenshot-organizer/internal/service Processor
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_job_queue.go -package=mocks github.com/Fauli/screenshot-organizer/internal/service JobQueue

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/jobs"
	"github.com/Fauli/screenshot-organizer/internal/orchestrator"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

var (
	// ErrNoFolderSelected is returned by scan jobs when no folder is configured.
	ErrNoFolderSelected = errors.New("no folder selected")
	// ErrFolderUnavailable is returned by scan jobs when the folder cannot be read.
	ErrFolderUnavailable = errors.New("folder permission lost")
)

// Processor runs the processing state machine.
type Processor interface {
	ProcessBatch(ctx context.Context, opts orchestrator.BatchOptions) (orchestrator.BatchResult, error)
	ProcessAll(ctx context.Context, opts orchestrator.BatchOptions) (orchestrator.BatchResult, error)
	Progress(ctx context.Context) (orchestrator.Progress, error)
	Reprocess(ctx context.Context, id string) error
	ResetAll(ctx context.Context) (int, error)
	ResetStuck(ctx context.Context) (int, error)
}

// JobQueue schedules background jobs.
type JobQueue interface {
	Enqueue(job jobs.Job, policy jobs.Policy) bool
	Continue(job jobs.Job) bool
	Busy(kind jobs.Kind) bool
}

// Activity reports which background jobs are queued.
type Activity struct {
	Scanning   bool
	Processing bool
}

// Pipeline wires scanning and processing into background jobs.
type Pipeline struct {
	scans     *ScanService
	processor Processor
	prefs     storage.PreferenceStore
	queue     JobQueue
	batchSize int
}

// NewPipeline creates a Pipeline. queue may be nil for callers that only run
// work synchronously. batchSize 0 picks the size from the AI mode.
func NewPipeline(scans *ScanService, processor Processor, prefs storage.PreferenceStore, queue JobQueue, batchSize int) *Pipeline {
	return &Pipeline{
		scans:     scans,
		processor: processor,
		prefs:     prefs,
		queue:     queue,
		batchSize: batchSize,
	}
}

func (p *Pipeline) size(requested int) int {
	if requested > 0 {
		return requested
	}
	return p.batchSize
}

// ScanJob returns a job that scans the selected folder. Generic scan errors
// are retryable; a missing folder or lost permission is not.
func (p *Pipeline) ScanJob() jobs.Job {
	return jobs.Job{
		Name: "scan",
		Kind: jobs.KindScan,
		Run: func(ctx context.Context) error {
			out := p.scans.Scan(ctx)
			switch out.Status {
			case ScanNoFolderSelected:
				return ErrNoFolderSelected
			case ScanPermissionLost:
				return fmt.Errorf("%w: %s", ErrFolderUnavailable, out.Message)
			case ScanError:
				return jobs.Retryable(errors.New(out.Message))
			}
			return nil
		},
	}
}

// PeriodicJob returns a scan job that queues processing afterwards when the
// auto-process preference is on.
func (p *Pipeline) PeriodicJob() jobs.Job {
	scan := p.ScanJob()
	return jobs.Job{
		Name: "periodic-scan",
		Kind: jobs.KindScan,
		Run: func(ctx context.Context) error {
			if err := scan.Run(ctx); err != nil {
				return err
			}
			prefs, err := p.prefs.Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load preferences: %w", err)
			}
			if prefs.AutoProcessOnStartup {
				p.RequestProcess(0)
			}
			return nil
		},
	}
}

// ProcessJob returns a job that processes one batch and queues a follow-up
// while NEW items remain.
func (p *Pipeline) ProcessJob(batchSize int) jobs.Job {
	var job jobs.Job
	job = jobs.Job{
		Name: "process",
		Kind: jobs.KindProcess,
		Run: func(ctx context.Context) error {
			res, err := p.ProcessBatch(ctx, batchSize)
			if err != nil {
				return err
			}
			if res.HasMore && res.Processed > 0 && p.queue != nil {
				p.queue.Continue(job)
			}
			return nil
		},
	}
	return job
}

// RequestScan queues a scan, optionally followed by processing. A pending
// scan is replaced. Processing runs in its own lane once the scan succeeds.
func (p *Pipeline) RequestScan(thenProcess bool) bool {
	if p.queue == nil {
		return false
	}
	job := p.ScanJob()
	if thenProcess {
		job = jobs.Chain(job, p.handOffProcessing())
	}
	return p.queue.Enqueue(job, jobs.Replace)
}

// handOffProcessing returns a step that queues a processing job instead of
// running the batch in the caller's lane.
func (p *Pipeline) handOffProcessing() jobs.Job {
	return jobs.Job{
		Name: "process",
		Kind: jobs.KindProcess,
		Run: func(context.Context) error {
			p.RequestProcess(0)
			return nil
		},
	}
}

// RequestProcess queues processing. A pending processing job is replaced.
func (p *Pipeline) RequestProcess(batchSize int) bool {
	if p.queue == nil {
		return false
	}
	return p.queue.Enqueue(p.ProcessJob(batchSize), jobs.Replace)
}

// Activity reports queued work.
func (p *Pipeline) Activity() Activity {
	if p.queue == nil {
		return Activity{}
	}
	return Activity{
		Scanning:   p.queue.Busy(jobs.KindScan),
		Processing: p.queue.Busy(jobs.KindProcess),
	}
}

// Scan runs a scan synchronously.
func (p *Pipeline) Scan(ctx context.Context) ScanOutcome {
	return p.scans.Scan(ctx)
}

func (p *Pipeline) batchOptions(ctx context.Context, batchSize int) (orchestrator.BatchOptions, error) {
	prefs, err := p.prefs.Load(ctx)
	if err != nil {
		return orchestrator.BatchOptions{}, WrapError(err, "failed to load preferences")
	}
	return orchestrator.BatchOptions{Size: p.size(batchSize), Prefs: prefs}, nil
}

// ProcessBatch runs one batch synchronously under the current preferences.
func (p *Pipeline) ProcessBatch(ctx context.Context, batchSize int) (orchestrator.BatchResult, error) {
	opts, err := p.batchOptions(ctx, batchSize)
	if err != nil {
		return orchestrator.BatchResult{}, err
	}
	return p.processor.ProcessBatch(ctx, opts)
}

// ProcessAll runs batches synchronously until no NEW items remain.
func (p *Pipeline) ProcessAll(ctx context.Context, batchSize int) (orchestrator.BatchResult, error) {
	opts, err := p.batchOptions(ctx, batchSize)
	if err != nil {
		return orchestrator.BatchResult{}, err
	}
	return p.processor.ProcessAll(ctx, opts)
}

// Progress returns the processing snapshot.
func (p *Pipeline) Progress(ctx context.Context) (orchestrator.Progress, error) {
	return p.processor.Progress(ctx)
}

// Startup resets items left in PROCESSING by a previous run and, when the
// preference asks for it, queues processing.
func (p *Pipeline) Startup(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	n, err := p.processor.ResetStuck(ctx)
	if err != nil {
		return WrapError(err, "failed to reset stuck items")
	}
	if n > 0 {
		logger.InfoContext(ctx, "recovered interrupted items", "items", n)
	}

	prefs, err := p.prefs.Load(ctx)
	if err != nil {
		return WrapError(err, "failed to load preferences")
	}
	if prefs.AutoProcessOnStartup {
		p.RequestScan(true)
	}
	return nil
}
