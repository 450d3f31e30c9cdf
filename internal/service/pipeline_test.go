package service_test

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Fauli/screenshot-organizer/internal/jobs"
	"github.com/Fauli/screenshot-organizer/internal/orchestrator"
	"github.com/Fauli/screenshot-organizer/internal/scanner"
	"github.com/Fauli/screenshot-organizer/internal/service"
	"github.com/Fauli/screenshot-organizer/internal/service/mocks"
	"github.com/Fauli/screenshot-organizer/internal/storage"
	storage_mocks "github.com/Fauli/screenshot-organizer/internal/storage/mocks"
)

type pipelineMocks struct {
	scanner   *mocks.MockFolderScanner
	processor *mocks.MockProcessor
	queue     *mocks.MockJobQueue
	prefs     *storage_mocks.MockPreferenceStore
}

func newPipeline(t *testing.T, batchSize int) (*service.Pipeline, pipelineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := pipelineMocks{
		scanner:   mocks.NewMockFolderScanner(ctrl),
		processor: mocks.NewMockProcessor(ctrl),
		queue:     mocks.NewMockJobQueue(ctrl),
		prefs:     storage_mocks.NewMockPreferenceStore(ctrl),
	}
	scans := service.NewScanService(m.scanner, m.prefs, "")
	return service.NewPipeline(scans, m.processor, m.prefs, m.queue, batchSize), m
}

func TestPipeline_ScanJob(t *testing.T) {
	tests := []struct {
		name          string
		folder        *string
		scanErr       error
		wantErr       error
		wantRetryable bool
	}{
		{name: "success", folder: strPtr("/shots")},
		{name: "no folder", wantErr: service.ErrNoFolderSelected},
		{name: "permission lost", folder: strPtr("/shots"), scanErr: scanner.ErrPermissionDenied, wantErr: service.ErrFolderUnavailable},
		{name: "generic error retries", folder: strPtr("/shots"), scanErr: errors.New("busy"), wantRetryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, m := newPipeline(t, 0)
			prefs := storage.DefaultPreferences()
			prefs.SelectedFolder = tt.folder
			m.prefs.EXPECT().Load(gomock.Any()).Return(prefs, nil)
			if tt.folder != nil {
				m.scanner.EXPECT().Scan(gomock.Any(), *tt.folder).Return(scanner.Counts{}, tt.scanErr)
			}
			if tt.folder != nil && tt.scanErr == nil {
				m.prefs.EXPECT().SetLastScanAt(gomock.Any(), gomock.Any()).Return(nil)
			}

			job := p.ScanJob()
			if job.Kind != jobs.KindScan {
				t.Errorf("ScanJob() kind = %s, want %s", job.Kind, jobs.KindScan)
			}
			err := job.Run(testContext())

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
				}
				if jobs.IsRetryable(err) {
					t.Errorf("Run() error %v should not be retryable", err)
				}
			case tt.wantRetryable:
				if !jobs.IsRetryable(err) {
					t.Errorf("Run() error = %v, want retryable", err)
				}
			case err != nil:
				t.Errorf("Run() unexpected error = %v", err)
			}
		})
	}
}

func TestPipeline_ProcessJob(t *testing.T) {
	tests := []struct {
		name         string
		configured   int
		requested    int
		wantSize     int
		result       orchestrator.BatchResult
		wantContinue bool
	}{
		{name: "drains while items remain", configured: 5, wantSize: 5, result: orchestrator.BatchResult{Processed: 5, HasMore: true}, wantContinue: true},
		{name: "requested size wins", configured: 5, requested: 2, wantSize: 2, result: orchestrator.BatchResult{Processed: 2}},
		{name: "no progress stops", result: orchestrator.BatchResult{HasMore: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, m := newPipeline(t, tt.configured)
			prefs := storage.DefaultPreferences()
			m.prefs.EXPECT().Load(gomock.Any()).Return(prefs, nil)
			m.processor.EXPECT().
				ProcessBatch(gomock.Any(), orchestrator.BatchOptions{Size: tt.wantSize, Prefs: prefs}).
				Return(tt.result, nil)
			if tt.wantContinue {
				m.queue.EXPECT().Continue(gomock.Any()).DoAndReturn(func(job jobs.Job) bool {
					if job.Kind != jobs.KindProcess {
						t.Errorf("Continue() kind = %s, want %s", job.Kind, jobs.KindProcess)
					}
					return true
				})
			}

			if err := p.ProcessJob(tt.requested).Run(testContext()); err != nil {
				t.Errorf("Run() error = %v", err)
			}
		})
	}
}

func TestPipeline_ProcessJobError(t *testing.T) {
	p, m := newPipeline(t, 0)
	m.prefs.EXPECT().Load(gomock.Any()).Return(storage.DefaultPreferences(), nil)
	m.processor.EXPECT().ProcessBatch(gomock.Any(), gomock.Any()).Return(orchestrator.BatchResult{}, errors.New("database is closed"))

	if err := p.ProcessJob(0).Run(testContext()); err == nil {
		t.Error("Run() error = nil, want error")
	}
}

func TestPipeline_Requests(t *testing.T) {
	p, m := newPipeline(t, 0)

	var chained jobs.Job
	m.queue.EXPECT().Enqueue(gomock.Any(), jobs.Replace).DoAndReturn(func(job jobs.Job, _ jobs.Policy) bool {
		chained = job
		return true
	})
	if !p.RequestScan(true) {
		t.Error("RequestScan(true) = false")
	}
	if chained.Name != "scan+process" || chained.Kind != jobs.KindScan {
		t.Errorf("RequestScan(true) job = %s/%s", chained.Name, chained.Kind)
	}

	// The scan lane only queues processing; the batch itself runs in the process lane.
	prefs := storage.DefaultPreferences()
	prefs.SelectedFolder = strPtr("/shots")
	m.prefs.EXPECT().Load(gomock.Any()).Return(prefs, nil)
	m.scanner.EXPECT().Scan(gomock.Any(), "/shots").Return(scanner.Counts{New: 1}, nil)
	m.prefs.EXPECT().SetLastScanAt(gomock.Any(), gomock.Any()).Return(nil)
	m.queue.EXPECT().Enqueue(gomock.Any(), jobs.Replace).DoAndReturn(func(job jobs.Job, _ jobs.Policy) bool {
		if job.Name != "process" || job.Kind != jobs.KindProcess {
			t.Errorf("chained step queued %s/%s", job.Name, job.Kind)
		}
		return true
	})
	if err := chained.Run(testContext()); err != nil {
		t.Errorf("chained Run() error = %v", err)
	}

	m.queue.EXPECT().Enqueue(gomock.Any(), jobs.Replace).DoAndReturn(func(job jobs.Job, _ jobs.Policy) bool {
		return job.Name == "process" && job.Kind == jobs.KindProcess
	})
	if !p.RequestProcess(3) {
		t.Error("RequestProcess() = false")
	}

	m.queue.EXPECT().Busy(jobs.KindScan).Return(false)
	m.queue.EXPECT().Busy(jobs.KindProcess).Return(true)
	if got := p.Activity(); got != (service.Activity{Processing: true}) {
		t.Errorf("Activity() = %+v", got)
	}
}

func TestPipeline_WithoutQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	prefs := storage_mocks.NewMockPreferenceStore(ctrl)
	p := service.NewPipeline(service.NewScanService(mocks.NewMockFolderScanner(ctrl), prefs, ""),
		mocks.NewMockProcessor(ctrl), prefs, nil, 0)

	if p.RequestScan(false) || p.RequestProcess(0) {
		t.Error("requests without a queue should be rejected")
	}
	if p.Activity() != (service.Activity{}) {
		t.Error("Activity() without a queue should be idle")
	}
}

func TestPipeline_Startup(t *testing.T) {
	tests := []struct {
		name        string
		autoProcess bool
	}{
		{name: "auto process queues scan and process", autoProcess: true},
		{name: "manual mode only recovers", autoProcess: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, m := newPipeline(t, 0)
			prefs := storage.DefaultPreferences()
			prefs.AutoProcessOnStartup = tt.autoProcess

			m.processor.EXPECT().ResetStuck(gomock.Any()).Return(2, nil)
			m.prefs.EXPECT().Load(gomock.Any()).Return(prefs, nil)
			if tt.autoProcess {
				m.queue.EXPECT().Enqueue(gomock.Any(), jobs.Replace).Return(true)
			}

			if err := p.Startup(testContext()); err != nil {
				t.Errorf("Startup() error = %v", err)
			}
		})
	}
}

func TestPipeline_PeriodicJob(t *testing.T) {
	tests := []struct {
		name        string
		folder      *string
		autoProcess bool
		wantQueued  bool
		wantErr     error
	}{
		{name: "auto process queues processing", folder: strPtr("/shots"), autoProcess: true, wantQueued: true},
		{name: "manual mode only scans", folder: strPtr("/shots")},
		{name: "scan failure stops", wantErr: service.ErrNoFolderSelected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, m := newPipeline(t, 0)
			prefs := storage.DefaultPreferences()
			prefs.SelectedFolder = tt.folder
			prefs.AutoProcessOnStartup = tt.autoProcess

			if tt.wantErr != nil {
				m.prefs.EXPECT().Load(gomock.Any()).Return(prefs, nil)
			} else {
				m.prefs.EXPECT().Load(gomock.Any()).Return(prefs, nil).Times(2)
				m.scanner.EXPECT().Scan(gomock.Any(), *tt.folder).Return(scanner.Counts{New: 1, Scanned: 1}, nil)
				m.prefs.EXPECT().SetLastScanAt(gomock.Any(), gomock.Any()).Return(nil)
			}
			if tt.wantQueued {
				m.queue.EXPECT().Enqueue(gomock.Any(), jobs.Replace).DoAndReturn(func(job jobs.Job, _ jobs.Policy) bool {
					if job.Kind != jobs.KindProcess {
						t.Errorf("queued job kind = %s, want %s", job.Kind, jobs.KindProcess)
					}
					return true
				})
			}

			job := p.PeriodicJob()
			if job.Kind != jobs.KindScan {
				t.Errorf("PeriodicJob() kind = %s, want %s", job.Kind, jobs.KindScan)
			}
			err := job.Run(testContext())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Run() error = %v", err)
			}
		})
	}
}
