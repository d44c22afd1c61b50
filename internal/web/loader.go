package web

import (
	"context"
	"sync"

	"github.com/ukaji3/sheetfilter-go/internal/logging"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// LoadFunc produces the workbook served by the app.
type LoadFunc func(ctx context.Context) (*models.Workbook, error)

// loadState tracks the background workbook load.
type loadState int

const (
	stateIdle loadState = iota
	stateLoading
	stateReady
	stateFailed
)

func (s loadState) String() string {
	switch s {
	case stateLoading:
		return "loading"
	case stateReady:
		return "ready"
	case stateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// workbookLoader runs one LoadFunc in the background. Pages render the empty
// state until it resolves; a failure is logged and not retried.
type workbookLoader struct {
	load LoadFunc
	log  *logging.Logger

	once  sync.Once
	done  chan struct{}
	mu    sync.RWMutex
	state loadState
	wb    *models.Workbook
	err   error
}

func newWorkbookLoader(load LoadFunc, log *logging.Logger) *workbookLoader {
	return &workbookLoader{load: load, log: log, done: make(chan struct{})}
}

// Start begins loading. Later calls do nothing.
func (l *workbookLoader) Start(ctx context.Context) {
	l.once.Do(func() {
		if l.load == nil {
			l.finish(nil, nil, stateIdle)
			return
		}
		l.mu.Lock()
		l.state = stateLoading
		l.mu.Unlock()

		go func() {
			wb, err := l.load(ctx)
			if err != nil {
				l.log.Error("Error loading workbook: %v", err)
				l.finish(nil, err, stateFailed)
				return
			}
			l.log.Info("Workbook %q loaded with %d sheet(s)", wb.Name, len(wb.SheetNames))
			l.finish(wb, nil, stateReady)
		}()
	})
}

func (l *workbookLoader) finish(wb *models.Workbook, err error, state loadState) {
	l.mu.Lock()
	l.wb, l.err, l.state = wb, err, state
	l.mu.Unlock()
	close(l.done)
}

// Workbook returns the loaded workbook (nil until ready) and the load state.
func (l *workbookLoader) Workbook() (*models.Workbook, loadState) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.wb, l.state
}

// Wait blocks until the load resolves or ctx ends.
func (l *workbookLoader) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		l.mu.RLock()
		defer l.mu.RUnlock()
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
