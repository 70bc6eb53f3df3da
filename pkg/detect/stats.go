package detect

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/sdejongh/vidupe/pkg/logging"
	"github.com/sdejongh/vidupe/pkg/models"
	"github.com/sdejongh/vidupe/pkg/scanner"
)

// DefaultMaxWorkers bounds concurrent folder walks when none is configured
const DefaultMaxWorkers = 4

// statsPool computes FolderStats for many folders on a bounded goroutine pool
type statsPool struct {
	scanner *scanner.Scanner
	logger  logging.Logger
	workers int
}

func newStatsPool(s *scanner.Scanner, logger logging.Logger, workers int) *statsPool {
	if workers < 1 {
		workers = DefaultMaxWorkers
	}
	return &statsPool{scanner: s, logger: logger, workers: workers}
}

// collect returns the stats of every folder, in input order. onDone is
// called once per folder with the running count; calls are serialized.
func (p *statsPool) collect(ctx context.Context, folders []string, onDone func(done int, folder string)) ([]models.FolderStats, error) {
	results := make([]models.FolderStats, len(folders))
	if len(folders) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(p.workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)

	for i, folder := range folders {
		if ctx.Err() != nil {
			break
		}

		i, folder := i, folder
		task := func() {
			defer wg.Done()
			results[i] = p.scanner.Stats(ctx, folder)

			mu.Lock()
			defer mu.Unlock()
			done++
			if onDone != nil {
				onDone(done, folder)
			}
		}

		wg.Add(1)
		if err := pool.Submit(task); err != nil {
			p.logger.Warn(ctx, "pool rejected task, computing inline", logging.Fields{
				"path":  folder,
				"error": err.Error(),
			})
			task()
		}
	}

	wg.Wait()
	return results, nil
}
