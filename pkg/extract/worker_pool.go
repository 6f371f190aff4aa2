package extract

import (
	"sync"

	"github.com/kenafu/manosaba-utils/pkg/raster"
)

// SpriteTask is one sprite extraction job for the worker pool.
type SpriteTask struct {
	TaskID     int    // For deterministic result ordering
	SpritePath string // Metadata JSON file to extract
}

// SpriteResult is the outcome of one sprite extraction.
type SpriteResult struct {
	TaskID     int
	SpritePath string
	OutputPath string
	Err        error
}

// WorkerPool extracts a target's sprites in parallel. Each worker runs the
// full decode-rasterize-encode pipeline for one sprite at a time; the shared
// atlas texture is read-only and safe to alias across workers.
type WorkerPool struct {
	taskQueue   chan SpriteTask
	resultQueue chan SpriteResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool for extracting up to maxTasks sprites against
// one atlas texture.
func NewWorkerPool(ex *Extractor, target Target, tex *raster.Texture, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}

	wp := &WorkerPool{
		taskQueue:   make(chan SpriteTask, maxTasks),
		resultQueue: make(chan SpriteResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ex, target, tex)
	}

	return wp
}

// SubmitTask queues one sprite for extraction.
func (wp *WorkerPool) SubmitTask(task SpriteTask) {
	wp.taskQueue <- task
}

// Finish signals that no more tasks are coming and closes the result queue
// once all workers drain.
func (wp *WorkerPool) Finish() {
	close(wp.taskQueue)
	go func() {
		wp.wg.Wait()
		close(wp.resultQueue)
	}()
}

// GetResult retrieves a completed sprite result. The second return is false
// once all results have been delivered.
func (wp *WorkerPool) GetResult() (SpriteResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// run is the main worker loop.
func (wp *WorkerPool) run(ex *Extractor, target Target, tex *raster.Texture) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		outputPath, err := ex.extractSprite(target, tex, task.SpritePath)
		wp.resultQueue <- SpriteResult{
			TaskID:     task.TaskID,
			SpritePath: task.SpritePath,
			OutputPath: outputPath,
			Err:        err,
		}
	}
}
