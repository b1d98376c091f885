package app

import (
	"context"
	"runtime"

	"github.com/Breureka/exifrenamer/internal/domain"
	"github.com/Breureka/exifrenamer/internal/timestamp"
)

// inspection is the read-only verdict on one candidate file.
type inspection struct {
	meta    domain.FileMeta
	corrupt bool
	result  timestamp.Result
	err     error
}

// inspect sniffs and reads the capture time of every path on a bounded pool
// of workers. Results keep the order of paths.
func (e *Engine) inspect(ctx context.Context, paths []string, workers int) ([]inspection, error) {
	stop := e.Logger.Measure("Reading EXIF timestamps")
	defer stop()

	workerCount := workers
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(paths) && len(paths) > 0 {
		workerCount = len(paths)
	}
	e.Logger.Verbosef("Using %d EXIF workers for %d files", workerCount, len(paths))

	type result struct {
		index int
		ins   inspection
	}

	jobs := make(chan int)
	results := make(chan result)

	for i := 0; i < workerCount; i++ {
		go func() {
			for idx := range jobs {
				results <- result{index: idx, ins: e.inspectOne(ctx, paths[idx])}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for idx := range paths {
			jobs <- idx
		}
	}()

	out := make([]inspection, len(paths))
	total := len(paths)
	for i := 0; i < total; i++ {
		res := <-results
		out[res.index] = res.ins
		e.progress(StageInspect, i+1, total, paths[res.index])
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) inspectOne(ctx context.Context, path string) inspection {
	ins := inspection{meta: domain.NewFileMeta(path)}
	if err := ctx.Err(); err != nil {
		ins.err = err
		return ins
	}

	isJPEG, err := e.Sniffer.IsJPEG(path)
	if err != nil {
		ins.err = err
		return ins
	}
	if !isJPEG {
		ins.corrupt = true
		return ins
	}

	tag, err := e.Exif.DateTimeOriginal(ctx, path)
	if err != nil {
		ins.err = err
		return ins
	}
	ins.result = timestamp.Resolve(tag)
	return ins
}
