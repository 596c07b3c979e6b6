// Package batch embeds many glTF assets in parallel.
package batch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"gltf-toolkit/internal/asset"
	"gltf-toolkit/internal/embed"
)

var (
	logger atomic.Pointer[zap.Logger]
	nop    = zap.NewNop()
)

// Logger returns the logger receiving progress and per-asset failures.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger configures the batch logger. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

// Config holds the shared settings of a batch run.
type Config struct {
	OutputDir string
	Suffix    string
	Workers   int
	Converter embed.Converter
	Indent    bool

	// Confine keeps payload reads inside each asset's directory.
	Confine bool
}

// Result holds the outcome of processing one asset.
type Result struct {
	Name     string
	Input    string
	Output   string
	Buffers  int
	Images   int
	Shaders  int
	Dangling int
	Success  bool
	Error    string
}

// Run processes all inputs using a worker pool. Results follow input order.
func Run(cfg Config, inputs []string) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	total := len(inputs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	log := Logger()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("assetsPerSec", float64(p)/elapsed))
				}
			}
		}
	}()

	// Inputs sharing an output path fail after the first one.
	claimed := make(map[string]string, total)
	var queue []int
	for i, input := range inputs {
		res := newResult(cfg, input)
		key := strings.ToLower(filepath.Clean(res.Output))
		if first, ok := claimed[key]; ok {
			res.Error = fmt.Sprintf("output %s is already written for %s", res.Output, first)
			results[i] = res
			log.Warn("asset failed", zap.String("input", input), zap.String("error", res.Error))
			processed.Add(1)
			continue
		}
		claimed[key] = input
		queue = append(queue, i)
	}

	// Worker pool
	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = process(cfg, inputs[idx])
				if !results[idx].Success {
					log.Warn("asset failed",
						zap.String("input", inputs[idx]),
						zap.String("error", results[idx].Error))
				}
				processed.Add(1)
			}
		}()
	}

	for _, i := range queue {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	log.Info("batch finished",
		zap.Int("total", total),
		zap.Duration("elapsed", time.Since(start)))
	return results
}

// OutputPath returns where the embedded copy of input is written.
func OutputPath(cfg Config, input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(cfg.OutputDir, stem+cfg.Suffix+".gltf")
}

func newResult(cfg Config, input string) Result {
	return Result{
		Name:   strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)),
		Input:  input,
		Output: OutputPath(cfg, input),
	}
}

func process(cfg Config, input string) Result {
	res := newResult(cfg, input)

	m, err := asset.OpenWith(input, asset.Options{Confine: cfg.Confine})
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Buffers = len(m.Buffers())
	res.Images = len(m.Images())
	if !cfg.Converter.SkipShaders {
		res.Shaders = len(m.Shaders())
	}
	res.Dangling = len(m.Dangling())

	doc, err := cfg.Converter.Embed(m)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if err := asset.Write(res.Output, doc, cfg.Indent); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}
