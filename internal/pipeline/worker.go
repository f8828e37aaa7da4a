package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/tokest/internal/chunker"
	"github.com/dgallion1/tokest/internal/doctree"
	"github.com/dgallion1/tokest/internal/parser"
	"github.com/dgallion1/tokest/internal/report"
	"github.com/dgallion1/tokest/internal/stats"
	"github.com/dgallion1/tokest/internal/tokenest"
)

// Worker processes document jobs.
type Worker struct {
	log      *slog.Logger
	stats    *stats.Window
	parsers  parser.Options
	chunkCfg chunker.Config
}

// Process parses, estimates and chunks one job. Failures are recorded on
// the job rather than returned.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.Fail("queued", err)
		return
	}

	counter, count, err := tokenest.Resolve(job.Counter)
	if err != nil {
		log.Error("bad counter", "error", err)
		job.Fail("queued", err)
		return
	}

	job.SetStatus(StatusParsing, "parsing")
	tree, err := ParseDocument(job.FileData(), job.Filename, job.Title, w.parsers)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail("parsing", err)
		return
	}

	job.SetStatus(StatusEstimating, "estimating")
	start := time.Now()
	rep := report.Build(tree, counter, count)
	if w.stats != nil {
		w.stats.Record(time.Since(start), rep.Tokens)
	}
	job.SetResult(rep)
	log.Info("estimated document", "sections", len(rep.Sections), "tokens", rep.Tokens)

	job.SetStatus(StatusChunking, "chunking")
	cfg := w.chunkCfg
	cfg.Count = count
	chunks := chunker.ChunkTree(tree, cfg)
	job.SetChunks(len(chunks))

	job.SetStatus(StatusCompleted, "done")
}

// ParseDocument picks a parser by filename and parses data. A non-empty
// title replaces the one the parser derived.
func ParseDocument(data []byte, filename, title string, opts parser.Options) (*doctree.DocTree, error) {
	p, err := parser.ForFile(filename, opts)
	if err != nil {
		return nil, err
	}
	tree, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if title != "" {
		tree.Title = title
	}
	return tree, nil
}
