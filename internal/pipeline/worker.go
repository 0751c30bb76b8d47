package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/doclayout/internal/chunker"
	"github.com/dgallion1/doclayout/internal/config"
	"github.com/dgallion1/doclayout/internal/layout"
	"github.com/dgallion1/doclayout/internal/render"
	"github.com/dgallion1/doclayout/internal/source"
)

// Worker processes a single analysis job: span extraction, layout
// analysis, then rendering and chunking.
type Worker struct {
	analyzer *layout.Analyzer
	log      *slog.Logger
	chunkCfg chunker.Config
	clean    bool
}

func NewWorker(cfg config.Config, log *slog.Logger) *Worker {
	return &Worker{
		analyzer: layout.NewAnalyzerWithConfig(cfg.LayoutConfig()),
		log:      log,
		chunkCfg: cfg.ChunkConfig(),
		clean:    cfg.CleanNoise,
	}
}

// Process runs the full pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	// Phase 1: span extraction.
	job.SetStatus(StatusExtracting, "extracting")
	provider, err := source.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	doc, err := provider.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		// An unreadable source is a distinct failure category, not an
		// empty document.
		var srcErr *source.SourceError
		if errors.As(err, &srcErr) {
			log.Error("unreadable source", "format", srcErr.Format, "error", err)
		} else {
			log.Error("extraction failed", "error", err)
		}
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	if ctx.Err() != nil {
		job.AddError("canceled")
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	title := job.Title
	if title == "" {
		title = doc.Title
	}

	// Phase 2: layout analysis.
	job.SetStatus(StatusAnalyzing, "analyzing")
	result := w.analyzer.Analyze(doc.Pages)
	job.SetPages(result.TotalPages, result.TotalPages, result.TotalHeadings)
	log.Info("analyzed document",
		"pages", result.TotalPages,
		"layout", result.LayoutType.String(),
		"headings", result.TotalHeadings,
	)

	// Phase 3: render markdown and chunk by section.
	job.SetStatus(StatusRendering, "rendering")
	markdown := render.Markdown(result, render.Options{
		Title:      title,
		PageBreaks: true,
		CleanNoise: w.clean,
	})
	chunks := chunker.ChunkResult(result, w.chunkCfg)

	job.SetOutputs(result, markdown, chunks)
	job.SetStatus(StatusCompleted, "done")
	log.Info("job completed", "chunks", len(chunks))
}
