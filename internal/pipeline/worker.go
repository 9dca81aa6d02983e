package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dgallion1/sectify/internal/schemas"
)

// Worker processes a single relevance job.
type Worker struct {
	engine *Engine
	log    *slog.Logger
}

func NewWorker(engine *Engine, log *slog.Logger) *Worker {
	return &Worker{engine: engine, log: log}
}

// Process runs the full relevance pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)

	job.SetStatus(StatusParsing, "parsing")
	log.Info("processing job", "documents", len(job.inputs))

	job.SetStatus(StatusRanking, "ranking")
	rel, err := w.engine.Relevance(ctx, job.inputs, job.Query)
	if err != nil {
		log.Error("relevance run failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "ranking")
		return
	}

	body, err := json.Marshal(rel)
	if err == nil {
		err = schemas.ValidateRelevance(body)
	}
	if err != nil {
		log.Error("report failed validation", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "validating")
		return
	}

	job.SetResult(rel)
	job.SetStatus(StatusCompleted, "done")
	log.Info("job complete",
		"sections", len(rel.ExtractedSections))
}
