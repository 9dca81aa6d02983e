// Package pipeline runs outline extraction and relevance ranking over
// document batches, both synchronously and through a job queue.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/philippgille/chromem-go"

	"github.com/dgallion1/sectify/internal/config"
	"github.com/dgallion1/sectify/internal/doc"
	"github.com/dgallion1/sectify/internal/outline"
	"github.com/dgallion1/sectify/internal/parser"
	"github.com/dgallion1/sectify/internal/ranking"
	"github.com/dgallion1/sectify/internal/report"
	"github.com/dgallion1/sectify/internal/section"
	"github.com/dgallion1/sectify/internal/summarize"
)

// Input is one named document in a batch.
type Input struct {
	Name string
	Data []byte
}

// Engine runs the document processing stages. It is safe for concurrent
// use by multiple workers.
type Engine struct {
	cfg   config.Config
	log   *slog.Logger
	rank  *ranking.Ranker
	sum   *summarize.Summarizer
	stats *Stats
}

func NewEngine(cfg config.Config, log *slog.Logger) (*Engine, error) {
	method, err := summarize.ParseMethod(cfg.SummaryMethod)
	if err != nil {
		return nil, err
	}

	scorers := ranking.DefaultScorers()
	if cfg.EmbeddingEnabled {
		var embed chromem.EmbeddingFunc
		if cfg.EmbeddingAPIKey != "" {
			embed = chromem.NewEmbeddingFuncOpenAICompat(cfg.EmbeddingEndpoint, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, nil)
		} else {
			embed = chromem.NewEmbeddingFuncOllama(cfg.EmbeddingModel, cfg.EmbeddingEndpoint)
		}
		for i, ws := range scorers {
			if ws.Scorer.Name() == "semantic" {
				scorers[i].Scorer = ranking.NewEmbeddingScorer(embed)
			}
		}
	}

	return &Engine{
		cfg:   cfg,
		log:   log,
		rank:  ranking.NewRanker(log, scorers, cfg.TopSections),
		sum:   summarize.New(method, cfg.MaxSummarySentences),
		stats: NewStats(),
	}, nil
}

func (e *Engine) Stats() *Stats { return e.stats }

// Outline parses one document and extracts its outline. Parse failures
// surface as errors so callers can decide between failing and emitting an
// error outline.
func (e *Engine) Outline(ctx context.Context, in Input) (doc.Outline, error) {
	start := time.Now()
	d, err := e.parse(ctx, in)
	if err != nil {
		return doc.Outline{}, err
	}
	o := outline.Build(d)
	e.stats.Record("outline", time.Since(start))
	return o, nil
}

// OutlineFile reads a file from disk and extracts its outline.
func (e *Engine) OutlineFile(ctx context.Context, path string) (doc.Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return doc.Outline{}, &parser.OpenError{Name: filepath.Base(path), Err: err}
	}
	return e.Outline(ctx, Input{Name: filepath.Base(path), Data: data})
}

// Relevance parses a batch of documents, segments them into titled
// sections, ranks the sections against the persona and job, and builds
// the output report. Individual document failures are logged and skipped;
// an empty section pool fails the run.
func (e *Engine) Relevance(ctx context.Context, inputs []Input, q doc.Query) (*report.Relevance, error) {
	start := time.Now()

	if len(inputs) > e.cfg.MaxDocuments {
		e.log.Warn("batch exceeds document limit, truncating",
			"documents", len(inputs), "limit", e.cfg.MaxDocuments)
		inputs = inputs[:e.cfg.MaxDocuments]
	}

	names := make([]string, 0, len(inputs))
	var sections []doc.Section
	for _, in := range inputs {
		names = append(names, in.Name)
		d, err := e.parse(ctx, in)
		if err != nil {
			e.log.Warn("skipping document", "document", in.Name, "error", err)
			continue
		}
		secs := section.Segment(d)
		e.log.Debug("segmented document", "document", in.Name, "sections", len(secs))
		sections = append(sections, secs...)
	}
	for i := range sections {
		sections[i].Seq = i
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("no sections extracted from %d documents", len(inputs))
	}

	ranked, err := e.rank.Rank(ctx, sections, q)
	if err != nil {
		return nil, err
	}

	rel := report.BuildRelevance(names, q, ranked, e.sum, time.Now())
	e.stats.Record("relevance", time.Since(start))
	return rel, nil
}

// RelevanceFiles loads a batch from disk paths and runs Relevance.
func (e *Engine) RelevanceFiles(ctx context.Context, paths []string, q doc.Query) (*report.Relevance, error) {
	inputs := make([]Input, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			e.log.Warn("skipping unreadable file", "path", p, "error", err)
			continue
		}
		inputs = append(inputs, Input{Name: filepath.Base(p), Data: data})
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no readable input documents")
	}
	return e.Relevance(ctx, inputs, q)
}

// parse runs the format parser under the per-document timeout. The PDF
// library does not take a context, so the parse runs in its own goroutine
// and a timeout abandons it.
func (e *Engine) parse(ctx context.Context, in Input) (*doc.Document, error) {
	p, err := parser.ForFile(in.Name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.PerDocTimeout)
	defer cancel()

	type result struct {
		d   *doc.Document
		err error
	}
	ch := make(chan result, 1)
	go func() {
		d, err := p.Parse(bytes.NewReader(in.Data), in.Name)
		ch <- result{d, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("parse %s: %w", in.Name, ctx.Err())
	case r := <-ch:
		return r.d, r.err
	}
}
