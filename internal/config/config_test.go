package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "WORKER_COUNT", "MAX_DOCUMENTS", "TOP_SECTIONS",
		"MAX_SUMMARY_SENTENCES", "SUMMARY_METHOD", "PER_DOC_TIMEOUT", "JOB_TTL", "EMBEDDING_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, 10, cfg.MaxDocuments)
	assert.Equal(t, 5, cfg.TopSections)
	assert.Equal(t, 3, cfg.MaxSummarySentences)
	assert.Equal(t, "hybrid", cfg.SummaryMethod)
	assert.Equal(t, 30*time.Second, cfg.PerDocTimeout)
	assert.Equal(t, time.Hour, cfg.JobTTL)
	assert.False(t, cfg.EmbeddingEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("WORKER_COUNT", "7")
	t.Setenv("MAX_DOCUMENTS", "3")
	t.Setenv("PER_DOC_TIMEOUT", "5s")
	t.Setenv("SUMMARY_METHOD", "textrank")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 7, cfg.WorkerCount)
	assert.Equal(t, 3, cfg.MaxDocuments)
	assert.Equal(t, 5*time.Second, cfg.PerDocTimeout)
	assert.Equal(t, "textrank", cfg.SummaryMethod)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("MAX_DOCUMENTS", "-5")
	t.Setenv("PER_DOC_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, 10, cfg.MaxDocuments)
	assert.Equal(t, 30*time.Second, cfg.PerDocTimeout)
}

func TestValidate(t *testing.T) {
	t.Setenv("SECTIFY_API_KEY", "")
	cfg := Load()
	err := cfg.Validate()
	require.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, "SECTIFY_API_KEY", cerr.Setting)

	t.Setenv("SECTIFY_API_KEY", "secret")
	cfg = Load()
	assert.NoError(t, cfg.Validate())

	cfg.SummaryMethod = "magic"
	assert.Error(t, cfg.Validate())
}

func TestResolveQuery_EnvWins(t *testing.T) {
	t.Setenv("PERSONA", "Travel Planner")
	t.Setenv("JOB", "Plan a 4-day trip")

	q, err := ResolveQuery("", "")
	require.NoError(t, err)
	assert.Equal(t, "Travel Planner", q.Persona)
	assert.Equal(t, "Plan a 4-day trip", q.Job)
}

func TestResolveQuery_YAMLConfig(t *testing.T) {
	t.Setenv("PERSONA", "")
	t.Setenv("JOB", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "query.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persona: Food Contractor\njob: Prepare a buffet\n"), 0644))

	q, err := ResolveQuery(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Food Contractor", q.Persona)
	assert.Equal(t, "Prepare a buffet", q.Job)
}

func TestResolveQuery_TextFileFallback(t *testing.T) {
	t.Setenv("PERSONA", "")
	t.Setenv("JOB", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "persona.txt"), []byte("HR Manager\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "job.txt"), []byte("Review onboarding forms\n"), 0644))

	q, err := ResolveQuery("", dir)
	require.NoError(t, err)
	assert.Equal(t, "HR Manager", q.Persona)
	assert.Equal(t, "Review onboarding forms", q.Job)
}

func TestResolveQuery_EnvBeatsFile(t *testing.T) {
	t.Setenv("PERSONA", "Analyst")
	t.Setenv("JOB", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "persona.txt"), []byte("Ignored"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "job.txt"), []byte("Summarize findings"), 0644))

	q, err := ResolveQuery("", dir)
	require.NoError(t, err)
	assert.Equal(t, "Analyst", q.Persona)
	assert.Equal(t, "Summarize findings", q.Job)
}

func TestResolveQuery_MissingIsFatal(t *testing.T) {
	t.Setenv("PERSONA", "")
	t.Setenv("JOB", "")

	_, err := ResolveQuery("", t.TempDir())
	require.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
}
