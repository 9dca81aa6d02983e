package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/sectify/internal/doc"
)

// personaFile is the optional YAML config carrying the persona and job.
type personaFile struct {
	Persona string `yaml:"persona"`
	Job     string `yaml:"job"`
}

// ResolveQuery finds the persona and job-to-be-done for a relevance run.
// Sources in precedence order:
//  1. PERSONA and JOB environment variables
//  2. a YAML config file (configPath, when non-empty)
//  3. persona.txt and job.txt in the input directory
//
// Both values must resolve or the run cannot proceed.
func ResolveQuery(configPath, inputDir string) (doc.Query, error) {
	q := doc.Query{
		Persona: strings.TrimSpace(os.Getenv("PERSONA")),
		Job:     strings.TrimSpace(os.Getenv("JOB")),
	}

	if (q.Persona == "" || q.Job == "") && configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return doc.Query{}, &Error{Setting: "config file", Reason: err.Error()}
		}
		var pf personaFile
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return doc.Query{}, &Error{Setting: "config file", Reason: err.Error()}
		}
		if q.Persona == "" {
			q.Persona = strings.TrimSpace(pf.Persona)
		}
		if q.Job == "" {
			q.Job = strings.TrimSpace(pf.Job)
		}
	}

	if q.Persona == "" && inputDir != "" {
		q.Persona = readTextFile(filepath.Join(inputDir, "persona.txt"))
	}
	if q.Job == "" && inputDir != "" {
		q.Job = readTextFile(filepath.Join(inputDir, "job.txt"))
	}

	if q.Persona == "" {
		return doc.Query{}, &Error{Setting: "persona", Reason: "set PERSONA, a config file, or persona.txt in the input directory"}
	}
	if q.Job == "" {
		return doc.Query{}, &Error{Setting: "job", Reason: "set JOB, a config file, or job.txt in the input directory"}
	}
	return q, nil
}

func readTextFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
