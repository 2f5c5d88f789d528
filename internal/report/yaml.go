package report

import (
	"fmt"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"whisperbatch/internal/fileutil"
)

// YAMLFileName is the optional machine-readable twin of FileName.
const YAMLFileName = "_transcription.yaml"

type yamlReport struct {
	Version    string        `yaml:"version"`
	RunID      string        `yaml:"run_id,omitempty"`
	StartedAt  string        `yaml:"started_at,omitempty"`
	InputDir   string        `yaml:"input_dir,omitempty"`
	OutputDir  string        `yaml:"output_dir,omitempty"`
	Engine     yamlEngine    `yaml:"engine"`
	Successes  []yamlSuccess `yaml:"successes"`
	Failures   []yamlFailure `yaml:"failures"`
	Statistics yamlStats     `yaml:"statistics"`
	Env        []yamlPair    `yaml:"environment,omitempty"`
	Deps       []yamlPair    `yaml:"dependencies,omitempty"`
}

type yamlEngine struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Model    string `yaml:"model"`
	Device   string `yaml:"device"`
	Language string `yaml:"language"`
	Hotwords string `yaml:"hotwords"`
}

type yamlSuccess struct {
	Name           string  `yaml:"name"`
	Path           string  `yaml:"path"`
	Transcript     string  `yaml:"transcript"`
	SizeMB         float64 `yaml:"size_mb"`
	Duration       string  `yaml:"duration"`
	DurationSecs   int     `yaml:"duration_seconds"`
	ElapsedSeconds float64 `yaml:"elapsed_seconds"`
	Speed          float64 `yaml:"speed"`
}

type yamlFailure struct {
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
	Reason   string `yaml:"reason"`
	Category string `yaml:"category,omitempty"`
}

type yamlStats struct {
	Processed         int     `yaml:"processed"`
	Succeeded         int     `yaml:"succeeded"`
	Failed            int     `yaml:"failed"`
	TotalMediaSeconds int     `yaml:"total_media_seconds"`
	TotalElapsed      float64 `yaml:"total_elapsed_seconds"`
	AverageSpeed      float64 `yaml:"average_speed"`
	RunSeconds        float64 `yaml:"run_seconds"`
}

type yamlPair struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

func toYAML(r RunReport) yamlReport {
	doc := yamlReport{
		Version:   r.Version,
		RunID:     r.RunID,
		InputDir:  r.InputDir,
		OutputDir: r.OutputDir,
		Engine: yamlEngine{
			Name:     r.Engine.Name,
			Version:  r.Engine.Version,
			Model:    string(r.Config.Tier),
			Device:   string(r.Config.Device),
			Language: r.Config.Language,
			Hotwords: r.Config.Hotwords,
		},
		Successes: make([]yamlSuccess, 0, len(r.Successes)),
		Failures:  make([]yamlFailure, 0, len(r.Failures)),
		Statistics: yamlStats{
			Processed:         r.Total(),
			Succeeded:         len(r.Successes),
			Failed:            len(r.Failures),
			TotalMediaSeconds: r.TotalMediaSeconds,
			TotalElapsed:      round2(r.TotalElapsed.Seconds()),
			AverageSpeed:      round2(r.AverageSpeed),
			RunSeconds:        round2(r.RunElapsed.Seconds()),
		},
	}
	if !r.StartedAt.IsZero() {
		doc.StartedAt = r.StartedAt.Format(time.RFC3339)
	}
	for _, o := range r.Successes {
		doc.Successes = append(doc.Successes, yamlSuccess{
			Name:           o.File.Name,
			Path:           o.File.Path,
			Transcript:     o.TranscriptPath,
			SizeMB:         o.SizeMB(),
			Duration:       o.MediaDuration,
			DurationSecs:   o.MediaSeconds,
			ElapsedSeconds: round2(o.Elapsed.Seconds()),
			Speed:          round2(o.SpeedRatio),
		})
	}
	for _, o := range r.Failures {
		doc.Failures = append(doc.Failures, yamlFailure{
			Name:     o.File.Name,
			Path:     o.File.Path,
			Reason:   o.Reason,
			Category: o.Category,
		})
	}
	for _, f := range r.Environment {
		doc.Env = append(doc.Env, yamlPair{Name: f.Label, Value: f.Value})
	}
	for _, d := range r.Dependencies {
		doc.Deps = append(doc.Deps, yamlPair{Name: d.Name, Value: d.Version})
	}
	return doc
}

// WriteYAML writes the machine-readable report into dir/YAMLFileName.
func WriteYAML(dir string, r RunReport) (string, error) {
	data, err := yaml.Marshal(toYAML(r))
	if err != nil {
		return "", fmt.Errorf("encode yaml report: %w", err)
	}
	path := filepath.Join(dir, YAMLFileName)
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("write yaml report: %w", err)
	}
	return path, nil
}
