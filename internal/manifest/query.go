package manifest

import (
	"context"
	"database/sql"
	"fmt"
)

// Row is one stored outcome.
type Row struct {
	Seq          int
	Kind         string
	Name         string
	Path         string
	SizeBytes    int64
	Transcript   string
	MediaSeconds int
	ElapsedMS    int64
	Speed        float64
	Reason       string
	Category     string
}

// Run is the stored header of a run.
type Run struct {
	ID            string
	Version       string
	StartedAt     string
	FinishedAt    string
	InputDir      string
	OutputDir     string
	EngineName    string
	EngineVersion string
	Model         string
	Device        string
	Language      string
	Hotwords      string
	RunSeconds    float64
	AverageSpeed  float64
}

// Run returns the header of the bound run. Totals are zero until FinishRun.
func (s *Store) Run(ctx context.Context) (Run, error) {
	var (
		r                                       Run
		finished, engineName, engineVer, hotwds sql.NullString
		runSeconds, avgSpeed                    sql.NullFloat64
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, version, started_at, finished_at, input_dir, output_dir,
            engine_name, engine_version, model, device, language, hotwords,
            run_seconds, average_speed
         FROM runs WHERE id = ?`,
		s.runID,
	).Scan(&r.ID, &r.Version, &r.StartedAt, &finished, &r.InputDir, &r.OutputDir,
		&engineName, &engineVer, &r.Model, &r.Device, &r.Language, &hotwds,
		&runSeconds, &avgSpeed)
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	r.FinishedAt = finished.String
	r.EngineName = engineName.String
	r.EngineVersion = engineVer.String
	r.Hotwords = hotwds.String
	r.RunSeconds = runSeconds.Float64
	r.AverageSpeed = avgSpeed.Float64
	return r, nil
}

// Outcomes returns the recorded outcomes of the current run in arrival order.
func (s *Store) Outcomes(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT seq, kind, name, path, size_bytes, transcript_path,
            media_seconds, elapsed_ms, speed, reason, category
         FROM outcomes WHERE run_id = ? ORDER BY seq`,
		s.runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r                         Row
			transcript, reason, categ sql.NullString
			media, elapsed            sql.NullInt64
			speed                     sql.NullFloat64
		)
		if err := rows.Scan(&r.Seq, &r.Kind, &r.Name, &r.Path, &r.SizeBytes, &transcript,
			&media, &elapsed, &speed, &reason, &categ); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		r.Transcript = transcript.String
		r.MediaSeconds = int(media.Int64)
		r.ElapsedMS = elapsed.Int64
		r.Speed = speed.Float64
		r.Reason = reason.String
		r.Category = categ.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return out, nil
}

// Counts returns the number of successes and failures stored for the run.
func (s *Store) Counts(ctx context.Context) (succeeded, failed int, err error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT
            COALESCE(SUM(CASE WHEN kind = 'success' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN kind = 'failure' THEN 1 ELSE 0 END), 0)
         FROM outcomes WHERE run_id = ?`,
		s.runID,
	)
	if err := row.Scan(&succeeded, &failed); err != nil {
		return 0, 0, fmt.Errorf("count outcomes: %w", err)
	}
	return succeeded, failed, nil
}
