package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/minopp/internal/opposition"
	"github.com/roach88/minopp/internal/survey"
)

// ErrRunNotFound is returned when no run matches the request.
var ErrRunNotFound = errors.New("run not found")

// RunInfo is one row of the runs table.
type RunInfo struct {
	Seq        int64  `json:"seq"`
	ID         string `json:"id"`
	Source     string `json:"source"`
	SampleSize int    `json:"sample_size"`
	Excluded   int    `json:"excluded"`
	Flagged    int    `json:"flagged"`
}

// ListRuns returns all runs ordered by seq ascending.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.seq, r.id, r.source, r.sample_size, r.excluded,
		       (SELECT COUNT(*) FROM findings f WHERE f.run_id = r.id)
		FROM runs r
		ORDER BY r.seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunInfo{}
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.Seq, &r.ID, &r.Source, &r.SampleSize, &r.Excluded, &r.Flagged); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LatestRunID returns the id of the most recently stored run.
func (s *Store) LatestRunID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY seq DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrRunNotFound
	}
	if err != nil {
		return "", fmt.Errorf("latest run: %w", err)
	}
	return id, nil
}

// ReadSummary loads a stored run with its findings in position order.
func (s *Store) ReadSummary(ctx context.Context, runID string) (*survey.Summary, error) {
	sum := &survey.Summary{RunID: runID, Findings: []survey.Finding{}}
	err := s.db.QueryRowContext(ctx, `
		SELECT source, sample_size, excluded FROM runs WHERE id = ?
	`, runID).Scan(&sum.Source, &sum.SampleSize, &sum.Excluded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("read run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT glottocode, inventory_id, name, contributor_id, fricatives, affricates, result, remainder, digest
		FROM findings
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		f, err := scanFinding(rows)
		if err != nil {
			return nil, err
		}
		sum.Findings = append(sum.Findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate findings: %w", err)
	}
	return sum, nil
}

// FindingsFor returns every stored finding for a glottocode, oldest run
// first.
func (s *Store) FindingsFor(ctx context.Context, glottocode string) ([]survey.Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.glottocode, f.inventory_id, f.name, f.contributor_id, f.fricatives, f.affricates, f.result, f.remainder, f.digest
		FROM findings f
		JOIN runs r ON f.run_id = r.id
		WHERE f.glottocode = ?
		ORDER BY r.seq ASC
	`, glottocode)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	out := []survey.Finding{}
	for rows.Next() {
		f, err := scanFinding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate findings: %w", err)
	}
	return out, nil
}

func scanFinding(rows *sql.Rows) (survey.Finding, error) {
	var f survey.Finding
	var fric, affr, result, rem string
	if err := rows.Scan(&f.Glottocode, &f.InventoryID, &f.Name, &f.ContributorID, &fric, &affr, &result, &rem, &f.Digest); err != nil {
		return survey.Finding{}, fmt.Errorf("scan finding: %w", err)
	}
	lists := make([][]string, 4)
	for i, data := range []string{fric, affr, result, rem} {
		items, err := unmarshalList(data)
		if err != nil {
			return survey.Finding{}, fmt.Errorf("finding %s: %w", f.Glottocode, err)
		}
		lists[i] = items
	}
	f.Report = opposition.Report{
		Fricatives: lists[0],
		Affricates: lists[1],
		Anomalous:  lists[2],
		Remainder:  lists[3],
	}
	return f, nil
}
