package store

import (
	"context"
	"fmt"

	"github.com/roach88/minopp/internal/survey"
)

// WriteSummary stores a survey run and its findings in one transaction.
// Writing a run id that already exists fails.
func (s *Store) WriteSummary(ctx context.Context, sum *survey.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write summary: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, sample_size, excluded)
		VALUES (?, ?, ?, ?)
	`, sum.RunID, sum.Source, sum.SampleSize, sum.Excluded)
	if err != nil {
		return fmt.Errorf("write summary: insert run: %w", err)
	}

	for i, f := range sum.Findings {
		lists := make([]string, 4)
		for j, items := range [][]string{f.Report.Fricatives, f.Report.Affricates, f.Report.Anomalous, f.Report.Remainder} {
			if lists[j], err = marshalList(items); err != nil {
				return fmt.Errorf("write summary: %s: %w", f.Glottocode, err)
			}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO findings
			(run_id, position, glottocode, inventory_id, name, contributor_id, fricatives, affricates, result, remainder, digest)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			sum.RunID, i, f.Glottocode, f.InventoryID, f.Name, f.ContributorID,
			lists[0], lists[1], lists[2], lists[3], f.Digest,
		)
		if err != nil {
			return fmt.Errorf("write summary: insert finding %s: %w", f.Glottocode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write summary: commit: %w", err)
	}
	return nil
}
