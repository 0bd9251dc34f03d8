package phoible

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ClassConsonant is the SegmentClass of consonant rows.
const ClassConsonant = "consonant"

// Segment is one row of the segment table.
type Segment struct {
	InventoryID  int
	Glottocode   string
	Phoneme      string
	SegmentClass string
}

// Contribution is one row of the contributions table.
type Contribution struct {
	ID            int
	Name          string
	ContributorID string
}

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("missing column")

// LoadSegmentsFile reads the segment table at path.
func LoadSegmentsFile(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open segments: %w", err)
	}
	defer f.Close()
	return LoadSegments(f)
}

// LoadSegments reads the segment table. Rows keep file order.
func LoadSegments(r io.Reader) ([]Segment, error) {
	rows, cols, err := readTable(r, "InventoryID", "Glottocode", "Phoneme", "SegmentClass")
	if err != nil {
		return nil, fmt.Errorf("load segments: %w", err)
	}
	segs := make([]Segment, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(row[cols["InventoryID"]])
		if err != nil {
			return nil, fmt.Errorf("load segments: row %d: InventoryID: %w", i+2, err)
		}
		segs = append(segs, Segment{
			InventoryID:  id,
			Glottocode:   row[cols["Glottocode"]],
			Phoneme:      row[cols["Phoneme"]],
			SegmentClass: row[cols["SegmentClass"]],
		})
	}
	return segs, nil
}

// LoadContributionsFile reads the contributions table at path.
func LoadContributionsFile(path string) (map[int]Contribution, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open contributions: %w", err)
	}
	defer f.Close()
	return LoadContributions(f)
}

// LoadContributions reads the contributions table keyed by inventory id.
func LoadContributions(r io.Reader) (map[int]Contribution, error) {
	rows, cols, err := readTable(r, "ID", "Name", "Contributor_ID")
	if err != nil {
		return nil, fmt.Errorf("load contributions: %w", err)
	}
	out := make(map[int]Contribution, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(row[cols["ID"]])
		if err != nil {
			return nil, fmt.Errorf("load contributions: row %d: ID: %w", i+2, err)
		}
		out[id] = Contribution{
			ID:            id,
			Name:          row[cols["Name"]],
			ContributorID: row[cols["Contributor_ID"]],
		}
	}
	return out, nil
}

// readTable reads a headed CSV and returns data rows and the index of
// each required column.
func readTable(r io.Reader, required ...string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(required))
	for i, name := range header {
		cols[name] = i
	}
	width := 0
	for _, name := range required {
		i, ok := cols[name]
		if !ok {
			return nil, nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		width = max(width, i+1)
	}

	var rows [][]string
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if len(row) < width {
			return nil, nil, fmt.Errorf("row %d: %d fields, need %d", line, len(row), width)
		}
		rows = append(rows, row)
	}
	return rows, cols, nil
}
