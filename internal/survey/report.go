package survey

import (
	"fmt"
	"io"
	"strings"
)

// WriteText writes the summary in the plain report layout: a sample size
// line, then one block per finding followed by a blank line.
func WriteText(w io.Writer, s *Summary) error {
	if _, err := fmt.Fprintf(w, "Sample size: %d\n", s.SampleSize); err != nil {
		return err
	}
	for _, f := range s.Findings {
		_, err := fmt.Fprintf(w, "%s %s %s\nFricatives: %s\nAffricates: %s\nResult: %s\nRemainder: %s\n\n",
			f.Glottocode, f.Name, f.ContributorID,
			strings.Join(f.Report.Fricatives, ", "),
			strings.Join(f.Report.Affricates, ", "),
			strings.Join(f.Report.Anomalous, ", "),
			strings.Join(f.Report.Remainder, ", "),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
