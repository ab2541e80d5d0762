package output

import (
	"fmt"
	"io"

	"github.com/rpgo/fixedincome/internal/calculation"
)

// GenerateReport writes the report in the named format. "all" writes every formatter whose
// section is present, each under a "## name" heading.
func GenerateReport(w io.Writer, report *calculation.AnalysisReport, format string) error {
	if NormalizeFormatName(format) == "all" {
		return generateAll(w, report)
	}
	f, err := ResolveFormatter(format)
	if err != nil {
		return err
	}
	return WriteFormatted(w, f, report)
}

func generateAll(w io.Writer, report *calculation.AnalysisReport) error {
	written := 0
	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		data, err := f.Format(report)
		if err != nil {
			// section not computed for this report
			continue
		}
		if _, err := fmt.Fprintf(w, "## %s\n", name); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		written++
	}
	if written == 0 {
		return fmt.Errorf("no formatter could render the report")
	}
	return nil
}
