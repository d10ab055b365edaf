package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Output formats for WriteReport.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

const tabPadding = 2

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// WriteReport renders results to w in the named format.
func WriteReport(w io.Writer, results []Result, format string) error {
	switch format {
	case FormatTable, "":
		return writeTable(w, results)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatNDJSON:
		enc := json.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, "SCENARIO\tITEMS\tSTEPS\tSYNCS\tMOUNTS\tUNMOUNTS\tMAX RENDERED\tVIOLATIONS\tELAPSED\t"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := printer.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t\n",
			r.Name, r.FinalItems, r.Steps, r.Syncs, r.Mounts, r.Unmounts,
			r.MaxRendered, r.Violations, r.Elapsed.Round(time.Microsecond)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// TotalViolations sums violations across results.
func TotalViolations(results []Result) int {
	n := 0
	for _, r := range results {
		n += r.Violations
	}
	return n
}
