// Package tableprinter provides behavior to write tabular data to a given
// destination.
package tableprinter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/assembler/step"
)

const (
	tabwriterMinWidth = 6
	tabwriterWidth    = 4
	tabwriterPadding  = 3
	tabwriterPadChar  = ' '
	tabwriterFlags    = tabwriter.FilterHTML
)

// NewTabWriter returns a tabwriter that transforms tabbed columns into aligned
// text.
func NewTabWriter(output io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(output, tabwriterMinWidth, tabwriterWidth, tabwriterPadding, tabwriterPadChar, tabwriterFlags)
}

// PrintTwoColumnTable writes a two column table with headers to a given
// output destination.
func PrintTwoColumnTable(output io.Writer, headers []string, rows [][]string) {
	w := NewTabWriter(output)

	// column headers are at the top, so they are written first
	for _, col := range headers {
		_, _ = fmt.Fprint(w, strings.ToUpper(col), "\t")
	}
	_, _ = fmt.Fprintln(w)

	// rows form the body of the table
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, row[0], "\t", row[1])
	}

	_ = w.Flush()
}

// PrintClasses writes a table of the step names and kinds provided by the
// given classes, sorted by name. Base classes are left out.
func PrintClasses(output io.Writer, classes map[string]step.Class, logger log.Logger) {
	rows := make([][]string, 0, len(classes))
	for _, class := range classes {
		if class.IsBase() {
			continue
		}
		rows = append(rows, []string{class.Name, string(class.Kind)})
	}
	if len(rows) == 0 {
		logger.Warningf("No step classes registered")
		return
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i][0] == rows[j][0] {
			return rows[i][1] < rows[j][1]
		}
		return rows[i][0] < rows[j][0]
	})
	PrintTwoColumnTable(output, []string{"name", "kind"}, rows)
}
