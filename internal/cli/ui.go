package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/importlint/pkg/imports"
	"github.com/matzehuels/importlint/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - conventions
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	severityStyles = map[imports.Severity]lipgloss.Style{
		imports.SeverityError:      lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		imports.SeverityWarning:    lipgloss.NewStyle().Foreground(colorYellow),
		imports.SeverityRefactor:   lipgloss.NewStyle().Foreground(colorCyan),
		imports.SeverityConvention: lipgloss.NewStyle().Foreground(colorBlue),
	}
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Findings
// =============================================================================

func severityStyle(s imports.Severity) lipgloss.Style {
	if st, ok := severityStyles[s]; ok {
		return st
	}
	return StyleValue
}

// formatFinding renders one finding as "file:line: ID message (symbol)".
func formatFinding(f imports.Finding) string {
	loc := f.File
	if loc == "" {
		loc = f.Module
	}
	if f.Line > 0 {
		loc += ":" + strconv.Itoa(f.Line)
	}
	return fmt.Sprintf("%s: %s %s %s",
		StyleDim.Render(loc),
		severityStyle(f.Severity).Render(f.ID),
		f.Message,
		StyleDim.Render("("+f.Symbol+")"))
}

// printFindings writes every finding on its own line.
func printFindings(w io.Writer, fs []imports.Finding) {
	for _, f := range fs {
		fmt.Fprintln(w, formatFinding(f))
	}
}

// printSummary writes the per-symbol counts as a table followed by the run
// statistics and the report paragraphs.
func printSummary(w io.Writer, res *pipeline.Result) {
	if !res.HasFindings() {
		printSuccess(w, "no findings in %d modules", res.Stats.Modules)
	} else {
		symbols := make([]string, 0, len(res.Stats.BySymbol))
		for s := range res.Stats.BySymbol {
			symbols = append(symbols, s)
		}
		sort.Strings(symbols)

		rows := make([][]string, 0, len(symbols))
		for _, s := range symbols {
			id := ""
			if k, ok := imports.LookupKind(s); ok {
				id = k.ID
			}
			rows = append(rows, []string{id, s, strconv.Itoa(res.Stats.BySymbol[s])})
		}

		headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("ID", "Finding", "Count").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle.Padding(0, 1)
				}
				if col == 2 {
					return StyleNumber.Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})

		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Render())
		printError(w, "%d findings in %d modules", res.Stats.Findings, res.Stats.Modules)
	}

	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  %d statements · %d resolutions · %d cycles · %s",
		res.Stats.Statements, res.Stats.Resolutions, len(res.Cycles), res.Stats.AnalyzeTime.Round(1e6))))

	if res.Report == nil {
		return
	}
	if res.Report.ExternalTree != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleTitle.Render("External dependencies"))
		fmt.Fprintln(w, res.Report.ExternalTree)
	}
	for i, para := range res.Report.Paragraphs {
		printInfo(w, "%s", para)
		if i < len(res.Report.Artifacts) {
			printFile(w, res.Report.Artifacts[i])
		}
	}
}
