package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/importlint/pkg/imports"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// severityCycle is the order in which the "s" key steps through filters.
// The empty severity shows everything.
var severityCycle = []imports.Severity{
	"",
	imports.SeverityError,
	imports.SeverityWarning,
	imports.SeverityRefactor,
	imports.SeverityConvention,
}

// =============================================================================
// FindingListModel - Interactive finding browser
// =============================================================================

// FindingListModel is the bubbletea model of check --browse. It lists the
// findings, filtered by severity, and shows the help text of the finding
// under the cursor.
type FindingListModel struct {
	All     []imports.Finding
	Visible []imports.Finding
	Filter  imports.Severity
	Cursor  int
	Offset  int
	Height  int
	Detail  bool
}

// NewFindingListModel creates a browser over fs.
func NewFindingListModel(fs []imports.Finding) FindingListModel {
	m := FindingListModel{All: fs, Height: 15}
	m.applyFilter()
	return m
}

func (m *FindingListModel) applyFilter() {
	m.Visible = nil
	for _, f := range m.All {
		if m.Filter == "" || f.Severity == m.Filter {
			m.Visible = append(m.Visible, f)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m FindingListModel) Init() tea.Cmd {
	return nil
}

func (m FindingListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Detail = !m.Detail
		case "s":
			next := 0
			for i, s := range severityCycle {
				if s == m.Filter {
					next = (i + 1) % len(severityCycle)
				}
			}
			m.Filter = severityCycle[next]
			m.applyFilter()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// Selected returns the finding under the cursor.
func (m FindingListModel) Selected() (imports.Finding, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return imports.Finding{}, false
	}
	return m.Visible[m.Cursor], true
}

func (m FindingListModel) View() string {
	var b strings.Builder

	filter := "all"
	if m.Filter != "" {
		filter = string(m.Filter)
	}
	b.WriteString(StyleTitle.Render("Findings"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%s]", filter)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  s severity  q quit"))
	b.WriteString("\n\n")

	if len(m.Visible) == 0 {
		b.WriteString(listDimStyle.Render("  no findings"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Visible))
	for i := m.Offset; i < end; i++ {
		f := m.Visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		id := fmt.Sprintf("%-5s", f.ID)
		rest := fmt.Sprintf(" %-22s %s", f.Symbol, f.Message)
		loc := fmt.Sprintf("  %s:%d", f.Module, f.Line)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(cursor + id + rest))
		} else {
			b.WriteString(cursor + severityStyle(f.Severity).Render(id) + listNormalStyle.Render(rest))
		}
		b.WriteString(listDimStyle.Render(loc))
		b.WriteString("\n")
	}

	if f, ok := m.Selected(); ok && m.Detail {
		help := ""
		if k, ok := imports.LookupKind(f.Symbol); ok {
			help = k.Help
		}
		detail := fmt.Sprintf("%s %s (%s)\n%s\n\n%s", f.ID, f.Symbol, f.Severity, f.Message, help)
		if f.File != "" {
			detail = fmt.Sprintf("%s:%d\n%s", f.File, f.Line, detail)
		}
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(detail))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))
	return b.String()
}

// browseFindings runs the finding browser until the user quits.
func browseFindings(fs []imports.Finding) error {
	_, err := tea.NewProgram(NewFindingListModel(fs), tea.WithAltScreen()).Run()
	return err
}
