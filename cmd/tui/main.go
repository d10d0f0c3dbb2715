package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Colors for modern design
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	surfaceColor   = lipgloss.Color("#1F2937") // Dark gray
	textColor      = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor     = lipgloss.Color("#9CA3AF") // Muted gray
	borderColor    = lipgloss.Color("#374151") // Border gray
)

// Styles
var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(mutedColor)

	lowStyle  = lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)
	midStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	highStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

// SampleRow mirrors one data line of polyA_counts.txt.
type SampleRow struct {
	Sample string
	Total  int
	Poly10 int
	Poly15 int
	Poly20 int
	Pct10  string
	Pct15  string
	Pct20  string
}

// parseSummary reads the tab-separated summary table written by the polyat
// CLI: one header line, then 8 columns per sample.
func parseSummary(r io.Reader) ([]SampleRow, error) {
	scanner := bufio.NewScanner(r)
	var rows []SampleRow
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 8 {
			return nil, fmt.Errorf("malformed summary line (%d columns): %q", len(fields), line)
		}
		var row SampleRow
		row.Sample = fields[0]
		var err error
		if row.Total, err = strconv.Atoi(fields[1]); err != nil {
			return nil, fmt.Errorf("bad Total_Reads in %q: %w", line, err)
		}
		if row.Poly10, err = strconv.Atoi(fields[2]); err != nil {
			return nil, fmt.Errorf("bad PolyA/T_10+ in %q: %w", line, err)
		}
		if row.Poly15, err = strconv.Atoi(fields[3]); err != nil {
			return nil, fmt.Errorf("bad PolyA/T_15+ in %q: %w", line, err)
		}
		if row.Poly20, err = strconv.Atoi(fields[4]); err != nil {
			return nil, fmt.Errorf("bad PolyA/T_20+ in %q: %w", line, err)
		}
		row.Pct10, row.Pct15, row.Pct20 = fields[5], fields[6], fields[7]
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

type listItem struct {
	row SampleRow
}

func (i listItem) FilterValue() string { return i.row.Sample }

func (i listItem) Title() string { return i.row.Sample }

func (i listItem) Description() string {
	// Metadata line shown below the title in the selector list
	return fmt.Sprintf("Reads: %d    10+: %s%%    20+: %s%%", i.row.Total, i.row.Pct10, i.row.Pct20)
}

type mode int

const (
	modeCounts mode = iota
	modePercent
)

func (m mode) String() string {
	switch m {
	case modeCounts:
		return "Counts"
	case modePercent:
		return "Percentages"
	default:
		return "Unknown"
	}
}

type model struct {
	list          list.Model
	rows          []SampleRow
	currentMode   mode
	showHelp      bool
	width         int
	height        int
	totalRows     int
	selectedIndex int
}

func newModel(rows []SampleRow) model {
	items := make([]list.Item, len(rows))
	for i, row := range rows {
		items[i] = listItem{row: row}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "polyA/T Samples"
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)

	return model{
		list:        l,
		rows:        rows,
		currentMode: modeCounts,
		totalRows:   len(rows),
	}
}

// cycleMode advances to the next display mode, wrapping around.
func (m model) cycleMode() model {
	if m.currentMode == modeCounts {
		m.currentMode = modePercent
	} else {
		m.currentMode = modeCounts
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// left panel takes 1/3 of the width
		m.list.SetWidth(msg.Width / 3)
		m.list.SetHeight(msg.Height - 4)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "h":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			return m.cycleMode(), nil

		case "1":
			m.currentMode = modeCounts
			return m, nil

		case "2":
			m.currentMode = modePercent
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.selectedIndex = m.list.Index()
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpModal()
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderLeftPanel(),
		m.renderRightPanel(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		m.renderStatusBar(),
	)
}

func (m model) renderLeftPanel() string {
	listWidth := m.width / 3

	return containerStyle.
		Width(listWidth - 2).
		Height(m.height - 4).
		Render(m.list.View())
}

func (m model) renderRightPanel() string {
	rightWidth := (m.width * 2) / 3

	if len(m.rows) == 0 {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No samples available")
	}

	selectedItem := m.list.SelectedItem()
	if selectedItem == nil {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No sample selected")
	}

	row := selectedItem.(listItem).row
	lines := m.buildRightLines(row)

	return containerStyle.
		Width(rightWidth - 2).
		Height(m.height - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// buildRightLines renders the detail panel for one sample in the current
// display mode.
func (m model) buildRightLines(row SampleRow) []string {
	header := titleStyle.Render(fmt.Sprintf("%s - %d reads", row.Sample, row.Total))

	var l10, l15, l20 string
	switch m.currentMode {
	case modePercent:
		l10 = fmt.Sprintf("%s%%", row.Pct10)
		l15 = fmt.Sprintf("%s%%", row.Pct15)
		l20 = fmt.Sprintf("%s%%", row.Pct20)
	default:
		l10 = fmt.Sprintf("%d of %d reads", row.Poly10, row.Total)
		l15 = fmt.Sprintf("%d of %d reads", row.Poly15, row.Total)
		l20 = fmt.Sprintf("%d of %d reads", row.Poly20, row.Total)
	}

	return []string{
		header,
		"",
		labelStyle.Render("polyA/T >= 10 nt:  ") + lowStyle.Render(l10),
		labelStyle.Render("polyA/T >= 15 nt:  ") + midStyle.Render(l15),
		labelStyle.Render("polyA/T >= 20 nt:  ") + highStyle.Render(l20),
		"",
		labelStyle.Render(fmt.Sprintf("Mode: %s (press 1/2 or tab to switch)", m.currentMode)),
	}
}

func (m model) renderStatusBar() string {
	leftInfo := fmt.Sprintf("%d/%d samples", m.selectedIndex+1, m.totalRows)
	centerInfo := fmt.Sprintf("Mode: %s", m.currentMode.String())
	rightInfo := "Press 'h' for help, 'q' to quit"

	totalUsed := len(leftInfo) + len(centerInfo) + len(rightInfo)
	spacing := m.width - totalUsed - 6

	var statusContent string
	if spacing > 0 {
		leftSpacing := spacing / 2
		rightSpacing := spacing - leftSpacing

		statusContent = fmt.Sprintf("%s%s%s%s%s",
			leftInfo,
			strings.Repeat(" ", leftSpacing),
			centerInfo,
			strings.Repeat(" ", rightSpacing),
			rightInfo,
		)
	} else {
		// Fallback for narrow terminals
		statusContent = fmt.Sprintf("%s | %s", leftInfo, centerInfo)
	}

	return statusBarStyle.
		Width(m.width).
		Render(statusContent)
}

func (m model) renderHelpModal() string {
	helpContent := `polyA/T Sample Browser - Help

Navigation:
  up/down, j/k  Navigate list
  /             Filter samples
  Enter         Select sample

View Modes:
  1             Show threshold counts
  2             Show threshold percentages
  tab           Cycle modes

General:
  h             Toggle this help
  q, Ctrl+C     Quit application

Current Mode: ` + m.currentMode.String() + `
Total Samples: ` + fmt.Sprintf("%d", m.totalRows) + `
`

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(60).
		Align(lipgloss.Center)

	modal := modalStyle.Render(helpContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func main() {
	summaryPath := flag.String("summary", "polyA_counts.txt", "path to the summary table written by polyat")
	flag.Parse()

	f, err := os.Open(*summaryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rows, err := parseSummary(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(rows), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
