// Package review is the interactive terminal browser for scraped jobs. The
// left pane lists every stored job; the right pane shows the selected job's
// extracted fields, which is the quickest way to eyeball extraction quality
// after a run.
package review

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alreinhart/TXSemiModel/internal/store"
)

// Lines per job item in the list view (title + subtitle + blank separator).
const jobItemHeight = 3

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	jobTitleStyle = lipgloss.NewStyle().
			Bold(true)

	jobSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedJobTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedJobSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	detailValueStyle = lipgloss.NewStyle()

	sectionDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	absentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

type reviewModel struct {
	jobs           []store.StoredJob
	listViewport   viewport.Model
	detailViewport viewport.Model
	activePane     int // 0=list, 1=detail
	cursor         int
	width          int
	height         int
	ready          bool
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "left", "right":
			m.activePane = 1 - m.activePane
			m.recalcContent()
			return m, nil
		case "up", "k":
			if m.activePane == 0 {
				m.moveCursor(-1)
				return m, nil
			}
		case "down", "j":
			if m.activePane == 0 {
				m.moveCursor(1)
				return m, nil
			}
		case "o":
			if len(m.jobs) > 0 {
				openURL(m.jobs[m.cursor].URL)
			}
			return m, nil
		}

		// Forward remaining keys (pgup/pgdn, scrolling in the detail
		// pane) to the active viewport.
		var cmd tea.Cmd
		if m.activePane == 0 {
			m.listViewport, cmd = m.listViewport.Update(msg)
		} else {
			m.detailViewport, cmd = m.detailViewport.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

func (m *reviewModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.jobs)-1, 0))
	m.recalcContent()
	m.ensureCursorVisible()
	m.detailViewport.SetYOffset(0)
}

func (m *reviewModel) ensureCursorVisible() {
	cursorTop := m.cursor * jobItemHeight
	cursorBottom := cursorTop + jobItemHeight - 1

	if cursorTop < m.listViewport.YOffset {
		m.listViewport.SetYOffset(cursorTop)
	} else if cursorBottom >= m.listViewport.YOffset+m.listViewport.Height {
		m.listViewport.SetYOffset(cursorBottom - m.listViewport.Height + 1)
	}
}

func (m *reviewModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.listViewport = viewport.New(paneWidth, paneHeight)
		m.detailViewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.listViewport.Width = paneWidth
		m.listViewport.Height = paneHeight
		m.detailViewport.Width = paneWidth
		m.detailViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *reviewModel) recalcContent() {
	m.listViewport.SetContent(renderJobList(m.jobs, m.cursor, m.activePane == 0))
	m.detailViewport.SetContent(m.renderDetail())
}

func (m reviewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	paneWidth := m.listViewport.Width

	listHeader := fmt.Sprintf(" Jobs (%d)", len(m.jobs))
	detailHeader := " Extracted Fields"

	var listHeaderRendered, detailHeaderRendered string
	var listBorder, detailBorder lipgloss.Style

	if m.activePane == 0 {
		listHeaderRendered = activeHeaderStyle.Render(listHeader)
		detailHeaderRendered = inactiveHeaderStyle.Render(detailHeader)
		listBorder = activeBorderStyle.Width(paneWidth)
		detailBorder = inactiveBorderStyle.Width(paneWidth)
	} else {
		listHeaderRendered = inactiveHeaderStyle.Render(listHeader)
		detailHeaderRendered = activeHeaderStyle.Render(detailHeader)
		listBorder = inactiveBorderStyle.Width(paneWidth)
		detailBorder = activeBorderStyle.Width(paneWidth)
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(listHeaderRendered),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(detailHeaderRendered),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		listBorder.Render(m.listViewport.View()),
		" ",
		detailBorder.Render(m.detailViewport.View()),
	)

	statusText := " ←/→/Tab switch  ↑/↓ cursor/scroll  o open URL  q quit"
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func (m reviewModel) renderDetail() string {
	if len(m.jobs) == 0 {
		return "  (no jobs in database — run a scrape first)"
	}
	j := m.jobs[m.cursor]
	wrapWidth := max(m.detailViewport.Width-2, 20)

	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	addField("Title", j.Title)
	addField("Company", j.Company)
	addField("Platform", j.Platform)
	addField("Location", j.Location)
	if j.PostedDate != nil {
		addField("Posted", j.PostedDate.Format("2006-01-02"))
	}
	addField("First Seen", j.FirstSeen.Format("2006-01-02"))
	addField("URL", j.URL)

	divider := func(label string) string {
		fill := strings.Repeat("─", max(wrapWidth-len(label), 3))
		return sectionDividerStyle.Render(label + fill)
	}
	section := func(label, value string) {
		b.WriteByte('\n')
		b.WriteString(divider("── "+label+" ") + "\n")
		if value == "" {
			b.WriteString(absentStyle.Render("  (not extracted)") + "\n")
			return
		}
		for _, line := range strings.Split(value, "\n") {
			b.WriteString(wordWrap(line, wrapWidth) + "\n")
		}
	}

	f := j.Fields
	section("Responsibilities", f.Responsibilities)
	section("Min Education", f.MinEducation)
	section("Min Experience", f.MinExperience)
	section("Preferred Qualifications", f.PreferredQualifications)
	section("Salary Range", f.SalaryRange)

	// Oracle-only requisition metadata, shown only when present.
	if f.JobIdentification != "" || f.JobCategory != "" || f.DegreeLevel != "" || f.EclGtcRequired != "" {
		b.WriteByte('\n')
		b.WriteString(divider("── Requisition ") + "\n")
		addField("Job ID", f.JobIdentification)
		addField("Category", f.JobCategory)
		addField("Degree Level", f.DegreeLevel)
		addField("ECL/GTC", f.EclGtcRequired)
	}

	return b.String()
}

func renderJobList(jobs []store.StoredJob, cursor int, isActive bool) string {
	if len(jobs) == 0 {
		return "  (no jobs)"
	}

	var b strings.Builder
	for i, j := range jobs {
		isSelected := isActive && i == cursor

		titleSt := jobTitleStyle
		subtitleSt := jobSubtitleStyle
		prefix := "  "
		if isSelected {
			titleSt = selectedJobTitleStyle
			subtitleSt = selectedJobSubtitleStyle
			prefix = "> "
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(j.Title))
		b.WriteByte('\n')

		posted := "n/a"
		if j.PostedDate != nil {
			posted = j.PostedDate.Format("2006-01-02")
		}
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(fmt.Sprintf("%s · %s", j.Company, posted)))
		b.WriteByte('\n')

		if i < len(jobs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// Run launches the interactive review TUI over the given jobs.
func Run(jobs []store.StoredJob) error {
	m := reviewModel{jobs: jobs}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
