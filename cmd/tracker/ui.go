package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/doshyw/celeste-progression/internal/tracker"
	"github.com/muesli/reflow/wordwrap"
)

const PlaceHolderText = "collect <item>, drop <item>, status, help..."

// TrackerUI is the BubbleTea model that runs the tracker.
type TrackerUI struct {
	session     *tracker.Session
	logViewport viewport.Model
	metaView    viewport.Model
	textarea    textarea.Model
	log         []string
	ready       bool
	width       int
	height      int

	showQuitModal bool
}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

func NewTrackerUI(session *tracker.Session) TrackerUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	return TrackerUI{
		session:     session,
		textarea:    ta,
		logViewport: viewport.New(50, 20),
		metaView:    viewport.New(20, 20),
		log:         []string{tracker.HelpText},
	}
}

func (m TrackerUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m TrackerUI) panelWidths() (int, int) {
	logWidth := int(float64(m.width)*0.6) - 4
	return logWidth, m.width - logWidth - 6
}

func (m TrackerUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		logWidth, metaWidth := m.panelWidths()
		m.logViewport.Width = logWidth - 2
		m.logViewport.Height = m.height - 6
		m.metaView.Width = metaWidth - 2
		m.metaView.Height = m.height - 2
		m.textarea.SetWidth(logWidth - 4)
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			if quit := m.run(input); quit {
				return m, tea.Quit
			}
			m.refresh()
			return m, nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// run executes one command and appends its output to the log.
func (m *TrackerUI) run(input string) bool {
	m.log = append(m.log, commandStyle.Render("> "+input))

	res, err := m.session.Exec(input)
	if err != nil {
		m.log = append(m.log, errorStyle.Render("Error: "+err.Error()))
		return false
	}
	if res.Quit {
		return true
	}
	if res.Copy != "" {
		if err := clipboard.WriteAll(res.Copy); err != nil {
			m.log = append(m.log, errorStyle.Render("Clipboard unavailable: "+err.Error()))
			m.log = append(m.log, res.Copy)
			return false
		}
	}
	if res.Text != "" {
		m.log = append(m.log, outputStyle.Render(res.Text))
	}
	return false
}

func (m *TrackerUI) refresh() {
	width := m.logViewport.Width - 2
	if width < 10 {
		width = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("CELESTE TRACKER") + "\n\n")
	for _, entry := range m.log {
		content.WriteString(wordwrap.String(entry, width) + "\n\n")
	}
	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()

	m.metaView.SetContent(writeMetadata(m.session, m.metaView.Width))
}

func writeMetadata(s *tracker.Session, width int) string {
	r := s.Report()

	var content strings.Builder
	content.WriteString(titleStyle.Render("PROGRESS") + "\n\n")
	content.WriteString("Goal:\n")
	content.WriteString(wordwrap.String(s.VictoryItem(), width) + "\n\n")

	if r.Complete {
		content.WriteString(outputStyle.Render("Complete!") + "\n\n")
	}

	content.WriteString(fmt.Sprintf("Regions: %d reachable\n", len(r.Reachable)))
	content.WriteString(fmt.Sprintf("Locations: %d/%d in logic\n\n", len(r.Checkable), r.Locations))

	if adj := s.Adjustments(); len(adj) > 0 {
		content.WriteString("Clamped options:\n")
		for _, a := range adj {
			content.WriteString(fmt.Sprintf("• %s: %d → %d\n", a.Option, a.Requested, a.Applied))
		}
		content.WriteString("\n")
	}

	content.WriteString("Held:\n")
	if len(r.Held) == 0 {
		content.WriteString("Nothing yet\n")
	}
	for _, name := range slices.Sorted(maps.Keys(r.Held)) {
		content.WriteString(wordwrap.String(fmt.Sprintf("• %s x%d", name, r.Held[name]), width) + "\n")
	}
	return content.String()
}

func (m TrackerUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}
	return m, nil
}

func (m TrackerUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Tracker?"))
	content.WriteString("\n\n")
	content.WriteString("Collected items are not saved.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m TrackerUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth, metaWidth := m.panelWidths()

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", logWidth-4)),
			m.textarea.View(),
		),
	)
	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaView.View(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}
