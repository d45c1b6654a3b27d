package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/codementor/internal/screen"
	"github.com/zarlcorp/core/pkg/zstyle"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// header, separator and footer lines around the viewport
	homeChrome = 6
)

type feature struct {
	title       string
	description string
}

type stat struct {
	value string
	label string
}

var (
	features = []feature{
		{"Code in Multiple Languages", "Write, test, and debug code in Python, JavaScript, Java, and more."},
		{"AI-Powered Assistance", "Get instant help from our AI tutor and improve your coding skills."},
		{"Timed Challenges", "Test your skills with our timed coding challenges."},
		{"Compete & Learn", "Climb the leaderboard and see how you compare with others."},
	}

	benefits = []string{
		"Real-time code execution",
		"Interactive coding challenges",
		"Personalized learning paths",
		"Progress tracking",
		"Community support",
		"Regular updates with new content",
	}

	stats = []stat{
		{"10,000+", "Active Learners"},
		{"500+", "Coding Challenges"},
		{"8+", "Programming Languages"},
		{"24/7", "AI Support"},
	}

	footerColumns = []struct {
		title string
		links []string
	}{
		{"Product", []string{"Features", "Pricing", "Documentation", "Releases"}},
		{"Company", []string{"About", "Blog", "Careers", "Contact"}},
		{"Support", []string{"Help Center", "Community", "Status", "API"}},
		{"Legal", []string{"Privacy", "Terms", "Cookie Policy", "GDPR"}},
	}

	sampleCode = []string{
		"function calculateSum(n) {",
		"  let sum = 0;",
		"  for (let i = 1; i <= n; i++) {",
		"    sum += i;",
		"  }",
		"  return sum;",
		"}",
		"",
		"// Calculate sum of first 100 numbers",
		"const result = calculateSum(100);",
		"console.log(result); // 5050",
	}

	accentStyle   = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	codeStyle     = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted)
	compactHeader = lipgloss.NewStyle().Foreground(colorWhite).Background(colorBlue).Bold(true).Padding(0, 1)
	statValue     = lipgloss.NewStyle().Foreground(colorPurple).Bold(true)
	columnStyle   = lipgloss.NewStyle().Width(18)
)

// homeModel is the scrollable landing screen.
type homeModel struct {
	version  string
	viewport viewport.Model
	width    int
}

func newHomeModel(version string, width, height int) homeModel {
	m := homeModel{version: version}
	return m.resize(width, height)
}

func (m homeModel) resize(width, height int) homeModel {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	h := max(height-homeChrome, 1)

	offset := m.viewport.YOffset
	m.width = width
	m.viewport = viewport.New(width, h)
	m.viewport.SetContent(homeContent(width))
	m.viewport.SetYOffset(offset)
	return m
}

func (m homeModel) Init() tea.Cmd {
	return nil
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, zstyle.KeyQuit):
			return m, tea.Quit
		case key.Matches(msg, keyLogin):
			return m, navigateCmd(screen.RouteLogin)
		case key.Matches(msg, keyRegister):
			return m, navigateCmd(screen.RouteRegister)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// scrolled reports whether the page has moved off the top. It only reads
// the viewport offset.
func (m homeModel) scrolled() bool {
	return m.viewport.YOffset > 0
}

func (m homeModel) View() string {
	var header string
	if m.scrolled() {
		header = compactHeader.Render("CodeMentor") + "  " +
			zstyle.MutedText.Render("l log in  s sign up")
	} else {
		header = zstyle.RenderHeader("codementor", "AI-Powered Mentorship", colorBlue) +
			" " + zstyle.MutedText.Render(m.version)
	}

	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(viewHome))

	return "\n" + header + "\n" + sep + "\n" + m.viewport.View() + "\n" + footer + "\n"
}

func homeContent(width int) string {
	wrap := lipgloss.NewStyle().Width(max(width-4, 20))

	var b strings.Builder

	b.WriteString("\n  " + zstyle.Title.Render("Master Coding with ") + accentStyle.Render("AI-Powered") + zstyle.Title.Render(" Mentorship") + "\n\n")
	b.WriteString(indent(wrap.Render(zstyle.MutedText.Render(
		"Level up your programming skills with personalized guidance, real-time feedback, and hands-on coding challenges designed to help you succeed.",
	))) + "\n\n")

	start := button{label: "Start Learning Free", variant: buttonPrimary}
	demo := button{label: "Watch Demo", variant: buttonOutline, disabled: true}
	b.WriteString(indent(lipgloss.JoinHorizontal(lipgloss.Center, start.View(), "  ", demo.View())) + "\n\n")
	b.WriteString("  " + zstyle.MutedText.Render("Join 10,000+ developers already learning with us") + "\n\n")

	b.WriteString(indent(codeStyle.Render(strings.Join(sampleCode, "\n"))) + "\n\n")

	b.WriteString("  " + zstyle.Subtitle.Render("Features") + "\n\n")
	for _, f := range features {
		b.WriteString("  " + accentStyle.Render(f.title) + "\n")
		b.WriteString(indent(wrap.Render(f.description)) + "\n\n")
	}

	b.WriteString("  " + zstyle.Subtitle.Render("Benefits") + "\n\n")
	for _, item := range benefits {
		b.WriteString("  " + zstyle.StatusOK.Render("✓") + " " + item + "\n")
	}
	b.WriteString("\n")

	cells := make([]string, 0, len(stats))
	for _, s := range stats {
		cells = append(cells, columnStyle.Render(statValue.Render(s.value)+"\n"+zstyle.MutedText.Render(s.label)))
	}
	b.WriteString(indent(lipgloss.JoinHorizontal(lipgloss.Top, cells...)) + "\n\n")

	signup := button{label: "Start Coding Now", variant: buttonSecondary}
	b.WriteString(indent(signup.View()) + "\n\n")

	cols := make([]string, 0, len(footerColumns))
	for _, c := range footerColumns {
		col := zstyle.Subtitle.Render(c.title)
		for _, l := range c.links {
			col += "\n" + zstyle.MutedText.Render(l)
		}
		cols = append(cols, columnStyle.Render(col))
	}
	b.WriteString(indent(lipgloss.JoinHorizontal(lipgloss.Top, cols...)) + "\n\n")
	b.WriteString("  " + zstyle.MutedText.Render(fmt.Sprintf("© %d CodeMentor. All rights reserved.", time.Now().Year())) + "\n")

	return b.String()
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
