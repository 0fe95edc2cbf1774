package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pixelgrid/pkg/settings"
)

// Terminal palette. The grid colors themselves live in package background;
// these only style CLI output.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(18)
)

// statusMark is the leading glyph of a one-line status message.
type statusMark struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = statusMark{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markError   = statusMark{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarning = statusMark{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo    = statusMark{"›", lipgloss.NewStyle().Foreground(colorLabel)}
)

func (m statusMark) println(w io.Writer, text string) {
	fmt.Fprintln(w, m.style.Render(m.glyph)+" "+text)
}

func printSuccess(w io.Writer, format string, args ...any) {
	markSuccess.println(w, fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	markError.println(w, fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	markWarning.println(w, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	markInfo.println(w, fmt.Sprintf(format, args...))
}

// printDetail writes an indented, dimmed line under the previous status.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a file the command wrote.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests the command a user most likely runs next.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// renderSettingsTable renders s as a two-column table. Fields that differ
// from the defaults are highlighted.
func renderSettingsTable(s settings.GridSettings) string {
	def := settings.Default()
	rows := make([][]string, 0, len(settings.Fields))
	changed := make([]bool, 0, len(settings.Fields))
	for _, f := range settings.Fields {
		v, _ := s.Get(f)
		d, _ := def.Get(f)
		rows = append(rows, []string{f, v})
		changed = append(changed, v != d)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Field", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return base.Foreground(colorLabel)
			}
			if row >= 0 && row < len(changed) && changed[row] {
				return base.Foreground(colorAccent)
			}
			return base.Foreground(colorText)
		})
	return t.Render()
}
