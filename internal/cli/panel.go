package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelgrid/pkg/background"
	"github.com/matzehuels/pixelgrid/pkg/channel"
	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/settings"
	"github.com/matzehuels/pixelgrid/pkg/units"
)

// =============================================================================
// Panel Fields
// =============================================================================

type fieldKind int

const (
	fieldLength fieldKind = iota
	fieldColor
	fieldInt
	fieldLayer
	fieldBool
)

type panelField struct {
	name  string
	label string
	kind  fieldKind
	step  int
}

var panelFields = []panelField{
	{"baseLine", "Baseline", fieldLength, 0},
	{"innerColumnWidth", "Inner column", fieldLength, 0},
	{"outerColumnWidth", "Outer column", fieldLength, 0},
	{"color", "Color", fieldColor, 0},
	{"alpha", "Opacity", fieldInt, 5},
	{"offsetX", "Offset X", fieldInt, 1},
	{"offsetY", "Offset Y", fieldInt, 1},
	{"zIndex", "Layer", fieldLayer, 0},
	{"visible", "Visible", fieldBool, 0},
}

// =============================================================================
// Key Bindings
// =============================================================================

type panelKeyMap struct {
	Up, Down, Edit, Toggle, Increase, Decrease, Color, Reset, Quit key.Binding
}

var panelKeys = panelKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "edit")),
	Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Increase: key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→", "more")),
	Decrease: key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←", "less")),
	Color:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next color")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k panelKeyMap) help() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Edit, k.Toggle, k.Decrease, k.Increase, k.Color, k.Reset, k.Quit}
}

// =============================================================================
// PanelModel - Interactive settings editor
// =============================================================================

// panelSavedMsg reports the outcome of persisting a change.
type panelSavedMsg struct{ err error }

// PanelModel is the bubbletea model for editing grid settings.
type PanelModel struct {
	Settings settings.GridSettings
	Status   string
	Err      string

	cursor   int
	editing  bool
	before   settings.GridSettings
	input    textinput.Model
	onChange func(settings.GridSettings) tea.Cmd
}

// NewPanelModel creates a panel for s. onChange is called with every accepted
// change and may be nil.
func NewPanelModel(s settings.GridSettings, onChange func(settings.GridSettings) tea.Cmd) PanelModel {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 32
	return PanelModel{Settings: s, input: in, onChange: onChange}
}

func (m PanelModel) Init() tea.Cmd {
	return nil
}

func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case panelSavedMsg:
		if msg.err != nil {
			m.Err, m.Status = pgerrors.UserMessage(msg.err), ""
		} else {
			m.Err, m.Status = "", "saved "+time.Now().Format("15:04:05")
		}
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m PanelModel) field() panelField {
	return panelFields[m.cursor]
}

func (m PanelModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.field()
	s := m.Settings

	switch {
	case key.Matches(msg, panelKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, panelKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, panelKeys.Down):
		if m.cursor < len(panelFields)-1 {
			m.cursor++
		}
	case key.Matches(msg, panelKeys.Edit):
		if f.kind == fieldBool || f.kind == fieldLayer {
			return m.change(toggle(s, f))
		}
		v, _ := s.Get(f.name)
		m.before = s
		m.editing = true
		m.Err = ""
		m.input.SetValue(v)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, panelKeys.Toggle):
		return m.change(toggle(s, f))
	case key.Matches(msg, panelKeys.Increase):
		return m.change(step(s, f, 1))
	case key.Matches(msg, panelKeys.Decrease):
		return m.change(step(s, f, -1))
	case key.Matches(msg, panelKeys.Color):
		return m.change(s.WithColor(nextColor(s.Color)))
	case key.Matches(msg, panelKeys.Reset):
		return m.change(settings.Reset())
	}
	return m, nil
}

func (m PanelModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.field()

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.editing, m.Err = false, ""
		m.input.Blur()
		return m.change(m.before)
	case tea.KeyEnter:
		next, err := m.Settings.Set(f.name, m.input.Value())
		if err != nil {
			m.Err = pgerrors.UserMessage(err)
			return m, nil
		}
		m.editing, m.Err = false, ""
		m.input.Blur()
		return m.change(next)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if f.kind != fieldLength {
		return m, cmd
	}

	// Lengths are applied as they are typed, once they parse.
	v := m.input.Value()
	if !units.IsCommittable(v) {
		m.Err = fmt.Sprintf("%q is not a valid length", v)
		return m, cmd
	}
	m.Err = ""
	if v == "" {
		return m, cmd
	}
	next, err := m.Settings.Set(f.name, v)
	if err != nil {
		return m, cmd
	}
	m, change := m.change(next)
	return m, tea.Batch(cmd, change)
}

func (m PanelModel) change(next settings.GridSettings) (PanelModel, tea.Cmd) {
	if next == m.Settings {
		return m, nil
	}
	m.Settings = next
	m.Status = ""
	if m.onChange == nil {
		return m, nil
	}
	return m, m.onChange(next)
}

func toggle(s settings.GridSettings, f panelField) settings.GridSettings {
	switch f.kind {
	case fieldBool:
		return s.WithVisible(!s.Visible)
	case fieldLayer:
		if s.InForeground() {
			return s.WithZIndex(settings.ZIndexBackground)
		}
		return s.WithZIndex(settings.ZIndexForeground)
	}
	return s
}

func step(s settings.GridSettings, f panelField, dir int) settings.GridSettings {
	if f.kind == fieldLayer {
		return toggle(s, f)
	}
	if f.kind != fieldInt {
		return s
	}
	d := dir * f.step
	switch f.name {
	case "alpha":
		return s.WithAlpha(s.Alpha + d)
	case "offsetX":
		return s.WithOffset(s.OffsetX+d, s.OffsetY)
	case "offsetY":
		return s.WithOffset(s.OffsetX, s.OffsetY+d)
	}
	return s
}

// nextColor returns the swatch after color, or the first swatch when color is
// not one of them.
func nextColor(color string) string {
	compact := strings.ReplaceAll(color, " ", "")
	for i, c := range background.BaseColors {
		if c.String() == compact {
			return background.BaseColors[(i+1)%len(background.BaseColors)].String()
		}
	}
	return background.BaseColors[0].String()
}

// =============================================================================
// View
// =============================================================================

var (
	panelLabelStyle    = lipgloss.NewStyle().Foreground(colorLabel).Width(14)
	panelSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Width(14)
	panelErrorStyle    = lipgloss.NewStyle().Foreground(colorFail)
)

func (m PanelModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pixel grid"))
	b.WriteString("\n")
	help := make([]string, 0, len(panelKeys.help()))
	for _, k := range panelKeys.help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(StyleDim.Render(strings.Join(help, "  ")))
	b.WriteString("\n\n")

	for i, f := range panelFields {
		cursor, label := "  ", panelLabelStyle.Render(f.label)
		if i == m.cursor {
			cursor, label = "▸ ", panelSelectedStyle.Render(f.label)
		}
		b.WriteString(cursor + label + " " + m.fieldValue(i, f) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.Err != "":
		b.WriteString(panelErrorStyle.Render(markError.glyph + " " + m.Err))
	case m.Status != "":
		b.WriteString(StyleDim.Render(markSuccess.glyph + " " + m.Status))
	}
	b.WriteString("\n")
	return b.String()
}

func (m PanelModel) fieldValue(i int, f panelField) string {
	if m.editing && i == m.cursor {
		return m.input.View()
	}
	s := m.Settings
	switch f.kind {
	case fieldColor:
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(background.RGBToHex(s.Color))).Render("■■")
		return swatch + " " + StyleValue.Render(s.Color)
	case fieldLayer:
		if s.InForeground() {
			return StyleValue.Render("foreground")
		}
		return StyleValue.Render("background")
	case fieldInt:
		v, _ := s.Get(f.name)
		if f.name == "alpha" {
			v += "%"
		} else {
			v += "px"
		}
		return StyleValue.Render(v)
	case fieldBool:
		if s.Visible {
			return StyleSuccess.Render("shown")
		}
		return StyleDim.Render("hidden")
	}
	v, _ := s.Get(f.name)
	return StyleValue.Render(v)
}

// =============================================================================
// Persistence
// =============================================================================

// panelSync persists panel changes in order. A change superseded by a newer
// one before it runs is skipped.
type panelSync struct {
	mu     sync.Mutex
	latest atomic.Uint64
	apply  func(ctx context.Context, s settings.GridSettings) error
}

func (p *panelSync) onChange(ctx context.Context) func(settings.GridSettings) tea.Cmd {
	return func(s settings.GridSettings) tea.Cmd {
		seq := p.latest.Add(1)
		return func() tea.Msg {
			p.mu.Lock()
			defer p.mu.Unlock()
			if seq != p.latest.Load() {
				return nil
			}
			return panelSavedMsg{err: p.apply(ctx, s)}
		}
	}
}

// panelCommand creates the panel command.
func (c *CLI) panelCommand() *cobra.Command {
	var (
		url    string
		noPush bool
	)

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Edit the settings interactively",
		Long: `Edit the grid settings in an interactive panel. Every change is stored and,
unless --no-push is given, sent to a running pixelgrid serve or inject.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			e, err := c.openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			var sender channel.Sender
			if !noPush {
				base := url
				if !cmd.Flags().Changed("url") {
					base = "http://" + e.cfg.Server.Addr
				}
				if sender, err = channel.NewHTTPSender(base, channel.WithRetry(1, 0)); err != nil {
					return err
				}
			}

			s, err := e.repo.Load(ctx)
			if err != nil {
				logger.Warn("editing default settings", "err", err)
			}

			ps := &panelSync{apply: func(ctx context.Context, s settings.GridSettings) error {
				if err := e.repo.Save(ctx, s); err != nil {
					return err
				}
				if sender == nil {
					return nil
				}
				resp, err := sender.Send(ctx, s)
				if err != nil {
					return pgerrors.Wrap(pgerrors.ErrCodeNetwork, err, "saved, but no page is listening")
				}
				if !resp.Success {
					return pgerrors.New(pgerrors.ErrCodeInternal, "saved, but the page rejected it: %s", resp.Error)
				}
				return nil
			}}

			// The panel owns the terminal; keep log lines out of it.
			logger.SetLevel(log.ErrorLevel)
			p := tea.NewProgram(NewPanelModel(s, ps.onChange(ctx)), tea.WithContext(ctx))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(PanelModel); ok {
				state := "hidden"
				if fm.Settings.Visible {
					state = "shown"
				}
				printSuccess(cmd.OutOrStdout(), "Grid %s", state)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://"+defaultServerAddr, "receiver for live updates")
	cmd.Flags().BoolVar(&noPush, "no-push", false, "only store changes")

	return cmd
}
