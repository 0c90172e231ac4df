package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/voicecanvas/internal/art"
	"github.com/san-kum/voicecanvas/internal/session"
	"github.com/san-kum/voicecanvas/internal/storage"
)

const (
	defaultCols = 64
	defaultRows = 18
	panelWidth  = 48
	previewFPS  = 15
	graphPoints = 120
)

type TickMsg time.Time

type savedMsg struct {
	id  string
	err error
}

// Model previews a running session. The session's own loop ticks the
// renderer; the model only samples it.
type Model struct {
	sess  *session.Session
	store *storage.Store
	theme Theme

	cols, rows int
	canvas     string
	message    string
	failed     bool
	showHelp   bool
}

// NewModel builds a preview using the named theme; unknown names fall
// back to the first theme.
func NewModel(sess *session.Session, store *storage.Store, theme string) Model {
	return Model{
		sess:  sess,
		store: store,
		theme: GetTheme(theme),
		cols:  defaultCols,
		rows:  defaultRows,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/previewFPS, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	r := m.sess.Renderer()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			m.sess.StopRecording()
			return m, tea.Quit
		case " ":
			on, err := m.sess.ToggleRecording()
			m.failed = err != nil
			switch {
			case err != nil:
				m.message = "record: " + err.Error()
			case on:
				m.message = "recording"
			default:
				m.message = "stopped"
			}
		case "s":
			r.SetStyle(nextStyle(r.Status().Style))
		case "1", "2", "3", "4":
			r.SetStyle(art.Styles[int(key[0]-'1')])
		case "c":
			r.RequestClear()
			m.message = "cleared"
		case "u":
			r.RequestUndo()
		case "w":
			if m.store == nil {
				m.message, m.failed = "no store configured", true
				break
			}
			return m, m.save()
		case "t":
			m.theme = nextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.cols = max(8, msg.Width-panelWidth-6)
		m.rows = max(4, msg.Height-4)
	case savedMsg:
		m.failed = msg.err != nil
		if msg.err != nil {
			m.message = "save failed: " + msg.err.Error()
		} else {
			m.message = "saved " + msg.id
		}
	case TickMsg:
		m.canvas = Halfblock(r.Snapshot(), m.cols, m.rows, backdropColor(m.theme.Backdrop))
		return m, tick()
	}
	return m, nil
}

func (m Model) save() tea.Cmd {
	sess, store := m.sess, m.store
	return func() tea.Msg {
		id, err := sess.Save(store, "live")
		return savedMsg{id: id, err: err}
	}
}

func nextStyle(s art.Style) art.Style {
	for i, st := range art.Styles {
		if st == s {
			return art.Styles[(i+1)%len(art.Styles)]
		}
	}
	return art.DefaultStyle
}

func (m Model) View() string {
	st := m.sess.Renderer().Status()

	var s strings.Builder
	s.WriteString(GradientText("VOICECANVAS", string(m.theme.Primary), string(m.theme.Accent)) + "\n\n")
	if st.Recording {
		s.WriteString(StatusRecording.Render("● RECORDING") + "\n\n")
	} else {
		s.WriteString(StatusIdle.Render("○ IDLE") + "\n\n")
	}

	vols := m.sess.Collector().Volumes()
	if len(vols) > graphPoints {
		vols = vols[len(vols)-graphPoints:]
	}
	if len(vols) > 1 {
		chart := asciigraph.Plot(vols, asciigraph.Height(4), asciigraph.Width(30),
			asciigraph.LowerBound(0), asciigraph.UpperBound(1), asciigraph.Caption("Volume"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(Sparkline(vols, 30) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Foreground(m.theme.Text).Render(value) + "\n")
	}
	row("Style", string(st.Style))
	row("Volume", fmt.Sprintf("%.2f", st.Volume))
	row("Particles", fmt.Sprintf("%d", st.Particles))
	row("History", fmt.Sprintf("%d", st.History))
	row("Undo", fmt.Sprintf("%t", st.CanUndo))
	row("Canvas", fmt.Sprintf("%dx%d", st.Width, st.Height))
	row("Frame", fmt.Sprintf("%d", st.Frame))
	if st.HasAnalysis {
		row("Emotion", fmt.Sprintf("%s (%.0f%%)", st.Analysis.Emotion, st.Analysis.Confidence))
		row("Tempo", string(st.Analysis.Tempo))
	}
	row("Palette", Swatches(st.Config.PaletteHex()))
	if m.message != "" {
		color := m.theme.Muted
		if m.failed {
			color = m.theme.Alert
		}
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(color).Render(m.message) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Record S:Style C:Clear U:Undo\nW:Save T:Theme ?:Help Q:Quit"))

	canvas := m.canvas
	if canvas == "" {
		canvas = Halfblock(nil, m.cols, m.rows, backdropColor(m.theme.Backdrop))
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(canvas), statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Start/stop recording     ║
║  S        - Next style               ║
║  1-4      - Pick a style             ║
║  C        - Clear the canvas         ║
║  U        - Undo last recording      ║
║  W        - Save canvas              ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + view
	}
	return view
}
