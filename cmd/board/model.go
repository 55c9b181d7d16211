package board

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/soundboard/cmd/board/config"
	"github.com/mattn/go-runewidth"
)

const (
	cellWidth   = 24 // Inner width of one button
	defaultCols = 3
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	playingBadge  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")) // Green
	missingBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))            // Bright red
	buttonStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(cellWidth)
	litStyle      = buttonStyle.BorderForeground(lipgloss.Color("46")).Background(lipgloss.Color("22"))
	missingStyle  = buttonStyle.Foreground(lipgloss.Color("240"))
	selectedColor = lipgloss.Color("62")
)

type clipChangeMsg ClipChange

// model is the bubbletea board. The lit map is shared with the channel
// indicators, which only ever run inside Update via dispatchMsg.
type model struct {
	board   *Board
	buttons []config.Button
	lit     map[string]bool   // id -> playing
	missing map[string]bool   // id -> clip file absent
	byPath  map[string]string // clip path -> id
	byKey   map[string]string // key -> id
	watcher *ClipWatcher

	cursor int
	width  int
}

func newModel(b *Board, buttons []config.Button, paths map[string]string, lit map[string]bool, watcher *ClipWatcher) model {
	m := model{
		board:   b,
		buttons: buttons,
		lit:     lit,
		missing: make(map[string]bool, len(buttons)),
		byPath:  make(map[string]string, len(buttons)),
		byKey:   make(map[string]string, len(buttons)),
		watcher: watcher,
	}
	for _, btn := range buttons {
		path := paths[btn.ID]
		m.byPath[path] = btn.ID
		m.missing[btn.ID] = !ClipPresent(path)
		if btn.Key != "" {
			m.byKey[btn.Key] = btn.ID
		}
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitClipCmd(m.watcher)
}

// waitClipCmd returns a command that delivers the next clip availability change.
func waitClipCmd(w *ClipWatcher) tea.Cmd {
	return func() tea.Msg {
		change, ok := w.Next()
		if !ok {
			return nil
		}
		return clipChangeMsg(change)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg()
		return m, nil

	case clipChangeMsg:
		if id, ok := m.byPath[msg.Path]; ok {
			m.missing[id] = !msg.Present
			slog.Debug("clip availability changed", "channel", id, "present", msg.Present)
		}
		return m, waitClipCmd(m.watcher)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m model) handleKey(key string) (tea.Model, tea.Cmd) {
	// Button bindings take precedence over navigation
	if id, ok := m.byKey[key]; ok {
		m.cursor = m.indexOf(id)
		m.toggle(id)
		return m, nil
	}

	cols := m.columns()
	switch key {
	case "ctrl+c", "q":
		m.board.StopAll()
		return m, tea.Quit
	case "esc", "s":
		m.board.StopAll()
	case "enter", " ":
		if len(m.buttons) > 0 {
			m.toggle(m.buttons[m.cursor].ID)
		}
	case "left", "h":
		m.cursor = m.clampCursor(m.cursor - 1)
	case "right", "l":
		m.cursor = m.clampCursor(m.cursor + 1)
	case "up", "k":
		m.cursor = m.clampCursor(m.cursor - cols)
	case "down", "j":
		m.cursor = m.clampCursor(m.cursor + cols)
	}
	return m, nil
}

func (m model) toggle(id string) {
	if err := m.board.Toggle(id); err != nil {
		slog.Error("toggle failed", "channel", id, "error", err)
	}
}

func (m model) indexOf(id string) int {
	for i, btn := range m.buttons {
		if btn.ID == id {
			return i
		}
	}
	return m.cursor
}

func (m model) clampCursor(c int) int {
	if c < 0 {
		return 0
	}
	if c >= len(m.buttons) {
		return max(0, len(m.buttons)-1)
	}
	return c
}

// columns returns how many buttons fit side by side.
func (m model) columns() int {
	if m.width <= 0 {
		return defaultCols
	}
	cols := m.width / (cellWidth + 2)
	return max(1, min(cols, len(m.buttons)))
}

func (m model) View() string {
	var b strings.Builder

	playing := 0
	for _, on := range m.lit {
		if on {
			playing++
		}
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("SOUNDBOARD  %d/%d playing", playing, len(m.buttons))))
	b.WriteString("\n\n")

	cols := m.columns()
	var rows []string
	for start := 0; start < len(m.buttons); start += cols {
		end := min(start+cols, len(m.buttons))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderButton(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("key/enter: toggle • arrows/hjkl: move • s/esc: stop all • q: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m model) renderButton(i int) string {
	btn := m.buttons[i]

	style := buttonStyle
	badge := ""
	switch {
	case m.lit[btn.ID]:
		style = litStyle
		badge = playingBadge.Render("▶ playing")
	case m.missing[btn.ID]:
		style = missingStyle
		badge = missingBadge.Render("✗ missing")
	}
	if i == m.cursor {
		style = style.BorderForeground(selectedColor)
	}

	prefix := ""
	if btn.Key != "" {
		prefix = keyStyle.Render("["+btn.Key+"]") + " "
	}
	label := truncateLabel(btn.Title(), cellWidth-2-lipgloss.Width(prefix))

	return style.Render(prefix + label + "\n" + badge)
}

// truncateLabel fits s into width terminal cells.
func truncateLabel(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
