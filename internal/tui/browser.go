package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"copycolors/internal/colour"
	"copycolors/internal/palette"
	"copycolors/internal/processor"
)

const (
	noticeDuration = 3 * time.Second
	copiedNotice   = "copied to clipboard!"
	minListRows    = 3
	defaultRows    = 10
)

type ReextractFunc func(path string, req palette.Request) (palette.Palette, error)

type ClipboardFunc func(text string) error

type BrowseOptions struct {
	Count     int
	Excluded  colour.ExclusionSet
	Reference *colour.Color
	RGB       bool
	// Root is trimmed from the displayed file names.
	Root      string
	Reextract ReextractFunc
	Clipboard ClipboardFunc
}

// Browser lists the files of a finished batch and shows the palette of the
// selected one.
type Browser struct {
	entries []processor.Entry
	names   []string
	opts    BrowseOptions

	selected int
	count    int
	current  processor.Outcome

	notice   string
	noticeID int

	width  int
	height int
}

type reextractMsg struct {
	index   int
	count   int
	palette palette.Palette
	err     error
}

type clearNoticeMsg struct{ id int }

func NewBrowser(entries []processor.Entry, opts BrowseOptions) Browser {
	if opts.Reextract == nil {
		opts.Reextract = func(path string, req palette.Request) (palette.Palette, error) {
			return processor.ExtractFile(path, processor.Options{
				Count:     req.Count,
				Excluded:  req.Excluded,
				Reference: req.Reference,
			})
		}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = processor.DisplayName(opts.Root, e.Path)
	}

	return Browser{
		entries:  entries,
		names:    names,
		opts:     opts,
		selected: -1,
		count:    opts.Count,
	}
}

func (m Browser) Init() tea.Cmd {
	return nil
}

// Selected is the index of the selected entry, or -1.
func (m Browser) Selected() int { return m.selected }

// Count is the number of colours currently extracted for the selection.
func (m Browser) Count() int { return m.count }

func (m Browser) Notice() string { return m.notice }

func (m Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case reextractMsg:
		if msg.index != m.selected || msg.count != m.count {
			return m, nil
		}
		if msg.err != nil {
			m.current = processor.Outcome{Err: msg.err.Error()}
		} else {
			m.current = processor.Outcome{Palette: msg.palette}
		}
		return m, nil
	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	default:
		return m, nil
	}
}

func (m Browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "esc":
		return m, tea.Quit
	case "down":
		if len(m.entries) == 0 {
			return m, nil
		}
		next := 0
		if m.selected >= 0 && m.selected < len(m.entries)-1 {
			next = m.selected + 1
		}
		return m.selectEntry(next), nil
	case "up":
		if len(m.entries) == 0 {
			return m, nil
		}
		prev := 0
		if m.selected == 0 {
			prev = len(m.entries) - 1
		} else if m.selected > 0 {
			prev = m.selected - 1
		}
		return m.selectEntry(prev), nil
	case "left":
		m.selected = -1
		m.notice = ""
		return m, nil
	case "m", "M":
		return m.resize(m.count + 1)
	case "l", "L":
		return m.resize(m.count - 1)
	case "ctrl+c":
		return m.copyPalette()
	}
	return m, nil
}

func (m Browser) selectEntry(i int) Browser {
	m.selected = i
	m.count = m.opts.Count
	m.current = m.entries[i].Outcome
	m.notice = ""
	return m
}

func (m Browser) resize(count int) (tea.Model, tea.Cmd) {
	if m.selected < 0 || !m.entries[m.selected].OK() {
		return m, nil
	}
	if count < palette.MinCount || count > palette.MaxCount || count == m.count {
		return m, nil
	}
	m.count = count

	index := m.selected
	path := m.entries[index].Path
	req := palette.Request{Count: count, Excluded: m.opts.Excluded, Reference: m.opts.Reference}
	reextract := m.opts.Reextract
	return m, func() tea.Msg {
		p, err := reextract(path, req)
		return reextractMsg{index: index, count: count, palette: p, err: err}
	}
}

func (m Browser) copyPalette() (tea.Model, tea.Cmd) {
	if m.selected < 0 || !m.current.OK() {
		return m, nil
	}
	m.noticeID++
	if err := m.opts.Clipboard(m.current.Palette.Join(m.opts.RGB)); err != nil {
		m.notice = fmt.Sprintf("clipboard unavailable: %v", err)
	} else {
		m.notice = copiedNotice
	}
	id := m.noticeID
	return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

func (m Browser) View() string {
	sections := []string{m.helpLine(), m.listView(), "", m.detailView()}
	return strings.Join(sections, "\n")
}

func (m Browser) helpLine() string {
	key := func(k string) string { return "[" + keyStyle.Render(k) + "] " }
	if m.selected < 0 {
		return "Press " + key("↓/↑") + "to browse the files. Or press " + key("q") + "to exit."
	}
	return "Press " + key("m") + "to extract more, " + key("l") + "to less, " +
		key("Ctrl+c") + "to copy or " + key("q") + "to exit."
}

func (m Browser) listRows() int {
	if m.height <= 0 {
		return defaultRows
	}
	return max(minListRows, m.height-12)
}

func (m Browser) listView() string {
	title := "Files"
	if m.selected >= 0 {
		title += fmt.Sprintf(" · # %d/%d", m.selected+1, len(m.entries))
	}

	rows := m.listRows()
	start := 0
	if m.selected >= rows {
		start = m.selected - rows + 1
	}
	end := min(start+rows, len(m.names))

	lines := []string{titleStyle.Render(title)}
	if len(m.names) == 0 {
		lines = append(lines, dimStyle.Render("No image files in that directory."))
	}
	for i := start; i < end; i++ {
		if i == m.selected {
			lines = append(lines, cursorStyle.Render("> "+m.names[i]))
			continue
		}
		lines = append(lines, labelStyle.Render("  "+m.names[i]))
	}

	panel := panelStyle
	if m.width > 4 {
		panel = panel.Width(m.width - 2)
	}
	return panel.Render(strings.Join(lines, "\n"))
}

func (m Browser) detailView() string {
	if m.selected < 0 {
		return valueStyle.Render("Please select an image file to extract its colours.")
	}

	if !m.current.OK() {
		body := titleStyle.Render("Error") + "\n" + m.current.Err
		panel := errorPanelStyle
		if m.width > 4 {
			panel = panel.Width(m.width - 2)
		}
		return panel.Render(body)
	}

	heading := m.names[m.selected]
	if m.notice != "" {
		heading += " - " + noticeStyle.Render(m.notice)
	}
	body := lipgloss.JoinVertical(lipgloss.Center, heading, "", Inline(m.current.Palette, m.opts.RGB))
	if m.width > 0 {
		body = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
	}
	return body
}
