package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxFileSize caps what the picker will load into the input.
const maxFileSize = 1 << 20

// fileLoadedMsg carries the contents of a picked file.
type fileLoadedMsg struct {
	path string
	text string
	err  error
}

type pickerClosedMsg struct{}

type pickerEntry struct {
	name  string
	isDir bool
	path  string
}

// textPicker browses the filesystem for a text file to analyze.
type textPicker struct {
	dir      string
	entries  []pickerEntry
	selected int
	offset   int

	extensions []string

	err error

	width  int
	height int
}

func newTextPicker(dir string) textPicker {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	if dir == "" {
		dir = "/"
	}

	p := textPicker{
		dir:        dir,
		extensions: []string{".txt", ".md", ".text"},
	}
	p.load()
	return p
}

func (p *textPicker) setSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *textPicker) load() {
	p.entries = nil
	p.selected = 0
	p.offset = 0
	p.err = nil

	entries, err := os.ReadDir(p.dir)
	if err != nil {
		p.err = err
		return
	}

	if parent := filepath.Dir(p.dir); parent != p.dir {
		p.entries = append(p.entries, pickerEntry{name: "..", isDir: true, path: parent})
	}

	var dirs, files []pickerEntry
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		e := pickerEntry{
			name:  entry.Name(),
			isDir: entry.IsDir(),
			path:  filepath.Join(p.dir, entry.Name()),
		}
		switch {
		case e.isDir:
			dirs = append(dirs, e)
		case p.accepts(e.name):
			files = append(files, e)
		}
	}

	byName := func(s []pickerEntry) func(i, j int) bool {
		return func(i, j int) bool {
			return strings.ToLower(s[i].name) < strings.ToLower(s[j].name)
		}
	}
	sort.Slice(dirs, byName(dirs))
	sort.Slice(files, byName(files))

	p.entries = append(p.entries, dirs...)
	p.entries = append(p.entries, files...)
}

func (p *textPicker) accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range p.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (p textPicker) update(msg tea.KeyMsg) (textPicker, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return p, func() tea.Msg { return pickerClosedMsg{} }
	case "j", "down":
		if p.selected < len(p.entries)-1 {
			p.selected++
			p.scroll()
		}
	case "k", "up":
		if p.selected > 0 {
			p.selected--
			p.scroll()
		}
	case "g":
		p.selected = 0
		p.offset = 0
	case "G":
		p.selected = max(len(p.entries)-1, 0)
		p.scroll()
	case "backspace", "h":
		if parent := filepath.Dir(p.dir); parent != p.dir {
			p.dir = parent
			p.load()
		}
	case "~":
		if home, _ := os.UserHomeDir(); home != "" {
			p.dir = home
			p.load()
		}
	case "enter", "l", "right":
		if p.selected >= len(p.entries) {
			return p, nil
		}
		entry := p.entries[p.selected]
		if entry.isDir {
			p.dir = entry.path
			p.load()
			return p, nil
		}
		return p, readTextFile(entry.path)
	}
	return p, nil
}

// readTextFile loads path off the event loop.
func readTextFile(path string) tea.Cmd {
	return func() tea.Msg {
		info, err := os.Stat(path)
		if err != nil {
			return fileLoadedMsg{path: path, err: err}
		}
		if info.Size() > maxFileSize {
			return fileLoadedMsg{path: path, err: fmt.Errorf("%s is larger than %d KiB", filepath.Base(path), maxFileSize>>10)}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fileLoadedMsg{path: path, err: err}
		}
		return fileLoadedMsg{path: path, text: string(data)}
	}
}

func (p *textPicker) visibleRows() int {
	return max(p.height-8, 5)
}

func (p *textPicker) scroll() {
	rows := p.visibleRows()
	if p.selected < p.offset {
		p.offset = p.selected
	}
	if p.selected >= p.offset+rows {
		p.offset = p.selected - rows + 1
	}
}

func (p textPicker) view() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Open text file"))
	b.WriteString("\n")
	b.WriteString(ServerStyle.Render(p.dir))
	b.WriteString("\n")

	if p.err != nil {
		b.WriteString(UnhealthyStyle.Render("Error: " + p.err.Error()))
		b.WriteString("\n")
	}

	rule := lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("─", max(min(p.width-4, 60), 10)))
	b.WriteString(rule)
	b.WriteString("\n")

	if len(p.entries) == 0 {
		b.WriteString(HelpStyle.Render("  (no text files here)"))
		b.WriteString("\n")
	}

	end := min(p.offset+p.visibleRows(), len(p.entries))
	for i := p.offset; i < end; i++ {
		entry := p.entries[i]

		line := entry.name
		style := BreakdownLabelStyle
		if entry.isDir {
			line += "/"
			style = SubtitleStyle
		}

		prefix := "  "
		if i == p.selected {
			prefix = "> "
			style = ScorePillStyle
		}
		b.WriteString(prefix + style.Render(line) + "\n")
	}

	b.WriteString(rule)
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter: open • backspace: parent • ~: home • esc: cancel"))

	return b.String()
}
