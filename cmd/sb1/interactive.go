package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/urfave/cli.v1"
	"sigs.k8s.io/yaml"

	"github.com/wippyai/sb1/squeak"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	classStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// listHeight is the number of rows shown above the detail pane.
const listHeight = 12

// frame is one level of the browser: the values listed and the cursor.
type frame struct {
	label    string
	items    []squeak.Value
	selected int
	offset   int
}

type inspectModel struct {
	filename string
	stack    []frame
	detail   viewport.Model
	width    int
}

func newInspectModel(filename string, objects []squeak.Value, width, height int) *inspectModel {
	m := &inspectModel{
		filename: filename,
		stack:    []frame{{label: "objects", items: objects}},
		detail:   viewport.New(width, max(height-listHeight-6, 3)),
		width:    width,
	}
	m.refreshDetail()
	return m
}

func (m *inspectModel) Init() tea.Cmd { return nil }

func (m *inspectModel) top() *frame { return &m.stack[len(m.stack)-1] }

func (m *inspectModel) current() squeak.Value {
	f := m.top()
	if f.selected < 0 || f.selected >= len(f.items) {
		return nil
	}
	return f.items[f.selected]
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		f := m.top()
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if f.selected > 0 {
				f.selected--
				m.scroll()
				m.refreshDetail()
			}

		case "down", "j":
			if f.selected < len(f.items)-1 {
				f.selected++
				m.scroll()
				m.refreshDetail()
			}

		case "enter", "right", "l":
			if children := childrenOf(m.current()); len(children) > 0 {
				m.stack = append(m.stack, frame{label: describe(m.current()), items: children})
				m.refreshDetail()
			}

		case "esc", "backspace", "left", "h":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
				m.refreshDetail()
			}

		default:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.detail.Width = msg.Width
		m.detail.Height = max(msg.Height-listHeight-6, 3)
	}
	return m, nil
}

// scroll keeps the cursor inside the visible rows.
func (m *inspectModel) scroll() {
	f := m.top()
	if f.selected < f.offset {
		f.offset = f.selected
	}
	if f.selected >= f.offset+listHeight {
		f.offset = f.selected - listHeight + 1
	}
}

func (m *inspectModel) refreshDetail() {
	v := m.current()
	if v == nil {
		m.detail.SetContent("")
		return
	}
	out, err := yaml.Marshal(squeak.Export([]squeak.Value{v}, squeak.ExportOptions{})[0])
	if err != nil {
		m.detail.SetContent(errorStyle.Render(err.Error()))
		return
	}
	m.detail.SetContent(string(out))
	m.detail.GotoTop()
}

func (m *inspectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sb1 inspect"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")

	var path []string
	for _, f := range m.stack {
		path = append(path, f.label)
	}
	b.WriteString(pathStyle.Render(strings.Join(path, " / ")))
	b.WriteString("\n\n")

	f := m.top()
	end := min(f.offset+listHeight, len(f.items))
	for i := f.offset; i < end; i++ {
		line := fmt.Sprintf("%4d  %s", i+1, describe(f.items[i]))
		if i == f.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if len(f.items) == 0 {
		b.WriteString(helpStyle.Render("  (empty)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detail.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter open • esc back • pgup/pgdn scroll • q quit"))
	return b.String()
}

// childrenOf lists the values a node can be expanded into.
func childrenOf(v squeak.Value) []squeak.Value {
	switch x := v.(type) {
	case *squeak.Array:
		return x.Items
	case squeak.Object:
		return x.Base().Fields
	}
	return nil
}

// describe renders a one-line summary of a value.
func describe(v squeak.Value) string {
	switch x := v.(type) {
	case nil:
		return valueStyle.Render("nil")
	case *squeak.Scalar:
		switch s := x.V.(type) {
		case []byte:
			return classStyle.Render(x.ID.String()) + valueStyle.Render(fmt.Sprintf(" [%d bytes]", len(s)))
		case []uint32:
			return classStyle.Render(x.ID.String()) + valueStyle.Render(fmt.Sprintf(" [%d words]", len(s)))
		case string:
			return valueStyle.Render(fmt.Sprintf("%q", s))
		}
		return valueStyle.Render(x.String())
	case *squeak.Array:
		return classStyle.Render(x.ID.String()) + valueStyle.Render(fmt.Sprintf(" (%d)", x.Len()))
	case interface{ Name() string }:
		return classStyle.Render(v.Class().String()) + " " + valueStyle.Render(x.Name())
	case interface{ ObjName() string }:
		return classStyle.Render(v.Class().String()) + " " + valueStyle.Render(x.ObjName())
	case squeak.Object:
		r := x.Base()
		return classStyle.Render(r.ID.String()) + valueStyle.Render(fmt.Sprintf(" v%d (%d fields)", r.Version, len(r.Fields)))
	}
	return fmt.Sprint(v)
}

func inspectCommand(c *cli.Context) error {
	f, path, err := openProject(c)
	if err != nil {
		return err
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return dump(c.App.Writer, f, "json", false)
	}

	objs, err := f.Objects()
	if err != nil {
		return fmt.Errorf("decode objects: %w", err)
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		width, height = 80, 24
	}

	p := tea.NewProgram(newInspectModel(path, objs, width, height), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
