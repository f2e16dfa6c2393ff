package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julien-sobczak/the-notebook/internal/core"
)

/*
 * The command nb open uses Bubble Tea under the hood to provide an interactive editor.
 * Every cell is displayed in preview. Pressing enter opens an editor scoped to the selected cell.
 * All BubbleTea-related code is present in this file to make easy to refactor or switch to another library someday.
 */

var (
	editorWidth = 80

	cellHeaderStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cellSelectedHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	cellCodeStyle           = lipgloss.NewStyle().PaddingLeft(2)
	cellMarkdownStyle       = lipgloss.NewStyle().PaddingLeft(2).Italic(true)
	errorStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle               = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingTop(1)
)

/*
 * Surface
 */

// terminalSurface renders cell views as text areas.
type terminalSurface struct {
	editors []*terminalEditor
}

type terminalEditor struct {
	surface  *terminalSurface
	textarea textarea.Model
	onChange func(text string)
}

func (s *terminalSurface) Render(initialText string, onChange func(text string)) (core.Handle, error) {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.SetWidth(editorWidth)
	ta.SetHeight(strings.Count(initialText, "\n") + 2)
	ta.SetValue(initialText)
	ta.Focus()

	editor := &terminalEditor{
		surface:  s,
		textarea: ta,
		onChange: onChange,
	}
	s.editors = append(s.editors, editor)
	return editor, nil
}

// current returns the editor receiving keystrokes.
func (s *terminalSurface) current() *terminalEditor {
	if len(s.editors) == 0 {
		return nil
	}
	return s.editors[len(s.editors)-1]
}

func (e *terminalEditor) Dispose() error {
	for i, editor := range e.surface.editors {
		if editor == e {
			e.surface.editors = append(e.surface.editors[:i], e.surface.editors[i+1:]...)
			break
		}
	}
	e.textarea.Blur()
	return nil
}

// Update forwards a message to the text area and reports the new text when it changed.
func (e *terminalEditor) Update(msg tea.Msg) tea.Cmd {
	before := e.textarea.Value()
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	if after := e.textarea.Value(); after != before {
		e.textarea.SetHeight(strings.Count(after, "\n") + 2)
		e.onChange(after)
	}
	return cmd
}

/*
 * Notebook
 */

type NotebookModel struct {
	notebook *core.Notebook
	session  *core.Session
	surface  *terminalSurface
	cursor   int
	editing  string // id of the active cell
	err      error
	quitting bool
}

func NewNotebookModel(nb *core.Notebook, strategy core.Strategy) NotebookModel {
	surface := &terminalSurface{}
	return NotebookModel{
		notebook: nb,
		session:  core.NewSession(nb, surface, core.MarkdownRendererFunc(renderMarkdownPreview), strategy),
		surface:  surface,
	}
}

// renderMarkdownPreview keeps Markdown sources as is. The terminal cannot display HTML.
func renderMarkdownPreview(source string) string {
	return source
}

func (m NotebookModel) Init() tea.Cmd {
	return nil
}

func (m NotebookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		editorWidth = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		if m.editing != "" {
			return m.updateEditor(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.err = m.session.Close()
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.notebook.Cells())-1 {
				m.cursor++
			}
		case "enter":
			cells := m.notebook.Cells()
			if m.cursor >= len(cells) {
				return m, nil
			}
			id := cells[m.cursor].ID
			m.err = m.session.Activate(id)
			if m.err == nil {
				m.editing = id
			}
		}
	}
	return m, nil
}

func (m NotebookModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.err = m.session.Close()
		m.quitting = true
		return m, tea.Quit
	case "esc":
		// Flush the buffered edit before going back to the preview
		m.err = m.session.Deactivate(m.editing)
		if m.err == nil {
			m.editing = ""
		}
		return m, nil
	}
	editor := m.surface.current()
	if editor == nil {
		// The cell disappeared meanwhile
		m.editing = ""
		return m, nil
	}
	return m, editor.Update(msg)
}

func (m NotebookModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	for i, cell := range m.notebook.Cells() {
		header := fmt.Sprintf("%s %s %s", cell.ID, cell.Kind, cell.Range)
		if i == m.cursor {
			sb.WriteString(cellSelectedHeaderStyle.Render("> " + header))
		} else {
			sb.WriteString(cellHeaderStyle.Render("  " + header))
		}
		sb.WriteString("\n")

		if cell.ID == m.editing {
			if editor := m.surface.current(); editor != nil {
				sb.WriteString(editor.textarea.View())
				sb.WriteString("\n")
				continue
			}
		}
		preview, err := m.session.Preview(cell.ID)
		if err != nil {
			continue
		}
		style := cellCodeStyle
		text := preview.Text
		if cell.Kind == core.KindMarkdown {
			style = cellMarkdownStyle
			text = preview.HTML
		}
		sb.WriteString(style.Render(text))
		sb.WriteString("\n")
	}

	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()))
		sb.WriteString("\n")
	}
	if m.editing != "" {
		sb.WriteString(helpStyle.Render("esc: apply • ctrl+c: quit"))
	} else {
		sb.WriteString(helpStyle.Render("↑/k ↓/j: move • enter: edit • q: quit"))
	}
	return sb.String()
}

// EditNotebook runs the interactive editor until the user quits.
func EditNotebook(nb *core.Notebook, strategy core.Strategy) error {
	res, err := tea.NewProgram(NewNotebookModel(nb, strategy)).Run()
	if err != nil {
		return err
	}
	if m, ok := res.(NotebookModel); ok {
		return m.err
	}
	return nil
}
