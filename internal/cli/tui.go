package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"sccmap/pkg/components"
	"sccmap/pkg/digraph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// memberPreviewLimit is the number of member labels shown in the list view.
const memberPreviewLimit = 3

// componentEntry is one row of the browser: a component with its member
// labels resolved for display.
type componentEntry struct {
	Name   string
	IDs    []string
	Labels []string
}

// =============================================================================
// ComponentListModel - Interactive component browser
// =============================================================================

// ComponentListModel is the bubbletea model for browsing components.
// The list view shows one row per component; enter opens a member view for
// the component under the cursor.
type ComponentListModel struct {
	Entries []componentEntry
	Cursor  int
	Offset  int
	Height  int
	Inspect bool // member view for the component under the cursor
}

// NewComponentListModel builds the browser model from a tagged graph and its
// registry. Member labels fall back to the node id when empty.
func NewComponentListModel(g *digraph.Graph, comps []components.Component) ComponentListModel {
	entries := make([]componentEntry, len(comps))
	for i, comp := range comps {
		labels := make([]string, len(comp.Members))
		for j, id := range comp.Members {
			labels[j] = id
			if n, ok := g.Node(id); ok && n.Label != "" {
				labels[j] = n.Label
			}
		}
		entries[i] = componentEntry{Name: comp.Name, IDs: comp.Members, Labels: labels}
	}
	return ComponentListModel{
		Entries: entries,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m ComponentListModel) Init() tea.Cmd {
	return nil
}

func (m ComponentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace", "left":
			if m.Inspect {
				m.Inspect = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Inspect {
				return m, nil
			}
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Inspect {
				return m, nil
			}
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right":
			if len(m.Entries) > 0 {
				m.Inspect = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ComponentListModel) View() string {
	if m.Inspect {
		return m.memberView()
	}
	return m.listView()
}

// listView renders the component table.
func (m ComponentListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Components"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ inspect  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{cursor, e.Name, fmt.Sprintf("%d", len(e.IDs)), memberPreview(e.Labels)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Component", "Size", "Members").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// memberView renders the member list for the component under the cursor.
func (m ComponentListModel) memberView() string {
	e := m.Entries[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(e.Name))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d members", len(e.IDs))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	shown := len(e.IDs)
	if shown > m.Height {
		shown = m.Height
	}
	for i := 0; i < shown; i++ {
		line := "  " + e.Labels[i]
		if e.Labels[i] != e.IDs[i] {
			line += listDimStyle.Render(" (" + e.IDs[i] + ")")
		}
		b.WriteString(listNormalStyle.Render(line))
		b.WriteString("\n")
	}
	if rest := len(e.IDs) - shown; rest > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more", rest)))
		b.WriteString("\n")
	}

	return b.String()
}

// memberPreview joins the first few labels for the list view.
func memberPreview(labels []string) string {
	if len(labels) <= memberPreviewLimit {
		return strings.Join(labels, ", ")
	}
	return strings.Join(labels[:memberPreviewLimit], ", ") + ", …"
}
