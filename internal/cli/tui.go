package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/siddlokray/cortica/pkg/cluster"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// memberColumns is the column count for the expanded member view.
const memberColumns = 3

// ClusterBrowserModel is the bubbletea model for browsing cluster
// assignments: a scrollable cluster list that expands into the member
// regions of the selected cluster.
type ClusterBrowserModel struct {
	Stats    []cluster.Stat
	Cursor   int
	Expanded bool
	Height   int
	Offset   int
}

// NewClusterBrowserModel creates a browser over per-cluster statistics.
func NewClusterBrowserModel(stats []cluster.Stat) ClusterBrowserModel {
	return ClusterBrowserModel{
		Stats:  stats,
		Height: 15,
	}
}

func (m ClusterBrowserModel) Init() tea.Cmd {
	return nil
}

func (m ClusterBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Expanded {
				m.Expanded = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Stats)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			if len(m.Stats) > 0 {
				m.Expanded = !m.Expanded
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ClusterBrowserModel) View() string {
	if m.Expanded && m.Cursor < len(m.Stats) {
		return m.memberView(m.Stats[m.Cursor])
	}
	return m.listView()
}

// listView renders the scrollable cluster table.
func (m ClusterBrowserModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Cluster Browser"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Stats) {
		end = len(m.Stats)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Stats[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		mean, span := "—", "—"
		if s.Size > 1 {
			mean = fmt.Sprintf("%.3f", s.Mean)
			span = fmt.Sprintf("[%.3f, %.3f]", s.Min, s.Max)
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("Cluster %d", s.Label),
			fmt.Sprintf("%d", s.Size),
			mean,
			span,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("", "Cluster", "Regions", "Mean", "Range").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Stats))))

	return b.String()
}

// memberView renders the member regions of one cluster in columns.
func (m ClusterBrowserModel) memberView(s cluster.Stat) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Cluster %d", s.Label)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	if s.Size > 1 {
		b.WriteString(fmt.Sprintf("  %d regions · mean %.3f · std %.3f · range [%.3f, %.3f]\n\n",
			s.Size, s.Mean, s.Std, s.Min, s.Max))
	} else {
		b.WriteString("  1 region\n\n")
	}

	rows := [][]string{}
	for i := 0; i < len(s.Regions); i += memberColumns {
		row := make([]string, memberColumns)
		for j := 0; j < memberColumns; j++ {
			if i+j < len(s.Regions) {
				row[j] = s.Regions[i+j]
			}
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return listNormalStyle
		})

	b.WriteString(t.Render())

	return b.String()
}
