package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/clusterview/pkg/io"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// GeneListModel - Interactive gene selection
// =============================================================================

// GeneListModel is the bubbletea model for picking one gene of a transcript set.
type GeneListModel struct {
	Genes    []io.GeneSet
	Cursor   int
	Selected *io.GeneSet
	Height   int
	Offset   int
}

// NewGeneListModel creates a new gene list model.
func NewGeneListModel(genes []io.GeneSet) GeneListModel {
	return GeneListModel{
		Genes:  genes,
		Height: 15,
	}
}

func (m GeneListModel) Init() tea.Cmd {
	return nil
}

func (m GeneListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Genes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Genes) == 0 {
				return m, tea.Quit
			}
			m.Selected = &m.Genes[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m GeneListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Gene"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Genes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		g := m.Genes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		annotated, reads := countTranscripts(g)
		chrom := g.Chrom
		if chrom == "" {
			chrom = "—"
		}
		rows = append(rows, []string{cursor, g.Gene, chrom, strconv.Itoa(annotated), strconv.Itoa(reads)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Gene", "Chrom", "Annotated", "Clusters").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			isCurrent := idx == m.Cursor

			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				if col < 2 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorGray).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Genes))))

	return b.String()
}

// countTranscripts returns the number of annotated and read-derived
// transcripts in g.
func countTranscripts(g io.GeneSet) (annotated, reads int) {
	for _, t := range g.Transcripts {
		if t.Annotated {
			annotated++
		} else {
			reads++
		}
	}
	return annotated, reads
}
