package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/genotile/genotile/pkg/fasta"
)

// List styles
var (
	listNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ContigListModel - Interactive contig selection
// =============================================================================

// contigEntry is one selectable row.
type contigEntry struct {
	Name   string
	Length int64
}

// ContigListModel is the bubbletea model for interactive contig selection.
type ContigListModel struct {
	Contigs  []contigEntry
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewContigListModel creates a new contig list model.
func NewContigListModel(contigs []contigEntry) ContigListModel {
	return ContigListModel{
		Contigs: contigs,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m ContigListModel) Init() tea.Cmd {
	return nil
}

func (m ContigListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Contigs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Contigs[m.Cursor].Name
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ContigListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Contig"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Contigs) {
		end = len(m.Contigs)
	}

	for i := m.Offset; i < end; i++ {
		entry := m.Contigs[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = StyleHighlight
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(entry.Name))
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d bp", entry.Length)))
		b.WriteString("\n")
	}

	if len(m.Contigs) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d", m.Cursor+1, len(m.Contigs))))
	}
	return b.String()
}

// =============================================================================
// Picker Entry Point
// =============================================================================

// pickContig scans the input for contig names and runs the interactive
// picker. Returns the empty string if the user quits without selecting.
func (c *CLI) pickContig(ctx context.Context, input string) (string, error) {
	spinner := newSpinnerWithContext(ctx, "Scanning contigs...")
	spinner.Start()

	var entries []contigEntry
	rc, err := fasta.Open(input)
	if err != nil {
		spinner.StopWithError("Scan failed")
		return "", err
	}
	err = fasta.Stream(ctx, rc, func(r fasta.Record) error {
		entries = append(entries, contigEntry{Name: r.Name, Length: r.Length()})
		return nil
	})
	rc.Close()
	if err != nil {
		spinner.StopWithError("Scan failed")
		return "", err
	}
	spinner.Stop()

	if len(entries) == 0 {
		return "", fmt.Errorf("no contigs in %s", input)
	}
	if len(entries) == 1 {
		return entries[0].Name, nil
	}

	p := tea.NewProgram(NewContigListModel(entries), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("contig picker: %w", err)
	}
	model, ok := final.(ContigListModel)
	if !ok {
		return "", nil
	}
	return model.Selected, nil
}
