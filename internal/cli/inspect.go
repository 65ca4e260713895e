package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/siderail/pkg/pipeline"
	"github.com/matzehuels/siderail/pkg/plan"
	"github.com/matzehuels/siderail/pkg/rail"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// inspectCommand creates the inspect command, an interactive region browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var fromPlan, noCache bool

	cmd := &cobra.Command{
		Use:   "inspect [document|plan]",
		Short: "Browse rails and regions interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], fromPlan, noCache)
		},
	}

	cmd.Flags().BoolVar(&fromPlan, "plan", false, "input is a plan file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, fromPlan, noCache bool) error {
	var p *plan.Plan
	if fromPlan {
		var err error
		if p, err = plan.ReadFile(input); err != nil {
			return err
		}
	} else {
		runner, err := c.newRunner(ctx, noCache)
		if err != nil {
			return err
		}
		defer runner.Close()

		doc, err := c.loadDocument(ctx, input, runner.Cache, false)
		if err != nil {
			return err
		}
		if p, err = runner.Plan(ctx, doc, pipeline.Options{}); err != nil {
			return err
		}
	}

	m := NewRegionBrowserModel(p)
	if len(m.Rows) == 0 {
		printInfo("No regions in %s", input)
		return nil
	}
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// =============================================================================
// RegionBrowserModel - Interactive region list
// =============================================================================

// RegionRow is one region with the rail it belongs to.
type RegionRow struct {
	Rail   string
	Region plan.Region
}

// RegionBrowserModel is the bubbletea model of the inspect command. It lists
// every region and shows the children of the one under the cursor.
type RegionBrowserModel struct {
	Plan       *plan.Plan
	Rows       []RegionRow
	Cursor     int
	Offset     int
	Height     int
	ShowDetail bool
}

// NewRegionBrowserModel flattens the regions of p into rows.
func NewRegionBrowserModel(p *plan.Plan) RegionBrowserModel {
	var rows []RegionRow
	for _, r := range p.Rails {
		for _, reg := range r.Regions {
			rows = append(rows, RegionRow{Rail: r.Name, Region: reg})
		}
	}
	return RegionBrowserModel{
		Plan:       p,
		Rows:       rows,
		Height:     10,
		ShowDetail: true,
	}
}

func (m RegionBrowserModel) Init() tea.Cmd {
	return nil
}

func (m RegionBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.ShowDetail = !m.ShowDetail
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height/2-4, 3)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m RegionBrowserModel) View() string {
	var b strings.Builder

	title := "Regions"
	if m.Plan.Title != "" {
		title += " · " + m.Plan.Title
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			r.Rail,
			r.Region.ID,
			fmt.Sprintf("%.0f", r.Region.Top),
			fmt.Sprintf("%.0f", r.Region.Height),
			fmt.Sprintf("%.0f", r.Region.FreeSpace),
			fmt.Sprintf("%d", len(r.Region.Children)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Rail", "Region", "Top", "Height", "Free", "Children").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			if idx == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 && m.Rows[idx].Region.HasClass(rail.ClassRegionSufficient) {
				return styleSufficient
			}
			if col >= 3 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if m.ShowDetail && m.Cursor < len(m.Rows) {
		b.WriteString(detailBoxStyle.Render(regionDetail(m.Rows[m.Cursor])))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	if n := len(m.Plan.Leftover); n > 0 {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("  %d leftover slots", n)))
	}

	return b.String()
}

// regionDetail lists the classes and children of a region.
func regionDetail(r RegionRow) string {
	var b strings.Builder
	b.WriteString(StyleValue.Render(r.Region.ID))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Join(r.Region.Classes, " ")))
	if len(r.Region.Children) == 0 {
		b.WriteString("\n" + listDimStyle.Render("empty"))
	}
	for _, c := range r.Region.Children {
		line := childStyle(c.Kind).Render(c.Kind) + " " + c.ID
		if c.Height > 0 {
			line += listDimStyle.Render(fmt.Sprintf(" %.0fpx", c.Height))
		}
		for _, k := range slices.Sorted(maps.Keys(c.Dataset)) {
			line += listDimStyle.Render(fmt.Sprintf(" %s=%s", k, c.Dataset[k]))
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}
