package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/siderail/pkg/plan"
	"github.com/matzehuels/siderail/pkg/rail"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - sufficient regions, success
	colorYellow = lipgloss.Color("220") // Amber - warnings, slots
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorPurple = lipgloss.Color("140") // Lilac - items
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleHeader     = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleSufficient = lipgloss.NewStyle().Foreground(colorGreen)
	styleSlot       = lipgloss.NewStyle().Foreground(colorYellow)
	styleItem       = lipgloss.NewStyle().Foreground(colorPurple)
	styleCommand    = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Plan Display
// =============================================================================

// printStats prints plan counts on a single line.
func printStats(p *plan.Plan, cached bool) {
	parts := []string{
		fmt.Sprintf("%d rails", len(p.Rails)),
		fmt.Sprintf("%d regions", p.RegionCount()),
		fmt.Sprintf("%d slots", p.Count(plan.KindSlot)),
		fmt.Sprintf("%d items", p.Count(plan.KindItem)),
	}
	if n := len(p.Leftover); n > 0 {
		parts = append(parts, fmt.Sprintf("%d leftover", n))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line + StyleDim.Render(" · ") + statusStyle.Render(status))
}

// regionTable renders every region of p as a table, one row per region.
func regionTable(p *plan.Plan) string {
	var rows [][]string
	var sufficient []bool
	for _, r := range p.Rails {
		for _, reg := range r.Regions {
			rows = append(rows, []string{
				r.Name,
				reg.ID,
				fmt.Sprintf("%.0f", reg.Top),
				fmt.Sprintf("%.0f", reg.Height),
				fmt.Sprintf("%.0f", reg.FreeSpace),
				childList(reg.Children),
			})
			sufficient = append(sufficient, reg.HasClass(rail.ClassRegionSufficient))
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Rail", "Region", "Top", "Height", "Free", "Children").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 1 && row < len(sufficient) && sufficient[row] {
				return styleSufficient
			}
			if col >= 2 && col <= 4 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func childList(children []plan.Child) string {
	if len(children) == 0 {
		return "—"
	}
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = childStyle(c.Kind).Render(c.ID)
	}
	return strings.Join(names, ", ")
}

func childStyle(kind string) lipgloss.Style {
	if kind == plan.KindItem {
		return styleItem
	}
	return styleSlot
}

// printRegions writes the region table and any leftover slots to w.
func printRegions(w io.Writer, p *plan.Plan) {
	fmt.Fprintln(w, regionTable(p))
	if len(p.Leftover) > 0 {
		fmt.Fprintln(w, StyleWarning.Render("  leftover: "+strings.Join(p.Leftover, ", ")))
	}
}
