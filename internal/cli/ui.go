package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/netscore/pkg/metrics"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
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

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

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
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(22)
	styleScoreHi = lipgloss.NewStyle().Foreground(colorGreen)
	styleScoreMd = lipgloss.NewStyle().Foreground(colorYellow)
	styleScoreLo = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"

	barWidth = 20
	barFull  = "█"
	barEmpty = "░"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// =============================================================================
// Report Output
// =============================================================================

// printReport renders one report as a titled block of score bars.
func printReport(w io.Writer, r *metrics.Report) {
	fmt.Fprintln(w, StyleTitle.Render(packageName(r.URL))+"  "+StyleLink.Render(r.URL))
	printScore(w, "NetScore", r.NetScore, r.NetScoreLatency)
	printScore(w, "Bus factor", r.BusFactor, r.BusFactorLatency)
	printScore(w, "Correctness", r.Correctness, r.CorrectnessLatency)
	printScore(w, "License", r.License, r.LicenseLatency)
	printScore(w, "Ramp-up", r.RampUp, r.RampUpLatency)
	printScore(w, "Responsive maintainer", r.ResponsiveMaintainer, r.ResponsiveMaintainerLatency)
}

// printScore prints a labeled score with a bar and its latency.
func printScore(w io.Writer, label string, score, latency float64) {
	fmt.Fprintln(w, "  "+styleLabel.Render(label)+" "+
		scoreStyle(score).Render(fmt.Sprintf("%.2f", score))+" "+
		scoreStyle(score).Render(scoreBar(score, barWidth))+" "+
		StyleDim.Render(fmt.Sprintf("%.2fs", latency)))
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.7:
		return styleScoreHi
	case score >= 0.4:
		return styleScoreMd
	default:
		return styleScoreLo
	}
}

// scoreBar draws score, clamped to [0,1], as a bar of width cells.
func scoreBar(score float64, width int) string {
	filled := int(score*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return strings.Repeat(barFull, filled) + strings.Repeat(barEmpty, width-filled)
}

// packageName derives a short display name from a package URL.
func packageName(url string) string {
	if i := strings.Index(url, "/package/"); i >= 0 {
		return url[i+len("/package/"):]
	}
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return url
}

// printNewline prints an empty line.
func printNewline(w io.Writer) {
	fmt.Fprintln(w)
}
