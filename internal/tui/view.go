package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(m.renderError())
	}

	if m.loading {
		return m.renderApp(m.renderLoading())
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.renderHome()
	case SceneModels:
		content = m.renderModels()
	case SceneBaseCase:
		content = m.renderBaseCase()
	case SceneSensitivity:
		content = m.renderSensitivity()
	case SceneBudget:
		content = m.renderBudget()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4
	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("HTEval - Health Economics Evaluation")

	breadcrumb := m.currentScene.String()
	if m.selectedModel != "" {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.selectedModel)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("m", "models"),
		formatShortcut("b", "base case"),
		formatShortcut("s", "sensitivity"),
		formatShortcut("i", "budget impact"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}

	statusText := strings.Join(shortcuts, " • ")

	if m.portfolio != nil {
		loaded := SubtitleStyle.Render(fmt.Sprintf("%d model(s)", len(m.portfolio.Models)))
		width := m.width - lipgloss.Width(statusText) - 4
		if width > 0 {
			statusText = statusText + strings.Repeat(" ", width) + loaded
		}
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return BorderStyle.Render("⠋ " + message)
}

// renderError renders an error message
func (m Model) renderError() string {
	return ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
}

// renderHome renders the home dashboard
func (m Model) renderHome() string {
	if m.portfolio == nil {
		return BorderStyle.Render("Welcome to HTEval!\n\nLoading portfolio...")
	}

	var b strings.Builder
	b.WriteString("Welcome to HTEval!\n\n")
	b.WriteString(fmt.Sprintf("Portfolio loaded: %d model(s)\n", len(m.portfolio.Models)))
	if m.selectedModel != "" {
		b.WriteString(fmt.Sprintf("Selected model:   %s\n", m.selectedModel))
	}
	b.WriteString("\n")
	b.WriteString(HintStyle.Render("Press m to browse models, b/s/i to run analyses"))

	return BorderStyle.Render(b.String())
}

// renderModels renders the model list with details for the highlighted entry
func (m Model) renderModels() string {
	if m.portfolio == nil || len(m.portfolio.Models) == 0 {
		return BorderStyle.Render("No models in portfolio.\n\nPress ESC to return to home.")
	}

	var list strings.Builder
	for i := range m.portfolio.Models {
		pm := &m.portfolio.Models[i]
		line := fmt.Sprintf("%s (%s)", pm.Name, pm.ModelType)
		if pm.ID == m.selectedModel {
			line += " *"
		}
		if i == m.selectedIndex {
			list.WriteString(SelectedItemStyle.Render("> " + line))
		} else {
			list.WriteString(UnselectedItemStyle.Render("  " + line))
		}
		list.WriteString("\n")
	}

	leftPane := BorderStyle.Width(44).Render(
		MetricLabelStyle.Render("Models") + "\n\n" + list.String(),
	)

	pm := &m.portfolio.Models[m.selectedIndex]
	var detail strings.Builder
	detail.WriteString(MetricLabelStyle.Render(pm.Name))
	detail.WriteString("\n\n")
	detail.WriteString(fmt.Sprintf("ID:            %s\n", pm.ID))
	detail.WriteString(fmt.Sprintf("Type:          %s\n", pm.ModelType))
	detail.WriteString(fmt.Sprintf("Currency:      %s\n", pm.Currency))
	detail.WriteString(fmt.Sprintf("Time horizon:  %s\n", pm.TimeHorizon))
	detail.WriteString(fmt.Sprintf("Discount rate: %s\n", pm.DiscountRate.String()))
	detail.WriteString(fmt.Sprintf("Parameters:    %d\n", len(pm.Parameters)))
	if pm.Description != "" {
		detail.WriteString("\n" + pm.Description + "\n")
	}
	detail.WriteString("\n")
	detail.WriteString(HintStyle.Render("Press Enter to select this model"))

	rightPane := BorderStyle.Width(56).Render(detail.String())

	content := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, "  ", rightPane)
	content += "\n\n↑/k up • ↓/j down • Enter select • ESC back"
	return content
}

// renderBaseCase renders the latest base case result
func (m Model) renderBaseCase() string {
	r := m.baseCaseResult
	if r == nil {
		return BorderStyle.Render("No base case result yet.\n\nPress b to run the base case.")
	}

	var b strings.Builder
	b.WriteString(MetricLabelStyle.Render("Base Case Analysis"))
	b.WriteString("\n\n")
	b.WriteString(metricLine("Model", r.ModelID))
	b.WriteString(metricLine("Type", string(r.ModelType)))
	b.WriteString(metricLine("Total cost", r.TotalCost.StringFixed(2)+" "+string(r.Currency)))
	if r.TotalEffect != nil {
		b.WriteString(metricLine("Total effect", r.TotalEffect.StringFixed(4)))
	}
	if r.ICER != nil {
		b.WriteString(metricLine("ICER", r.ICER.StringFixed(2)+" "+string(r.Currency)+"/unit"))
	}
	b.WriteString(metricLine("Parameters", fmt.Sprintf("%d", r.ParameterCount)))

	return BorderStyle.Render(b.String())
}

// renderSensitivity renders the latest sensitivity analysis
func (m Model) renderSensitivity() string {
	r := m.sensitivityResult
	if r == nil {
		return BorderStyle.Render("No sensitivity result yet.\n\nPress s to run the analysis.")
	}

	var b strings.Builder
	b.WriteString(MetricLabelStyle.Render(fmt.Sprintf("Sensitivity Analysis (%s)", r.AnalysisType)))
	b.WriteString("\n\n")

	if len(r.Tornado) > 0 {
		b.WriteString("Tornado (cost spread per parameter):\n")
		maxSpread := r.Tornado[0].Spread
		for _, entry := range r.Tornado {
			bar := tornadoBar(entry.Spread, maxSpread, 30)
			b.WriteString(fmt.Sprintf("  %-24s %s %s\n",
				entry.Parameter, bar, entry.Spread.StringFixed(2)))
		}
	}

	if p := r.Probabilistic; p != nil {
		b.WriteString(fmt.Sprintf("Iterations:       %d\n", p.Iterations))
		b.WriteString(fmt.Sprintf("Mean cost:        %s\n", p.MeanCost.StringFixed(2)))
		b.WriteString(fmt.Sprintf("Mean effect:      %s\n", p.MeanEffect.StringFixed(4)))
		if low, ok := p.CostPercentiles["2.5th"]; ok {
			high := p.CostPercentiles["97.5th"]
			b.WriteString(fmt.Sprintf("Cost 95%% CrI:     %s to %s\n",
				low.StringFixed(2), high.StringFixed(2)))
		}
		b.WriteString(fmt.Sprintf("P(cost-effective) %s at WTP %s\n",
			p.ProbCostEffective.StringFixed(3), p.WTPThreshold.StringFixed(0)))
	}

	return BorderStyle.Render(b.String())
}

// renderBudget renders the latest budget impact projection
func (m Model) renderBudget() string {
	r := m.budgetResult
	if r == nil {
		return BorderStyle.Render("No budget impact result yet.\n\nPress i to run the projection.")
	}

	var b strings.Builder
	b.WriteString(MetricLabelStyle.Render("Budget Impact Projection"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%-6s %-8s %-10s %-14s %-14s\n",
		"Year", "Uptake", "Patients", "Total Cost", "Net Impact"))
	for _, year := range r.Years {
		b.WriteString(fmt.Sprintf("%-6d %-8s %-10d %-14s %-14s\n",
			year.Year,
			year.UptakeRate.StringFixed(2),
			year.TreatedPatients,
			year.TotalCost.StringFixed(2),
			year.NetImpact.StringFixed(2)))
	}
	b.WriteString("\n")
	b.WriteString(metricLine("Cumulative net impact", r.CumulativeNetImpact.StringFixed(2)+" "+string(r.Currency)))
	b.WriteString(metricLine("Discounted net impact", r.DiscountedNetImpact.StringFixed(2)+" "+string(r.Currency)))
	b.WriteString(metricLine("Patients treated", fmt.Sprintf("%d", r.CumulativePatients)))
	b.WriteString(metricLine("Avg cost per patient", r.AverageCostPerPatient.StringFixed(2)))

	return BorderStyle.Render(b.String())
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `HTEval - Health Economics Evaluation

KEYBOARD SHORTCUTS:
  h        Navigate to Home
  m        Browse models
  b        Run base case for the selected model
  s        Run sensitivity analysis for the selected model
  i        Run budget impact projection for the selected model
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

MODEL LIST:
  Use arrow keys (or j/k) to move
  Enter selects the highlighted model for analysis
`

	return BorderStyle.Render(helpText)
}

// metricLine formats a padded label/value pair
func metricLine(label, value string) string {
	return fmt.Sprintf("%s %s\n",
		MetricLabelStyle.Render(fmt.Sprintf("%-22s", label+":")),
		MetricValueStyle.Render(value))
}

// tornadoBar renders a bar proportional to spread/maxSpread
func tornadoBar(spread, maxSpread decimal.Decimal, width int) string {
	w := 1
	if maxSpread.IsPositive() {
		ratio := spread.InexactFloat64() / maxSpread.InexactFloat64()
		w = int(ratio * float64(width))
		if w < 1 {
			w = 1
		}
	}
	return strings.Repeat("█", w)
}
