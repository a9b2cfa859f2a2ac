package nodes

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/synapse-cli/internal/application"
	"github.com/bnema/synapse-cli/internal/domain"
)

const (
	temperatureBarWidth = 20
	maxTemperature      = 2.0
)

type Catalog struct {
	Agents   []application.AgentSummary
	Builtins []string
	Routes   []domain.Route
	Skipped  []error
}

type RenderOptions struct {
	ShowSources bool
}

func renderView(catalog Catalog, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Synapse Nodes"),
		s.header.Render(fmt.Sprintf("agents: %d  routes: %d", len(catalog.Agents), len(catalog.Routes))),
	}

	if len(catalog.Builtins) > 0 {
		lines = append(lines, s.builtin.Render("built-in: "+strings.Join(catalog.Builtins, ", ")))
	}

	if len(catalog.Agents) == 0 {
		lines = append(lines, s.empty.Render("No agent definitions found."))
	}
	for _, agent := range catalog.Agents {
		lines = append(lines, s.section.Render(renderAgent(agent, opts, s)))
	}

	if len(catalog.Routes) > 0 {
		routeLines := []string{s.title.Render("Routes")}
		for _, route := range catalog.Routes {
			routeLines = append(routeLines, renderRoute(route, s))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, routeLines...)))
	}

	if len(catalog.Skipped) > 0 {
		skipped := []string{s.warning.Render(fmt.Sprintf("skipped files: %d", len(catalog.Skipped)))}
		for _, err := range catalog.Skipped {
			skipped = append(skipped, s.meta.Render("  "+err.Error()))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, skipped...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAgent(agent application.AgentSummary, opts RenderOptions, s styles) string {
	parts := []string{
		s.agent.Render(agentTitle(agent)),
		s.detail.Render("model: " + agent.Model),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.key.Render("temperature:"),
			" ",
			renderGauge(agent.Temperature/maxTemperature, temperatureBarWidth, s),
			" ",
			s.meta.Render(fmt.Sprintf("%.2f", agent.Temperature)),
		),
		s.detail.Render(historyLabel(agent.MaxHistoryTurns)),
	}

	if opts.ShowSources && agent.Source != "" {
		parts = append(parts, s.meta.Render("source: "+agent.Source))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderRoute(route domain.Route, s styles) string {
	separator := " -> "
	if route.Kind == domain.RouteKindBroadcast {
		separator = ", "
	}

	line := fmt.Sprintf("%s [%s] %s", route.ID, route.Kind, strings.Join(route.NodeStrings(), separator))
	if route.Description != "" {
		line += s.meta.Render("  " + route.Description)
	}
	return s.detail.Render(line)
}

func agentTitle(agent application.AgentSummary) string {
	name := strings.TrimSpace(agent.Name)
	if name == "" || name == string(agent.ID) {
		return string(agent.ID)
	}
	return fmt.Sprintf("%s (%s)", name, agent.ID)
}

func historyLabel(maxHistoryTurns int) string {
	if maxHistoryTurns <= 0 {
		return "history: instructions only"
	}

	suffix := "exchanges"
	if maxHistoryTurns == 1 {
		suffix = "exchange"
	}
	return fmt.Sprintf("history: %d %s (%d turns)", maxHistoryTurns, suffix, domain.HistoryLimit(maxHistoryTurns))
}

func renderGauge(fraction float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampFraction(fraction)))
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampFraction(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
