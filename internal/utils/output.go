package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stratizen/stratizen/internal/event"
)

// OutputFormat selects how the list command renders events.
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

// RenderConfig controls event rendering.
type RenderConfig struct {
	Format   OutputFormat
	Width    int
	ShowID   bool
	Color    bool
	Location *time.Location
}

// DefaultRenderConfig sizes the output to the terminal when COLUMNS is
// exported.
func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}

	return &RenderConfig{
		Format:   FormatDefault,
		Width:    width,
		ShowID:   true,
		Color:    true,
		Location: time.Local,
	}
}

// EventList is a page of events plus pagination metadata.
type EventList struct {
	Events     []event.Event `json:"events"`
	Total      int           `json:"total"`
	Page       int           `json:"page,omitempty"`
	PerPage    int           `json:"per_page,omitempty"`
	TotalPages int           `json:"total_pages,omitempty"`
	Group      string        `json:"group,omitempty"`
}

// Renderer formats event lists for the terminal.
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Day       lipgloss.Style
	ID        lipgloss.Style
	Time      lipgloss.Style
	Group     lipgloss.Style
	Text      lipgloss.Style
	Meta      lipgloss.Style
}

func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	return &Renderer{config: config, styles: initStyles(config.Color)}
}

func initStyles(color bool) *Styles {
	styles := &Styles{}

	if color {
		styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
		styles.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
		styles.Day = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA"))
		styles.ID = lipgloss.NewStyle().Faint(true)
		styles.Time = lipgloss.NewStyle().Faint(true)
		styles.Group = lipgloss.NewStyle().Bold(true)
		styles.Text = lipgloss.NewStyle()
		styles.Meta = lipgloss.NewStyle().Faint(true)
	} else {
		styles.Title = lipgloss.NewStyle().Bold(true)
		styles.Separator = lipgloss.NewStyle()
		styles.Day = lipgloss.NewStyle().Bold(true)
		styles.ID = lipgloss.NewStyle()
		styles.Time = lipgloss.NewStyle()
		styles.Group = lipgloss.NewStyle().Bold(true)
		styles.Text = lipgloss.NewStyle()
		styles.Meta = lipgloss.NewStyle()
	}

	return styles
}

// GroupColor maps a category to its display color.
func GroupColor(group string) lipgloss.Color {
	switch strings.ToLower(group) {
	case "clubs":
		return lipgloss.Color("#4DB6AC") // teal
	case "transport":
		return lipgloss.Color("#64B5F6") // light blue
	case "class":
		return lipgloss.Color("#FFB74D") // orange
	case "school":
		return lipgloss.Color("#A6E3A1") // green
	default:
		return lipgloss.Color("#9575CD") // purple
	}
}

// RenderEvents renders a list of events in the configured format.
func (r *Renderer) RenderEvents(list *EventList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(list)
	case FormatCSV:
		return r.renderCSV(list)
	case FormatTable:
		return r.renderTable(list)
	case FormatCompact:
		return r.renderCompact(list)
	case FormatQuiet:
		return r.renderQuiet(list)
	default:
		return r.renderDefault(list)
	}
}

// renderDefault groups events under Today/Tomorrow/weekday headers.
func (r *Renderer) renderDefault(list *EventList) (string, error) {
	var b strings.Builder

	header := "Upcoming Events"
	if list.Group != "" {
		header += "  " + r.styles.Meta.Render("group: "+list.Group)
	}
	b.WriteString(r.styles.Title.Render(header))
	b.WriteString("\n")
	b.WriteString(r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120))))
	b.WriteString("\n")

	now := time.Now().In(r.config.Location)
	lastDay := ""
	for _, e := range list.Events {
		day := DayLabel(e.Timestamp, now, r.config.Location)
		if day != lastDay {
			b.WriteString(r.styles.Day.Render(day))
			b.WriteString("\n")
			lastDay = day
		}
		b.WriteString(r.renderSingleEvent(e))
	}

	if list.TotalPages > 1 {
		p := NewPagination(list.Total, list.PerPage, list.Page)
		b.WriteString(r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120))))
		b.WriteString("\n")
		b.WriteString(r.styles.Meta.Render(p.FormatSummary()))
		if nav := p.FormatNavigation(); nav != "" {
			b.WriteString(r.styles.Meta.Render(" | " + nav))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

func (r *Renderer) renderSingleEvent(e event.Event) string {
	var parts []string

	if r.config.ShowID {
		parts = append(parts, r.styles.ID.Render(fmt.Sprintf("[%d]", e.ID)))
	}
	parts = append(parts, r.styles.Time.Render(e.When(r.config.Location).Format("03:04 PM")))

	groupStyle := r.styles.Group
	if r.config.Color {
		groupStyle = groupStyle.Foreground(GroupColor(e.Group))
	}
	parts = append(parts, groupStyle.Render(e.Group))
	parts = append(parts, r.styles.Text.Render(e.Title))

	line := "  " + strings.Join(parts, "  ") + "\n"
	if e.Description != "" {
		line += r.styles.Meta.Render("      "+firstLine(e.Description)) + "\n"
	}
	return line
}

func (r *Renderer) renderJSON(list *EventList) (string, error) {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func (r *Renderer) renderCSV(list *EventList) (string, error) {
	var b strings.Builder

	b.WriteString("id,timestamp,title,description,group\n")
	for _, e := range list.Events {
		row := []string{
			fmt.Sprintf("%d", e.ID),
			e.When(time.UTC).Format(time.RFC3339),
			escapeCSV(e.Title),
			escapeCSV(e.Description),
			escapeCSV(e.Group),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}

	return b.String(), nil
}

func (r *Renderer) renderTable(list *EventList) (string, error) {
	var b strings.Builder

	b.WriteString("ID\tWhen\tGroup\tTitle\tDescription\n")
	b.WriteString(strings.Repeat("-", min(r.config.Width, 120)))
	b.WriteString("\n")

	for _, e := range list.Events {
		desc := firstLine(e.Description)
		if runes := []rune(desc); len(runes) > 50 {
			desc = string(runes[:47]) + "..."
		}
		row := []string{
			fmt.Sprintf("%d", e.ID),
			e.When(r.config.Location).Format("2006-01-02 15:04"),
			e.Group,
			e.Title,
			desc,
		}
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}

	return b.String(), nil
}

func (r *Renderer) renderCompact(list *EventList) (string, error) {
	var b strings.Builder

	for _, e := range list.Events {
		groupStyle := r.styles.Group
		if r.config.Color {
			groupStyle = groupStyle.Foreground(GroupColor(e.Group))
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			r.styles.Time.Render(e.When(r.config.Location).Format("Jan 2 15:04")),
			groupStyle.Render(e.Group),
			e.Title))
	}

	return b.String(), nil
}

func (r *Renderer) renderQuiet(list *EventList) (string, error) {
	var b strings.Builder
	for _, e := range list.Events {
		b.WriteString(e.Title)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func escapeCSV(s string) string {
	if strings.Contains(s, ",") || strings.Contains(s, "\"") || strings.Contains(s, "\n") {
		s = strings.ReplaceAll(s, "\"", "\"\"")
		return "\"" + s + "\""
	}
	return s
}
