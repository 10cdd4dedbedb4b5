package output

import (
	"fmt"
	"strconv"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/session"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

// RenderView prints the current card, the forecast table and the message.
func RenderView(p *Printer, v session.View) {
	if v.Today != nil {
		RenderToday(p, *v.Today)
	}
	if len(v.Daily) > 0 {
		RenderForecast(p, v.Daily)
	}
	if v.Message != nil {
		fmt.Fprintln(p.Out())
		p.Message(*v.Message)
	}
}

// RenderToday prints today's card.
func RenderToday(p *Printer, t session.Today) {
	p.Header(t.Title)
	fmt.Fprintf(p.Out(), "%s  %s\n", p.Highlight(t.Display, t.Rainy, t.Extreme), t.Description)
	fmt.Fprintf(p.Out(), "Humidity: %s%%\n", formatNumber(t.HumidityPct))
	fmt.Fprintf(p.Out(), "Wind: %s km/h\n", formatNumber(t.WindKmph))
}

// RenderForecast prints one row per daily summary.
func RenderForecast(p *Printer, daily []weather.DailySummary) {
	p.Header("Forecast")
	table := NewTable(p.Out(), []string{"DAY", "CONDITION", "TEMPERATURE", "HUMIDITY", "WIND"})
	for _, d := range daily {
		table.AddRow([]string{
			p.Bold(d.Label),
			d.Condition,
			fmt.Sprintf("%s°C / %s°F", formatNumber(d.AvgTempC), formatNumber(d.AvgTempF)),
			fmt.Sprintf("%d%%", d.AvgHumidityPct),
			fmt.Sprintf("%s km/h", formatNumber(d.MaxWindKmph)),
		})
	}
	table.Render()
}

// RenderRecents prints the ledger, most recent first.
func RenderRecents(p *Printer, recents []string) {
	if len(recents) == 0 {
		p.Info("No recent searches.")
		return
	}
	p.Header("Recent searches")
	for i, city := range recents {
		fmt.Fprintf(p.Out(), "%d. %s\n", i+1, city)
	}
}

// formatNumber prints the shortest form, so 18.0 shows as "18".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
