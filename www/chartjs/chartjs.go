package chartjs

import "math"

// Palette cycled over the datasets of a grouped bar chart.
var Palette = []string{
	"#1f77b4d4",
	"#ff7f0ed4",
	"#2ca02cd4",
	"#d62728d4",
	"#9467bdd4",
	"#8c564bd4",
	"#e377c2d4",
	"#7f7f7fd4",
	"#bcbd22d4",
	"#17becfd4",
}

// NewBarChart builds a grouped bar chart with one column group per label.
func NewBarChart(title string, labels []string) Chart {
	chart := Chart{
		Type: "bar",
		Data: ChartData{
			Labels: labels,
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: true, Position: "bottom"},
				Title:  ChartTitle{Display: false},
			},
			Scales: map[string]ChartScale{
				"y": {
					Display:     true,
					BeginAtZero: true,
					Title:       ChartScaleTitle{Display: true, Text: ""},
				},
			},
		},
	}

	if title != "" {
		chart.Options.Plugins.Title = ChartTitle{Display: true, Text: title}
	}

	return chart
}

// AddDataset appends a bar series. data must have one entry per label; nil
// entries render as gaps.
func (c *Chart) AddDataset(label string, data []*float64) {
	color := Palette[len(c.Data.Datasets)%len(Palette)]
	c.Data.Datasets = append(c.Data.Datasets, ChartDataset{
		Label:           label,
		Data:            data,
		BackgroundColor: color,
		BorderColor:     color,
		BorderWidth:     1,
	})
}

func (c *Chart) WithAxisTitle(title string) {
	scale := c.Options.Scales["y"]
	scale.Title.Text = title
	c.Options.Scales["y"] = scale
}

func FixedFloat64(num float64, precision int) *float64 {
	p := math.Pow(10, float64(precision))
	rounded := math.Round(num * p)
	result := rounded / p
	return &result
}
