package model

import "github.com/secmon-lab/riskboard/pkg/domain/types"

// ChartKind is the Chart.js chart type
type ChartKind string

const (
	ChartKindRadar    ChartKind = "radar"
	ChartKindDoughnut ChartKind = "doughnut"
)

// RiskScaleMax is the upper bound of every sub-score
const RiskScaleMax = 10

// ChartConfig is a Chart.js configuration document. The browser passes it to
// `new Chart(ctx, config)` unchanged.
type ChartConfig struct {
	Type    ChartKind    `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Label                string    `json:"label"`
	Data                 []float64 `json:"data"`
	BackgroundColor      any       `json:"backgroundColor"`
	BorderColor          string    `json:"borderColor"`
	BorderWidth          int       `json:"borderWidth"`
	PointBackgroundColor string    `json:"pointBackgroundColor,omitempty"`
}

type ChartOptions struct {
	Responsive          bool         `json:"responsive"`
	MaintainAspectRatio bool         `json:"maintainAspectRatio"`
	Plugins             ChartPlugins `json:"plugins"`
	Scales              *ChartScales `json:"scales,omitempty"`
}

type ChartPlugins struct {
	Legend ChartLegend `json:"legend"`
	Title  ChartTitle  `json:"title"`
}

type ChartLegend struct {
	Display  bool        `json:"display"`
	Position string      `json:"position,omitempty"`
	Labels   *ChartColor `json:"labels,omitempty"`
}

type ChartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
	Color   string `json:"color"`
}

type ChartScales struct {
	R RadialScale `json:"r"`
}

type RadialScale struct {
	Min         float64    `json:"min"`
	Max         float64    `json:"max"`
	Grid        ChartColor `json:"grid"`
	AngleLines  ChartColor `json:"angleLines"`
	PointLabels ChartColor `json:"pointLabels"`
}

type ChartColor struct {
	Color string `json:"color"`
}

type chartPalette struct {
	text    string
	grid    string
	surface string
}

func paletteOf(theme types.Theme) chartPalette {
	if theme.IsDark() {
		return chartPalette{text: "#fff", grid: "rgba(255, 255, 255, 0.2)", surface: "#2a2a2a"}
	}
	return chartPalette{text: "#666", grid: "rgba(0, 0, 0, 0.1)", surface: "#fff"}
}

// RadarChart plots the sub-scores directly on a fixed 0-10 scale
func RadarChart(s SubScores, theme types.Theme) ChartConfig {
	p := paletteOf(theme)
	values := s.Values()

	return ChartConfig{
		Type: ChartKindRadar,
		Data: ChartData{
			Labels: RiskFactorLabels,
			Datasets: []ChartDataset{{
				Label:                "Risk Factors",
				Data:                 values[:],
				BackgroundColor:      "rgba(220, 53, 69, 0.2)",
				BorderColor:          "rgba(220, 53, 69, 1)",
				BorderWidth:          2,
				PointBackgroundColor: "rgba(220, 53, 69, 1)",
			}},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: false},
				Title:  ChartTitle{Display: true, Text: "Risk Factor Analysis", Color: p.text},
			},
			Scales: &ChartScales{
				R: RadialScale{
					Min:         0,
					Max:         RiskScaleMax,
					Grid:        ChartColor{Color: p.grid},
					AngleLines:  ChartColor{Color: p.grid},
					PointLabels: ChartColor{Color: p.text},
				},
			},
		},
	}
}

// CompositionChart shows each sub-score's share of the total as a doughnut
func CompositionChart(s SubScores, theme types.Theme) ChartConfig {
	p := paletteOf(theme)
	shares := s.Composition()

	return ChartConfig{
		Type: ChartKindDoughnut,
		Data: ChartData{
			Labels: RiskFactorLabels,
			Datasets: []ChartDataset{{
				Label:           "Risk Composition",
				Data:            shares[:],
				BackgroundColor: []string{"#0d6efd", "#ffc107", "#6c757d", "#198754"},
				BorderColor:     p.surface,
				BorderWidth:     2,
			}},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: true, Position: "top", Labels: &ChartColor{Color: p.text}},
				Title:  ChartTitle{Display: true, Text: "Risk Score Composition (%)", Color: p.text},
			},
		},
	}
}
