package models

// DataPoint is one validated quantitative claim extracted from the document.
type DataPoint struct {
	ID         string      `json:"id"`
	Metric     string      `json:"metric"`
	Value      float64     `json:"value"`
	Unit       string      `json:"unit"`
	Period     string      `json:"period"`
	Comparison *Comparison `json:"comparison,omitempty"`
	Context    string      `json:"context,omitempty"`
	// Drivers maps a named factor to its share of the change, in percent.
	Drivers map[string]float64 `json:"drivers,omitempty"`
}

// Comparison holds reference values a DataPoint can be measured against.
// All fields are optional; zero means absent, except GrowthRate where an
// explicit zero is a real rate (flat year over year), so absence is nil.
type Comparison struct {
	Previous   float64  `json:"previous,omitempty"`
	GrowthRate *float64 `json:"growth_rate,omitempty"`
	Benchmark  float64  `json:"benchmark,omitempty"`
}

// Insight is the four-level analytical ladder derived from one DataPoint:
// observation → comparison → implication → action. Every validated DataPoint
// yields exactly one Insight with four non-empty levels.
type Insight struct {
	DataPointID string  `json:"data_point_id"`
	Observation string  `json:"observation"`
	Comparison  string  `json:"comparison"`
	Implication string  `json:"implication"`
	Action      string  `json:"action"`
	Confidence  float64 `json:"confidence"`
}

// ChartType selects a chart rendering from the closed set.
type ChartType string

const (
	ChartBar        ChartType = "bar"
	ChartLine       ChartType = "line"
	ChartPie        ChartType = "pie"
	ChartWaterfall  ChartType = "waterfall"
	ChartStackedBar ChartType = "stacked_bar"
)

// MaxChartLabels bounds the categorical axis of any chart.
const MaxChartLabels = 20

// ChartSpec maps an insight onto a renderable chart: labels and a numeric
// series of equal length. Synthetic marks series invented from bounded
// defaults when the source data point carried no comparison data.
type ChartSpec struct {
	Type        ChartType `json:"type"`
	Title       string    `json:"title"`
	Labels      []string  `json:"labels"`
	Values      []float64 `json:"values"`
	DataPointID string    `json:"data_point_id"`
	Synthetic   bool      `json:"synthetic,omitempty"`
}

// AnalystOutput bundles everything the Analyst stage produces.
type AnalystOutput struct {
	DataPoints []DataPoint `json:"data_points"`
	Insights   []Insight   `json:"insights"`
	Charts     []ChartSpec `json:"charts"`
	// Degraded is set when extraction yielded nothing valid and the
	// deterministic fallback synthesized the data points.
	Degraded bool `json:"degraded,omitempty"`
}
