package models

// ChartSeries is one numeric series of a chart dataset. Data is aligned
// 1:1 with the owning dataset's labels. Styling fields carry CSS color
// strings straight through to the chart renderer.
type ChartSeries struct {
	Label           string   `json:"label,omitempty"`
	Data            []int    `json:"data"`
	BorderColor     string   `json:"borderColor,omitempty"`
	BackgroundColor []string `json:"backgroundColor,omitempty"`
	Tension         float64  `json:"tension,omitempty"`
	Fill            bool     `json:"fill,omitempty"`
}

// ChartDataset is the label/series shape consumed by the chart renderer.
// Invariant: len(Labels) equals len(Data) of every series.
type ChartDataset struct {
	Labels   []string      `json:"labels"`
	Datasets []ChartSeries `json:"datasets"`
}
