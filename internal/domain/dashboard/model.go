package dashboard

import "github.com/yanqian/weather-dashboard/internal/domain/forecast"

// FallbackSummaryMessage replaces the generated summary when the summary
// endpoint does not answer with a success status.
const FallbackSummaryMessage = "Summary service unavailable"

// HighUVMessage is shown when today's UV index is above HighUVThreshold.
const HighUVMessage = "The UV is high today, be sure to wear SPF!"

// HighUVThreshold is exclusive: the callout appears only above it.
const HighUVThreshold = 5.0

// Config wires runtime knobs for the page composer.
type Config struct {
	Timezone string
}

// SummaryState tags which of the two summary variants a dashboard carries.
type SummaryState int

const (
	SummaryAvailable SummaryState = iota + 1
	SummaryUnavailable
)

func (s SummaryState) String() string {
	switch s {
	case SummaryAvailable:
		return "available"
	case SummaryUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Summary is the outcome of the summary request.
type Summary struct {
	State   SummaryState
	Content string
}

// Available builds the success variant.
func Available(content string) Summary {
	return Summary{State: SummaryAvailable, Content: content}
}

// Unavailable builds the failure variant.
func Unavailable() Summary {
	return Summary{State: SummaryUnavailable}
}

// Callout renders the summary as the top-of-page callout.
func (s Summary) Callout() Callout {
	if s.State == SummaryAvailable {
		return Callout{Message: s.Content}
	}
	return Callout{Message: FallbackSummaryMessage, Warning: true}
}

// Dashboard is the view model rendered by the page.
type Dashboard struct {
	Location       forecast.Location `json:"location"`
	Info           InformationPanel  `json:"info"`
	Overview       Overview          `json:"overview"`
	SummaryState   string            `json:"summaryState"`
	SummaryCallout Callout           `json:"summaryCallout"`
	MaxTemperature StatCard          `json:"maxTemperature"`
	MinTemperature StatCard          `json:"minTemperature"`
	UVIndex        StatCard          `json:"uvIndex"`
	UVCallout      *Callout          `json:"uvCallout,omitempty"`
	WindSpeed      StatCard          `json:"windSpeed"`
	WindDirection  StatCard          `json:"windDirection"`
	Charts         []Chart           `json:"charts"`
}

// InformationPanel is the sidebar describing the place and current conditions.
type InformationPanel struct {
	City        string `json:"city"`
	Coordinates string `json:"coordinates"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Timezone    string `json:"timezone"`
	Conditions  string `json:"conditions"`
	Temperature string `json:"temperature"`
	Sunrise     string `json:"sunrise"`
	Sunset      string `json:"sunset"`
	IsDay       bool   `json:"isDay"`
}

// Overview is the header above the stat cards.
type Overview struct {
	Title       string `json:"title"`
	LastUpdated string `json:"lastUpdated"`
	Timezone    string `json:"timezone"`
}

// StatCard is a labelled single-metric tile.
type StatCard struct {
	Title    string  `json:"title"`
	Metric   string  `json:"metric"`
	Value    float64 `json:"value"`
	Color    string  `json:"color"`
	Category string  `json:"category,omitempty"`
}

// Callout is a highlighted message box.
type Callout struct {
	Message string `json:"message"`
	Warning bool   `json:"warning"`
}

// Chart is a time series handed to the client-side chart component.
type Chart struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Unit   string        `json:"unit"`
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

// ChartSeries is one named line in a Chart.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}
