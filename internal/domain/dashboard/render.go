package dashboard

import (
	"fmt"
	"math"
	"time"

	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
)

const (
	providerTimeLayout = "2006-01-02T15:04"
	chartHours         = 24
	defaultTempUnit    = "°C"
)

// render builds the single page layout from the weather result. Only the top
// callout depends on summary.
func render(result forecast.WeatherResult, loc forecast.Location, summary Summary) Dashboard {
	tempUnit := firstNonEmpty(result.DailyUnits.Temperature2mMax, defaultTempUnit)

	maxTemp := round1(forecast.First(result.Daily.Temperature2mMax))
	minTemp := round1(forecast.First(result.Daily.Temperature2mMin))
	uv := round1(forecast.First(result.Daily.UVIndexMax))
	windSpeed := round1(result.CurrentWeather.WindSpeed)
	windDirection := round1(result.CurrentWeather.WindDirection)

	d := Dashboard{
		Location: loc,
		Info:     informationPanel(result, loc, tempUnit),
		Overview: Overview{
			Title:       "Today's Overview",
			LastUpdated: formatProviderTime(result.CurrentWeather.Time, "Jan 2, 2006, 3:04 PM"),
			Timezone:    result.Timezone,
		},
		SummaryState:   summary.State.String(),
		SummaryCallout: summary.Callout(),
		MaxTemperature: StatCard{
			Title:  "Maximum Temperature",
			Metric: fmt.Sprintf("%.1f%s", maxTemp, tempUnit),
			Value:  maxTemp,
			Color:  "yellow",
		},
		MinTemperature: StatCard{
			Title:  "Minimum Temperature",
			Metric: fmt.Sprintf("%.1f%s", minTemp, tempUnit),
			Value:  minTemp,
			Color:  "green",
		},
		UVIndex: StatCard{
			Title:    "UV Index",
			Metric:   fmt.Sprintf("%.1f", uv),
			Value:    uv,
			Color:    "rose",
			Category: forecast.UVCategory(uv),
		},
		WindSpeed: StatCard{
			Title:  "Wind Speed",
			Metric: fmt.Sprintf("%.1f km/h", windSpeed),
			Value:  windSpeed,
			Color:  "cyan",
		},
		WindDirection: StatCard{
			Title:  "Wind Direction",
			Metric: fmt.Sprintf("%.1f°", windDirection),
			Value:  windDirection,
			Color:  "violet",
		},
		Charts: charts(result, tempUnit),
	}
	if uv > HighUVThreshold {
		d.UVCallout = &Callout{Message: HighUVMessage, Warning: true}
	}
	return d
}

func informationPanel(result forecast.WeatherResult, loc forecast.Location, tempUnit string) InformationPanel {
	current := result.CurrentWeather
	return InformationPanel{
		City:        loc.City,
		Coordinates: fmt.Sprintf("Long/Lat: %s, %s", loc.Longitude, loc.Latitude),
		Date:        formatProviderTime(current.Time, "Monday, January 2, 2006"),
		Time:        formatProviderTime(current.Time, "3:04 PM"),
		Timezone:    firstNonEmpty(result.TimezoneAbbreviation, result.Timezone),
		Conditions:  forecast.DescribeWeatherCode(current.WeatherCode),
		Temperature: fmt.Sprintf("%.1f%s", round1(current.Temperature), tempUnit),
		Sunrise:     formatProviderTime(firstString(result.Daily.Sunrise), "3:04 PM"),
		Sunset:      formatProviderTime(firstString(result.Daily.Sunset), "3:04 PM"),
		IsDay:       current.IsDay == 1,
	}
}

func charts(result forecast.WeatherResult, tempUnit string) []Chart {
	hourly := result.Hourly
	n := chartHours
	if len(hourly.Time) < n {
		n = len(hourly.Time)
	}
	labels := make([]string, 0, n)
	for _, ts := range hourly.Time[:n] {
		labels = append(labels, formatProviderTime(ts, "15:04"))
	}

	return []Chart{
		{
			ID:     "temperature",
			Title:  "Temperature & UV Index",
			Unit:   tempUnit,
			Labels: labels,
			Series: []ChartSeries{
				{Name: "Temperature (" + tempUnit + ")", Values: forecast.Head(hourly.Temperature2m, n)},
				{Name: "UV Index", Values: forecast.Head(hourly.UVIndex, n)},
			},
		},
		{
			ID:     "precipitation",
			Title:  "Chances of Rain",
			Unit:   "%",
			Labels: labels,
			Series: []ChartSeries{
				{Name: "Rain (%)", Values: forecast.Head(hourly.PrecipitationProbability, n)},
			},
		},
		{
			ID:     "humidity",
			Title:  "Humidity Levels",
			Unit:   "%",
			Labels: labels,
			Series: []ChartSeries{
				{Name: "Humidity (%)", Values: forecast.Head(hourly.RelativeHumidity2m, n)},
			},
		},
	}
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatProviderTime(value, layout string) string {
	if value == "" {
		return ""
	}
	ts, err := time.Parse(providerTimeLayout, value)
	if err != nil {
		if ts, err = time.Parse(time.RFC3339, value); err != nil {
			return value
		}
	}
	return ts.Format(layout)
}

func firstString(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
