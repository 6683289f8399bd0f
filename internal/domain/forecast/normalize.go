package forecast

// hoursPerDay bounds the hourly series forwarded for summaries.
const hoursPerDay = 24

// Normalize reduces a WeatherResult to the fields needed to generate a
// summary for city. It does not modify result and always returns fresh slices.
func Normalize(result WeatherResult, city string) SummaryPayload {
	return SummaryPayload{
		City:                 city,
		Timezone:             result.Timezone,
		TimezoneAbbreviation: result.TimezoneAbbreviation,
		CurrentWeather: SummaryCurrent{
			Temperature:   result.CurrentWeather.Temperature,
			WindSpeed:     result.CurrentWeather.WindSpeed,
			WindDirection: result.CurrentWeather.WindDirection,
			WeatherCode:   result.CurrentWeather.WeatherCode,
			Time:          result.CurrentWeather.Time,
		},
		Today: SummaryToday{
			TemperatureMax: First(result.Daily.Temperature2mMax),
			TemperatureMin: First(result.Daily.Temperature2mMin),
			UVIndexMax:     First(result.Daily.UVIndexMax),
		},
		Hourly: SummaryHourly{
			Temperature2m:            Head(result.Hourly.Temperature2m, hoursPerDay),
			Snowfall:                 Head(result.Hourly.Snowfall, hoursPerDay),
			Rain:                     Head(result.Hourly.Rain, hoursPerDay),
			RelativeHumidity2m:       Head(result.Hourly.RelativeHumidity2m, hoursPerDay),
			PrecipitationProbability: Head(result.Hourly.PrecipitationProbability, hoursPerDay),
			UVIndex:                  Head(result.Hourly.UVIndex, hoursPerDay),
		},
		HourlyUnits: result.HourlyUnits,
	}
}

// First returns values[0], or 0 for an empty series.
func First(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[0]
}

// Head returns a fresh copy of at most the first n values.
func Head(values []float64, n int) []float64 {
	if len(values) < n {
		n = len(values)
	}
	out := make([]float64, n)
	copy(out, values[:n])
	return out
}
