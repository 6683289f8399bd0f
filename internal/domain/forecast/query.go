package forecast

import "strings"

// DailyFields is the daily aggregate list requested from the provider.
const DailyFields = "weathercode,temperature_2m_max,temperature_2m_min,sunrise,sunset,uv_index_max,uv_index_clear_sky_max"

// HourlyFields is the hourly series list requested from the provider.
const HourlyFields = "temperature_2m,relativehumidity_2m,dewpoint_2m,apparent_temperature,precipitation_probability,precipitation,rain,showers,snowfall,snow_depth,windgusts_10m,uv_index,uv_index_clear_sky"

const weatherQueryDocument = `query WeatherQuery(
  $current_weather: String
  $daily: String = "` + DailyFields + `"
  $hourly: String = "` + HourlyFields + `"
  $latitude: String!
  $longitude: String!
  $timezone: String!
) {
  myQuery(
    current_weather: $current_weather
    daily: $daily
    hourly: $hourly
    latitude: $latitude
    longitude: $longitude
    timezone: $timezone
  ) {
    current_weather { is_day temperature time weathercode winddirection windspeed }
    daily { time weathercode temperature_2m_max temperature_2m_min sunrise sunset uv_index_max uv_index_clear_sky_max }
    daily_units { temperature_2m_max temperature_2m_min uv_index_max }
    elevation
    generationtime_ms
    hourly { time temperature_2m relativehumidity_2m dewpoint_2m apparent_temperature precipitation_probability precipitation rain showers snowfall snow_depth windgusts_10m uv_index uv_index_clear_sky }
    hourly_units { temperature_2m relativehumidity_2m precipitation_probability rain snowfall uv_index }
    latitude
    longitude
    timezone
    timezone_abbreviation
    utc_offset_seconds
  }
}`

// Query is a GraphQL request descriptor.
type Query struct {
	Document  string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// BuildQuery describes the current + daily weather request for loc in the
// given timezone. Coordinates are passed through untouched.
func BuildQuery(loc Location, timezone string) Query {
	return Query{
		Document: weatherQueryDocument,
		Variables: map[string]any{
			"current_weather": "true",
			"latitude":        loc.Latitude,
			"longitude":       loc.Longitude,
			"timezone":        timezone,
			"daily":           DailyFields,
			"hourly":          HourlyFields,
		},
	}
}

// CacheKey identifies the query for the revalidation cache.
func (q Query) CacheKey() string {
	parts := make([]string, 0, 3)
	for _, name := range []string{"latitude", "longitude", "timezone"} {
		v, _ := q.Variables[name].(string)
		parts = append(parts, strings.TrimSpace(v))
	}
	return strings.Join(parts, "|")
}
