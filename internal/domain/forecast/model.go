package forecast

// Location identifies the place a dashboard is rendered for. The values come
// straight from the route and are not validated.
type Location struct {
	City      string `json:"city"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// WeatherResult mirrors the weather document returned by the GraphQL provider.
type WeatherResult struct {
	Latitude             float64        `json:"latitude"`
	Longitude            float64        `json:"longitude"`
	Elevation            float64        `json:"elevation"`
	GenerationTimeMs     float64        `json:"generationtime_ms"`
	UTCOffsetSeconds     int            `json:"utc_offset_seconds"`
	Timezone             string         `json:"timezone"`
	TimezoneAbbreviation string         `json:"timezone_abbreviation"`
	CurrentWeather       CurrentWeather `json:"current_weather"`
	Daily                Daily          `json:"daily"`
	DailyUnits           DailyUnits     `json:"daily_units"`
	Hourly               Hourly         `json:"hourly"`
	HourlyUnits          HourlyUnits    `json:"hourly_units"`
}

// CurrentWeather is the point-in-time observation for the coordinate.
type CurrentWeather struct {
	IsDay         int     `json:"is_day"`
	Temperature   float64 `json:"temperature"`
	Time          string  `json:"time"`
	WeatherCode   int     `json:"weathercode"`
	WindDirection float64 `json:"winddirection"`
	WindSpeed     float64 `json:"windspeed"`
}

// Daily holds per-day aggregates; index 0 is today.
type Daily struct {
	Time               []string  `json:"time"`
	WeatherCode        []int     `json:"weathercode"`
	Temperature2mMax   []float64 `json:"temperature_2m_max"`
	Temperature2mMin   []float64 `json:"temperature_2m_min"`
	Sunrise            []string  `json:"sunrise"`
	Sunset             []string  `json:"sunset"`
	UVIndexMax         []float64 `json:"uv_index_max"`
	UVIndexClearSkyMax []float64 `json:"uv_index_clear_sky_max"`
}

// DailyUnits carries the unit strings for Daily.
type DailyUnits struct {
	Temperature2mMax string `json:"temperature_2m_max"`
	Temperature2mMin string `json:"temperature_2m_min"`
	UVIndexMax       string `json:"uv_index_max"`
}

// Hourly holds hourly series aligned on Time.
type Hourly struct {
	Time                     []string  `json:"time"`
	Temperature2m            []float64 `json:"temperature_2m"`
	RelativeHumidity2m       []float64 `json:"relativehumidity_2m"`
	Dewpoint2m               []float64 `json:"dewpoint_2m"`
	ApparentTemperature      []float64 `json:"apparent_temperature"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	Precipitation            []float64 `json:"precipitation"`
	Rain                     []float64 `json:"rain"`
	Showers                  []float64 `json:"showers"`
	Snowfall                 []float64 `json:"snowfall"`
	SnowDepth                []float64 `json:"snow_depth"`
	WindGusts10m             []float64 `json:"windgusts_10m"`
	UVIndex                  []float64 `json:"uv_index"`
	UVIndexClearSky          []float64 `json:"uv_index_clear_sky"`
}

// HourlyUnits carries the unit strings for Hourly.
type HourlyUnits struct {
	Temperature2m            string `json:"temperature_2m"`
	RelativeHumidity2m       string `json:"relativehumidity_2m"`
	PrecipitationProbability string `json:"precipitation_probability"`
	Rain                     string `json:"rain"`
	Snowfall                 string `json:"snowfall"`
	UVIndex                  string `json:"uv_index"`
}

// SummaryPayload is the reduced projection of a WeatherResult sent to the
// summary endpoint.
type SummaryPayload struct {
	City                 string         `json:"city"`
	Timezone             string         `json:"timezone"`
	TimezoneAbbreviation string         `json:"timezone_abbreviation"`
	CurrentWeather       SummaryCurrent `json:"current_weather"`
	Today                SummaryToday   `json:"today"`
	Hourly               SummaryHourly  `json:"hourly"`
	HourlyUnits          HourlyUnits    `json:"hourly_units"`
}

// SummaryCurrent is the subset of CurrentWeather used for summaries.
type SummaryCurrent struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	Time          string  `json:"time"`
}

// SummaryToday carries the first day of the daily aggregates.
type SummaryToday struct {
	TemperatureMax float64 `json:"temperature_2m_max"`
	TemperatureMin float64 `json:"temperature_2m_min"`
	UVIndexMax     float64 `json:"uv_index_max"`
}

// SummaryHourly carries the first day of hourly series.
type SummaryHourly struct {
	Temperature2m            []float64 `json:"temperature_2m"`
	Snowfall                 []float64 `json:"snowfall"`
	Rain                     []float64 `json:"rain"`
	RelativeHumidity2m       []float64 `json:"relativehumidity_2m"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	UVIndex                  []float64 `json:"uv_index"`
}
