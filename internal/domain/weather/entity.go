package weather

// Report value object returned to farmers. Recommendation is advisory
// prose, not structured data.
type Report struct {
	Location        string  `json:"location"`
	TemperatureC    float64 `json:"temperature"`
	Humidity        int     `json:"humidity"`
	Description     string  `json:"description"`
	WindSpeedKMH    float64 `json:"wind_speed"`
	PrecipitationMM float64 `json:"precipitation"`
	Recommendation  string  `json:"farmer_recommendation"`
}
