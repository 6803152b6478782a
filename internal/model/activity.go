package model

// CityQuery is the inbound request body of POST /api/v1/activities.
type CityQuery struct {
	City string `json:"city" validate:"required,notblank"`
}

// WeatherRecord is the normalized current weather for a city. Temperature is
// in degrees Fahrenheit and wind speed in mph, both rounded to whole units.
type WeatherRecord struct {
	Temperature float64 `json:"temperature"`
	Conditions  string  `json:"conditions" validate:"required,notblank"`
	Humidity    int     `json:"humidity" validate:"min=0,max=100"`
	WindSpeed   float64 `json:"wind_speed" validate:"min=0"`
}

// Activity is a single suggestion produced by the language model.
type Activity struct {
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Category    string `json:"category" validate:"required,notblank"`
}

// ActivityResponse is the full result returned for one city.
type ActivityResponse struct {
	City       string        `json:"city"`
	Weather    WeatherRecord `json:"weather"`
	Activities []Activity    `json:"activities"`
}

// MaxActivities caps the number of suggestions returned per request.
const MaxActivities = 3
