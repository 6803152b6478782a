package service

import (
	"net/http"
)

// WeatherProviderError is returned by the weather client. StatusCode is the
// HTTP status the failure should surface with.
type WeatherProviderError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *WeatherProviderError) Error() string {
	return e.Message
}

func (e *WeatherProviderError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the carried status code, or 500 when none was set.
func (e *WeatherProviderError) HTTPStatus() int {
	if e.StatusCode == 0 {
		return http.StatusInternalServerError
	}
	return e.StatusCode
}

// SuggestionError is returned by the activity suggester for any failure to
// call the model provider or to parse its output. Err keeps the cause for
// logging only.
type SuggestionError struct {
	Message string
	Err     error
}

func (e *SuggestionError) Error() string {
	return e.Message
}

func (e *SuggestionError) Unwrap() error {
	return e.Err
}
