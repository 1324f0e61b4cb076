package entity

import "fmt"

// Location is a monitored place, immutable for the duration of a run.
type Location struct {
	City    string `json:"city" mapstructure:"city"`
	Country string `json:"country" mapstructure:"country"`
}

// Query returns the OpenWeather "q" parameter value.
func (l Location) Query() string {
	if l.Country == "" {
		return l.City
	}
	return fmt.Sprintf("%s,%s", l.City, l.Country)
}

func (l Location) String() string {
	return l.Query()
}
