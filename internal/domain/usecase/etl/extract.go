package etl

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"weather-etl/internal/domain/entity"
	"weather-etl/internal/domain/gateway/api"
	"weather-etl/internal/domain/model/external"
	"weather-etl/pkg/log"
	"weather-etl/pkg/msg"
	"weather-etl/pkg/util/numberutils"
)

// LocationFailure is a location skipped during extraction.
type LocationFailure struct {
	Location entity.Location
	Err      error
}

// ExtractResult holds the records in location order and the skipped locations.
type ExtractResult struct {
	Records  []entity.WeatherRecord
	Failures []LocationFailure
}

// Empty reports whether no location produced a record.
func (r ExtractResult) Empty() bool {
	return len(r.Records) == 0
}

// Extractor fetches the current weather of each location, one request at a time.
type Extractor struct {
	gateway api.WeatherGateway
	policy  MalformedPolicy
	clock   func() time.Time
}

func NewExtractor(gateway api.WeatherGateway, policy MalformedPolicy, clock func() time.Time) *Extractor {
	if clock == nil {
		clock = time.Now
	}
	if policy == "" {
		policy = MalformedSkip
	}
	return &Extractor{gateway: gateway, policy: policy, clock: clock}
}

// Extract attempts every location. Failed locations are logged and skipped; it only
// stops early when the context ends or a malformed response meets the fatal policy.
func (e *Extractor) Extract(ctx context.Context, runID string, locations []entity.Location) (ExtractResult, error) {
	var result ExtractResult
	log.Info(msg.GetMessage("etl.extract.start"), zap.String("run_id", runID), zap.Int("locations", len(locations)))

	for _, location := range locations {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fields := []zap.Field{
			zap.String("run_id", runID),
			zap.String("city", location.City),
			zap.String("country", location.Country),
		}

		record, err := e.extractLocation(ctx, location)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}

			var malformed *MalformedResponseError
			if errors.As(err, &malformed) {
				log.Error(msg.GetMessage("etl.extract.malformed", location.City, err), append(fields, zap.Error(err))...)
				if e.policy == MalformedFatal {
					return result, err
				}
			} else {
				log.Error(msg.GetMessage("etl.extract.failure", location.City, err), append(fields, zap.Error(err))...)
			}

			result.Failures = append(result.Failures, LocationFailure{Location: location, Err: err})
			continue
		}

		result.Records = append(result.Records, record)
		log.Info(msg.GetMessage("etl.extract.success", location.City), fields...)
	}

	return result, nil
}

func (e *Extractor) extractLocation(ctx context.Context, location entity.Location) (entity.WeatherRecord, error) {
	response, err := e.gateway.GetCurrentWeather(ctx, location)
	if err != nil {
		if errors.Is(err, api.ErrInvalidBody) {
			return entity.WeatherRecord{}, &MalformedResponseError{Location: location, Field: "body", Err: err}
		}
		return entity.WeatherRecord{}, err
	}
	return toRecord(location, response, e.clock())
}

// toRecord picks main.temp, main.humidity and weather[0].description from the response
func toRecord(location entity.Location, response *external.CurrentWeatherResponse, extractedAt time.Time) (entity.WeatherRecord, error) {
	malformed := func(field string, err error) (entity.WeatherRecord, error) {
		return entity.WeatherRecord{}, &MalformedResponseError{Location: location, Field: field, Err: err}
	}

	if response == nil || response.Main == nil {
		return malformed("main", nil)
	}

	temp, ok := scalarToken(response.Main.Temp)
	if !ok {
		if isAbsent(response.Main.Temp) {
			return malformed("main.temp", nil)
		}
		return malformed("main.temp", errors.New("expected a number or a string"))
	}

	humidityToken, ok := scalarToken(response.Main.Humidity)
	if !ok {
		if isAbsent(response.Main.Humidity) {
			return malformed("main.humidity", nil)
		}
		return malformed("main.humidity", errors.New("expected an integer"))
	}
	humidity, err := numberutils.ToInt64WithError(humidityToken.Text())
	if err != nil {
		return malformed("main.humidity", err)
	}

	if len(response.Weather) == 0 {
		return malformed("weather[0]", nil)
	}
	if response.Weather[0].Description == nil {
		return malformed("weather[0].description", nil)
	}

	return entity.WeatherRecord{
		City:               location.City,
		Country:            location.Country,
		CurrentTemp:        temp,
		HumidityPercent:    humidity,
		WeatherDescription: *response.Weather[0].Description,
		ExtractionDate:     extractedAt,
	}, nil
}

// scalarToken accepts JSON numbers and strings
func scalarToken(raw json.RawMessage) (entity.RawValue, bool) {
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", false
	}
	switch c := token[0]; {
	case c == '"', c == '-', c >= '0' && c <= '9':
		return entity.RawValue(token), true
	default:
		return "", false
	}
}

func isAbsent(raw json.RawMessage) bool {
	token := strings.TrimSpace(string(raw))
	return token == "" || token == "null"
}
