package function

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"weather-etl/internal/domain/usecase/etl"
	"weather-etl/pkg/log"
)

type errorBody struct {
	Error string `json:"error"`
}

// NewHTTPHandler adapts the pipeline to a plain net/http handler. The request body is ignored.
func NewHTTPHandler(useCase etl.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := useCase.Run(r.Context())
		if err != nil {
			log.Error("Weather ETL function failed", zap.Error(err))
			writeJSON(w, etl.HTTPStatus(err), errorBody{Error: err.Error()})
			return
		}

		if result.StatusCode == http.StatusNoContent {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, result.StatusCode, result)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn("Failed to write function response", zap.Error(err))
	}
}
