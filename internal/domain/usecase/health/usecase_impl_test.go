package health

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"weather-etl/internal/domain/model"
)

func up() model.ComponentHealthStatus { return model.UpStatus(nil) }

func TestHealthUseCase_CheckHealth(t *testing.T) {
	t.Run("all enabled components up", func(t *testing.T) {
		response := NewHealthUseCase(map[string]Component{
			"weatherApi": ComponentFunc(up),
			"output":     ComponentFunc(up),
			"database":   nil,
		}).CheckHealth()

		assert.Equal(t, model.StatusUp, response.Status)
		assert.Equal(t, model.StatusUnknown, response.Components["database"].Status)
		assert.Equal(t, "disabled", response.Components["database"].Details["message"])
		assert.Len(t, response.Components, 3)
	})

	t.Run("one component down", func(t *testing.T) {
		response := NewHealthUseCase(map[string]Component{
			"weatherApi": ComponentFunc(up),
			"lock": ComponentFunc(func() model.ComponentHealthStatus {
				return model.DownStatus(errors.New("dial tcp 127.0.0.1:6379: connection refused"))
			}),
		}).CheckHealth()

		assert.Equal(t, model.StatusDown, response.Status)
		assert.Equal(t, model.StatusDown, response.Components["lock"].Status)
		assert.Contains(t, response.Components["lock"].Details["message"], "connection refused")
	})
}
