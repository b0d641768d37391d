package httperr

import (
	"testing"

	"feedlot-backend/internal/engine"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestEngine_KindToStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    *engine.Error
		status int
	}{
		{"validation", engine.Validation("weight_kg", "weight_kg must be greater than zero"), fiber.StatusBadRequest},
		{"not found", engine.NotFound("lot not found"), fiber.StatusNotFound},
		{"consistency", engine.Consistency("lot still holds active animals"), fiber.StatusConflict},
		{"storage", engine.Storage("could not load animals", nil), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var fe *fiber.Error
			require.ErrorAs(t, Engine(tc.err), &fe)
			require.Equal(t, tc.status, fe.Code)
			require.Equal(t, tc.err.Detail, fe.Message)
		})
	}
}
