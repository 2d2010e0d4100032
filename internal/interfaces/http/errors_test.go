package http

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ittest-team/device-accounting/internal/domain"
)

// Физическое удаление записи, на которую ещё ссылаются мягко удалённые
// строки, упирается во внешний ключ — наружу это конфликт, а не 500.
func TestRespondError_StillReferencedIsConflict(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, fmt.Errorf("на склад ссылаются удалённые девайсы: %w", domain.ErrStillReferenced))
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "REFERENCED")
	assert.Contains(t, string(body), "ссылаются удалённые девайсы")
}
