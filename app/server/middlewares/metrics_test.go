package middlewares

import (
	"crowdfunding-backend/app/server/types"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, statusFromError(types.NewAPIError(http.StatusForbidden, "")))
	assert.Equal(t, http.StatusNotFound, statusFromError(echo.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(errors.New("boom")))
}
