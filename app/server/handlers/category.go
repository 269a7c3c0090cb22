package handlers

import (
	"crowdfunding-backend/app/server/types"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func (a *App) CategoryList(c echo.Context) error {
	categories, err := a.categories.List(c.Request().Context())
	if err != nil {
		a.l.Error("failed to get category list", zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	resCategories := []types.CategoryInfo{}
	for _, category := range categories {
		resCategories = append(resCategories, types.CategoryInfo{
			ID:   category.ID,
			Name: category.Name,
		})
	}

	return a.ok(c, http.StatusOK, resCategories)
}
