package handlers

import (
	"crowdfunding-backend/app/server/metrics"
	"crowdfunding-backend/app/server/types"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
)

func (a *App) PlanCreate(c echo.Context) error {
	rctx := c.Request().Context()

	id, ok := a.parseIDParam(c, "project_id")
	if !ok {
		return a.er(http.StatusNotFound, "project not found")
	}

	// 项目必须存在
	project, err := a.projects.FindByID(rctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(http.StatusNotFound, "project not found")
		}
		a.l.Error("failed to get project", zap.Uint("id", id), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	// 读取请求体，方案放在 plan 字段里
	body, err := a.readJSON(c)
	if err != nil {
		return err
	}
	planJSON := body.Get("plan")
	if !planJSON.IsObject() {
		return a.erFields(http.StatusBadRequest, "missing required fields", "plan")
	}

	plan, err := a.planFromJSON(planJSON, "plan.")
	if err != nil {
		return err
	}

	// 创建
	plan.ProjectID = project.ID
	if err = a.projects.CreatePlan(rctx, &plan); err != nil {
		a.l.Error("failed to create plan", zap.Uint("projectID", project.ID), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	a.projectClearCache(rctx, project.ID)
	metrics.IncrementProjectEvent("plan_created")

	return a.ok(c, http.StatusCreated, &types.PlanInfoWithID{
		PlanID:    plan.PlanID,
		ProjectID: plan.ProjectID,
		PlanInfo:  planInfo(&plan),
	})
}
