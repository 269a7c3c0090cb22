package handlers

import (
	"cmp"
	"context"
	"crowdfunding-backend/app/server/constants"
	"crowdfunding-backend/app/server/metrics"
	"crowdfunding-backend/app/server/middlewares"
	"crowdfunding-backend/app/server/models"
	"crowdfunding-backend/app/server/types"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"slices"
	"strconv"
	"time"
)

// 创建项目时必须出现的字段，顺序即错误信息中的顺序
var projectRequiredFields = []string{
	"title",
	"summary",
	"category_id",
	"total_amount",
	"start_time",
	"end_time",
	"cover",
	"full_content",
	"project_team",
	"faq",
}

var emptyJSONArray = json.RawMessage("[]")

// projectMapFields 把请求中出现的字段写入模型，并返回对应的列，供部分更新使用
func (a *App) projectMapFields(body gjson.Result, project *models.Project) (map[string]any, error) {
	fields := make(map[string]any)

	for name, target := range map[string]*string{
		"title":        &project.Title,
		"summary":      &project.Summary,
		"cover":        &project.Cover,
		"full_content": &project.FullContent,
	} {
		if r := body.Get(name); present(r) {
			*target = r.String()
			fields[name] = *target
		}
	}

	if r := body.Get("category_id"); present(r) {
		categoryID, ok := coerceInt(r)
		if !ok || categoryID <= 0 {
			return nil, a.erFields(http.StatusBadRequest, "invalid fields", "category_id")
		}
		project.CategoryID = uint(categoryID)
		fields["category_id"] = project.CategoryID
	}

	if r := body.Get("total_amount"); present(r) {
		totalAmount, ok := coerceInt(r)
		if !ok || totalAmount < 0 {
			return nil, a.erFields(http.StatusBadRequest, "invalid fields", "total_amount")
		}
		project.TotalAmount = totalAmount
		fields["total_amount"] = totalAmount
	}

	for name, target := range map[string]*time.Time{
		"start_time": &project.StartTime,
		"end_time":   &project.EndTime,
	} {
		if r := body.Get(name); present(r) {
			t, ok := parseTime(r)
			if !ok {
				return nil, a.erFields(http.StatusBadRequest, "invalid fields", name)
			}
			*target = t
			fields[name] = t
		}
	}

	if r := body.Get("project_team"); present(r) {
		project.ProjectTeam = rawJSON(r)
		fields["project_team"] = project.ProjectTeam
	}
	if r := body.Get("faq"); present(r) {
		project.FAQ = rawJSON(r)
		fields["faq"] = project.FAQ
	}

	return fields, nil
}

func (a *App) projectValidateCategory(ctx context.Context, categoryID uint) error {
	if _, err := a.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.erFields(http.StatusBadRequest, "category not found", "category_id")
		}
		a.l.Error("failed to get category", zap.Uint("id", categoryID), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}
	return nil
}

func (a *App) parseIDParam(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (a *App) projectDetail(project *models.Project) *types.ProjectDetail {
	// 方案按 plan_id 升序输出
	plans := slices.Clone(project.Plans)
	slices.SortFunc(plans, func(x, y models.ProjectPlan) int {
		return cmp.Compare(x.PlanID, y.PlanID)
	})

	resPlans := make([]types.PlanInfo, 0, len(plans))
	for _, plan := range plans {
		resPlans = append(resPlans, planInfo(&plan))
	}

	return &types.ProjectDetail{
		ProjectID:    project.ID,
		Title:        project.Title,
		Summary:      project.Summary,
		CategoryID:   project.CategoryID,
		CategoryName: project.Category.Name,
		TotalAmount:  project.TotalAmount,
		StartTime:    project.StartTime,
		EndTime:      project.EndTime,
		Cover:        project.Cover,
		FullContent:  project.FullContent,
		ProjectTeam:  jsonOrEmptyArray(project.ProjectTeam),
		FAQ:          jsonOrEmptyArray(project.FAQ),
		Plans:        resPlans,
	}
}

func planInfo(plan *models.ProjectPlan) types.PlanInfo {
	return types.PlanInfo{
		PlanName:     plan.PlanName,
		Amount:       plan.Amount,
		Quantity:     plan.Quantity,
		Feedback:     plan.Feedback,
		FeedbackImg:  plan.FeedbackImg,
		DeliveryDate: plan.DeliveryDate,
	}
}

func jsonOrEmptyArray(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return emptyJSONArray
	}
	return raw
}

func (a *App) projectClearCache(ctx context.Context, id uint) {
	a.cache.Del(ctx, fmt.Sprintf(constants.CacheKeyProjectDetail, id))
}

func (a *App) ProjectCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 读取请求体
	body, err := a.readJSON(c)
	if err != nil {
		return err
	}

	// 检查必填字段（只检查是否出现）
	if missing := missingFields(body, projectRequiredFields...); len(missing) > 0 {
		return a.erFields(http.StatusBadRequest, "missing required fields", missing...)
	}

	// 抓取 user 信息（认证），这个接口没有挂载认证中间件
	jwtUser, err, statusCode := a.authUser(c)
	if err != nil {
		a.l.Debug("failed to auth", zap.Error(err))
		return a.er(statusCode, "invalid or missing token")
	}

	// 映射字段
	var project models.Project
	if _, err = a.projectMapFields(body, &project); err != nil {
		return err
	}

	// 检查用户
	user, err := a.users.FindByID(rctx, jwtUser.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(http.StatusBadRequest, "user not found")
		}
		a.l.Error("failed to get user", zap.Uint("id", jwtUser.ID), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	// 检查分类
	if err = a.projectValidateCategory(rctx, project.CategoryID); err != nil {
		return err
	}

	// 创建
	project.UserID = user.ID
	if err = a.projects.Create(rctx, &project); err != nil {
		a.l.Error("failed to create project", zap.Uint("userID", user.ID), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	metrics.IncrementProjectEvent("created")

	return a.ok(c, http.StatusOK, &types.ProjectID{
		ProjectID: project.ID,
	})
}

func (a *App) ProjectInfoGet(c echo.Context) error {
	rctx := c.Request().Context()

	id, ok := a.parseIDParam(c, "project_id")
	if !ok {
		return a.er(http.StatusNotFound, "project not found")
	}

	// 查询缓存
	cacheKey := fmt.Sprintf(constants.CacheKeyProjectDetail, id)
	var detail types.ProjectDetail
	if a.cache.GetJSON(rctx, cacheKey, &detail) {
		return a.ok(c, http.StatusOK, &detail)
	}

	// 从数据库中获得
	project, err := a.projects.FindWithPlans(rctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(http.StatusNotFound, "project not found")
		}
		a.l.Error("failed to get project", zap.Uint("id", id), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	res := a.projectDetail(project)
	a.cache.SetJSON(rctx, cacheKey, res, constants.CacheExpireProjectDetail)

	return a.ok(c, http.StatusOK, res)
}

func (a *App) ProjectInfoUpdate(c echo.Context) error {
	rctx := c.Request().Context()
	user := middlewares.CurrentUser(c)
	if user == nil {
		return a.er(http.StatusUnauthorized, "invalid or missing token")
	}

	id, ok := a.parseIDParam(c, "project_id")
	if !ok {
		return a.er(http.StatusBadRequest, "project not found")
	}

	// 读取请求体
	body, err := a.readJSON(c)
	if err != nil {
		return err
	}

	// 从数据库中获得
	project, err := a.projects.FindByID(rctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(http.StatusBadRequest, "project not found")
		}
		a.l.Error("failed to get project", zap.Uint("id", id), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	// 只有发起人可以修改
	if project.UserID != user.ID {
		return a.er(http.StatusForbidden, "not the owner of this project")
	}

	// 映射字段
	oldCategoryID := project.CategoryID
	fields, err := a.projectMapFields(body, project)
	if err != nil {
		return err
	}
	if project.CategoryID != oldCategoryID {
		if err = a.projectValidateCategory(rctx, project.CategoryID); err != nil {
			return err
		}
	}

	// 方案：出现即整体替换
	var (
		plans        []models.ProjectPlan
		replacePlans bool
	)
	if r := body.Get("plans"); present(r) {
		if !r.IsArray() {
			return a.erFields(http.StatusBadRequest, "invalid fields", "plans")
		}
		replacePlans = true
		plans = []models.ProjectPlan{}
		for i, item := range r.Array() {
			if !item.IsObject() {
				return a.erFields(http.StatusBadRequest, "invalid fields", fmt.Sprintf("plans[%d]", i))
			}
			plan, err := a.planFromJSON(item, fmt.Sprintf("plans[%d].", i))
			if err != nil {
				return err
			}
			plans = append(plans, plan)
		}
	}

	// 更新
	if err = a.projects.Update(rctx, project, fields, plans, replacePlans); err != nil {
		a.l.Error("failed to update project", zap.Uint("id", id), zap.Any("fields", fields), zap.Error(err))
		return a.er(http.StatusInternalServerError, "")
	}

	a.projectClearCache(rctx, project.ID)
	metrics.IncrementProjectEvent("updated")
	if replacePlans {
		metrics.IncrementProjectEvent("plans_replaced")
	}

	return a.ok(c, http.StatusOK, &types.ProjectID{
		ProjectID: project.ID,
	})
}
