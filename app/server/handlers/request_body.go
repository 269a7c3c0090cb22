package handlers

import (
	"bytes"
	"crowdfunding-backend/app/server/models"
	"encoding/json"
	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// readJSON 读取原始请求体。项目相关接口需要区分“没有传”和“传了零值”，所以不走 Bind
func (a *App) readJSON(c echo.Context) (gjson.Result, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return gjson.Result{}, a.er(http.StatusBadRequest, "failed to read request body")
	}

	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, a.er(http.StatusBadRequest, "invalid json body")
	}

	res := gjson.ParseBytes(body)
	if !res.IsObject() {
		return gjson.Result{}, a.er(http.StatusBadRequest, "json body must be an object")
	}

	return res, nil
}

// present 字段存在且不为 null
func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

// missingFields 按 names 的顺序返回缺失的字段
func missingFields(body gjson.Result, names ...string) []string {
	var missing []string
	for _, name := range names {
		if !present(body.Get(name)) {
			missing = append(missing, name)
		}
	}
	return missing
}

// coerceInt 把数字、数字字符串转换成整数；假值（null、false、空字符串）视为 0
func coerceInt(r gjson.Result) (int64, bool) {
	switch r.Type {
	case gjson.Null, gjson.False:
		return 0, true
	case gjson.True:
		return 1, true
	case gjson.Number:
		return floatToInt(r.Num)
	case gjson.String:
		s := strings.TrimSpace(r.Str)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	default:
		return 0, false
	}
}

// floatToInt 截断小数部分； NaN 、无穷大与超出 int64 的值视为无效
func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// parseTime 接受 RFC3339 字符串、 YYYY-MM-DD 日期或 Unix 秒
func parseTime(r gjson.Result) (time.Time, bool) {
	switch r.Type {
	case gjson.Number:
		return time.Unix(r.Int(), 0).UTC(), true
	case gjson.String:
		for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
			if t, err := time.Parse(layout, strings.TrimSpace(r.Str)); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

// rawJSON 原样保留任意 JSON 值， null 或缺失时为空
func rawJSON(r gjson.Result) json.RawMessage {
	if !present(r) {
		return nil
	}
	return json.RawMessage(r.Raw)
}

// planFromJSON 把一个方案对象转换为模型， prefix 用于错误信息中的字段路径
func (a *App) planFromJSON(r gjson.Result, prefix string) (models.ProjectPlan, error) {
	plan := models.ProjectPlan{
		PlanName:    r.Get("plan_name").String(),
		Feedback:    r.Get("feedback").String(),
		FeedbackImg: r.Get("feedback_img").String(),
	}

	var ok bool
	if plan.Amount, ok = coerceInt(r.Get("amount")); !ok {
		return plan, a.erFields(http.StatusBadRequest, "invalid fields", prefix+"amount")
	}
	if plan.Quantity, ok = coerceInt(r.Get("quantity")); !ok {
		return plan, a.erFields(http.StatusBadRequest, "invalid fields", prefix+"quantity")
	}

	if deliveryDate := r.Get("delivery_date"); present(deliveryDate) {
		t, ok := parseTime(deliveryDate)
		if !ok {
			return plan, a.erFields(http.StatusBadRequest, "invalid fields", prefix+"delivery_date")
		}
		plan.DeliveryDate = &t
	}

	return plan, nil
}
