package types

import (
	"encoding/json"
	"time"
)

type ProjectID struct {
	ProjectID uint `json:"project_id"`
}

type PlanInfo struct {
	PlanName     string     `json:"plan_name"`
	Amount       int64      `json:"amount"`
	Quantity     int64      `json:"quantity"`
	Feedback     string     `json:"feedback"`
	FeedbackImg  string     `json:"feedback_img"`
	DeliveryDate *time.Time `json:"delivery_date"`
}

type PlanInfoWithID struct {
	PlanID    uint `json:"plan_id"`
	ProjectID uint `json:"project_id"`
	PlanInfo
}

type ProjectDetail struct {
	ProjectID    uint            `json:"project_id"`
	Title        string          `json:"title"`
	Summary      string          `json:"summary"`
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	TotalAmount  int64           `json:"total_amount"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Cover        string          `json:"cover"`
	FullContent  string          `json:"full_content"`
	ProjectTeam  json.RawMessage `json:"project_team"`
	FAQ          json.RawMessage `json:"faq"`
	Plans        []PlanInfo      `json:"plans"`
}

type CategoryInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AssetInfo struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
