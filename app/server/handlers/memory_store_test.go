package handlers

import (
	"context"
	"crowdfunding-backend/app/server/cache"
	"crowdfunding-backend/app/server/jwt"
	"crowdfunding-backend/app/server/models"
	"crowdfunding-backend/app/server/repository"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// memoryStore 在内存中实现全部 store 接口，供 handler 测试使用
type memoryStore struct {
	mu sync.Mutex

	users      map[uint]models.User
	categories map[uint]models.Category
	projects   map[uint]models.Project
	plans      map[uint]models.ProjectPlan
	assets     map[uuid.UUID]models.Asset

	nextUserID    uint
	nextProjectID uint
	nextPlanID    uint
	nextAssetID   uint
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:      make(map[uint]models.User),
		categories: map[uint]models.Category{1: {ID: 1, Name: "Technology"}, 2: {ID: 2, Name: "Design"}},
		projects:   make(map[uint]models.Project),
		plans:      make(map[uint]models.ProjectPlan),
		assets:     make(map[uuid.UUID]models.Asset),
	}
}

type memoryUsers struct{ *memoryStore }
type memoryCategories struct{ *memoryStore }
type memoryProjects struct{ *memoryStore }
type memoryAssets struct{ *memoryStore }

func (s memoryUsers) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicated
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s memoryUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (s memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s memoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	return err == nil, nil
}

func (s memoryUsers) UpdateProfile(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s memoryCategories) FindByID(_ context.Context, id uint) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (s memoryCategories) List(_ context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []models.Category
	for _, c := range s.categories {
		res = append(res, c)
	}
	slices.SortFunc(res, func(x, y models.Category) int { return int(x.ID) - int(y.ID) })
	return res, nil
}

func (s memoryProjects) Create(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextProjectID++
	project.ID = s.nextProjectID
	s.projects[project.ID] = *project
	return nil
}

func (s memoryProjects) FindByID(_ context.Context, id uint) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (s memoryProjects) FindWithPlans(_ context.Context, id uint) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Category = s.categories[p.CategoryID]
	p.Plans = s.projectPlans(id)
	return &p, nil
}

func (s memoryProjects) CreatePlan(_ context.Context, plan *models.ProjectPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertPlan(plan)
	return nil
}

// Update 只写入 fields 中的列，和真实仓库一致；传入的 project 本身不会被保存
func (s memoryProjects) Update(_ context.Context, project *models.Project, fields map[string]any, plans []models.ProjectPlan, replacePlans bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.projects[project.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range fields {
		if err := setProjectColumn(&stored, column, value); err != nil {
			return err
		}
	}
	s.projects[project.ID] = stored

	if replacePlans {
		for id, plan := range s.plans {
			if plan.ProjectID == project.ID {
				delete(s.plans, id)
			}
		}
		for i := range plans {
			plans[i].ProjectID = project.ID
			s.insertPlan(&plans[i])
		}
	}
	return nil
}

func setProjectColumn(p *models.Project, column string, value any) error {
	var ok bool
	switch column {
	case "title":
		p.Title, ok = value.(string)
	case "summary":
		p.Summary, ok = value.(string)
	case "cover":
		p.Cover, ok = value.(string)
	case "full_content":
		p.FullContent, ok = value.(string)
	case "category_id":
		p.CategoryID, ok = value.(uint)
	case "total_amount":
		p.TotalAmount, ok = value.(int64)
	case "start_time":
		p.StartTime, ok = value.(time.Time)
	case "end_time":
		p.EndTime, ok = value.(time.Time)
	case "project_team":
		p.ProjectTeam, ok = value.(json.RawMessage)
	case "faq":
		p.FAQ, ok = value.(json.RawMessage)
	default:
		return fmt.Errorf("unknown project column %q", column)
	}
	if !ok {
		return fmt.Errorf("unexpected value %T for project column %q", value, column)
	}
	return nil
}

func (s *memoryStore) insertPlan(plan *models.ProjectPlan) {
	s.nextPlanID++
	plan.PlanID = s.nextPlanID
	s.plans[plan.PlanID] = *plan
}

// projectPlans 返回顺序故意与 plan_id 相反，用来验证输出时的排序
func (s *memoryStore) projectPlans(projectID uint) []models.ProjectPlan {
	var res []models.ProjectPlan
	for _, plan := range s.plans {
		if plan.ProjectID == projectID {
			res = append(res, plan)
		}
	}
	slices.SortFunc(res, func(x, y models.ProjectPlan) int { return int(y.PlanID) - int(x.PlanID) })
	return res
}

func (s memoryAssets) Create(_ context.Context, asset *models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAssetID++
	asset.ID = s.nextAssetID
	s.assets[asset.Key] = *asset
	return nil
}

func (s memoryAssets) FindByKey(_ context.Context, key uuid.UUID) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

type testServer struct {
	e     *echo.Echo
	app   *App
	store *memoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	j, err := jwt.New("test-secret")
	require.NoError(t, err)

	l := zap.NewNop()
	store := newMemoryStore()
	app := NewApp(l, Stores{
		Users:      memoryUsers{store},
		Categories: memoryCategories{store},
		Projects:   memoryProjects{store},
		Assets:     memoryAssets{store},
	}, cache.New(nil, l), j)

	e := echo.New()
	app.Setup(e, 1000)

	return &testServer{e: e, app: app, store: store}
}

func (ts *testServer) addUser(t *testing.T, email string) (models.User, string) {
	t.Helper()

	user := models.User{Email: email, Nickname: "tester"}
	require.NoError(t, memoryUsers{ts.store}.Create(context.Background(), &user))

	token, err := ts.app.issueToken(user.ID)
	require.NoError(t, err)

	return user, token
}
