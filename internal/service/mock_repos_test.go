package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"course-hub/backend/internal/dto"
	"course-hub/backend/internal/model"
)

func strPtr(s string) *string { return &s }

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, role string, active *bool, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if active != nil && u.Active != *active {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) ListManagers(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == model.RoleManager && u.Active {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.ID == "" {
		student.ID = "stu-" + student.StudentNo
	}
	m.students[student.ID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByUserID(_ context.Context, userID string) (*model.Student, error) {
	for _, s := range m.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, cohortID string, _, _ int) ([]model.Student, int64, error) {
	var result []model.Student
	for _, s := range m.students {
		if cohortID != "" && s.CohortID != cohortID {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

// ── Mock 基础数据 Repository ──

type mockModuleRepo struct {
	modules map[string]*model.Module
}

func newMockModuleRepo() *mockModuleRepo {
	return &mockModuleRepo{modules: make(map[string]*model.Module)}
}

func (m *mockModuleRepo) Create(_ context.Context, mod *model.Module) error {
	if mod.ModuleID == "" {
		mod.ModuleID = "mod-" + mod.Name
	}
	m.modules[mod.ModuleID] = mod
	return nil
}

func (m *mockModuleRepo) GetByID(_ context.Context, id string) (*model.Module, error) {
	if mod, ok := m.modules[id]; ok {
		return mod, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockModuleRepo) Update(_ context.Context, mod *model.Module) error {
	m.modules[mod.ModuleID] = mod
	return nil
}

func (m *mockModuleRepo) List(_ context.Context, activeOnly bool) ([]model.Module, error) {
	var result []model.Module
	for _, mod := range m.modules {
		if activeOnly && !mod.Active {
			continue
		}
		result = append(result, *mod)
	}
	return result, nil
}

type mockCohortRepo struct {
	cohorts map[string]*model.Cohort
}

func newMockCohortRepo() *mockCohortRepo {
	return &mockCohortRepo{cohorts: make(map[string]*model.Cohort)}
}

func (m *mockCohortRepo) Create(_ context.Context, c *model.Cohort) error {
	if c.CohortID == "" {
		c.CohortID = "coh-" + c.Name
	}
	m.cohorts[c.CohortID] = c
	return nil
}

func (m *mockCohortRepo) GetByID(_ context.Context, id string) (*model.Cohort, error) {
	if c, ok := m.cohorts[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCohortRepo) List(_ context.Context, activeOnly bool) ([]model.Cohort, error) {
	var result []model.Cohort
	for _, c := range m.cohorts {
		if activeOnly && !c.Active {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

type mockClassRepo struct {
	classes map[string]*model.Class
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Class)}
}

func (m *mockClassRepo) Create(_ context.Context, c *model.Class) error {
	if c.ClassID == "" {
		c.ClassID = "cls-" + c.Name
	}
	m.classes[c.ClassID] = c
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) List(_ context.Context, activeOnly bool) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		if activeOnly && !c.Active {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

type mockModeRepo struct {
	modes map[string]*model.Mode
}

func newMockModeRepo() *mockModeRepo {
	return &mockModeRepo{modes: make(map[string]*model.Mode)}
}

func (m *mockModeRepo) Create(_ context.Context, md *model.Mode) error {
	if md.ModeID == "" {
		md.ModeID = "mode-" + md.Name
	}
	m.modes[md.ModeID] = md
	return nil
}

func (m *mockModeRepo) GetByID(_ context.Context, id string) (*model.Mode, error) {
	if md, ok := m.modes[id]; ok {
		return md, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockModeRepo) List(_ context.Context, activeOnly bool) ([]model.Mode, error) {
	var result []model.Mode
	for _, md := range m.modes {
		if activeOnly && !md.Active {
			continue
		}
		result = append(result, *md)
	}
	return result, nil
}

// ── Mock CourseOfferingRepository ──

type mockCourseOfferingRepo struct {
	offerings map[string]*model.CourseOffering
	seq       int
}

func newMockCourseOfferingRepo() *mockCourseOfferingRepo {
	return &mockCourseOfferingRepo{offerings: make(map[string]*model.CourseOffering)}
}

func (m *mockCourseOfferingRepo) Create(_ context.Context, o *model.CourseOffering) error {
	if o.OfferingID == "" {
		m.seq++
		o.OfferingID = fmt.Sprintf("off-%d", m.seq)
	}
	m.offerings[o.OfferingID] = o
	return nil
}

func (m *mockCourseOfferingRepo) GetByID(_ context.Context, id string) (*model.CourseOffering, error) {
	if o, ok := m.offerings[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseOfferingRepo) List(_ context.Context, q *dto.OfferingListQuery) ([]model.CourseOffering, int64, error) {
	var result []model.CourseOffering
	for _, o := range m.offerings {
		if q.FacilitatorID != "" && (o.FacilitatorID == nil || *o.FacilitatorID != q.FacilitatorID) {
			continue
		}
		if q.Active != nil && o.Active != *q.Active {
			continue
		}
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (m *mockCourseOfferingRepo) ListByFacilitator(_ context.Context, facilitatorID string) ([]model.CourseOffering, error) {
	var result []model.CourseOffering
	for _, o := range m.offerings {
		if o.FacilitatorID != nil && *o.FacilitatorID == facilitatorID && o.Active {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockCourseOfferingRepo) ListActiveWithFacilitator(_ context.Context) ([]model.CourseOffering, error) {
	var result []model.CourseOffering
	for _, o := range m.offerings {
		if o.Active && o.FacilitatorID != nil {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockCourseOfferingRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) (int64, error) {
	o, ok := m.offerings[id]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["active"]; ok {
		o.Active = v.(bool)
	}
	if v, ok := fields["facilitator_id"]; ok {
		fid := v.(string)
		o.FacilitatorID = &fid
	}
	if v, ok := fields["trimester"]; ok {
		o.Trimester = v.(int)
	}
	if v, ok := fields["intake_period"]; ok {
		o.Intake = v.(string)
	}
	return 1, nil
}

func (m *mockCourseOfferingRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.offerings[id]; !ok {
		return 0, nil
	}
	delete(m.offerings, id)
	return 1, nil
}

// ── Mock ActivityTrackerRepository ──

type mockActivityTrackerRepo struct {
	trackers  map[string]*model.ActivityTracker
	offerings *mockCourseOfferingRepo // GetByID 模拟关联预加载
	seq       int
}

func newMockActivityTrackerRepo(offerings *mockCourseOfferingRepo) *mockActivityTrackerRepo {
	return &mockActivityTrackerRepo{
		trackers:  make(map[string]*model.ActivityTracker),
		offerings: offerings,
	}
}

func (m *mockActivityTrackerRepo) Create(_ context.Context, t *model.ActivityTracker) error {
	if t.TrackerID == "" {
		m.seq++
		t.TrackerID = fmt.Sprintf("trk-%d", m.seq)
	}
	m.trackers[t.TrackerID] = t
	return nil
}

func (m *mockActivityTrackerRepo) GetByID(_ context.Context, id string) (*model.ActivityTracker, error) {
	t, ok := m.trackers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	if o, ok := m.offerings.offerings[t.AllocationID]; ok {
		cp.CourseOffering = o
	}
	return &cp, nil
}

func (m *mockActivityTrackerRepo) List(_ context.Context, q *dto.ActivityListQuery) ([]model.ActivityTracker, int64, error) {
	var result []model.ActivityTracker
	for _, t := range m.trackers {
		if q.AllocationID != "" && t.AllocationID != q.AllocationID {
			continue
		}
		if q.WeekNumber != 0 && t.WeekNumber != q.WeekNumber {
			continue
		}
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (m *mockActivityTrackerRepo) ListByFacilitator(_ context.Context, facilitatorID string, q *dto.ActivityListQuery) ([]model.ActivityTracker, int64, error) {
	var result []model.ActivityTracker
	for _, t := range m.trackers {
		o, ok := m.offerings.offerings[t.AllocationID]
		if !ok || o.FacilitatorID == nil || *o.FacilitatorID != facilitatorID {
			continue
		}
		if q.AllocationID != "" && t.AllocationID != q.AllocationID {
			continue
		}
		if q.WeekNumber != 0 && t.WeekNumber != q.WeekNumber {
			continue
		}
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (m *mockActivityTrackerRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) (int64, error) {
	t, ok := m.trackers[id]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["week_number"]; ok {
		t.WeekNumber = v.(int)
	}
	if v, ok := fields["attendance"]; ok {
		t.Attendance = v.(model.BoolArray)
	}
	if v, ok := fields["formative_one_grading"]; ok {
		t.FormativeOneGrading = v.(string)
	}
	if v, ok := fields["formative_two_grading"]; ok {
		t.FormativeTwoGrading = v.(string)
	}
	if v, ok := fields["summative_grading"]; ok {
		t.SummativeGrading = v.(string)
	}
	if v, ok := fields["course_moderation"]; ok {
		t.CourseModeration = v.(string)
	}
	if v, ok := fields["intranet_sync"]; ok {
		t.IntranetSync = v.(string)
	}
	if v, ok := fields["grade_book_status"]; ok {
		t.GradeBookStatus = v.(string)
	}
	if v, ok := fields["notes"]; ok {
		n := v.(string)
		t.Notes = &n
	}
	return 1, nil
}

func (m *mockActivityTrackerRepo) ExistsForWeek(_ context.Context, allocationID string, weekNumber int) (bool, error) {
	for _, t := range m.trackers {
		if t.AllocationID == allocationID && t.WeekNumber == weekNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockActivityTrackerRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.trackers[id]; !ok {
		return 0, nil
	}
	delete(m.trackers, id)
	return 1, nil
}

// ── Mock NotificationQueue ──

type mockQueue struct {
	pushed map[string][][]byte
	fail   bool
}

func newMockQueue() *mockQueue {
	return &mockQueue{pushed: make(map[string][][]byte)}
}

func (m *mockQueue) PushTail(_ context.Context, key string, payload []byte) error {
	if m.fail {
		return errors.New("redis unavailable")
	}
	m.pushed[key] = append(m.pushed[key], payload)
	return nil
}
