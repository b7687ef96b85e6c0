package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"course-hub/backend/internal/dto"
	"course-hub/backend/internal/model"
	"course-hub/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Fixtures
// ═══════════════════════════════════════════════════════════

type activityFixture struct {
	repo      *repository.Repository
	offerings *mockCourseOfferingRepo
	trackers  *mockActivityTrackerRepo
	queue     *mockQueue
	svc       ActivityService
}

func newActivityFixture() *activityFixture {
	offerings := newMockCourseOfferingRepo()
	trackers := newMockActivityTrackerRepo(offerings)
	repo := &repository.Repository{
		CourseOffering:  offerings,
		ActivityTracker: trackers,
	}
	queue := newMockQueue()
	return &activityFixture{
		repo:      repo,
		offerings: offerings,
		trackers:  trackers,
		queue:     queue,
		svc:       NewActivityService(repo, queue, zap.NewNop()),
	}
}

func (f *activityFixture) addOffering(id, facilitatorID string) *model.CourseOffering {
	o := &model.CourseOffering{
		OfferingID: id,
		Trimester:  1,
		Intake:     model.IntakeHT1,
		Active:     true,
	}
	if facilitatorID != "" {
		o.FacilitatorID = &facilitatorID
	}
	f.offerings.offerings[id] = o
	return o
}

func validCreateRequest(allocationID string) *dto.CreateActivityRequest {
	return &dto.CreateActivityRequest{
		AllocationID:        allocationID,
		WeekNumber:          7,
		Attendance:          []bool{true, true, false},
		FormativeOneGrading: model.StatusDone,
	}
}

// ═══════════════════════════════════════════════════════════
// Create
// ═══════════════════════════════════════════════════════════

func TestActivityCreate_Success(t *testing.T) {
	f := newActivityFixture()
	f.addOffering("off-1", "fac-1")

	resp, err := f.svc.Create(context.Background(), "fac-1", validCreateRequest("off-1"))
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if resp.WeekNumber != 7 {
		t.Errorf("week_number = %d, want 7", resp.WeekNumber)
	}
	if resp.WeekLabel != "Week 7" {
		t.Errorf("week_label = %q, want %q", resp.WeekLabel, "Week 7")
	}
	// 未提交的环节缺省为 Not Started
	if resp.FormativeTwoGrading != model.StatusNotStarted {
		t.Errorf("formative_two_grading = %q, want %q", resp.FormativeTwoGrading, model.StatusNotStarted)
	}
	if resp.FormativeOneGrading != model.StatusDone {
		t.Errorf("formative_one_grading = %q, want %q", resp.FormativeOneGrading, model.StatusDone)
	}
	if len(f.trackers.trackers) != 1 {
		t.Fatalf("期望落库 1 条周报, 实际 %d", len(f.trackers.trackers))
	}
}

func TestActivityCreate_EnqueuesExactlyOneEvent(t *testing.T) {
	f := newActivityFixture()
	f.addOffering("off-1", "fac-1")

	resp, err := f.svc.Create(context.Background(), "fac-1", validCreateRequest("off-1"))
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	events := f.queue.pushed[dto.QueueManagerEvents]
	if len(events) != 1 {
		t.Fatalf("期望入队 1 条事件, 实际 %d", len(events))
	}

	var notif dto.ManagerNotification
	if err := json.Unmarshal(events[0], &notif); err != nil {
		t.Fatalf("事件载荷非法 JSON: %v", err)
	}
	if notif.Type != dto.NotificationActivitySubmitted {
		t.Errorf("type = %q, want %q", notif.Type, dto.NotificationActivitySubmitted)
	}
	if notif.ActivityLogID != resp.TrackerID {
		t.Errorf("activityLogId = %q, want %q", notif.ActivityLogID, resp.TrackerID)
	}
	if notif.Timestamp == "" {
		t.Error("timestamp 不应为空")
	}
}

func TestActivityCreate_DeniedForOtherFacilitator(t *testing.T) {
	f := newActivityFixture()
	f.addOffering("off-1", "fac-1")

	_, err := f.svc.Create(context.Background(), "fac-2", validCreateRequest("off-1"))
	if !errors.Is(err, ErrActivityAccessDenied) {
		t.Fatalf("err = %v, want ErrActivityAccessDenied", err)
	}
	if len(f.trackers.trackers) != 0 {
		t.Error("越权提交不应落库")
	}
	if len(f.queue.pushed[dto.QueueManagerEvents]) != 0 {
		t.Error("越权提交不应入队")
	}
}

func TestActivityCreate_DeniedWhenNoFacilitatorAssigned(t *testing.T) {
	f := newActivityFixture()
	f.addOffering("off-1", "") // 未排讲师

	_, err := f.svc.Create(context.Background(), "fac-1", validCreateRequest("off-1"))
	if !errors.Is(err, ErrActivityAccessDenied) {
		t.Fatalf("err = %v, want ErrActivityAccessDenied", err)
	}
}

func TestActivityCreate_OfferingMissing(t *testing.T) {
	f := newActivityFixture()

	_, err := f.svc.Create(context.Background(), "fac-1", validCreateRequest("off-missing"))
	if !errors.Is(err, ErrCourseOfferingNotFound) {
		t.Fatalf("err = %v, want ErrCourseOfferingNotFound", err)
	}
}

func TestActivityCreate_QueueFailureStillSucceeds(t *testing.T) {
	f := newActivityFixture()
	f.addOffering("off-1", "fac-1")
	f.queue.fail = true

	resp, err := f.svc.Create(context.Background(), "fac-1", validCreateRequest("off-1"))
	if err != nil {
		t.Fatalf("队列失败不应影响提交: %v", err)
	}
	if resp.TrackerID == "" {
		t.Error("应返回落库后的周报")
	}
}

func TestActivityCreate_NilQueue(t *testing.T) {
	f := newActivityFixture()
	f.addOffering("off-1", "fac-1")
	svc := NewActivityService(f.repo, nil, zap.NewNop())

	if _, err := svc.Create(context.Background(), "fac-1", validCreateRequest("off-1")); err != nil {
		t.Fatalf("无队列时提交应降级成功: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Update
// ═══════════════════════════════════════════════════════════

func TestActivityUpdate_Success(t *testing.T) {
	f := newActivityFixture()
	f.addOffering("off-1", "fac-1")
	resp, err := f.svc.Create(context.Background(), "fac-1", validCreateRequest("off-1"))
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	gradeBook := model.StatusDone
	notes := "补交了第 7 周的批改"
	updated, err := f.svc.Update(context.Background(), "fac-1", resp.TrackerID, &dto.UpdateActivityRequest{
		GradeBookStatus: &gradeBook,
		Notes:           &notes,
	})
	if err != nil {
		t.Fatalf("Update 失败: %v", err)
	}

	if updated.GradeBookStatus != model.StatusDone {
		t.Errorf("grade_book_status = %q, want %q", updated.GradeBookStatus, model.StatusDone)
	}
	if updated.Notes == nil || *updated.Notes != notes {
		t.Errorf("notes 未更新")
	}

	// Create + Update 各入队一条
	events := f.queue.pushed[dto.QueueManagerEvents]
	if len(events) != 2 {
		t.Fatalf("期望 2 条事件, 实际 %d", len(events))
	}
	var notif dto.ManagerNotification
	if err := json.Unmarshal(events[1], &notif); err != nil {
		t.Fatalf("事件载荷非法 JSON: %v", err)
	}
	if notif.Type != dto.NotificationActivityUpdated {
		t.Errorf("type = %q, want %q", notif.Type, dto.NotificationActivityUpdated)
	}
}

func TestActivityUpdate_Missing(t *testing.T) {
	f := newActivityFixture()

	week := 8
	_, err := f.svc.Update(context.Background(), "fac-1", "trk-missing", &dto.UpdateActivityRequest{WeekNumber: &week})
	if !errors.Is(err, ErrActivityLogNotFound) {
		t.Fatalf("err = %v, want ErrActivityLogNotFound", err)
	}
}

func TestActivityUpdate_DeniedForOtherFacilitator(t *testing.T) {
	f := newActivityFixture()
	f.addOffering("off-1", "fac-1")
	resp, err := f.svc.Create(context.Background(), "fac-1", validCreateRequest("off-1"))
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	week := 8
	_, err = f.svc.Update(context.Background(), "fac-2", resp.TrackerID, &dto.UpdateActivityRequest{WeekNumber: &week})
	if !errors.Is(err, ErrActivityAccessDenied) {
		t.Fatalf("err = %v, want ErrActivityAccessDenied", err)
	}
}

// ═══════════════════════════════════════════════════════════
// GetByID / Delete
// ═══════════════════════════════════════════════════════════

func TestActivityGetByID_FacilitatorOwnership(t *testing.T) {
	f := newActivityFixture()
	f.addOffering("off-1", "fac-1")
	resp, err := f.svc.Create(context.Background(), "fac-1", validCreateRequest("off-1"))
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	// 本人可见
	if _, err := f.svc.GetByID(context.Background(), "fac-1", model.RoleFacilitator, resp.TrackerID); err != nil {
		t.Errorf("本人查看失败: %v", err)
	}
	// 其他讲师不可见
	if _, err := f.svc.GetByID(context.Background(), "fac-2", model.RoleFacilitator, resp.TrackerID); !errors.Is(err, ErrActivityAccessDenied) {
		t.Errorf("err = %v, want ErrActivityAccessDenied", err)
	}
	// 管理员不受限
	if _, err := f.svc.GetByID(context.Background(), "mgr-1", model.RoleManager, resp.TrackerID); err != nil {
		t.Errorf("管理员查看失败: %v", err)
	}
}

func TestActivityDelete_Missing(t *testing.T) {
	f := newActivityFixture()
	if err := f.svc.Delete(context.Background(), "trk-missing"); !errors.Is(err, ErrActivityLogNotFound) {
		t.Fatalf("err = %v, want ErrActivityLogNotFound", err)
	}
}
