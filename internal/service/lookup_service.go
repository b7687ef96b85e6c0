package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-hub/backend/internal/dto"
	"course-hub/backend/internal/model"
	"course-hub/backend/internal/repository"
)

var ErrLookupNotFound = errors.New("基础数据不存在")

// LookupService 基础数据（模块/届别/班级/授课模式）业务接口
type LookupService interface {
	CreateModule(ctx context.Context, req *dto.CreateModuleRequest) (*model.Module, error)
	UpdateModule(ctx context.Context, id string, req *dto.UpdateModuleRequest) (*model.Module, error)
	ListModules(ctx context.Context, activeOnly bool) ([]model.Module, error)
	CreateCohort(ctx context.Context, req *dto.CreateCohortRequest) (*model.Cohort, error)
	ListCohorts(ctx context.Context, activeOnly bool) ([]model.Cohort, error)
	CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*model.Class, error)
	ListClasses(ctx context.Context, activeOnly bool) ([]model.Class, error)
	CreateMode(ctx context.Context, req *dto.CreateModeRequest) (*model.Mode, error)
	ListModes(ctx context.Context, activeOnly bool) ([]model.Mode, error)
}

type lookupService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLookupService 创建 LookupService 实例
func NewLookupService(repo *repository.Repository, logger *zap.Logger) LookupService {
	return &lookupService{repo: repo, logger: logger}
}

func (s *lookupService) CreateModule(ctx context.Context, req *dto.CreateModuleRequest) (*model.Module, error) {
	m := &model.Module{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Module.Create(ctx, m); err != nil {
		s.logger.Error("创建课程模块失败", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (s *lookupService) UpdateModule(ctx context.Context, id string, req *dto.UpdateModuleRequest) (*model.Module, error) {
	m, err := s.repo.Module.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLookupNotFound
		}
		s.logger.Error("查询课程模块失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Code != nil {
		m.Code = *req.Code
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Active != nil {
		m.Active = *req.Active
	}

	if err := s.repo.Module.Update(ctx, m); err != nil {
		s.logger.Error("更新课程模块失败", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (s *lookupService) ListModules(ctx context.Context, activeOnly bool) ([]model.Module, error) {
	return s.repo.Module.List(ctx, activeOnly)
}

func (s *lookupService) CreateCohort(ctx context.Context, req *dto.CreateCohortRequest) (*model.Cohort, error) {
	c := &model.Cohort{
		Name:    req.Name,
		Year:    req.Year,
		Program: req.Program,
		Active:  true,
	}
	if req.StartDate != "" {
		d, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, ErrBadDateFormat
		}
		c.StartDate = &d
	}
	if req.EndDate != "" {
		d, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, ErrBadDateFormat
		}
		c.EndDate = &d
	}
	if err := s.repo.Cohort.Create(ctx, c); err != nil {
		s.logger.Error("创建届别失败", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *lookupService) ListCohorts(ctx context.Context, activeOnly bool) ([]model.Cohort, error) {
	return s.repo.Cohort.List(ctx, activeOnly)
}

func (s *lookupService) CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*model.Class, error) {
	c := &model.Class{Name: req.Name, Year: req.Year, Active: true}
	if err := s.repo.Class.Create(ctx, c); err != nil {
		s.logger.Error("创建班级失败", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *lookupService) ListClasses(ctx context.Context, activeOnly bool) ([]model.Class, error) {
	return s.repo.Class.List(ctx, activeOnly)
}

func (s *lookupService) CreateMode(ctx context.Context, req *dto.CreateModeRequest) (*model.Mode, error) {
	m := &model.Mode{Name: req.Name, Description: req.Description, Active: true}
	if err := s.repo.Mode.Create(ctx, m); err != nil {
		s.logger.Error("创建授课模式失败", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (s *lookupService) ListModes(ctx context.Context, activeOnly bool) ([]model.Mode, error) {
	return s.repo.Mode.List(ctx, activeOnly)
}
