//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"course-hub/backend/internal/dto"
	"course-hub/backend/internal/model"
	"course-hub/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=course_hub password=course_hub_password dbname=course_hub_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.Cohort{},
		&model.Student{},
		&model.Module{},
		&model.Class{},
		&model.Mode{},
		&model.CourseOffering{},
		&model.ActivityTracker{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupOffering 创建一套完整的开课基础数据并返回清理函数
func setupOffering(t *testing.T) (offering *model.CourseOffering, facilitator *model.User, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	facilitator = &model.User{
		FirstName:    "测试",
		LastName:     "讲师",
		Email:        fmt.Sprintf("fac-%d@test.local", suffix),
		PasswordHash: "x",
		Role:         model.RoleFacilitator,
		Active:       true,
	}
	if err := testDB.WithContext(ctx).Create(facilitator).Error; err != nil {
		t.Fatalf("创建讲师失败: %v", err)
	}

	mod := &model.Module{Name: fmt.Sprintf("测试模块-%d", suffix), Active: true}
	cohort := &model.Cohort{Name: fmt.Sprintf("测试届别-%d", suffix), Year: 2026, Program: "Software Development", Active: true}
	class := &model.Class{Name: fmt.Sprintf("测试班级-%d", suffix), Year: 2026, Active: true}
	mode := &model.Mode{Name: fmt.Sprintf("测试模式-%d", suffix), Active: true}
	for _, rec := range []interface{}{mod, cohort, class, mode} {
		if err := testDB.WithContext(ctx).Create(rec).Error; err != nil {
			t.Fatalf("创建基础数据失败: %v", err)
		}
	}

	offering = &model.CourseOffering{
		ModuleID:      mod.ModuleID,
		FacilitatorID: &facilitator.UserID,
		CohortID:      cohort.CohortID,
		ClassID:       class.ClassID,
		ModeID:        mode.ModeID,
		Trimester:     1,
		Intake:        model.IntakeHT1,
		Active:        true,
	}
	if err := testDB.WithContext(ctx).Create(offering).Error; err != nil {
		t.Fatalf("创建开课记录失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("allocation_id = ?", offering.OfferingID).Delete(&model.ActivityTracker{})
		testDB.Where("offering_id = ?", offering.OfferingID).Delete(&model.CourseOffering{})
		testDB.Where("module_id = ?", mod.ModuleID).Delete(&model.Module{})
		testDB.Where("cohort_id = ?", cohort.CohortID).Delete(&model.Cohort{})
		testDB.Where("class_id = ?", class.ClassID).Delete(&model.Class{})
		testDB.Where("mode_id = ?", mode.ModeID).Delete(&model.Mode{})
		testDB.Where("user_id = ?", facilitator.UserID).Delete(&model.User{})
	}
	return offering, facilitator, cleanup
}

// ═══════════════════════════════════════════════════════════
// CourseOffering Repository
// ═══════════════════════════════════════════════════════════

func TestCourseOfferingRepo_GetByID_Preloads(t *testing.T) {
	offering, facilitator, cleanup := setupOffering(t)
	defer cleanup()

	repo := repository.NewCourseOfferingRepo(testDB)
	got, err := repo.GetByID(context.Background(), offering.OfferingID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.Module == nil || got.Facilitator == nil {
		t.Fatal("关联未预加载")
	}
	if got.Facilitator.UserID != facilitator.UserID {
		t.Errorf("讲师不匹配: got %s want %s", got.Facilitator.UserID, facilitator.UserID)
	}
}

func TestCourseOfferingRepo_Delete_RowsAffected(t *testing.T) {
	offering, _, cleanup := setupOffering(t)
	defer cleanup()

	repo := repository.NewCourseOfferingRepo(testDB)
	n, err := repo.Delete(context.Background(), offering.OfferingID)
	if err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if n != 1 {
		t.Errorf("期望删除 1 行, 实际 %d", n)
	}

	n, err = repo.Delete(context.Background(), offering.OfferingID)
	if err != nil {
		t.Fatalf("重复 Delete 失败: %v", err)
	}
	if n != 0 {
		t.Errorf("重复删除期望 0 行, 实际 %d", n)
	}
}

// ═══════════════════════════════════════════════════════════
// ActivityTracker Repository
// ═══════════════════════════════════════════════════════════

func TestActivityTrackerRepo_ExistsForWeek(t *testing.T) {
	offering, facilitator, cleanup := setupOffering(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewActivityTrackerRepo(testDB)

	tracker := &model.ActivityTracker{
		AllocationID:        offering.OfferingID,
		WeekNumber:          7,
		Attendance:          model.BoolArray{true, false, true},
		FormativeOneGrading: model.StatusDone,
		FormativeTwoGrading: model.StatusNotStarted,
		SummativeGrading:    model.StatusNotStarted,
		CourseModeration:    model.StatusNotStarted,
		IntranetSync:        model.StatusNotStarted,
		GradeBookStatus:     model.StatusNotStarted,
		CreatedBy:           &facilitator.UserID,
	}
	if err := repo.Create(ctx, tracker); err != nil {
		t.Fatalf("创建周报失败: %v", err)
	}

	// 出勤序列经 JSONB 落库后回读，顺序保持不变
	got, err := repo.GetByID(ctx, tracker.TrackerID)
	if err != nil {
		t.Fatalf("回读周报失败: %v", err)
	}
	if len(got.Attendance) != 3 || !got.Attendance[0] || got.Attendance[1] || !got.Attendance[2] {
		t.Errorf("出勤序列回读不符: got %v, want [true false true]", got.Attendance)
	}

	exists, err := repo.ExistsForWeek(ctx, offering.OfferingID, 7)
	if err != nil {
		t.Fatalf("ExistsForWeek 失败: %v", err)
	}
	if !exists {
		t.Error("第 7 周已有周报, 应返回 true")
	}

	exists, err = repo.ExistsForWeek(ctx, offering.OfferingID, 8)
	if err != nil {
		t.Fatalf("ExistsForWeek 失败: %v", err)
	}
	if exists {
		t.Error("第 8 周无周报, 应返回 false")
	}
}

func TestActivityTrackerRepo_UpdateFields_Missing(t *testing.T) {
	repo := repository.NewActivityTrackerRepo(testDB)
	n, err := repo.UpdateFields(context.Background(),
		"00000000-0000-0000-0000-000000000000",
		map[string]interface{}{"grade_book_status": model.StatusDone})
	if err != nil {
		t.Fatalf("UpdateFields 失败: %v", err)
	}
	if n != 0 {
		t.Errorf("更新不存在记录期望 0 行, 实际 %d", n)
	}
}

func TestActivityTrackerRepo_ListByFacilitator(t *testing.T) {
	offering, facilitator, cleanup := setupOffering(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewActivityTrackerRepo(testDB)
	for week := 1; week <= 3; week++ {
		tracker := &model.ActivityTracker{
			AllocationID:        offering.OfferingID,
			WeekNumber:          week,
			Attendance:          model.BoolArray{},
			FormativeOneGrading: model.StatusPending,
			FormativeTwoGrading: model.StatusNotStarted,
			SummativeGrading:    model.StatusNotStarted,
			CourseModeration:    model.StatusNotStarted,
			IntranetSync:        model.StatusNotStarted,
			GradeBookStatus:     model.StatusNotStarted,
		}
		if err := repo.Create(ctx, tracker); err != nil {
			t.Fatalf("创建周报失败: %v", err)
		}
	}

	trackers, total, err := repo.ListByFacilitator(ctx, facilitator.UserID, &dto.ActivityListQuery{})
	if err != nil {
		t.Fatalf("ListByFacilitator 失败: %v", err)
	}
	if total != 3 || len(trackers) != 3 {
		t.Errorf("期望 3 条周报, 实际 total=%d len=%d", total, len(trackers))
	}
}
