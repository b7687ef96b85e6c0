package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-hub/backend/config"
	"course-hub/backend/internal/api/handler"
	"course-hub/backend/internal/api/middleware"
	"course-hub/backend/internal/model"
	"course-hub/backend/pkg/jwt"
	"course-hub/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1 MiB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API ──
	api := r.Group("/api")
	{
		// 认证模块（无需认证，登录接口限流）
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login",
				middleware.RateLimit(rdb, cfg.Auth.LoginRateLimitPerMin, time.Minute),
				h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/profile", h.User.GetProfile)
				users.PUT("/profile", h.User.UpdateProfile)
				users.GET("", middleware.RoleAuth(model.RoleManager), h.User.ListUsers)
			}

			// 学员档案模块
			students := authorized.Group("/students")
			students.Use(middleware.RoleAuth(model.RoleManager))
			{
				students.POST("", h.User.CreateStudent)
				students.GET("", h.User.ListStudents)
				students.GET("/:id", h.User.GetStudent)
			}

			// 课程模块（基础数据 + 开课安排）
			courses := authorized.Group("/courses")
			{
				// 基础数据：读开放给所有登录用户，写仅管理员
				courses.GET("/modules", h.Course.ListModules)
				courses.POST("/modules", middleware.RoleAuth(model.RoleManager), h.Course.CreateModule)
				courses.PUT("/modules/:id", middleware.RoleAuth(model.RoleManager), h.Course.UpdateModule)
				courses.GET("/cohorts", h.Course.ListCohorts)
				courses.POST("/cohorts", middleware.RoleAuth(model.RoleManager), h.Course.CreateCohort)
				courses.GET("/classes", h.Course.ListClasses)
				courses.POST("/classes", middleware.RoleAuth(model.RoleManager), h.Course.CreateClass)
				courses.GET("/modes", h.Course.ListModes)
				courses.POST("/modes", middleware.RoleAuth(model.RoleManager), h.Course.CreateMode)

				// 开课安排：讲师可查自己的，其余仅管理员
				courses.GET("/offerings/mine", middleware.RoleAuth(model.RoleFacilitator), h.Course.ListMyOfferings)
				courses.GET("/offerings", middleware.RoleAuth(model.RoleManager), h.Course.ListOfferings)
				courses.POST("/offerings", middleware.RoleAuth(model.RoleManager), h.Course.CreateOffering)
				courses.GET("/offerings/:id", middleware.RoleAuth(model.RoleManager, model.RoleFacilitator), h.Course.GetOffering)
				courses.PUT("/offerings/:id", middleware.RoleAuth(model.RoleManager), h.Course.UpdateOffering)
				courses.DELETE("/offerings/:id", middleware.RoleAuth(model.RoleManager), h.Course.DeleteOffering)
			}

			// 周报模块
			activities := authorized.Group("/activities")
			{
				activities.POST("", middleware.RoleAuth(model.RoleFacilitator), h.Activity.Create)
				activities.GET("/mine", middleware.RoleAuth(model.RoleFacilitator), h.Activity.ListMine)
				activities.GET("", middleware.RoleAuth(model.RoleManager), h.Activity.List)
				activities.GET("/:id", middleware.RoleAuth(model.RoleManager, model.RoleFacilitator), h.Activity.Get)
				activities.PUT("/:id", middleware.RoleAuth(model.RoleFacilitator), h.Activity.Update)
				activities.DELETE("/:id", middleware.RoleAuth(model.RoleManager), h.Activity.Delete)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/activities", middleware.RoleAuth(model.RoleManager, model.RoleFacilitator), h.Export.ExportActivities)
				export.GET("/calendar", middleware.RoleAuth(model.RoleManager, model.RoleFacilitator), h.Export.ExportCalendar)
			}

			// 运维模块
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleManager))
			{
				admin.GET("/notifications", h.Admin.ListNotifications)
			}
		}
	}

	return r
}
