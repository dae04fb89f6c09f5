package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	v1 "github.com/CbIpok/energos/internal/api/handler/v1"
	"github.com/CbIpok/energos/internal/api/middleware"
	"github.com/CbIpok/energos/internal/config"
	"github.com/CbIpok/energos/internal/repository"
	"github.com/CbIpok/energos/internal/repository/dao"
	"github.com/CbIpok/energos/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	engine.LoadHTMLGlob(conf.API.TemplatesGlob)

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	adminHandler := s.initAdminHandler(db)
	reviewHandler := s.initReviewHandler(db)
	s.MountHandlers(adminHandler, reviewHandler)

	return s
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	adminDAO := dao.NewAdminDAO(db)
	repo := repository.NewAdminRepository(adminDAO)
	svc := service.NewAuthService(repo)

	codeRepo := repository.NewCodeRepository(dao.NewCodeDAO(db))
	codeSvc := service.NewCodeService(codeRepo)

	return v1.NewAdminHandler(svc, codeSvc)
}

func (s *Server) initReviewHandler(db *gorm.DB) *v1.ReviewHandler {
	reviewRepo := repository.NewReviewRepository(dao.NewReviewDAO(db), dao.NewLikeDAO(db))
	codeRepo := repository.NewCodeRepository(dao.NewCodeDAO(db))

	svc := service.NewReviewService(reviewRepo, codeRepo)
	codeSvc := service.NewCodeService(codeRepo)

	return v1.NewReviewHandler(svc, codeSvc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))

	store := cookie.NewStore([]byte(s.Config.API.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		// MaxAge 0 keeps the cookie for the browser session only.
		MaxAge: 0,
	})
	s.Router.Use(sessions.Sessions("energos_session", store))
}

func (s *Server) MountHandlers(adminHandler *v1.AdminHandler, reviewHandler *v1.ReviewHandler) {
	s.Router.GET("/", reviewHandler.HandleIndex)
	s.Router.POST("/", reviewHandler.HandleRedeem)
	s.Router.GET("/submit_review", reviewHandler.HandleSubmitReviewPage)
	s.Router.POST("/submit_review", reviewHandler.HandleSubmitReview)
	s.Router.POST("/like/:reviewID", reviewHandler.HandleLike)

	s.Router.GET("/admin/login", adminHandler.HandleLoginPage)
	s.Router.POST("/admin/login", adminHandler.HandleLogin)
	s.Router.GET("/admin/logout", adminHandler.HandleLogout)

	admin := s.Router.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminHandler.HandleDashboard)
		admin.POST("/generate_code", adminHandler.HandleGenerateCode)
		admin.POST("/password", adminHandler.HandleChangePassword)
	}

	s.Router.GET("/healthz", v1.HandleHealthcheck)
}
