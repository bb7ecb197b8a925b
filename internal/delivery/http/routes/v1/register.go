package v1

import (
	"log"

	"skill-match/internal/config"
	"skill-match/internal/database"
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/infrastructure/cache"
	"skill-match/internal/pkg/jwt"
	"skill-match/internal/repository"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	skillRepo := repository.NewPostgresSkillRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	auditRepo := repository.NewPostgresAuditRepository(db)

	var recCache usecase.RecommendationCache
	if redis != nil {
		recCache = redis
	}

	authUC := usecase.NewAuthUsecase(userRepo, skillRepo, jwtSvc)
	skillUC := usecase.NewSkillUsecase(skillRepo, userRepo, recCache)
	jobUC := usecase.NewJobUsecase(jobRepo, skillRepo, recCache)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	recUC := usecase.NewRecommendationUsecase(skillRepo, userRepo, jobRepo, nil, blendWeights(cfg.Recommend))
	if recCache != nil {
		recUC = recUC.WithCache(recCache, cfg.Redis.TTL)
	}

	authHandler := handler.NewAuthHandler(authUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	jobsHandler := handler.NewJobsHandler(jobUC)
	recHandler := handler.NewRecommendationHandler(recUC, auditUC, logger)
	auditHandler := handler.NewAuditHandler(auditUC)

	authHandler.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", authMw.Middleware())
	authHandler.RegisterProtectedRoutes(protected.Group("/auth"))
	skillHandler.RegisterRoutes(protected)
	jobsHandler.RegisterRoutes(protected)
	recHandler.RegisterRoutes(protected)
	auditHandler.RegisterRoutes(protected)
}

func blendWeights(cfg config.RecommendConfig) usecase.RecommendationWeights {
	w := usecase.DefaultRecommendationWeights()
	if cfg.CosineWeight > 0 {
		w.Cosine = cfg.CosineWeight
	}
	if cfg.LLRWeight > 0 {
		w.LLR = cfg.LLRWeight
	}
	if cfg.PeerSkillWeight > 0 {
		w.PeerSkill = cfg.PeerSkillWeight
	}
	if cfg.PeerTitleWeight > 0 {
		w.PeerTitle = cfg.PeerTitleWeight
	}
	if cfg.PeerMatchPctWeight > 0 {
		w.PeerMatchPct = cfg.PeerMatchPctWeight
	}
	return w
}
