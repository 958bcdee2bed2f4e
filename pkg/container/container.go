package container

import (
	"fmt"

	"blog-backend/internal/auth"
	"blog-backend/internal/config"
	categoryRepo "blog-backend/internal/domains/category/repository"
	categoryService "blog-backend/internal/domains/category/service"
	commentRepo "blog-backend/internal/domains/comment/repository"
	commentService "blog-backend/internal/domains/comment/service"
	postRepo "blog-backend/internal/domains/post/repository"
	postService "blog-backend/internal/domains/post/service"
	userRepo "blog-backend/internal/domains/user/repository"
	userService "blog-backend/internal/domains/user/service"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/shared/audit"

	categoryDomain "blog-backend/internal/domains/category"
	categoryHandler "blog-backend/internal/domains/category/handler"
	commentDomain "blog-backend/internal/domains/comment"
	commentHandler "blog-backend/internal/domains/comment/handler"
	postDomain "blog-backend/internal/domains/post"
	postHandler "blog-backend/internal/domains/post/handler"
	userDomain "blog-backend/internal/domains/user"
	userHandler "blog-backend/internal/domains/user/handler"

	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

// Container wires configuration, infrastructure, repositories,
// services and handlers together.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	JWTManager *jwt.Manager
	Resolver   *auth.Resolver
	Audit      audit.Recorder

	UserRepo     userDomain.Repository
	CategoryRepo categoryDomain.Repository
	PostRepo     postDomain.Repository
	CommentRepo  commentDomain.Repository

	UserService     userDomain.Service
	CategoryService categoryDomain.Service
	PostService     postDomain.Service
	CommentService  commentDomain.Service

	UserHandler     *userHandler.UserHandler
	CategoryHandler *categoryHandler.CategoryHandler
	PostHandler     *postHandler.PostHandler
	CommentHandler  *commentHandler.CommentHandler
}

func New(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	c.DB = db

	redisCache, err := infraCache.NewRedisCache(cfg.Redis)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache: %w", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	c.Audit = audit.NewDispatcher(audit.NewLogRecorder())

	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.PostRepo = postRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.CommentRepo = commentRepo.NewPostgresRepository(db.Pool)

	// JWTs are tried first, then stored API tokens.
	c.Resolver = auth.NewResolver(
		auth.NewJWTVerifier(c.JWTManager, c.UserRepo),
		auth.NewOpaqueTokenVerifier(c.UserRepo),
	)

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Audit)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Audit)
	c.PostService = postService.NewPostService(c.PostRepo, c.CommentRepo, c.CategoryRepo, c.Audit)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.PostRepo, c.Audit)

	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)

	logger.Info().Msg("container initialized")
	return c, nil
}

// Cleanup releases infrastructure resources.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error().Err(err).Msg("close cache")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info().Msg("container cleaned up")
}
