package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boardhub/boardhub/internal/config"
	"github.com/boardhub/boardhub/internal/constants"
	"github.com/boardhub/boardhub/internal/database"
	"github.com/boardhub/boardhub/internal/handlers"
	"github.com/boardhub/boardhub/internal/middleware"
	"github.com/boardhub/boardhub/internal/repository"
	"github.com/boardhub/boardhub/internal/seed"
	"github.com/boardhub/boardhub/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := log.With().Str("service", "boardhub").Logger()

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.AddIndexes(); err != nil {
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}
	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	checklistRepo := repository.NewChecklistItemRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services. The guard backs every authorization decision; the
	// delete chain wires bottom-up so each level can cascade through
	// the one below it.
	guard := services.NewGuard(workspaceRepo, boardRepo, columnRepo, taskRepo, labelRepo, commentRepo, checklistRepo, userRepo)
	authService := services.NewAuthService(userRepo, workspaceRepo)
	taskService := services.NewTaskService(guard, taskRepo, columnRepo, labelRepo, checklistRepo, commentRepo, workspaceRepo)
	columnService := services.NewColumnService(guard, columnRepo, taskRepo, taskService)
	boardService := services.NewBoardService(guard, boardRepo, columnRepo, taskRepo, labelRepo, checklistRepo, commentRepo, userRepo, columnService)
	workspaceService := services.NewWorkspaceService(guard, workspaceRepo, boardRepo, userRepo, boardService)
	labelService := services.NewLabelService(guard, labelRepo)
	commentService := services.NewCommentService(guard, commentRepo)
	checklistService := services.NewChecklistService(guard, checklistRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, labelService)
	boardHandler := handlers.NewBoardHandler(boardService)
	columnHandler := handlers.NewColumnHandler(columnService)
	taskHandler := handlers.NewTaskHandler(taskService, labelService, commentService)
	labelHandler := handlers.NewLabelHandler(labelService)
	commentHandler := handlers.NewCommentHandler(commentService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create redis store")
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		api.GET("/users", middleware.RequireAuth(), userHandler.ListUsers)

		// Workspace routes (protected)
		workspaces := api.Group("/workspaces")
		workspaces.Use(middleware.RequireAuth())
		{
			workspaces.POST("", workspaceHandler.CreateWorkspace)
			workspaces.GET("", workspaceHandler.ListWorkspaces)
			workspaces.POST("/join", workspaceHandler.JoinWorkspace)
			// The scope middleware answers 404 for non-members so
			// workspace existence is not leaked; the services still
			// re-check membership themselves.
			workspaces.GET("/:id", middleware.RequireWorkspaceAccess(), workspaceHandler.GetWorkspace)
			workspaces.PUT("/:id", middleware.RequireWorkspaceAccess(), middleware.RequireWorkspaceOwner(), workspaceHandler.UpdateWorkspace)
			workspaces.DELETE("/:id", middleware.RequireWorkspaceAccess(), middleware.RequireWorkspaceOwner(), workspaceHandler.DeleteWorkspace)
			workspaces.POST("/:id/members", middleware.RequireWorkspaceAccess(), middleware.RequireWorkspaceOwner(), workspaceHandler.InviteMember)
			workspaces.DELETE("/:id/members/:userId", middleware.RequireWorkspaceAccess(), middleware.RequireWorkspaceOwner(), workspaceHandler.RemoveMember)
			workspaces.PUT("/:id/members/:userId", middleware.RequireWorkspaceAccess(), middleware.RequireWorkspaceOwner(), workspaceHandler.UpdateMemberRole)
			workspaces.GET("/:id/labels", middleware.RequireWorkspaceAccess(), workspaceHandler.ListLabels)
			workspaces.POST("/:id/labels", middleware.RequireWorkspaceAccess(), middleware.RequireWorkspaceOwner(), workspaceHandler.CreateLabel)
		}

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth())
		{
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:id", boardHandler.GetBoard)
			boards.PUT("/:id", boardHandler.UpdateBoard)
			boards.DELETE("/:id", boardHandler.DeleteBoard)
		}

		// Column routes (protected)
		columns := api.Group("/columns")
		columns.Use(middleware.RequireAuth())
		{
			columns.POST("", columnHandler.CreateColumn)
			columns.PATCH("/:id", columnHandler.UpdateColumn)
			columns.POST("/:id/move", columnHandler.MoveColumn)
			columns.DELETE("/:id", columnHandler.DeleteColumn)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.POST("/:id/move", taskHandler.MoveTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/duplicate", taskHandler.DuplicateTask)
			tasks.POST("/:id/assign", taskHandler.AssignTask)
			tasks.POST("/:id/labels/:labelId", taskHandler.ToggleLabel)
			tasks.GET("/:id/comments", taskHandler.ListComments)
			tasks.POST("/:id/comments", taskHandler.CreateComment)
		}

		// Label routes (protected)
		labels := api.Group("/labels")
		labels.Use(middleware.RequireAuth())
		{
			labels.PATCH("/:id", labelHandler.UpdateLabel)
			labels.DELETE("/:id", labelHandler.DeleteLabel)
		}

		// Comment routes (protected)
		comments := api.Group("/comments")
		comments.Use(middleware.RequireAuth())
		{
			comments.PATCH("/:id", commentHandler.UpdateComment)
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}

		// Checklist item routes (protected)
		checklist := api.Group("/checklist-items")
		checklist.Use(middleware.RequireAuth())
		{
			checklist.POST("", checklistHandler.CreateChecklistItem)
			checklist.PATCH("/:id", checklistHandler.UpdateChecklistItem)
			checklist.DELETE("/:id", checklistHandler.DeleteChecklistItem)
		}
	}

	// Demo reseed loop
	stopSeed := make(chan struct{})
	if cfg.SeedDemoData {
		seeder := seed.NewSeeder(db, logger)
		if err := seeder.ResetAndSeed(); err != nil {
			logger.Fatal().Err(err).Msg("initial demo seed failed")
		}
		go seeder.Run(cfg.SeedInterval, stopSeed)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(stopSeed)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server stopped")
}
