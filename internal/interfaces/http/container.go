package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/smartcheckin/smartcheckin/internal/infrastructure/config"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/scheduler"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/http/middleware"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases,
// handlers and background services. It wires everything together and
// provides Shutdown() for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	svcs  *services
	ucs   *allUseCases
	hdlrs *allHandlers

	adminMiddleware *middleware.AdminAuthMiddleware

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a new Container with all dependencies wired together.
// Redis is only dialled when the challenge store is configured to use it.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	c.initRepositories()

	if err := c.initServices(ctx); err != nil {
		c.closeRedis()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	c.initUseCases()
	c.initHandlers()

	if err := c.initScheduler(); err != nil {
		c.closeRedis()
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	return c, nil
}

// Engine returns the configured gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Start launches background services
func (c *Container) Start() {
	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
}

// Shutdown stops background services and releases connections.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}
	c.closeRedis()
}

func (c *Container) closeRedis() {
	if c.redis == nil {
		return
	}
	if err := c.redis.Close(); err != nil {
		c.log.Errorw("failed to close redis client", "error", err)
	}
	c.redis = nil
}

func (c *Container) initScheduler() error {
	if !c.cfg.Scheduler.Enabled {
		c.log.Infow("in-process scheduler disabled")
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return err
	}

	interval := c.cfg.Scheduler.ChallengeSweepInterval
	if interval <= 0 {
		interval = scheduler.DefaultChallengeSweepInterval
	}
	if err := manager.RegisterChallengeSweepJob(c.ucs.sweepChallengesUC, interval); err != nil {
		return err
	}

	c.schedulerManager = manager
	return nil
}
