package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	cachepkg "github.com/SalonTurnosDev/turnos-api/internal/cache"
	"github.com/SalonTurnosDev/turnos-api/internal/config"
	dbpkg "github.com/SalonTurnosDev/turnos-api/internal/db"
	"github.com/SalonTurnosDev/turnos-api/internal/middleware"
	"github.com/SalonTurnosDev/turnos-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var c cachepkg.Cache = cachepkg.NewNoop()
	if cfg.RedisAddr != "" {
		redisCache := cachepkg.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			logrus.Warnf("redis unavailable, availability cache disabled: %v", err)
		} else {
			c = redisCache
		}
		cancel()
	}

	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, c)

	logrus.Infof("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
