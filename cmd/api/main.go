package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staff-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/staff-manager/internal/db"
	"github.com/BruksfildServices01/staff-manager/internal/infra/archive"
	infraRepo "github.com/BruksfildServices01/staff-manager/internal/infra/repository"
	"github.com/BruksfildServices01/staff-manager/internal/infra/session"
	"github.com/BruksfildServices01/staff-manager/internal/routes"
	"github.com/BruksfildServices01/staff-manager/internal/seed"
	"github.com/BruksfildServices01/staff-manager/internal/timezone"
	"github.com/BruksfildServices01/staff-manager/internal/usecase/account"
)

func main() {

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	timezone.Configure(cfg.Timezone)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx := context.Background()
	hasher := account.NewBcryptHasher(cfg.BcryptCost)

	if cfg.SeedDefaultData {
		res, err := seed.Run(ctx, infraRepo.NewStaffGormRepository(db), hasher, seed.Defaults())
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Printf("seed: %d users created, %d updated, %d profiles created, %d updated",
			res.UsersCreated, res.UsersUpdated, res.EmployeesCreated, res.EmployeesUpdated)
	}

	infra := routes.Infra{Hasher: hasher}

	if cfg.RedisURL != "" {
		store, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("sessions: %v", err)
		}
		defer store.Close()
		infra.Sessions = store
		log.Printf("sessions: redis")
	} else {
		infra.Sessions = session.NewMemoryStore()
		log.Printf("sessions: in-memory")
	}

	if cfg.ArchiveEnabled() {
		infra.Archive = archive.NewS3Sink(archive.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		log.Printf("export archive: s3://%s", cfg.S3Bucket)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := routes.RegisterRoutes(r, db, cfg, infra); err != nil {
		log.Fatalf("routes: %v", err)
	}

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
