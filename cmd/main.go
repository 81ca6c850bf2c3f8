package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/josephkmh/photoblog-api/internal/handler"
	"github.com/josephkmh/photoblog-api/internal/service"
	"github.com/josephkmh/photoblog-api/internal/storage/postgres"
	"github.com/josephkmh/photoblog-api/internal/storage/s3"
)

func main() {
	// Загрузка переменных окружения (local)
	if err := godotenv.Load(".env.local"); err != nil {
		log.Println("Error loading .env.local file")
	}

	// БД
	db, err := postgres.InitDB(context.Background())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Объектное хранилище
	blob, err := s3.NewS3Storage(s3.S3Config{
		Region:          os.Getenv("S3_REGION"),
		Bucket:          os.Getenv("S3_BUCKET"),
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		Endpoint:        os.Getenv("S3_ENDPOINT"),
	})
	if err != nil {
		log.Fatalf("s3: %v", err)
	}

	// Сервисы
	photoService := service.NewPhotoService(db, db, db)
	updateService := service.NewUpdateService(db, db, db, photoService,
		os.Getenv("ATOMIC_UPDATES") == "true")
	uploadService := service.NewUploadService(db, db, blob, updateService)

	// Обработчик
	h := handler.NewHandler(photoService, updateService, uploadService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// Логируем в консоль
		if err, ok := recovered.(string); ok {
			log.Printf("panic recovered: %s\n", err)
		} else if err, ok := recovered.(error); ok {
			log.Printf("panic recovered: %v\n", err)
		} else {
			log.Printf("panic recovered: unknown error: %v\n", recovered)
		}
		// Отправляем 500 клиенту
		c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
	}))

	// Настройка CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	h.Register(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Printf("API server listening on %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
