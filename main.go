package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"SIAKAD/attendance"
	"SIAKAD/config"
	attendancecontroller "SIAKAD/controllers/attendance"
	"SIAKAD/controllers/face"
	"SIAKAD/facerec"
	"SIAKAD/middlewares"
	"SIAKAD/models"
	"SIAKAD/scheduler"
	"SIAKAD/vision"
)

func main() {
	models.ConnectDatabase()

	extractor, err := vision.NewExtractor(config.ModelsDir)
	if err != nil {
		log.Fatalf("Failed to initialize face extractor: %v", err)
	}
	defer extractor.Close()

	engine, err := facerec.New(models.DB, extractor, config.MatchThreshold, config.DescriptorDim)
	if err != nil {
		log.Fatalf("Failed to build face gallery: %v", err)
	}
	if engine.Available() {
		log.Printf("Face recognition ready, %d descriptors in gallery.", engine.GallerySize())
	} else {
		log.Println("Face recognition backend not available, running in degraded mode.")
	}

	face.Setup(engine, attendance.NewRecorder(models.DB))

	cron := scheduler.Start(engine, config.ReloadMinutes)
	defer cron.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// The availability probe stays open so the frontend can adjust before login.
	r.GET("/api/face/availability", face.AvailabilityHandler)

	authorized := r.Group("/api", middlewares.Authentication())
	{
		authorized.POST("/face/register", face.RegisterHandler)
		authorized.GET("/face/status/:student_id", face.StatusHandler)
		authorized.POST("/face/recognize", face.RecognizeHandler)
		authorized.POST("/face/live-frame", face.LiveFrameHandler)

		authorized.GET("/attendance", attendancecontroller.GetTodayAttendance)
		authorized.GET("/attendance/history/:student_id", attendancecontroller.GetStudentHistory)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
