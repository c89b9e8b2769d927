package models

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase() {
	// .env only exists for local development; ignore the error and rely on
	// the system environment in production.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("FATAL ERROR: DATABASE_URL not set in environment!")
	}

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the attendance recorder relies on.
	db, err := gorm.Open(mysql.Open(dbURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database connection established.")
	DB = db
}

// Migrate creates or updates the tables owned by this service. The students
// table belongs to the main application; it is migrated here too so the
// service can run standalone in development.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Student{}, &FaceEncoding{}, &Attendance{})
}
