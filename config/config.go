package config

import (
	"log"
	"os"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

// JWT_KEY is loaded once at startup and read-only afterwards. Tokens are
// issued by the main application; this service only verifies them.
var JWT_KEY []byte

// JWTClaims is the payload inside the bearer token issued by the main application.
type JWTClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Face recognition tunables. Threshold and descriptor dimension follow the
// recognition model in use; override via env only together with the models.
var (
	// MatchThreshold is the minimum confidence (0-100) to accept a match.
	MatchThreshold float64
	// DescriptorDim is the length of one face descriptor vector.
	DescriptorDim int
	// ModelsDir holds the dlib model files for the face backend.
	ModelsDir string
	// ReloadMinutes is the interval of the background gallery reload job.
	ReloadMinutes int
)

func init() {
	// Local dev reads .env; in production the file is absent and the system
	// environment is used directly, so a load error is not fatal.
	if err := godotenv.Load(); err != nil {
		log.Println("Info: no .env file found, using system environment variables.")
	}

	key := os.Getenv("JWT_KEY")
	if key == "" {
		log.Fatal("FATAL ERROR: JWT_KEY not set in environment!")
	}
	JWT_KEY = []byte(key)

	MatchThreshold = envFloat("FACE_MATCH_THRESHOLD", 50)
	DescriptorDim = envInt("FACE_DESCRIPTOR_DIM", 128)
	ModelsDir = envString("FACE_MODELS_DIR", "data/models")
	ReloadMinutes = envInt("FACE_RELOAD_MINUTES", 10)
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("FATAL ERROR: %s must be an integer, got %q", name, v)
	}
	return n
}

func envFloat(name string, fallback float64) float64 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("FATAL ERROR: %s must be a number, got %q", name, v)
	}
	return f
}
