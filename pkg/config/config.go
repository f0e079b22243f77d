package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	DBDriver                string
	PostgresConnStr         string
	SQLitePath              string
	MongoURI                string
	MongoDatabase           string
	FirebaseCredentialsPath string
	JWTSecret               string
	JWTTTL                  time.Duration
	MediaBackend            string
	UploadDir               string
	PublicBaseURL           string
	AWSRegion               string
	S3Bucket                string
	RazorpayKeyID           string
	RazorpayKeySecret       string
	CoinsPerRupee           int64
	CORSOrigins             []string
	GiftsSeedPath           string
}

// Load reads the configuration from the environment, after loading an
// optional .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		DBDriver:                getEnv("DB_DRIVER", "postgres"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		SQLitePath:              getEnv("SQLITE_PATH", "snapgram.db"),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "socialmedia"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		JWTTTL:                  getDuration("JWT_TTL", 24*time.Hour),
		MediaBackend:            getEnv("MEDIA_BACKEND", "local"),
		UploadDir:               getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:           strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		AWSRegion:               getEnv("AWS_REGION", "ap-south-1"),
		S3Bucket:                getEnv("S3_BUCKET_NAME", ""),
		RazorpayKeyID:           getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:       getEnv("RAZORPAY_KEY_SECRET", ""),
		CoinsPerRupee:           getInt("COINS_PER_RUPEE", 10),
		CORSOrigins:             strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		GiftsSeedPath:           getEnv("GIFTS_SEED_PATH", ""),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
