package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DataFile   string
	HTTPAddr   string
	CORSOrigin string

	DBDriver   string
	DBPath     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	LogLevel string
	LogJSON  bool
}

// Load reads the optional env files (".env" when none are given) and then
// the process environment. Missing env files are ignored.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	return &Config{
		DataFile:   getenv("STUDENTS_FILE", "students.txt"),
		HTTPAddr:   getenv("HTTP_ADDR", ":8080"),
		CORSOrigin: getenv("CORS_ORIGIN", "http://localhost:3000"),
		DBDriver:   os.Getenv("DB_DRIVER"),
		DBPath:     getenv("DB_PATH", "students.db"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "studentdb"),
		DBPort:     getenv("DB_PORT", "5432"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		LogJSON:    getbool("LOG_JSON"),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getbool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
