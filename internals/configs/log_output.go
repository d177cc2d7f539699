package configs

import (
	"io"
	"log"
	"os"
	"strings"

	"gopkg.in/lumberjack.v2"
)

// SetupLogOutput mengarahkan std log ke stdout, dan juga ke file rotasi kalau LOG_FILE diset.
// Writer yang dikembalikan dipakai juga oleh request logger Fiber.
func SetupLogOutput() io.Writer {
	path := strings.TrimSpace(GetEnv("LOG_FILE"))
	if path == "" {
		log.SetOutput(os.Stdout)
		return os.Stdout
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    GetInt("LOG_MAX_SIZE_MB", 50),
		MaxBackups: GetInt("LOG_MAX_BACKUPS", 5),
		MaxAge:     GetInt("LOG_MAX_AGE_DAYS", 14),
		Compress:   true,
	}
	w := io.MultiWriter(os.Stdout, rotator)
	log.SetOutput(w)
	log.Printf("📝 Log juga ditulis ke %s", path)
	return w
}
