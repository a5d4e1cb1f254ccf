package receipt

import (
	"os"
	"strconv"
)

// Config holds environment-driven settings for the template, font,
// layout, and service limits.
type Config struct {
	TemplatePath string
	FontPath     string
	FontFamily   string
	FallbackFont string
	LayoutPath   string
	OutputDir    string
	TimeZone     string
	MaxNameLen   int
	MaxDescLen   int
	ListenAddr   string
}

func LoadConfig() Config {
	return Config{
		TemplatePath: getenv("RECEIPT_TEMPLATE_PATH", "receipt_template.pdf"),
		FontPath:     getenv("RECEIPT_FONT_PATH", "fonts/NotoSansJP-Regular.ttf"),
		FontFamily:   getenv("RECEIPT_FONT_FAMILY", "japanese"),
		FallbackFont: getenv("RECEIPT_FALLBACK_FONT", "Helvetica"),
		LayoutPath:   getenv("RECEIPT_LAYOUT_PATH", ""),
		OutputDir:    getenv("RECEIPT_OUTPUT_DIR", "out"),
		TimeZone:     getenv("RECEIPT_TIMEZONE", "Asia/Tokyo"),
		MaxNameLen:   getInt("RECEIPT_MAX_NAME_LEN", 120),
		MaxDescLen:   getInt("RECEIPT_MAX_DESCRIPTION_LEN", 240),
		ListenAddr:   getenv("RECEIPT_LISTEN_ADDR", ":8080"),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
