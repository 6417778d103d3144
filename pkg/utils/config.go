package utils

import (
	"os"
	"strings"
)

type ServerConfig struct {
	Addr        string
	Timezone    string
	CORSOrigins []string
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("ANIMESCHED_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	tz := os.Getenv("ANIMESCHED_TZ")
	if tz == "" {
		tz = "UTC"
	}

	// comma-separated; "*" allows any origin
	origins := splitNonEmpty(os.Getenv("ANIMESCHED_CORS_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return ServerConfig{
		Addr:        addr,
		Timezone:    tz,
		CORSOrigins: origins,
	}
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
