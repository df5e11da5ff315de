package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Env            string
	SessionTimeout time.Duration
	RecentSessions int
	PickerCommand  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8765", "server port")
	timeout := flag.Duration("session-timeout", 15*time.Minute, "default timeout for staged dialogs")
	flag.Parse()

	if envPort := firstNonEmpty(os.Getenv("ASSISTANT_PORT"), os.Getenv("PORT")); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	sessionTimeout := *timeout
	if raw := strings.TrimSpace(os.Getenv("ASSISTANT_SESSION_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse ASSISTANT_SESSION_TIMEOUT: %w", err)
		}
		sessionTimeout = d
	}

	recent := 128
	if raw := strings.TrimSpace(os.Getenv("ASSISTANT_RECENT_SESSIONS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("ASSISTANT_RECENT_SESSIONS must be a positive integer, got %q", raw)
		}
		recent = n
	}

	return &Config{
		Port:           *port,
		Env:            env,
		SessionTimeout: sessionTimeout,
		RecentSessions: recent,
		PickerCommand:  strings.TrimSpace(os.Getenv("ASSISTANT_PICKER")),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
