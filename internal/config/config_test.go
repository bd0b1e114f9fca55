package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/saulo-duarte/classroom-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_BACKEND", "MONGO_DATABASE", "START_GUARD_TTL", "REDIS_DB", "GEMINI_MODEL"} {
		t.Setenv(key, "")
	}

	s := config.Load()
	if s.Port != "8080" {
		t.Errorf("Port = %q", s.Port)
	}
	if s.StoreBackend != config.StoreMongo {
		t.Errorf("StoreBackend = %q", s.StoreBackend)
	}
	if s.MongoDatabase != "classroom" {
		t.Errorf("MongoDatabase = %q", s.MongoDatabase)
	}
	if s.StartGuardTTL != 30*time.Second {
		t.Errorf("StartGuardTTL = %v", s.StartGuardTTL)
	}
	if s.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("GeminiModel = %q", s.GeminiModel)
	}
	if s.RedisDB != 0 {
		t.Errorf("RedisDB = %d", s.RedisDB)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("START_GUARD_TTL", "2m")
	t.Setenv("REDIS_DB", "3")

	s := config.Load()
	if s.Port != "9090" {
		t.Errorf("Port = %q", s.Port)
	}
	if s.StoreBackend != config.StorePostgres {
		t.Errorf("StoreBackend = %q", s.StoreBackend)
	}
	if s.StartGuardTTL != 2*time.Minute {
		t.Errorf("StartGuardTTL = %v", s.StartGuardTTL)
	}
	if s.RedisDB != 3 {
		t.Errorf("RedisDB = %d", s.RedisDB)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("START_GUARD_TTL", "soon")

	if s := config.Load(); s.StartGuardTTL != 30*time.Second {
		t.Errorf("StartGuardTTL = %v", s.StartGuardTTL)
	}
}

func TestWithContextFields(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	ctx = config.ContextWithUserID(ctx, "user-1")

	entry, ok := config.WithContext(ctx).(*logrus.Entry)
	if !ok {
		t.Fatal("expected a logrus entry")
	}
	if entry.Data["request_id"] != "req-1" || entry.Data["user_id"] != "user-1" {
		t.Errorf("fields = %v", entry.Data)
	}
}
