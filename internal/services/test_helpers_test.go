package services_test

import (
	"github.com/professorcathk-art/webinar-landing-generator-sub000/config"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Generation: config.GenerationConfig{
			MaxAttempts:        3,
			Language:           "Traditional Chinese (zh-TW)",
			MaxUploadSizeBytes: 1024 * 1024,
			MaxPhotos:          2,
		},
		Session: config.SessionConfig{
			JWTSecret:       "test-secret-that-is-at-least-32-characters",
			JWTIssuer:       "webinar-landing-api-test",
			SessionTTLHours: 24,
			CookieDomain:    "example.com",
			CookieSecure:    true,
		},
		EventTriggers: config.EventTriggersConfig{
			LeadCreatedTriggerURL: "https://hooks.example.com/lead",
			PageCreatedTriggerURL: "https://hooks.example.com/page",
		},
	}
}
