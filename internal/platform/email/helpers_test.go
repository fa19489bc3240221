package email

import "nocman/internal/platform/config"

func testConfig(enabled bool) config.Config {
	cfg := config.Config{
		EmailFrom:     "hr@example.com",
		EmailFromName: "HR Department",
		EmailEnabled:  enabled,
		SMTPPort:      587,
	}
	if enabled {
		cfg.SMTPHost = "smtp.example.com"
	}
	return cfg
}
