package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	Env          string `envconfig:"APP_ENV" default:"development"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	BuildVersion string `envconfig:"BUILD_VERSION" default:"dev"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// HS256 secret shared with the auth provider that issues user tokens.
	JWTSecret  string `envconfig:"JWT_SECRET" required:"true"`
	CronSecret string `envconfig:"CRON_SECRET"`

	MailProvider    string `envconfig:"MAIL_PROVIDER" default:"log"` // log|sendgrid|smtp
	MailFromName    string `envconfig:"MAIL_FROM_NAME" default:"Buddy Study Companion"`
	MailFromAddress string `envconfig:"MAIL_FROM_ADDRESS" default:"onboarding@buddy.study"`
	SendgridAPIKey  string `envconfig:"SENDGRID_API_KEY"`
	SMTPHost        string `envconfig:"SMTP_HOST"`
	SMTPPort        int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername    string `envconfig:"SMTP_USERNAME"`
	SMTPPassword    string `envconfig:"SMTP_PASSWORD"`

	DigestSchedulerEnabled bool          `envconfig:"DIGEST_SCHEDULER_ENABLED" default:"true"`
	DigestMaxAttempts      int           `envconfig:"DIGEST_MAX_ATTEMPTS" default:"3"`
	DigestRetryDelay       time.Duration `envconfig:"DIGEST_RETRY_DELAY" default:"2s"`

	GoogleProjectID     string `envconfig:"GOOGLE_PROJECT_ID"`
	GoogleCredentials   string `envconfig:"GOOGLE_CREDENTIALS"`
	DigestPubSubTopic   string `envconfig:"DIGEST_PUBSUB_TOPIC"`
	FirebaseCredentials string `envconfig:"FIREBASE_CREDENTIALS"`

	AIProvider    string `envconfig:"AI_PROVIDER" default:"auto"` // gateway|ollama|auto
	AIGatewayURL  string `envconfig:"AI_GATEWAY_URL" default:"https://ai.gateway.lovable.dev/v1/chat/completions"`
	AIGatewayKey  string `envconfig:"AI_GATEWAY_KEY"`
	AIModel       string `envconfig:"AI_MODEL" default:"google/gemini-2.5-flash"`
	OllamaBaseURL string `envconfig:"OLLAMA_BASE_URL" default:"http://localhost:11434"`
	OllamaModel   string `envconfig:"OLLAMA_MODEL" default:"llama3"`

	RollbarToken string `envconfig:"ROLLBAR_TOKEN"`

	MaterialUploadXP int `envconfig:"MATERIAL_UPLOAD_XP" default:"10"`
}

// Load reads an optional .env file and then decodes the environment into Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "processing environment")
	}
	if cfg.DigestMaxAttempts < 1 {
		return nil, errors.Errorf("DIGEST_MAX_ATTEMPTS must be >= 1, got %d", cfg.DigestMaxAttempts)
	}
	return &cfg, nil
}
