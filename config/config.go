package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	MoMo     MoMoConfig
	VNPay    VNPayConfig
	Payment  PaymentConfig
	Mail     MailConfig
	Broker   BrokerConfig
	Auth     AuthConfig
	Notifier NotifierConfig
}

type AppConfig struct {
	Name     string `env:"APP_NAME" envDefault:"cinema-booking"`
	Addr     string `env:"APP_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"postgres"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
	Migrate  bool   `env:"DB_MIGRATE" envDefault:"true"`

	MaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"25"`
	MinConns        int32         `env:"DB_MIN_CONNS" envDefault:"5"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// MoMoConfig holds env-sourced partner credentials. Request-body values are
// only used for fields left empty here.
type MoMoConfig struct {
	Endpoint    string `env:"MOMO_ENDPOINT" envDefault:"https://test-payment.momo.vn/v2/gateway/api/create"`
	PartnerCode string `env:"MOMO_PARTNER_CODE"`
	AccessKey   string `env:"MOMO_ACCESS_KEY"`
	SecretKey   string `env:"MOMO_SECRET_KEY"`
	RedirectURL string `env:"MOMO_REDIRECT_URL"`
	IpnURL      string `env:"MOMO_IPN_URL"`
	RequestType string `env:"MOMO_REQUEST_TYPE" envDefault:"captureWallet"`
	Lang        string `env:"MOMO_LANG" envDefault:"vi"`
}

type VNPayConfig struct {
	PayURL     string        `env:"VNPAY_URL" envDefault:"https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"`
	TmnCode    string        `env:"VNPAY_TMN_CODE"`
	HashSecret string        `env:"VNPAY_HASH_SECRET"`
	ReturnURL  string        `env:"VNPAY_RETURN_URL"`
	Locale     string        `env:"VNPAY_LOCALE" envDefault:"vn"`
	ExpireIn   time.Duration `env:"VNPAY_EXPIRE_IN" envDefault:"15m"`
}

type PaymentConfig struct {
	GatewayTimeout time.Duration `env:"PAYMENT_GATEWAY_TIMEOUT" envDefault:"10s"`
	IntentTTL      time.Duration `env:"PAYMENT_INTENT_TTL" envDefault:"24h"`
	// TrustClientConfirm lets confirm-booking mark gateway bookings paid or failed
	// without gateway evidence (legacy storefront flow).
	TrustClientConfirm bool `env:"PAYMENT_TRUST_CLIENT_CONFIRM" envDefault:"false"`
}

type MailConfig struct {
	APIURL      string `env:"MAIL_API_URL" envDefault:"https://api.brevo.com/v3/smtp/email"`
	APIKey      string `env:"MAIL_API_KEY"`
	SenderEmail string `env:"MAIL_SENDER_EMAIL" envDefault:"no-reply@cinema.local"`
	SenderName  string `env:"MAIL_SENDER_NAME" envDefault:"Cinema"`
}

type BrokerConfig struct {
	URL   string `env:"RABBITMQ_URL"`
	Queue string `env:"RABBITMQ_BOOKING_QUEUE" envDefault:"booking.confirmed"`
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET" envDefault:"change-me"`
	AdminRole string `env:"JWT_ADMIN_ROLE" envDefault:"admin"`
}

type NotifierConfig struct {
	MetricsAddr string `env:"NOTIFIER_METRICS_ADDR" envDefault:":9091"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s timezone=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode, "UTC")
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Loaded is the config returned by the last LoadConfig call.
var Loaded *Config

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	Loaded = cfg
	return cfg, nil
}

func LoadTestConfig() *Config {
	cfg := &Config{}
	_ = env.Parse(cfg)

	cfg.Database = DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // test DB runs on 5433
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
		Migrate:  true,
		MaxConns: 25, // 併發測試需要多一點連線
		MinConns: 1,
	}
	cfg.Redis = RedisConfig{
		Host:     "localhost",
		Port:     "6380", // test Redis runs on 6380
		Password: "",
		DB:       1,
	}
	return cfg
}
