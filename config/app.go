package config

import "time"

type App struct {
	Port        string `env:"APP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"local_dev_secret"`
	Env         string `env:"APP_ENV" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	Payment Payment

	// CreditOnePerPair rejects a second credit from the same giver to the same receiver.
	CreditOnePerPair bool `env:"CREDIT_ONE_PER_PAIR" envDefault:"true"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	BookCacheTTL  time.Duration `env:"BOOK_CACHE_TTL" envDefault:"5m"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"bookbee.events"`
}

type Payment struct {
	Scheme     string `env:"PAYMENT_SCHEME" envDefault:"upi"`
	MerchantID string `env:"PAYMENT_MERCHANT_ID" envDefault:"bookbee.merchant@upi"`
	PayeeName  string `env:"PAYMENT_PAYEE_NAME" envDefault:"BookBee Store"`
	Currency   string `env:"PAYMENT_CURRENCY" envDefault:"INR"`
}
