package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL" envDefault:"foodmate.db"`

	Stripe Stripe `envPrefix:"STRIPE_"`
	JWT    JWT    `envPrefix:"JWT_"`
}

type Stripe struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey  string `env:"SECRET_KEY"`
}

type JWT struct {
	Secret   string `env:"SECRET"`
	TTLHours int    `env:"TTL_HOURS" envDefault:"1"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"5000"`
}
