package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort        string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL     string `env:"DATABASE_URL,required"`
	LLMAPIKey       string `env:"LLM_API_KEY"`
	LLMBaseURL      string `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	LLMModel        string `env:"LLM_MODEL" envDefault:"llama-3.3-70b-versatile"`
	AllowedOrigin   string `env:"ALLOWED_FRONTEND_ORIGIN" envDefault:"http://localhost:5173"`
	QuestionBank    string `env:"QUESTION_BANK_PATH"`
	JWTSecret       string `env:"JWT_SECRET"`
	JWTTTLMinutes   int    `env:"JWT_TTL_MINUTES" envDefault:"60"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	SubmitWindowSec int    `env:"SUBMIT_WINDOW_SECONDS" envDefault:"60"`
	SubmitMax       int    `env:"SUBMIT_MAX_PER_WINDOW" envDefault:"5"`
}

// LoadConfig carga la configuración desde variables de entorno.
// LLM_API_KEY es opcional: sin clave el servicio degrada a explicaciones
// determinísticas; DATABASE_URL ausente es fatal en el arranque.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
