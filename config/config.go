package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment fallbacks for the positional arguments, so the runner can be
// driven from a .env file in CI.
const (
	envApiHost    = "KRAKEN_API_HOST"
	envApiKey     = "KRAKEN_API_KEY"
	envSecretKey  = "KRAKEN_SECRET_KEY"
	envOtp        = "KRAKEN_OTP"
	envOutputFile = "KRAKEN_RESULT_FILE"
)

type Config struct {
	ApiHost    string
	ApiKey     string
	SecretKey  string
	Otp        string
	OutputFile string
}

// FromArgs builds the run configuration from positional arguments:
// host, API key, secret key, OTP and an optional result filename.
// Arguments left out fall back to the environment (.env is honoured).
func FromArgs(args []string) (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		ApiHost:    argOr(args, 0, envApiHost),
		ApiKey:     argOr(args, 1, envApiKey),
		SecretKey:  argOr(args, 2, envSecretKey),
		Otp:        argOr(args, 3, envOtp),
		OutputFile: argOr(args, 4, envOutputFile),
	}

	if c.ApiHost == "" {
		return nil, errors.New("API host must be provided as first argument or " + envApiHost)
	}
	if c.ApiKey == "" {
		return nil, errors.New("API key must be provided as second argument or " + envApiKey)
	}
	if c.SecretKey == "" {
		return nil, errors.New("secret key must be provided as third argument or " + envSecretKey)
	}
	if c.Otp == "" {
		return nil, errors.New("OTP must be provided as fourth argument or " + envOtp)
	}
	return c, nil
}

func argOr(args []string, i int, env string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return os.Getenv(env)
}
