package config

import (
	"os"

	"github.com/mwhitfield/pocketbook-backend/internal/dto"
)

type Config struct {
	ProjectID               string
	Port                    string
	LogLevel                string
	PlaidClientID           string
	PlaidSecret             string
	PlaidEnvironment        dto.PlaidEnvironment
	TokenPassphrase         string
	TokenSalt               string
	TokenPassphrasePrevious string
}

func New() *Config {
	return &Config{
		ProjectID:               os.Getenv("PROJECTID"),
		Port:                    getPort(os.Getenv("PORT")),
		LogLevel:                os.Getenv("LOGLEVEL"),
		PlaidClientID:           os.Getenv("PLAIDCLIENTID"),
		PlaidSecret:             os.Getenv("PLAIDSECRET"),
		PlaidEnvironment:        getPlaidEnvironment(os.Getenv("PLAIDENVIRONMENT")),
		TokenPassphrase:         os.Getenv("TOKENPASSPHRASE"),
		TokenSalt:               os.Getenv("TOKENSALT"),
		TokenPassphrasePrevious: os.Getenv("TOKENPASSPHRASEPREVIOUS"),
	}
}

func getPort(port string) string {
	if port == "" {
		return "8080"
	}
	return port
}

func getPlaidEnvironment(env string) dto.PlaidEnvironment {
	switch env {
	case "sandbox":
		return dto.PlaidSandbox
	case "development":
		return dto.PlaidDevelopment
	default: // "production"
		return dto.PlaidProduction
	}
}
