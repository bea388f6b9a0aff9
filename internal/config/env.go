package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names for the required secrets. They match the names
// the original deployment used, so existing .env files keep working.
const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

// Secrets are the startup-critical values. Any one missing keeps the poll
// loop from ever starting.
type Secrets struct {
	PracticumToken string
	TelegramToken  string
	ChatID         int64
}

// MissingSecretsError is fatal: it names every absent variable so the
// operator can fix them all in one pass.
type MissingSecretsError struct {
	Names []string
}

func (e *MissingSecretsError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Names, ", ")
}

// LoadSecrets reads the three required secrets from the environment.
func LoadSecrets() (Secrets, error) {
	var missing []string

	practicum := strings.TrimSpace(os.Getenv(EnvPracticumToken))
	if practicum == "" {
		missing = append(missing, EnvPracticumToken)
	}
	telegram := strings.TrimSpace(os.Getenv(EnvTelegramToken))
	if telegram == "" {
		missing = append(missing, EnvTelegramToken)
	}
	chatRaw := strings.TrimSpace(os.Getenv(EnvTelegramChatID))
	if chatRaw == "" {
		missing = append(missing, EnvTelegramChatID)
	}

	if len(missing) > 0 {
		return Secrets{}, &MissingSecretsError{Names: missing}
	}

	chatID, err := strconv.ParseInt(chatRaw, 10, 64)
	if err != nil {
		return Secrets{}, fmt.Errorf("%s must be an integer chat id: %w", EnvTelegramChatID, err)
	}

	return Secrets{
		PracticumToken: practicum,
		TelegramToken:  telegram,
		ChatID:         chatID,
	}, nil
}
