package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
)

const (
	// "Service" groups the app's secrets in the OS keychain.
	KeyringService = "jobs-scrapper"

	envIMAPPassword = "JOBS_IMAP_PASSWORD"
	envSMTPPassword = "JOBS_SMTP_PASSWORD"
)

// GetIMAPPassword checks the keychain first, then the environment.
func GetIMAPPassword(cfg config.Config) (string, error) {
	if pw := lookup(IMAPAccount(cfg)); pw != "" {
		return pw, nil
	}
	if pw := strings.TrimSpace(os.Getenv(envIMAPPassword)); pw != "" {
		return pw, nil
	}
	return "", errors.New("IMAP password not found (set it in keychain or JOBS_IMAP_PASSWORD)")
}

func GetSMTPPassword(cfg config.Config) (string, error) {
	if pw := lookup(SMTPAccount(cfg)); pw != "" {
		return pw, nil
	}
	if pw := strings.TrimSpace(os.Getenv(envSMTPPassword)); pw != "" {
		return pw, nil
	}
	return "", errors.New("SMTP password not found (set it in keychain or JOBS_SMTP_PASSWORD)")
}

func Set(account, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

func IMAPAccount(cfg config.Config) string {
	return fmt.Sprintf("imap:%s@%s",
		cfg.Sources.LinkedInMail.Username,
		cfg.Sources.LinkedInMail.IMAPHost,
	)
}

func SMTPAccount(cfg config.Config) string {
	return fmt.Sprintf("smtp:%s@%s",
		cfg.Apply.FromEmail,
		cfg.Apply.SMTPHost,
	)
}

func lookup(account string) string {
	if strings.TrimSpace(account) == "" {
		return ""
	}
	pw, err := keyring.Get(KeyringService, account)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(pw)
}
