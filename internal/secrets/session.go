// Package secrets keeps the remote session token in the OS keychain so it
// never lands in the config file or the sqlite cache.
package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const KeyringService = "schoolscout"

func GetSessionToken(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	tok, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(tok) == "" {
		return "", errors.New("session token not found in keychain")
	}
	return tok, nil
}

func SetSessionToken(account, token string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, account, token)
}

func DeleteSessionToken(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

func SessionAccount(userID string) string {
	return "schoolscout:session:" + userID
}
