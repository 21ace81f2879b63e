package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidatePhoneNumber checks that a phone number is plausible for a mobile
// push: digits only (after an optional leading +), 9 to 15 characters.
func ValidatePhoneNumber(phone string) error {
	trimmed := strings.TrimPrefix(phone, "+")
	if len(trimmed) < 9 || len(trimmed) > 15 {
		return fmt.Errorf("invalid phone number length: must be 9-15 digits")
	}

	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid phone number: must contain only digits")
		}
	}

	return nil
}

// ValidateAmount checks if amount is valid (positive)
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}

	return nil
}

// ValidateAccountNumber checks that a bank account number is 6-32
// alphanumeric characters.
func ValidateAccountNumber(accountNumber string) error {
	if len(accountNumber) < 6 || len(accountNumber) > 32 {
		return fmt.Errorf("invalid account number length: must be 6-32 characters")
	}

	if !isAlphanumeric(accountNumber) {
		return fmt.Errorf("invalid account number: must be alphanumeric")
	}

	return nil
}

// ValidateBankCode checks that a bank code is 2-10 alphanumeric characters.
func ValidateBankCode(bankCode string) error {
	if len(bankCode) < 2 || len(bankCode) > 10 {
		return fmt.Errorf("invalid bank code length: must be 2-10 characters")
	}

	if !isAlphanumeric(bankCode) {
		return fmt.Errorf("invalid bank code: must be alphanumeric")
	}

	return nil
}

// ValidateCallbackURL checks that a callback URL, when supplied, is an
// absolute http or https URL.
func ValidateCallbackURL(callbackURL string) error {
	if callbackURL == "" {
		return nil
	}

	parsed, err := url.Parse(callbackURL)
	if err != nil {
		return fmt.Errorf("invalid callback URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid callback URL: scheme must be http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid callback URL: missing host")
	}

	return nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
