package domain

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLen = 4
	minNameLen     = 2
)

// ValidateLogin checks the login form before any request is made.
func ValidateLogin(email, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateRegistration checks the sign-up form.
func ValidateRegistration(r Registration) error {
	if utf8.RuneCountInString(strings.TrimSpace(r.Name)) < minNameLen {
		return ErrNameTooShort
	}
	if err := ValidateLogin(r.Email, r.Password); err != nil {
		return err
	}
	if r.ConfirmPassword != r.Password {
		return ErrPasswordMismatch
	}
	u, err := url.Parse(strings.TrimSpace(r.ProfilePictureURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// ValidateDraft checks that a post has content.
func ValidateDraft(d Draft) error {
	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyPost
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
