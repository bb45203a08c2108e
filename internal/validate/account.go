package validate

import (
	"strings"
	"unicode"
)

// Registration checks account sign-up input. The password confirmation is
// compared before any strength rule so a mismatch is always reported on
// the password field, and nothing is ever persisted on failure.
func Registration(username, email, password, password2 string, minPasswordLen int) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(username) == "" {
		errs["username"] = "username is required"
	}
	if strings.TrimSpace(email) == "" {
		errs["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		errs["email"] = "email is not a valid address"
	}
	if password == "" {
		errs["password"] = "password is required"
		return errs
	}
	if password != password2 {
		errs["password"] = "Les mots de passe ne correspondent pas."
		return errs
	}
	if msg := passwordStrength(username, email, password, minPasswordLen); msg != "" {
		errs["password"] = msg
	}
	return errs
}

func passwordStrength(username, email, password string, minLen int) string {
	if len(password) < minLen {
		return "password is too short"
	}
	if allDigits(password) {
		return "password cannot be entirely numeric"
	}
	lower := strings.ToLower(password)
	for _, attr := range []string{username, email, emailLocalPart(email)} {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if attr == "" {
			continue
		}
		if strings.Contains(lower, attr) || strings.Contains(attr, lower) {
			return "password is too similar to the username or email"
		}
	}
	return ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func emailLocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return ""
}
