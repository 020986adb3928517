package utils

import (
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail vérifie le format d'une adresse email
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}
