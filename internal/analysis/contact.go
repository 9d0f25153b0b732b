package analysis

import "regexp"

var (
	phonePattern = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4,}`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// CheckContact reports whether cvText contains a phone number and an email address.
func CheckContact(cvText string) (hasPhone, hasEmail bool) {
	return phonePattern.MatchString(cvText), emailPattern.MatchString(cvText)
}
