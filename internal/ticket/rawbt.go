package ticket

import (
	"encoding/base64"
	"strings"

	"comanda/internal/apperr"
)

// rawBTScheme is the deep link understood by the RawBT thermal-printer
// app on Android devices.
const rawBTScheme = "rawbt:base64,"

// RawBTURL wraps ticket text into a RawBT deep link. The text is trimmed
// and re-terminated with a single newline before base64 encoding; empty
// tickets are rejected rather than dispatched.
func RawBTURL(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", apperr.Validation("Ticket is empty")
	}
	payload := base64.StdEncoding.EncodeToString([]byte(trimmed + "\n"))
	return rawBTScheme + payload, nil
}
