package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// ValidatePhone checks an Indian-style mobile number (optionally with
// country code). Spaces and dashes are tolerated.
func ValidatePhone(phone string) error {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	if cleaned == "" {
		return fmt.Errorf("phone number cannot be empty")
	}
	if !phonePattern.MatchString(cleaned) {
		return fmt.Errorf("invalid phone number format")
	}
	return nil
}

// ValidateUserTypes checks registration roles against the allowed set
func ValidateUserTypes(types []string) error {
	if len(types) == 0 {
		return fmt.Errorf("at least one user type is required")
	}
	allowed := map[string]bool{
		"farmer":           true,
		"worker":           true,
		"equipment_renter": true,
		"transporter":      true,
	}
	for _, t := range types {
		if !allowed[strings.ToLower(t)] {
			return fmt.Errorf("invalid user type: %s (allowed: farmer, worker, equipment_renter, transporter)", t)
		}
	}
	return nil
}

// ValidateAction checks an inventory action
func ValidateAction(action string) error {
	switch strings.ToLower(action) {
	case "buy", "sell", "store":
		return nil
	}
	return fmt.Errorf("invalid action: %s (allowed: buy, sell, store)", action)
}

// ValidateCoordinates checks latitude/longitude bounds
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude out of range: %g", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude out of range: %g", lon)
	}
	return nil
}

// MaxImageBase64Bytes caps uploaded image payloads (base64 text length).
// ~12MB of text is roughly a 9MB image.
const MaxImageBase64Bytes = 12 << 20

// ValidateImagePayload checks the size of a base64 image field. Content
// is not decoded here; the soil pipeline handles malformed payloads by
// degrading, and listing uploads reject them at decode time.
func ValidateImagePayload(b64 string) error {
	if len(b64) > MaxImageBase64Bytes {
		return fmt.Errorf("image payload too large (max %d bytes of base64 text)", MaxImageBase64Bytes)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
