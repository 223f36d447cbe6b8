package utils

import "strings"

// Browser and OS names produced by user-agent classification.
const (
	UnknownAgent = "Unknown"
)

// browserTokens is checked in order; first match wins. Chrome is checked
// before Edge and Safari because Chromium-based agents carry those tokens too.
var browserTokens = []struct {
	token string
	name  string
}{
	{"Chrome", "Chrome"},
	{"Firefox", "Firefox"},
	{"Safari", "Safari"},
	{"Edge", "Edge"},
	{"Opera", "Opera"},
}

var osTokens = []struct {
	token string
	name  string
}{
	{"Windows", "Windows"},
	{"Mac", "macOS"},
	{"Linux", "Linux"},
	{"Android", "Android"},
	{"iOS", "iOS"},
}

// DetectBrowser classifies a raw user-agent string into one of the five
// known browsers, or "Unknown".
func DetectBrowser(userAgent string) string {
	for _, b := range browserTokens {
		if strings.Contains(userAgent, b.token) {
			return b.name
		}
	}
	return UnknownAgent
}

// DetectOS classifies a raw user-agent string into one of the five known
// operating systems, or "Unknown".
func DetectOS(userAgent string) string {
	for _, o := range osTokens {
		if strings.Contains(userAgent, o.token) {
			return o.name
		}
	}
	return UnknownAgent
}
