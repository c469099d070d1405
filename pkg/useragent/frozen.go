package useragent

import "regexp"

// Patterns left behind by UA reduction: browsers keep the string shape but
// pin the version and platform details to fixed values.
var frozenPatterns = []*regexp.Regexp{
	// Chromium ships MAJOR.0.0.0 since UA reduction phase 4.
	regexp.MustCompile(`(?:chrome|crios|edg)/\d+\.0\.0\.0`),
	// Android model and version replaced by "Android 10; K".
	regexp.MustCompile(`android 10; k\)`),
	// macOS version pinned at 10.15.7 by Safari, Chrome and Firefox.
	regexp.MustCompile(`intel mac os x 10[_.]15[_.]7`),
}

// IsFrozen reports whether the lower-cased UA matches a known reduced
// ("frozen") pattern. OS version and device model from such strings are
// unreliable without client hints.
func IsFrozen(lowerUA string) bool {
	for _, re := range frozenPatterns {
		if re.MatchString(lowerUA) {
			return true
		}
	}
	return false
}
