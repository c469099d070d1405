package platform

import (
	"strings"

	"github.com/dmitrymomot/platformkit/pkg/useragent"
)

// Platform identifies the messaging client variant hosting a mini-app.
type Platform string

const (
	Android  Platform = "android"
	AndroidX Platform = "android_x"
	IOS      Platform = "ios"
	MacOS    Platform = "macos"
	TDesktop Platform = "tdesktop"
	Unigram  Platform = "unigram"
	WebA     Platform = "weba"
	WebK     Platform = "webk"
	Web      Platform = "web"
	Unknown  Platform = "unknown"
)

// Family groups client variants by the kind of device they run on.
type Family string

const (
	FamilyMobile  Family = "mobile"
	FamilyDesktop Family = "desktop"
	FamilyWeb     Family = "web"
	FamilyUnknown Family = "unknown"
)

var knownPlatforms = map[Platform]Family{
	Android:  FamilyMobile,
	AndroidX: FamilyMobile,
	IOS:      FamilyMobile,
	MacOS:    FamilyDesktop,
	TDesktop: FamilyDesktop,
	Unigram:  FamilyDesktop,
	WebA:     FamilyWeb,
	WebK:     FamilyWeb,
	Web:      FamilyWeb,
}

// ParsePlatform maps a reported platform name to a known variant.
// Anything unrecognized, including the empty string, becomes Unknown.
func ParsePlatform(name string) Platform {
	p := Platform(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := knownPlatforms[p]; ok {
		return p
	}
	return Unknown
}

// Family returns the device family of the platform.
func (p Platform) Family() Family {
	if f, ok := knownPlatforms[p]; ok {
		return f
	}
	return FamilyUnknown
}

// Known reports whether p is a recognized variant.
func (p Platform) Known() bool {
	_, ok := knownPlatforms[p]
	return ok
}

// OS returns the operating system the client variant implies, or "" when
// the variant does not pin one down.
func (p Platform) OS() string {
	switch p {
	case Android, AndroidX:
		return useragent.OSAndroid
	case IOS:
		return useragent.OSiOS
	case MacOS:
		return useragent.OSMacOS
	default:
		return ""
	}
}

func (p Platform) String() string { return string(p) }
