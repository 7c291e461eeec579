package util

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknown = "Unknown"

// DeviceInfo is the parsed form of a User-Agent header
type DeviceInfo struct {
	DeviceType string
	Browser    string
	OS         string
}

// ParseUserAgent classifies a User-Agent into desktop, mobile or tablet and
// extracts the browser and OS names
func ParseUserAgent(raw string) DeviceInfo {
	ua := useragent.New(raw)

	info := DeviceInfo{
		DeviceType: "desktop",
		Browser:    unknown,
		OS:         unknown,
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet") ||
		(strings.Contains(lower, "android") && !strings.Contains(lower, "mobile")):
		info.DeviceType = "tablet"
	case ua.Mobile():
		info.DeviceType = "mobile"
	}

	if name, _ := ua.Browser(); name != "" {
		info.Browser = name
	}
	if os := ua.OSInfo().Name; os != "" {
		info.OS = os
	}

	return info
}
