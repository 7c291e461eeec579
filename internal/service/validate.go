package service

import (
	"errors"
	"net/netip"
	"net/url"
	"reflect"
	"strings"

	"redirector/internal/encoder"
	"redirector/internal/model"

	"github.com/go-playground/validator/v10"
)

var dangerousPatterns = []string{"javascript:", "data:", "vbscript:"}

var blockedHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"0.0.0.0":   true,
	"::1":       true,
}

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// structError converts the first validator failure into a ValidationError
func structError(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid("request", err.Error())
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return invalid(fe.Field(), "is required")
	case "url":
		return invalid(fe.Field(), "Invalid URL format")
	case "min":
		return invalid(fe.Field(), "must be at least "+fe.Param())
	case "max":
		return invalid(fe.Field(), "must be at most "+fe.Param())
	default:
		return invalid(fe.Field(), "failed "+fe.Tag()+" check")
	}
}

// checkTargetURL accepts http(s) URLs without script-like payloads. In release
// mode local and private-network hosts are rejected as well.
func checkTargetURL(raw string, release bool) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return invalid("targetUrl", "Invalid URL format")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid("targetUrl", "Protocol must be http or https")
	}

	if release {
		host := strings.ToLower(u.Hostname())
		if blockedHosts[host] {
			return invalid("targetUrl", "Local addresses not allowed")
		}
		if addr, err := netip.ParseAddr(host); err == nil {
			addr = addr.Unmap()
			if addr.IsLoopback() || addr.IsUnspecified() {
				return invalid("targetUrl", "Local addresses not allowed")
			}
			if addr.IsPrivate() {
				return invalid("targetUrl", "Private IP addresses not allowed")
			}
		}
	}

	lower := strings.ToLower(raw)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return invalid("targetUrl", "Dangerous URL pattern detected")
		}
	}

	return nil
}

func checkCode(enc *encoder.Base62Encoder, code string) error {
	if !enc.IsValid(code) {
		return invalid("code", "must be 3-50 letters, digits or hyphens")
	}
	return nil
}

func checkRedirectType(t string) error {
	if !model.RedirectType(t).Valid() {
		return invalid("redirectType", "must be one of DIRECT, MONETIZED, COUNTDOWN")
	}
	return nil
}

func checkSource(s string) error {
	if !model.LinkSource(s).Valid() {
		return invalid("source", "unknown source "+s)
	}
	return nil
}
