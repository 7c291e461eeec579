package util

import (
	"net/url"

	"redirector/internal/model"
)

// ExtractUTM reads the utm_* query parameters of rawURL; an unparseable URL yields none
func ExtractUTM(rawURL string) model.UTMParams {
	u, err := url.Parse(rawURL)
	if err != nil {
		return model.UTMParams{}
	}
	q := u.Query()
	return model.UTMParams{
		Source:   q.Get("utm_source"),
		Medium:   q.Get("utm_medium"),
		Campaign: q.Get("utm_campaign"),
		Term:     q.Get("utm_term"),
		Content:  q.Get("utm_content"),
	}
}
