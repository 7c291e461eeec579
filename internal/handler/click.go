package handler

import (
	"context"

	"redirector/internal/model"
	"redirector/internal/service"
	"redirector/pkg/util"

	"github.com/gin-gonic/gin"
)

// clientIP prefers the proxy headers and falls back to the socket address
func clientIP(c *gin.Context) string {
	if ip := util.ClientIP(c.Request.Header); ip != "" {
		return ip
	}
	return c.RemoteIP()
}

// clickInput collects everything known about the visitor making this request.
// Geolocation uses the raw IP; only the anonymized form is kept.
func clickInput(ctx context.Context, c *gin.Context, geo service.GeoResolverInterface, edgeHeader string) model.ClickInput {
	ip := clientIP(c)
	userAgent := c.Request.UserAgent()
	referer := c.Request.Referer()

	in := model.ClickInput{
		UserAgent: userAgent,
		Referer:   referer,
		AccessURL: util.RedactURL(c.Request.URL),
		Geo:       geo.Resolve(ctx, ip, c.GetHeader(edgeHeader)),
	}
	if ip != "" {
		in.IP = util.AnonymizeIP(ip)
	}
	if userAgent != "" {
		device := util.ParseUserAgent(userAgent)
		in.DeviceType = device.DeviceType
		in.Browser = device.Browser
		in.OS = device.OS
	}
	if referer != "" {
		in.UTM = util.ExtractUTM(referer)
	}
	return in
}
