package model

import (
	"time"
)

// DayCount is the number of clicks on one calendar day (YYYY-MM-DD)
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ValueCount pairs a grouped value with its click count
type ValueCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// LinkStats aggregates the analytics of one link
type LinkStats struct {
	Link         *Link        `json:"link"`
	ClicksByDay  []DayCount   `json:"clicksByDay"`
	TopCountries []ValueCount `json:"topCountries"`
	TopDevices   []ValueCount `json:"topDevices"`
	TopReferers  []ValueCount `json:"topReferers"`
}

// GlobalStats summarizes every link
type GlobalStats struct {
	TotalLinks          int64 `json:"totalLinks"`
	ActiveLinks         int64 `json:"activeLinks"`
	TotalClicks         int64 `json:"totalClicks"`
	LinksWithCommentary int64 `json:"linksWithCommentary"`
}

// GeoLocation is a resolved location; unknown parts are nil
type GeoLocation struct {
	Country *string `json:"country"`
	Region  *string `json:"region"`
	City    *string `json:"city"`
}

// Empty reports whether nothing is known about the location
func (g GeoLocation) Empty() bool {
	return g.Country == nil && g.Region == nil && g.City == nil
}

// GeoStats exposes the geolocation counters
type GeoStats struct {
	ExternalCalls int64     `json:"externalCalls"`
	EdgeHits      int64     `json:"edgeHits"`
	CacheHits     int64     `json:"cacheHits"`
	WindowCalls   int       `json:"windowCalls"`
	WindowResetAt time.Time `json:"windowResetAt"`
}

// RateLimitResult is the outcome of a fixed-window check
type RateLimitResult struct {
	Allowed   bool          `json:"allowed"`
	Remaining int           `json:"remaining"`
	ResetIn   time.Duration `json:"resetIn"`
}

// SyncResult summarizes a reconciliation run
type SyncResult struct {
	TotalLinks int      `json:"totalLinks"`
	Synced     int      `json:"synced"`
	Errors     []string `json:"errors"`
}

// Discrepancy is a link whose fast and durable counts differ
type Discrepancy struct {
	Code         string `json:"code"`
	FastCount    int64  `json:"fastCount"`
	DurableCount int64  `json:"durableCount"`
	Difference   int64  `json:"difference"`
}

// SyncStatus reports counter drift without writing
type SyncStatus struct {
	TotalLinks    int           `json:"totalLinks"`
	Discrepancies int           `json:"discrepancies"`
	Details       []Discrepancy `json:"details"`
}
