package model

import (
	"time"
)

// ClickEvent represents a single tracked click
type ClickEvent struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	LinkID        int64     `json:"linkId" gorm:"index;not null"`
	IP            string    `json:"ip" gorm:"type:varchar(64)"`
	UserAgent     string    `json:"userAgent" gorm:"type:varchar(512)"`
	Referer       string    `json:"referer" gorm:"type:varchar(512);index"`
	AccessURL     string    `json:"accessUrl" gorm:"type:varchar(2048)"`
	Country       string    `json:"country" gorm:"type:varchar(100);index"`
	Region        string    `json:"region" gorm:"type:varchar(100)"`
	City          string    `json:"city" gorm:"type:varchar(100)"`
	DeviceType    string    `json:"deviceType" gorm:"type:varchar(16);index"`
	Browser       string    `json:"browser" gorm:"type:varchar(64)"`
	OS            string    `json:"os" gorm:"type:varchar(64)"`
	UTMSource     string    `json:"utmSource" gorm:"type:varchar(255)"`
	UTMMedium     string    `json:"utmMedium" gorm:"type:varchar(255)"`
	UTMCampaign   string    `json:"utmCampaign" gorm:"type:varchar(255)"`
	UTMTerm       string    `json:"utmTerm" gorm:"type:varchar(255)"`
	UTMContent    string    `json:"utmContent" gorm:"type:varchar(255)"`
	WaitedFull    *bool     `json:"waitedFull"`
	ClickedButton *bool     `json:"clickedButton"`
	TimeOnPage    *int      `json:"timeOnPage"`
	ClickedAt     time.Time `json:"clickedAt" gorm:"index;autoCreateTime"`
}

// TableName returns the table name for ClickEvent
func (ClickEvent) TableName() string {
	return "click_events"
}

// ClickInput is everything the recorder knows about a click besides the link.
// IP must already be anonymized.
type ClickInput struct {
	IP            string
	UserAgent     string
	Referer       string
	AccessURL     string
	Geo           GeoLocation
	DeviceType    string
	Browser       string
	OS            string
	UTM           UTMParams
	WaitedFull    *bool
	ClickedButton *bool
	TimeOnPage    *int
}

// Event builds the durable record for linkID
func (in ClickInput) Event(linkID int64) *ClickEvent {
	return &ClickEvent{
		LinkID:        linkID,
		IP:            in.IP,
		UserAgent:     in.UserAgent,
		Referer:       in.Referer,
		AccessURL:     in.AccessURL,
		Country:       deref(in.Geo.Country),
		Region:        deref(in.Geo.Region),
		City:          deref(in.Geo.City),
		DeviceType:    in.DeviceType,
		Browser:       in.Browser,
		OS:            in.OS,
		UTMSource:     in.UTM.Source,
		UTMMedium:     in.UTM.Medium,
		UTMCampaign:   in.UTM.Campaign,
		UTMTerm:       in.UTM.Term,
		UTMContent:    in.UTM.Content,
		WaitedFull:    in.WaitedFull,
		ClickedButton: in.ClickedButton,
		TimeOnPage:    in.TimeOnPage,
		ClickedAt:     time.Now().UTC(),
	}
}

// UTMParams holds the five campaign parameters
type UTMParams struct {
	Source   string `json:"utmSource,omitempty"`
	Medium   string `json:"utmMedium,omitempty"`
	Campaign string `json:"utmCampaign,omitempty"`
	Term     string `json:"utmTerm,omitempty"`
	Content  string `json:"utmContent,omitempty"`
}

// TrackRequest represents the client-side tracking call
type TrackRequest struct {
	LinkCode      string `json:"linkCode" binding:"required"`
	WaitedFull    *bool  `json:"waitedFull"`
	ClickedButton *bool  `json:"clickedButton"`
	TimeOnPage    *int   `json:"timeOnPage"`
}

// Step names a stage of click recording
type Step string

const (
	StepFastCounter    Step = "fast_counter"
	StepUniqueMarker   Step = "unique_marker"
	StepDurableEvent   Step = "durable_event"
	StepDurableCounter Step = "durable_counter"
	StepPublish        Step = "publish"
)

// StepFailure is a recording failure that was logged and absorbed
type StepFailure struct {
	Step Step  `json:"step"`
	Err  error `json:"-"`
}

// RecordResult describes what a click recording achieved. Recording never
// fails its caller; failures are listed here instead.
type RecordResult struct {
	FastCount int64         `json:"fastCount"`
	Unique    bool          `json:"unique"`
	Queued    bool          `json:"queued"`
	Failures  []StepFailure `json:"failures,omitempty"`
}

// Failed reports whether step failed
func (r *RecordResult) Failed(step Step) bool {
	for _, f := range r.Failures {
		if f.Step == step {
			return true
		}
	}
	return false
}

// Fail records an absorbed failure
func (r *RecordResult) Fail(step Step, err error) {
	r.Failures = append(r.Failures, StepFailure{Step: step, Err: err})
}

// ClickEventMessage is the queued form of the durable half of a recording
type ClickEventMessage struct {
	LinkID int64       `json:"linkId"`
	Code   string      `json:"code"`
	Unique bool        `json:"unique"`
	Event  *ClickEvent `json:"event"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
