package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RedirectType controls how the interstitial page forwards the visitor
type RedirectType string

const (
	RedirectDirect    RedirectType = "DIRECT"
	RedirectMonetized RedirectType = "MONETIZED"
	RedirectCountdown RedirectType = "COUNTDOWN"
)

// RedirectTypes lists every known redirect type
var RedirectTypes = []RedirectType{RedirectDirect, RedirectMonetized, RedirectCountdown}

// Valid reports whether t is a known redirect type
func (t RedirectType) Valid() bool {
	for _, known := range RedirectTypes {
		if t == known {
			return true
		}
	}
	return false
}

// LinkSource classifies where a link came from
type LinkSource string

const (
	SourceManual  LinkSource = "MANUAL"
	SourceAPI     LinkSource = "API"
	SourceEvento  LinkSource = "EVENTO"
	SourceBlog    LinkSource = "BLOG"
	SourceYoutube LinkSource = "YOUTUBE"
	SourceSocial  LinkSource = "SOCIAL"
)

// LinkSources lists every known link source
var LinkSources = []LinkSource{SourceManual, SourceAPI, SourceEvento, SourceBlog, SourceYoutube, SourceSocial}

// Valid reports whether s is a known link source
func (s LinkSource) Valid() bool {
	for _, known := range LinkSources {
		if s == known {
			return true
		}
	}
	return false
}

// Link represents a redirect link entity
type Link struct {
	ID           int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Code         string       `json:"code" gorm:"type:varchar(50);uniqueIndex;not null"`
	TargetURL    string       `json:"targetUrl" gorm:"type:varchar(2048);not null"`
	Title        string       `json:"title,omitempty" gorm:"type:varchar(255)"`
	Description  string       `json:"description,omitempty" gorm:"type:text"`
	Commentary   string       `json:"commentary,omitempty" gorm:"type:text"`
	ImageURL     string       `json:"imageUrl,omitempty" gorm:"type:varchar(2048)"`
	RedirectType RedirectType `json:"redirectType" gorm:"type:varchar(16);not null"`
	DelaySeconds int          `json:"delaySeconds" gorm:"not null"`
	ShowAds      bool         `json:"showAds" gorm:"not null"`
	Source       LinkSource   `json:"source" gorm:"type:varchar(16);index;not null"`
	SourceApp    string       `json:"sourceApp,omitempty" gorm:"type:varchar(100);index"`
	SourceURL    string       `json:"sourceUrl,omitempty" gorm:"type:varchar(2048)"`
	Campaign     string       `json:"campaign,omitempty" gorm:"type:varchar(100)"`
	ExpiresAt    *time.Time   `json:"expiresAt,omitempty" gorm:"index"`
	Password     string       `json:"-" gorm:"type:varchar(100)"`
	IsActive     bool         `json:"isActive" gorm:"index;not null"`
	Clicks       int64        `json:"clicks" gorm:"not null;default:0"`
	UniqueClicks int64        `json:"uniqueClicks" gorm:"not null;default:0"`
	CreatedAt    time.Time    `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time    `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName returns the table name for Link
func (Link) TableName() string {
	return "links"
}

// IsResolvable checks if the link is active and not expired at the given instant
func (l *Link) IsResolvable(now time.Time) bool {
	if !l.IsActive {
		return false
	}
	if l.ExpiresAt != nil && !now.Before(*l.ExpiresAt) {
		return false
	}
	return true
}

// Protected reports whether a password guards the link
func (l *Link) Protected() bool {
	return l.Password != ""
}

// SetPassword hashes and stores the password; an empty password clears it
func (l *Link) SetPassword(password string) error {
	if password == "" {
		l.Password = ""
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	l.Password = string(hash)
	return nil
}

// CheckPassword verifies a candidate password; unprotected links accept anything
func (l *Link) CheckPassword(password string) bool {
	if !l.Protected() {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(l.Password), []byte(password)) == nil
}

// LinkCounter is the projection the reconciler walks
type LinkCounter struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Clicks int64  `json:"clicks"`
}

// LinkQuery filters and pages the link listing
type LinkQuery struct {
	Page      int
	Limit     int
	Source    LinkSource
	SourceApp string
	Search    string
	OrderBy   string
	Order     string
}

// LinkView is what the interstitial page needs to render a link
type LinkView struct {
	*Link
	ShortURL    string        `json:"shortUrl"`
	HasPassword bool          `json:"hasPassword"`
	Tracking    *TrackingData `json:"tracking,omitempty"`
}

// TrackingData is handed to the client so it can post the tracking call
type TrackingData struct {
	TrackingID string `json:"trackingId"`
	Timestamp  int64  `json:"timestamp"`
	LinkCode   string `json:"linkCode"`
	LinkID     int64  `json:"linkId"`
}

// CreateLinkRequest represents the request to create a link
type CreateLinkRequest struct {
	TargetURL    string     `json:"targetUrl" validate:"required,url,max=2048"`
	Code         string     `json:"code" validate:"omitempty,max=50"`
	Title        string     `json:"title" validate:"max=255"`
	Description  string     `json:"description"`
	Commentary   string     `json:"commentary"`
	ImageURL     string     `json:"imageUrl" validate:"omitempty,url,max=2048"`
	RedirectType string     `json:"redirectType"`
	DelaySeconds *int       `json:"delaySeconds" validate:"omitempty,min=0,max=3600"`
	ShowAds      *bool      `json:"showAds"`
	Source       string     `json:"source"`
	SourceApp    string     `json:"sourceApp" validate:"max=100"`
	SourceURL    string     `json:"sourceUrl" validate:"omitempty,url,max=2048"`
	Campaign     string     `json:"campaign" validate:"max=100"`
	ExpiresAt    *time.Time `json:"expiresAt"`
	Password     string     `json:"password" validate:"max=72"`
}

// UpdateLinkRequest carries the fields a partial update may change.
// There is no code field: codes are immutable.
type UpdateLinkRequest struct {
	TargetURL    *string    `json:"targetUrl" validate:"omitempty,url,max=2048"`
	Title        *string    `json:"title" validate:"omitempty,max=255"`
	Description  *string    `json:"description"`
	Commentary   *string    `json:"commentary"`
	ImageURL     *string    `json:"imageUrl" validate:"omitempty,url,max=2048"`
	RedirectType *string    `json:"redirectType"`
	DelaySeconds *int       `json:"delaySeconds" validate:"omitempty,min=0,max=3600"`
	ShowAds      *bool      `json:"showAds"`
	Source       *string    `json:"source"`
	SourceApp    *string    `json:"sourceApp" validate:"omitempty,max=100"`
	SourceURL    *string    `json:"sourceUrl" validate:"omitempty,url,max=2048"`
	Campaign     *string    `json:"campaign" validate:"omitempty,max=100"`
	ExpiresAt    *time.Time `json:"expiresAt"`
	Password     *string    `json:"password" validate:"omitempty,max=72"`
	IsActive     *bool      `json:"isActive"`
}
