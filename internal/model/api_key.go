package model

import (
	"time"
)

// Capability names an API key permission
type Capability string

const (
	CapCreate Capability = "create"
	CapRead   Capability = "read"
	CapUpdate Capability = "update"
	CapDelete Capability = "delete"
)

// APIKey represents a hashed API key; the raw key is never stored
type APIKey struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	KeyHash    string     `json:"-" gorm:"type:char(64);uniqueIndex;not null"`
	Name       string     `json:"name" gorm:"type:varchar(100);not null"`
	CanCreate  bool       `json:"canCreate" gorm:"not null"`
	CanRead    bool       `json:"canRead" gorm:"not null"`
	CanUpdate  bool       `json:"canUpdate" gorm:"not null"`
	CanDelete  bool       `json:"canDelete" gorm:"not null"`
	IsActive   bool       `json:"isActive" gorm:"not null"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName returns the table name for APIKey
func (APIKey) TableName() string {
	return "api_keys"
}

// Can reports whether the key grants capability
func (k *APIKey) Can(capability Capability) bool {
	switch capability {
	case CapCreate:
		return k.CanCreate
	case CapRead:
		return k.CanRead
	case CapUpdate:
		return k.CanUpdate
	case CapDelete:
		return k.CanDelete
	}
	return false
}

// APIKeyValidation is the outcome of validating a raw key
type APIKeyValidation struct {
	Valid   bool    `json:"valid"`
	AppName string  `json:"appName,omitempty"`
	Key     *APIKey `json:"-"`
}
