package notification

import (
	"time"

	"fintrack/internal/domain/shared"
)

var validPlatforms = map[string]struct{}{
	"ios":     {},
	"android": {},
	"web":     {},
}

// DeviceToken represents a registered FCM device token.
type DeviceToken struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegisterParams contains parameters for registering a device.
type RegisterParams struct {
	Token    string
	Platform string
}

func (p RegisterParams) Validate() error {
	if p.Token == "" {
		return shared.InvalidArgument("device token is required")
	}
	if _, ok := validPlatforms[p.Platform]; !ok {
		return shared.InvalidArgument("platform must be ios, android or web")
	}
	return nil
}
