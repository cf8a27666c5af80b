package entities

import "time"

// Farmer is keyed by user id. FCMToken is empty until the app registers a device.
type Farmer struct {
	ID        string    `gorm:"primaryKey" json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name,omitempty"`
	FCMToken  string    `gorm:"column:fcm_token" json:"-" bson:"fcmToken,omitempty"` // never exposed in JSON
	CreatedAt time.Time `json:"-" bson:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"-" bson:"updatedAt,omitempty"`
}

func (Farmer) TableName() string { return "farmers" }
