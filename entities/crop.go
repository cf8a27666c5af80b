package entities

import "time"

// CropDefinition is reference data keyed by crop type. The server only reads it.
type CropDefinition struct {
	ID               string    `gorm:"primaryKey" json:"id" bson:"_id"`
	WateringInterval string    `json:"wateringInterval" bson:"wateringInterval"` // e.g. "2 days"
	CreatedAt        time.Time `json:"-" bson:"createdAt,omitempty"`
	UpdatedAt        time.Time `json:"-" bson:"updatedAt,omitempty"`
}

func (CropDefinition) TableName() string { return "crops" }
