package entities

import "time"

// UserCrop is one planted crop instance owned by a farmer.
type UserCrop struct {
	ID                    string     `gorm:"primaryKey" json:"id" bson:"_id"`
	UserID                string     `gorm:"index" json:"userId" bson:"userId"`
	CropID                string     `json:"cropId" bson:"cropId"`
	CropType              string     `json:"cropType" bson:"cropType"`
	PlantedTimestamp      time.Time  `json:"plantedTimestamp" bson:"plantedTimestamp"`
	WateringInterval      string     `json:"wateringInterval" bson:"wateringInterval"`
	NextWateringTimestamp *time.Time `gorm:"index" json:"nextWateringTimestamp" bson:"nextWateringTimestamp"`
	CreatedAt             time.Time  `json:"-" bson:"createdAt,omitempty"`
	UpdatedAt             time.Time  `json:"-" bson:"updatedAt,omitempty"`
}

func (UserCrop) TableName() string { return "user_crops" }
