package location

// Location represents the location table (warehouse or shop).
type Location struct {
	LocationID  uint   `gorm:"column:location_id;primaryKey;autoIncrement" json:"location_id,omitempty"`
	Name        string `gorm:"column:name;type:varchar(128);not null;uniqueIndex" json:"name"`
	Description string `gorm:"column:description;type:varchar(255)" json:"description"`
}

func (Location) TableName() string {
	return "location"
}
