package models

// County is seeded reference data and is never changed by the API.
type County struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CountyName string `gorm:"size:128;not null" json:"county_name"`
	CountyID   string `gorm:"size:64" json:"county_id"` // external county code
}

func (County) TableName() string {
	return "counties"
}
