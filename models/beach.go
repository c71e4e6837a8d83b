package models

// Beach is seeded reference data belonging to a county.
type Beach struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	BeachName         string  `gorm:"size:255;not null;index" json:"beach_name"`
	BeachID           string  `gorm:"size:64" json:"beach_id"`
	Longitude         float64 `json:"beach_longitude"`
	Latitude          float64 `json:"beach_latitude"`
	CountyReferenceID uint    `gorm:"not null;index" json:"county_reference_id"`
	County            *County `gorm:"foreignKey:CountyReferenceID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Beach) TableName() string {
	return "beaches"
}
