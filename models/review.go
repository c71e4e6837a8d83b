package models

// Review is a user's review of a beach.
// BeachID is not a foreign key. Reviews may reference beaches missing from
// the reference data.
type Review struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ReviewTitle string `gorm:"size:255" json:"review_title"`
	Review      string `gorm:"type:text" json:"review"`
	BeachID     uint   `gorm:"index" json:"beach_id"`
	User        string `gorm:"size:320;index" json:"user"` // author email
	NumLikes    int    `gorm:"not null;default:0" json:"num_likes"`
	Image       string `gorm:"type:text" json:"image"`
}

func (Review) TableName() string {
	return "reviews"
}
