package models

// Like records that a user liked a review.
// The pair (ReviewID, LikerID) is unique.
type Like struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ReviewID uint    `gorm:"not null;uniqueIndex:idx_like_review_liker" json:"review"`
	LikerID  uint    `gorm:"not null;uniqueIndex:idx_like_review_liker;index" json:"liker"`
	Review   *Review `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"-"`
	Liker    *User   `gorm:"foreignKey:LikerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Like) TableName() string {
	return "likes"
}

// LikeState is the outcome of reading or toggling a like.
type LikeState struct {
	Liked    bool `json:"liked"`
	NumLikes int  `json:"num_likes"`
}
