package team

import "time"

// Member is one person shown on the Teams page.
type Member struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Role      string    `gorm:"type:varchar(100)" json:"role"`
	Bio       string    `gorm:"type:text" json:"bio"`
	PhotoRef  string    `gorm:"type:varchar(500)" json:"photo_ref"`
	Position  int       `gorm:"index;not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Member) TableName() string { return "team_members" }

// Input is the writable field set accepted from operators.
type Input struct {
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"max=100"`
	Bio      string `json:"bio" validate:"max=2000"`
	Position int    `json:"position" validate:"gte=0"`
}
