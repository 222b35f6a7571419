package blog

import "time"

// Post is a blog article written in Markdown.
type Post struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Slug         string     `gorm:"uniqueIndex;not null;type:varchar(200)" json:"slug"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Summary      string     `gorm:"type:text" json:"summary"`
	BodyMarkdown string     `gorm:"type:text" json:"body_markdown"`
	ImageRef     string     `gorm:"type:varchar(500)" json:"image_ref"`
	Published    bool       `gorm:"index;not null;default:false" json:"published"`
	PublishedAt  *time.Time `json:"published_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Post) TableName() string { return "blog_posts" }

// Input is the writable field set accepted from operators.
type Input struct {
	Slug         string `json:"slug" validate:"omitempty,max=200"`
	Title        string `json:"title" validate:"required,max=255"`
	Summary      string `json:"summary" validate:"max=1000"`
	BodyMarkdown string `json:"body_markdown"`
	ImageRef     string `json:"image_ref" validate:"max=500"`
	Published    bool   `json:"published"`
}
