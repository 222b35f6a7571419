package lead

import "time"

// Service offerings accepted by the contact form. The empty string means "not chosen".
const (
	ServiceOfficeMoving        = "Office Moving"
	ServiceHomeMoving          = "Home Moving"
	ServiceInternationalMoving = "International Moving"
	ServicePetMoving           = "Pet Moving"
)

// ServiceChoices lists the offerings in the order the form shows them.
var ServiceChoices = []string{ServiceOfficeMoving, ServiceHomeMoving, ServiceInternationalMoving, ServicePetMoving}

// ContactSubmission is a general enquiry from the contact page.
type ContactSubmission struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Email    string `gorm:"type:varchar(254);not null" json:"email"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Service  string `gorm:"type:varchar(50)" json:"service"`
	Message  string `gorm:"type:text;not null" json:"message"`
	Botcheck string `gorm:"type:varchar(100)" json:"-"`

	// CreatedAt and IPAddress are stamped by the server at insert and never rewritten.
	CreatedAt time.Time `gorm:"<-:create;index" json:"created_at"`
	IPAddress string    `gorm:"<-:create;type:varchar(45)" json:"ip_address"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }

// MovingRequest is a quote request from the home page.
type MovingRequest struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	LocationFrom string    `gorm:"type:varchar(200);not null" json:"location_from"`
	LocationTo   string    `gorm:"type:varchar(200);not null" json:"location_to"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"type:varchar(254);not null" json:"email"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone"`
	Date         time.Time `gorm:"type:date;not null" json:"date"`
	Botcheck     string    `gorm:"type:varchar(100)" json:"-"`

	CreatedAt time.Time `gorm:"<-:create;index" json:"created_at"`
	IPAddress string    `gorm:"<-:create;type:varchar(45)" json:"ip_address"`
}

func (MovingRequest) TableName() string { return "moving_requests" }

// IPHit is one past submission, used to warm the per-IP limiter.
type IPHit struct {
	IPAddress string
	CreatedAt time.Time
}
