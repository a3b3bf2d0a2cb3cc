package contact

import "time"

const (
	StatusNew     = "new"
	StatusRead    = "read"
	StatusReplied = "replied"
)

func ValidStatus(s string) bool {
	return s == StatusNew || s == StatusRead || s == StatusReplied
}

// Message is a note left through the public contact form.
type Message struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null;index" json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `gorm:"type:text;not null" json:"message"`
	Source  string `gorm:"type:varchar(50)" json:"source,omitempty"`
	Status  string `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Message) TableName() string { return "contact_messages" }
