package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a read-only directory entry the engine links orders and
// finance records to. Customer CRUD lives outside this service.
type Customer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"not null"`
	Email          *string
	Phone          *string
	Active         bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
