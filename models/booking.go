package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPlan is stored when a booking arrives without a plan.
const DefaultPlan = "Undecided / Custom"

// Booking is a single appointment request submitted through the site form.
// Rows are append-only: nothing updates or deletes them.
type Booking struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	AppointmentDate datatypes.Date `gorm:"column:appointment_date;not null" json:"appointmentDate"`
	AppointmentTime string         `gorm:"column:appointment_time;size:32;not null" json:"appointmentTime"`
	Plan            string         `gorm:"column:plan;size:128;not null;default:'Undecided / Custom'" json:"plan"`

	FullName     string  `gorm:"column:full_name;size:255;not null" json:"fullName"`
	BusinessName *string `gorm:"column:business_name;size:255" json:"businessName"`
	Email        string  `gorm:"column:email;size:255;not null;index" json:"email"`
	Phone        *string `gorm:"column:phone;size:64" json:"phone"`
	Industry     *string `gorm:"column:industry;size:128" json:"industry"`
	MissionBrief *string `gorm:"column:mission_brief;type:text" json:"missionBrief"`

	CreatedAt time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate fills the id when the caller did not assign one.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Plan == "" {
		b.Plan = DefaultPlan
	}
	return nil
}
