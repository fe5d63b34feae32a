package models

import "time"

const ApplicantTable = "eqt_applicants"

// 借用人身份
const (
	RoleAdminStaff    = "admin-staff"
	RoleSeniorTeacher = "senior-teacher"
	RoleJuniorTeacher = "junior-teacher"
)

// 借用人状态
const (
	ApplicantActive   = "active"
	ApplicantResigned = "resigned"
	ApplicantOnLeave  = "leave-of-absence"
)

type Applicant struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:32;not null" json:"name"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	Status    string    `gorm:"size:20;not null;default:'active'" json:"status"`
	Email     string    `gorm:"size:128" json:"email,omitempty"`
	Phone     string    `gorm:"size:32" json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Applicant) TableName() string { return ApplicantTable }
