package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Policy is an insurance policy created by an agent for a customer.
// Records are immutable once inserted; pan_number is unique across the table.
type Policy struct {
	ID                uint            `gorm:"primaryKey;column:id" json:"id"`
	CustomerName      string          `gorm:"column:customer_name;type:text;not null" json:"customer_name"`
	Dob               datatypes.Date  `gorm:"column:dob;not null" json:"dob"`
	Gender            string          `gorm:"column:gender;type:varchar(20);not null" json:"gender"`
	Mobile            string          `gorm:"column:mobile;type:varchar(20);not null" json:"mobile"`
	Email             string          `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Address           string          `gorm:"column:address;type:text;not null" json:"address"`
	PlanType          string          `gorm:"column:plan_type;type:varchar(100);not null" json:"plan_type"`
	PanNumber         string          `gorm:"column:pan_number;type:varchar(12);not null;uniqueIndex:idx_policies_pan_number" json:"pan_number"`
	MembersCount      int             `gorm:"column:members_count;not null" json:"members_count"`
	MedicalConditions bool            `gorm:"column:medical_conditions;not null" json:"medical_conditions"`
	NomineeName       string          `gorm:"column:nominee_name;type:text;not null" json:"nominee_name"`
	Premium           decimal.Decimal `gorm:"column:premium;type:decimal(10,2);not null" json:"premium"`
	PolicyStartDate   datatypes.Date  `gorm:"column:policy_start_date;not null" json:"policy_start_date"`
	AgentID           string          `gorm:"column:agent_id;type:varchar(100);not null" json:"agent_id"`
}

// TableName returns the database table name for Policy model.
func (Policy) TableName() string {
	return "policies"
}

// Plan types and genders offered by the dashboard form. The API accepts any non-empty value.
const (
	PlanIndividual    = "Individual"
	PlanFamily        = "Family"
	PlanSeniorCitizen = "Senior Citizen"

	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// MedicalConditionsYes is the form token stored as medical_conditions = true.
const MedicalConditionsYes = "Yes"
