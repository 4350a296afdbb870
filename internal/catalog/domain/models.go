// Package domain contains reference data models for the billing console.
package domain

import "time"

// Role identifies a console actor. The approval gate only distinguishes
// the CEO from everyone else.
type Role string

const (
	RoleCEO      Role = "ceo"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleCEO || r == RoleEmployee
}

// ServiceCategory groups catalog entries.
type ServiceCategory string

const (
	CategoryDigitalMarketing    ServiceCategory = "Digital Marketing"
	CategoryWebDevelopment      ServiceCategory = "Web Development"
	CategorySoftwareDevelopment ServiceCategory = "Software Development"
)

// Service is an immutable catalog entry.
type Service struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:text;not null" json:"name"`
	Category    ServiceCategory `gorm:"type:text;not null;index" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Unit        string          `gorm:"type:text" json:"unit"`
	UnitRate    float64         `gorm:"not null" json:"unitRate"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Service) TableName() string { return "services" }

// ClientProfile is an immutable directory entry.
type ClientProfile struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	CompanyName  string    `gorm:"type:text;not null" json:"companyName"`
	ContactName  string    `gorm:"type:text" json:"contactName"`
	Email        string    `gorm:"type:text" json:"email"`
	Phone        string    `gorm:"type:text" json:"phone"`
	AddressLine1 string    `gorm:"type:text" json:"addressLine1"`
	AddressLine2 string    `gorm:"type:text" json:"addressLine2,omitempty"`
	City         string    `gorm:"type:text" json:"city"`
	State        string    `gorm:"type:text" json:"state"`
	PostalCode   string    `gorm:"type:text" json:"postalCode"`
	Country      string    `gorm:"type:text" json:"country"`
	GSTIN        string    `gorm:"type:text" json:"gstin,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (ClientProfile) TableName() string { return "client_profiles" }

// Organization is the issuing company's profile.
type Organization struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	LegalName       string    `gorm:"type:text;not null" json:"legalName"`
	DisplayName     string    `gorm:"type:text;not null" json:"displayName"`
	Tagline         string    `gorm:"type:text" json:"tagline"`
	TaxRegistration string    `gorm:"type:text" json:"taxRegistration"`
	AddressLine1    string    `gorm:"type:text" json:"addressLine1"`
	AddressLine2    string    `gorm:"type:text" json:"addressLine2"`
	City            string    `gorm:"type:text" json:"city"`
	State           string    `gorm:"type:text" json:"state"`
	PostalCode      string    `gorm:"type:text" json:"postalCode"`
	Country         string    `gorm:"type:text" json:"country"`
	Phone           string    `gorm:"type:text" json:"phone"`
	Email           string    `gorm:"type:text" json:"email"`
	Website         string    `gorm:"type:text" json:"website"`
	BankBeneficiary string    `gorm:"type:text" json:"bankBeneficiary"`
	BankName        string    `gorm:"type:text" json:"bankName"`
	BankAccount     string    `gorm:"type:text" json:"bankAccount"`
	BankIFSC        string    `gorm:"type:text" json:"bankIFSC"`
	BankSWIFT       string    `gorm:"type:text" json:"bankSWIFT"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }
