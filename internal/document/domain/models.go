package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DocumentType is the closed catalog of document kinds an employee can file.
type DocumentType string

const (
	TypeProfessionalDocuments DocumentType = "PROFESSIONAL_DOCUMENTS"
	TypeDegree                DocumentType = "DEGREE"
	TypeAadhaar               DocumentType = "AADHAAR"
	TypeTaxDeductions         DocumentType = "TAX_DEDUCTIONS_SUPPORTING_DOCUMENTS"
	TypeEmploymentContract    DocumentType = "EMPLOYMENT_CONTRACT"
	TypePreviousEmployment    DocumentType = "PREVIOUS_EMPLOYMENT_DOCUMENTS"
	TypeBankAccountDetails    DocumentType = "BANK_ACCOUNT_DETAILS"
	TypeEmployeePhoto         DocumentType = "EMPLOYEE_PHOTO"
	TypePAN                   DocumentType = "PAN"
	TypeCV                    DocumentType = "CV"
	TypeOther                 DocumentType = "OTHER"
)

func (t DocumentType) Valid() bool {
	switch t {
	case TypeProfessionalDocuments, TypeDegree, TypeAadhaar, TypeTaxDeductions,
		TypeEmploymentContract, TypePreviousEmployment, TypeBankAccountDetails,
		TypeEmployeePhoto, TypePAN, TypeCV, TypeOther:
		return true
	}
	return false
}

// Status is the review state of a filed document.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Document is a stored file's metadata row. The blob itself lives in
// object storage under FileKey.
type Document struct {
	ID               snowflake.ID  `json:"id" gorm:"primaryKey"`
	EmployeeID       snowflake.ID  `json:"employee_id" gorm:"index"`
	DocumentType     DocumentType  `json:"document_type" gorm:"index"`
	FileKey          string        `json:"-"`
	OriginalFileName string        `json:"original_file_name"`
	Status           Status        `json:"status" gorm:"default:PENDING"`
	UploadedAt       time.Time     `json:"uploaded_at"`
	ApprovedBy       *snowflake.ID `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time    `json:"approved_at,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}
