package models

import (
	"time"
)

// Bank is a row of the regulatory bank catalog. The catalog is reference
// data owned by an external ingestion process; this service only reads
// rows where IsActive is true.
type Bank struct {
	ID                    string     `firestore:"id" json:"id"`
	RSSDID                string     `firestore:"rssdId" json:"rssdId"`
	FDICCertificateNumber string     `firestore:"fdicCertificateNumber" json:"fdicCertificateNumber"`
	BankName              string     `firestore:"bankName" json:"bankName"`
	City                  string     `firestore:"city" json:"city"`
	State                 string     `firestore:"state" json:"state"`
	TotalAssets           float64    `firestore:"totalAssets" json:"totalAssets"`
	CharterType           string     `firestore:"charterType" json:"charterType"`
	Regulator             string     `firestore:"regulator" json:"regulator"`
	IsActive              bool       `firestore:"isActive" json:"isActive"`
	LastFilingDate        *time.Time `firestore:"lastFilingDate" json:"lastFilingDate"`
	CreatedAt             time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time  `firestore:"updatedAt" json:"updatedAt"`
}
