package dto

// BankReportStatus describes UBPR facsimile availability for one selected
// bank. The facsimile payload itself is opaque XBRL and is not parsed here.
type BankReportStatus struct {
	BankID    string `json:"bankId"`
	RSSDID    string `json:"rssdId"`
	BankName  string `json:"bankName"`
	Available bool   `json:"available"`
	SizeBytes int    `json:"sizeBytes,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SelectionReports is the GET /banks/selection/reports payload.
type SelectionReports struct {
	ReportingPeriod string             `json:"reportingPeriod"`
	Reports         []BankReportStatus `json:"reports"`
}
