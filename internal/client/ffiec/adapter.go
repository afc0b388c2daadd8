// Package ffiec wraps the FFIEC CDR public web service, the SOAP endpoint
// that serves UBPR reporting periods and XBRL report facsimiles. The
// facsimile payload is returned as opaque bytes; this service does not
// parse XBRL.
package ffiec

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

type Adapter struct {
	endpoint string
	username string
	token    string
	http     *http.Client
}

func NewAdapter(endpoint, username, token string) *Adapter {
	return &Adapter{
		endpoint: endpoint,
		username: username,
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// TestUserAccess verifies the configured credentials against the service.
func (a *Adapter) TestUserAccess(ctx context.Context) (bool, error) {
	var resp testUserAccessResponse
	err := a.call(ctx, "TestUserAccess", testUserAccessRequest{}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Result, nil
}

// RetrieveReportingPeriods lists the quarter-end dates for which UBPR data
// exists, most recent first per the service's own ordering.
func (a *Adapter) RetrieveReportingPeriods(ctx context.Context) ([]string, error) {
	var resp retrieveReportingPeriodsResponse
	err := a.call(ctx, "RetrieveUBPRReportingPeriods", retrieveReportingPeriodsRequest{}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Result.Periods, nil
}

// RetrieveFacsimile fetches the raw UBPR XBRL document for one institution
// and period. Callers treat the bytes as opaque.
func (a *Adapter) RetrieveFacsimile(ctx context.Context, rssdID string, reportingPeriod string) ([]byte, error) {
	req := retrieveFacsimileRequest{
		ReportingPeriodEndDate: reportingPeriod,
		FIIDType:               "ID_RSSD",
		FIID:                   rssdID,
	}

	var resp retrieveFacsimileResponse
	if err := a.call(ctx, "RetrieveUBPRXBRLFacsimile", req, &resp); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("decode facsimile payload: %w", err)
	}
	return data, nil
}
