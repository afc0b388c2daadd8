package ffiec

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
)

const (
	soapNamespace    = "http://schemas.xmlsoap.org/soap/envelope/"
	serviceNamespace = "http://cdr.ffiec.gov/public/services"
	wsseNamespace    = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
)

type envelope struct {
	XMLName xml.Name `xml:"soap:Envelope"`
	SoapNS  string   `xml:"xmlns:soap,attr"`
	Header  header   `xml:"soap:Header"`
	Body    body     `xml:"soap:Body"`
}

type header struct {
	Security security `xml:"wsse:Security"`
}

// security carries the WS-Security UsernameToken the CDR service expects;
// the token is the web-service security token, not the account password.
type security struct {
	WsseNS   string        `xml:"xmlns:wsse,attr"`
	Username usernameToken `xml:"wsse:UsernameToken"`
}

type usernameToken struct {
	Username string `xml:"wsse:Username"`
	Password string `xml:"wsse:Password"`
}

type body struct {
	Payload any
}

func (b body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "soap:Body"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.Encode(b.Payload); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

type responseEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Inner []byte `xml:",innerxml"`
		Fault *struct {
			Code   string `xml:"faultcode"`
			Reason string `xml:"faultstring"`
		} `xml:"Fault"`
	} `xml:"Body"`
}

type testUserAccessRequest struct {
	XMLName xml.Name `xml:"http://cdr.ffiec.gov/public/services TestUserAccess"`
}

type testUserAccessResponse struct {
	XMLName xml.Name `xml:"TestUserAccessResponse"`
	Result  bool     `xml:"TestUserAccessResult"`
}

type retrieveReportingPeriodsRequest struct {
	XMLName xml.Name `xml:"http://cdr.ffiec.gov/public/services RetrieveUBPRReportingPeriods"`
}

type retrieveReportingPeriodsResponse struct {
	XMLName xml.Name `xml:"RetrieveUBPRReportingPeriodsResponse"`
	Result  struct {
		Periods []string `xml:"string"`
	} `xml:"RetrieveUBPRReportingPeriodsResult"`
}

type retrieveFacsimileRequest struct {
	XMLName                xml.Name `xml:"http://cdr.ffiec.gov/public/services RetrieveUBPRXBRLFacsimile"`
	ReportingPeriodEndDate string   `xml:"reportingPeriodEndDate"`
	FIIDType               string   `xml:"fiIDType"`
	FIID                   string   `xml:"fiID"`
}

type retrieveFacsimileResponse struct {
	XMLName xml.Name `xml:"RetrieveUBPRXBRLFacsimileResponse"`
	Result  string   `xml:"RetrieveUBPRXBRLFacsimileResult"`
}

// call posts one SOAP request and decodes the matching response element
// out of the body.
func (a *Adapter) call(ctx context.Context, action string, payload, result any) error {
	env := envelope{
		SoapNS: soapNamespace,
		Header: header{
			Security: security{
				WsseNS: wsseNamespace,
				Username: usernameToken{
					Username: a.username,
					Password: a.token,
				},
			},
		},
		Body: body{Payload: payload},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(env); err != nil {
		return fmt.Errorf("encode soap request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", serviceNamespace+"/"+action)

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("ffiec %s: %w", action, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusInternalServerError {
		// 500 still carries a SOAP fault worth surfacing
		return fmt.Errorf("ffiec %s: unexpected status %d", action, resp.StatusCode)
	}

	var respEnv responseEnvelope
	if err := xml.Unmarshal(raw, &respEnv); err != nil {
		return fmt.Errorf("decode soap response: %w", err)
	}
	if respEnv.Body.Fault != nil {
		return fmt.Errorf("ffiec %s: soap fault %s: %s", action, respEnv.Body.Fault.Code, respEnv.Body.Fault.Reason)
	}

	if err := xml.Unmarshal(respEnv.Body.Inner, result); err != nil {
		return fmt.Errorf("decode %s response: %w", action, err)
	}
	return nil
}
