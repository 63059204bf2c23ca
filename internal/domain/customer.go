package domain

import (
	"fmt"
	"time"
)

// Schema selects which sub-record a deployment attaches to customers.
type Schema string

const (
	SchemaCertificate         Schema = "certificate"
	SchemaLifetimeHealthCover Schema = "lifetime-health-cover"
)

// ParseSchema validates a configured schema name.
func ParseSchema(s string) (Schema, error) {
	switch Schema(s) {
	case SchemaCertificate, SchemaLifetimeHealthCover:
		return Schema(s), nil
	case "lhc":
		return SchemaLifetimeHealthCover, nil
	}
	return "", fmt.Errorf("unknown schema %q", s)
}

// CertificateStatus is the verification state of an uploaded certificate.
// Values other than the two constants are allowed.
type CertificateStatus string

const (
	CertificatePending  CertificateStatus = "pending"
	CertificateVerified CertificateStatus = "verified"
)

// Certificate tracks the compliance document attached to a member.
type Certificate struct {
	CertificateUploaded   bool               `json:"certificate_uploaded"`
	CertificateName       *string            `json:"certificate_name"`
	CertificateUploadDate *time.Time         `json:"certificate_upload_date"`
	CertificateExpiryDate *string            `json:"certificate_expiry_date"`
	CertificateType       *string            `json:"certificate_type"`
	CertificateIssuer     *string            `json:"certificate_issuer"`
	CertificateStatus     *CertificateStatus `json:"certificate_status"`
}

// Status returns the certificate status, or "" when it has been cleared.
func (c *Certificate) Status() CertificateStatus {
	if c == nil || c.CertificateStatus == nil {
		return ""
	}
	return *c.CertificateStatus
}

// LifetimeHealthCover holds the inputs of a member's LHC loading calculation.
// The five data fields carry whatever JSON value the caller supplied; nil means absent.
type LifetimeHealthCover struct {
	LHCPerson           any        `json:"lhc_person"`
	LHCCAE              any        `json:"lhc_cae"`
	LHCTotalAbsentDays  any        `json:"lhc_total_absent_days"`
	LHCHospitalEndDate  any        `json:"lhc_hospital_end_date"`
	LHCPaidHospitalDays any        `json:"lhc_paid_hospital_days"`
	LHCUpdated          bool       `json:"lhc_updated"`
	LHCUpdateDate       *time.Time `json:"lhc_update_date"`
}

// Customer represents one member. Exactly one of the embedded sub-records is
// set, depending on the deployment schema; its fields are flattened into the
// customer's JSON object.
type Customer struct {
	MemberNumber  string `json:"member_number"`
	FirstName     string `json:"first_name"`
	MiddleInitial string `json:"middle_initial"`
	LastName      string `json:"last_name"`
	Name          string `json:"name"`
	Sex           string `json:"sex"`
	DateOfBirth   string `json:"date_of_birth"`
	DateJoined    string `json:"date_joined"`
	DateEnd       string `json:"date_end"`
	Email         string `json:"email"`
	Mobile        string `json:"mobile"`
	Address       string `json:"address"`

	*Certificate
	*LifetimeHealthCover
}

// Clone returns a deep copy of c.
func (c Customer) Clone() Customer {
	out := c
	if c.Certificate != nil {
		cert := *c.Certificate
		cert.CertificateName = clonePtr(cert.CertificateName)
		cert.CertificateExpiryDate = clonePtr(cert.CertificateExpiryDate)
		cert.CertificateType = clonePtr(cert.CertificateType)
		cert.CertificateIssuer = clonePtr(cert.CertificateIssuer)
		cert.CertificateUploadDate = clonePtr(cert.CertificateUploadDate)
		cert.CertificateStatus = clonePtr(cert.CertificateStatus)
		out.Certificate = &cert
	}
	if c.LifetimeHealthCover != nil {
		lhc := *c.LifetimeHealthCover
		lhc.LHCPerson = cloneValue(lhc.LHCPerson)
		lhc.LHCCAE = cloneValue(lhc.LHCCAE)
		lhc.LHCTotalAbsentDays = cloneValue(lhc.LHCTotalAbsentDays)
		lhc.LHCHospitalEndDate = cloneValue(lhc.LHCHospitalEndDate)
		lhc.LHCPaidHospitalDays = cloneValue(lhc.LHCPaidHospitalDays)
		lhc.LHCUpdateDate = clonePtr(lhc.LHCUpdateDate)
		out.LifetimeHealthCover = &lhc
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneValue copies the container types produced by JSON decoding.
func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
