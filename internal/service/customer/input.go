package customer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"mock-crm/internal/domain"
)

// CreateInput captures the fields accepted when adding a customer. Name and
// DateJoined are pointers so an omitted value can be told apart from "".
type CreateInput struct {
	MemberNumber  string  `json:"member_number" yaml:"member_number"`
	FirstName     string  `json:"first_name" yaml:"first_name"`
	MiddleInitial string  `json:"middle_initial" yaml:"middle_initial"`
	LastName      string  `json:"last_name" yaml:"last_name"`
	Name          *string `json:"name" yaml:"name"`
	Sex           string  `json:"sex" yaml:"sex"`
	DateOfBirth   string  `json:"date_of_birth" yaml:"date_of_birth"`
	DateJoined    *string `json:"date_joined" yaml:"date_joined"`
	DateEnd       string  `json:"date_end" yaml:"date_end"`
	Email         string  `json:"email" yaml:"email"`
	Mobile        string  `json:"mobile" yaml:"mobile"`
	Address       string  `json:"address" yaml:"address"`
}

// CertificateInput carries a certificate update. Fields whose key was absent
// from the payload are left unset.
type CertificateInput struct {
	Name       Field[string]                   `json:"certificate_name"`
	UploadDate Field[Timestamp]                `json:"certificate_upload_date"`
	ExpiryDate Field[string]                   `json:"certificate_expiry_date"`
	Type       Field[string]                   `json:"certificate_type"`
	Issuer     Field[string]                   `json:"certificate_issuer"`
	Status     Field[domain.CertificateStatus] `json:"certificate_status"`
}

// Field is a typed value that may be absent, null or set. A JSON null is Set
// with a nil Value.
type Field[T any] struct {
	Value *T
	Set   bool
}

// Present returns a Field holding v.
func Present[T any](v T) Field[T] {
	return Field[T]{Value: &v, Set: true}
}

// Null returns a Field that was supplied as null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// UnmarshalJSON is only reached for keys present in the payload.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// Timestamp is a point in time decoded from any of the layouts clients send:
// RFC 3339, a local date-time, or a bare date.
type Timestamp time.Time

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ParseTimestamp tries each accepted layout in turn. Values without a zone are UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Time returns t as a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// Optional is a value that may or may not have been supplied. A supplied
// JSON null is Set with a nil Value.
type Optional struct {
	Value any
	Set   bool
}

// LifetimeHealthCoverInput carries a Lifetime Health Cover update.
type LifetimeHealthCoverInput struct {
	Person           Optional
	CAE              Optional
	TotalAbsentDays  Optional
	HospitalEndDate  Optional
	PaidHospitalDays Optional
}

// UnmarshalJSON records which keys were present in the payload.
func (in *LifetimeHealthCoverInput) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*in = LifetimeHealthCoverInputFromMap(raw)
	return nil
}

// LifetimeHealthCoverInputFromMap reads the five fields from a decoded body.
// Unprefixed keys ("person") take precedence over prefixed ones ("lhc_person").
func LifetimeHealthCoverInputFromMap(raw map[string]any) LifetimeHealthCoverInput {
	pick := func(key string) Optional {
		if v, ok := raw[key]; ok {
			return Optional{Value: v, Set: true}
		}
		if v, ok := raw["lhc_"+key]; ok {
			return Optional{Value: v, Set: true}
		}
		return Optional{}
	}
	return LifetimeHealthCoverInput{
		Person:           pick("person"),
		CAE:              pick("cae"),
		TotalAbsentDays:  pick("total_absent_days"),
		HospitalEndDate:  pick("hospital_end_date"),
		PaidHospitalDays: pick("paid_hospital_days"),
	}
}
