package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mock-crm/internal/domain"
	custrepo "mock-crm/internal/repository/customer"
)

// Service applies the customer creation and update rules on top of a Repository.
type Service struct {
	repo   custrepo.Repository
	schema domain.Schema
	now    func() time.Time
	logger *zap.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source used for defaulted timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates a Service for the given schema.
func New(repo custrepo.Repository, schema domain.Schema, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		schema: schema,
		now:    func() time.Time { return time.Now().UTC() },
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schema reports the sub-record schema this service manages.
func (s *Service) Schema() domain.Schema {
	return s.schema
}

// List returns every customer in insertion order.
func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

// Get returns the customer with the given member number.
func (s *Service) Get(ctx context.Context, memberNumber string) (*domain.Customer, error) {
	return s.repo.Get(ctx, memberNumber)
}

// Create adds a new customer. It never overwrites an existing record.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	record, err := NewRecord(s.schema, in, s.now())
	if err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("customer created", zap.String("member_number", c.MemberNumber))
	return c, nil
}

// UpdateCertificate merges a certificate upload into the customer's record.
// A key supplied as null clears the field. An omitted status marks the
// certificate verified and an omitted upload date is stamped with now.
func (s *Service) UpdateCertificate(ctx context.Context, memberNumber string, in CertificateInput) (*domain.Customer, error) {
	if s.schema != domain.SchemaCertificate {
		return nil, domain.ErrUnsupportedSchema
	}
	now := s.now()
	c, err := s.repo.Update(ctx, memberNumber, func(c *domain.Customer) error {
		if c.Certificate == nil {
			c.Certificate = defaultCertificate()
		}
		cert := c.Certificate
		cert.CertificateUploaded = true
		if in.UploadDate.Set {
			cert.CertificateUploadDate = nil
			if in.UploadDate.Value != nil {
				uploaded := in.UploadDate.Value.Time()
				cert.CertificateUploadDate = &uploaded
			}
		} else {
			cert.CertificateUploadDate = &now
		}
		merge(&cert.CertificateName, in.Name)
		merge(&cert.CertificateExpiryDate, in.ExpiryDate)
		merge(&cert.CertificateType, in.Type)
		merge(&cert.CertificateIssuer, in.Issuer)
		if in.Status.Set {
			merge(&cert.CertificateStatus, in.Status)
		} else {
			verified := domain.CertificateVerified
			cert.CertificateStatus = &verified
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("certificate updated",
		zap.String("member_number", memberNumber),
		zap.String("certificate_status", string(c.Status())),
	)
	return c, nil
}

// merge overwrites *dst with a copy of f's value when f was supplied.
func merge[T any](dst **T, f Field[T]) {
	if !f.Set {
		return
	}
	if f.Value == nil {
		*dst = nil
		return
	}
	v := *f.Value
	*dst = &v
}

// UpdateLifetimeHealthCover merges the supplied LHC fields into the record.
func (s *Service) UpdateLifetimeHealthCover(ctx context.Context, memberNumber string, in LifetimeHealthCoverInput) (*domain.Customer, error) {
	if s.schema != domain.SchemaLifetimeHealthCover {
		return nil, domain.ErrUnsupportedSchema
	}
	now := s.now()
	c, err := s.repo.Update(ctx, memberNumber, func(c *domain.Customer) error {
		if c.LifetimeHealthCover == nil {
			c.LifetimeHealthCover = &domain.LifetimeHealthCover{}
		}
		lhc := c.LifetimeHealthCover
		lhc.LHCUpdated = true
		lhc.LHCUpdateDate = &now
		if in.Person.Set {
			lhc.LHCPerson = in.Person.Value
		}
		if in.CAE.Set {
			lhc.LHCCAE = in.CAE.Value
		}
		if in.TotalAbsentDays.Set {
			lhc.LHCTotalAbsentDays = in.TotalAbsentDays.Value
		}
		if in.HospitalEndDate.Set {
			lhc.LHCHospitalEndDate = in.HospitalEndDate.Value
		}
		if in.PaidHospitalDays.Set {
			lhc.LHCPaidHospitalDays = in.PaidHospitalDays.Value
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("lifetime health cover updated", zap.String("member_number", memberNumber))
	return c, nil
}

// ClearLifetimeHealthCover resets the LHC sub-record to its initial state.
func (s *Service) ClearLifetimeHealthCover(ctx context.Context, memberNumber string) (*domain.Customer, error) {
	if s.schema != domain.SchemaLifetimeHealthCover {
		return nil, domain.ErrUnsupportedSchema
	}
	c, err := s.repo.Update(ctx, memberNumber, func(c *domain.Customer) error {
		c.LifetimeHealthCover = &domain.LifetimeHealthCover{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("lifetime health cover cleared", zap.String("member_number", memberNumber))
	return c, nil
}

// NewRecord builds a customer from in using the creation defaults of schema.
// Seed data goes through the same rules as POST /api/customers.
func NewRecord(schema domain.Schema, in CreateInput, now time.Time) (domain.Customer, error) {
	if in.MemberNumber == "" {
		return domain.Customer{}, fmt.Errorf("member_number: %w", domain.ErrMissingRequiredField)
	}

	name := fullName(in.FirstName, in.MiddleInitial, in.LastName)
	if in.Name != nil {
		name = *in.Name
	}

	c := domain.Customer{
		MemberNumber:  in.MemberNumber,
		FirstName:     in.FirstName,
		MiddleInitial: in.MiddleInitial,
		LastName:      in.LastName,
		Name:          name,
		Sex:           in.Sex,
		DateOfBirth:   in.DateOfBirth,
		DateEnd:       in.DateEnd,
		Email:         in.Email,
		Mobile:        in.Mobile,
		Address:       in.Address,
	}
	if in.DateJoined != nil {
		c.DateJoined = *in.DateJoined
	}

	switch schema {
	case domain.SchemaCertificate:
		c.Certificate = defaultCertificate()
	case domain.SchemaLifetimeHealthCover:
		c.LifetimeHealthCover = &domain.LifetimeHealthCover{}
		if in.DateJoined == nil {
			c.DateJoined = now.Format(time.RFC3339)
		}
	default:
		return domain.Customer{}, fmt.Errorf("schema %q: %w", schema, domain.ErrUnsupportedSchema)
	}
	return c, nil
}

func defaultCertificate() *domain.Certificate {
	pending := domain.CertificatePending
	return &domain.Certificate{CertificateStatus: &pending}
}

// fullName joins the non-empty name parts with single spaces.
func fullName(first, middle, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, middle, last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
