package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mock-crm/internal/domain"
	custrepo "mock-crm/internal/repository/customer"
	customersvc "mock-crm/internal/service/customer"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newStoreRouter(t *testing.T, schema domain.Schema) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	seed := []customersvc.CreateInput{
		{MemberNumber: "45222608", FirstName: "Toshiko", MiddleInitial: "M", LastName: "Kallik"},
		{MemberNumber: "MEM001", FirstName: "John", LastName: "Smith", Email: "john.smith@example.com"},
	}
	records := make([]domain.Customer, 0, len(seed))
	for _, in := range seed {
		rec, err := customersvc.NewRecord(schema, in, testNow)
		require.NoError(t, err)
		records = append(records, rec)
	}
	repo, err := custrepo.NewMemory(nil, records...)
	require.NoError(t, err)
	svc := customersvc.New(repo, schema, customersvc.WithClock(func() time.Time { return testNow }))

	router, err := buildRouter(nil, Deps{CustomerSvc: svc}, nil)
	require.NoError(t, err)
	return router
}

type customerEnvelope struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Error    string         `json:"error"`
	Customer map[string]any `json:"customer"`
}

func decodeEnvelope(t *testing.T, body []byte) customerEnvelope {
	t.Helper()
	var env customerEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestListCustomers(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaLifetimeHealthCover)

	rec := serve(router, http.MethodGet, "/api/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success   bool             `json:"success"`
		Count     int              `json:"count"`
		Customers []map[string]any `json:"customers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Customers, 2)
	assert.Equal(t, "45222608", body.Customers[0]["member_number"])
	assert.Equal(t, "Toshiko M Kallik", body.Customers[0]["name"])
	assert.Contains(t, body.Customers[0], "lhc_person")
	assert.NotContains(t, body.Customers[0], "certificate_status")
}

func TestCreateCustomer(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaCertificate)

	rec := serve(router, http.MethodPost, "/api/customers", `{"member_number":"X1","first_name":"Ann","last_name":"Lee"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, "Customer added successfully", env.Message)
	assert.Equal(t, "Ann Lee", env.Customer["name"])
	assert.Equal(t, "pending", env.Customer["certificate_status"])
	assert.Equal(t, false, env.Customer["certificate_uploaded"])
	assert.Nil(t, env.Customer["certificate_name"])

	rec = serve(router, http.MethodGet, "/api/customers/X1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, env.Customer, decodeEnvelope(t, rec.Body.Bytes()).Customer)
}

func TestCreateCustomer_MissingMemberNumber(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaCertificate)

	rec := serve(router, http.MethodPost, "/api/customers", `{"first_name":"Ann"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"member_number is required"}`, rec.Body.String())

	rec = serve(router, http.MethodPost, "/api/customers", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCustomer_Duplicate(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaCertificate)

	rec := serve(router, http.MethodPost, "/api/customers", `{"member_number":"MEM001","first_name":"Other"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Customer with this member number already exists"}`, rec.Body.String())

	rec = serve(router, http.MethodGet, "/api/customers/MEM001", "")
	assert.Equal(t, "John Smith", decodeEnvelope(t, rec.Body.Bytes()).Customer["name"])
}

func TestUpdateCertificate_VerifiesWhenStatusOmitted(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaCertificate)

	rec := serve(router, http.MethodPut, "/api/customers/MEM001/certificate", `{"certificate_name":"Cert A"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	c := decodeEnvelope(t, rec.Body.Bytes()).Customer
	assert.Equal(t, "verified", c["certificate_status"])
	assert.Equal(t, "Cert A", c["certificate_name"])
	assert.Equal(t, true, c["certificate_uploaded"])
	assert.Equal(t, testNow.Format(time.RFC3339Nano), c["certificate_upload_date"])
}

func TestUpdateCertificate_ExplicitStatusAndDate(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaCertificate)

	rec := serve(router, http.MethodPut, "/api/customers/MEM001/certificate",
		`{"certificate_status":"under-review","certificate_upload_date":"2024-02-03T04:05:06Z"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	c := decodeEnvelope(t, rec.Body.Bytes()).Customer
	assert.Equal(t, "under-review", c["certificate_status"])
	assert.Equal(t, "2024-02-03T04:05:06Z", c["certificate_upload_date"])
}

func TestUpdateCertificate_NullKeysOverwrite(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaCertificate)

	rec := serve(router, http.MethodPut, "/api/customers/MEM001/certificate",
		`{"certificate_name":"Cert A","certificate_status":"rejected"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodPut, "/api/customers/MEM001/certificate",
		`{"certificate_name":null,"certificate_status":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodGet, "/api/customers/MEM001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	c := decodeEnvelope(t, rec.Body.Bytes()).Customer
	require.Contains(t, c, "certificate_name")
	assert.Nil(t, c["certificate_name"])
	require.Contains(t, c, "certificate_status")
	assert.Nil(t, c["certificate_status"])
	assert.Equal(t, testNow.Format(time.RFC3339Nano), c["certificate_upload_date"])
}

func TestUpdateCertificate_DateOnlyUploadDate(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaCertificate)

	rec := serve(router, http.MethodPut, "/api/customers/MEM001/certificate",
		`{"certificate_upload_date":"2024-01-15"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	c := decodeEnvelope(t, rec.Body.Bytes()).Customer
	assert.Equal(t, "2024-01-15T00:00:00Z", c["certificate_upload_date"])
	assert.Equal(t, "verified", c["certificate_status"])

	rec = serve(router, http.MethodPut, "/api/customers/MEM001/certificate",
		`{"certificate_upload_date":"sometime"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"invalid request body"}`, rec.Body.String())
}

func TestUpdateCertificate_UnknownMember(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaCertificate)

	rec := serve(router, http.MethodPut, "/api/customers/nope/certificate", `{}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Customer not found"}`, rec.Body.String())
}

func TestLifetimeHealthCover_UpdateThenClear(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaLifetimeHealthCover)

	rec := serve(router, http.MethodPut, "/api/customers/45222608/lifetime-health-cover",
		`{"person":"Primary","cae":31,"total_absent_days":0,"hospital_end_date":"01/01/2020","paid_hospital_days":365}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, "Lifetime Health Cover data updated for member 45222608", env.Message)
	assert.Equal(t, "Primary", env.Customer["lhc_person"])
	assert.Equal(t, float64(31), env.Customer["lhc_cae"])
	assert.Equal(t, true, env.Customer["lhc_updated"])
	assert.NotNil(t, env.Customer["lhc_update_date"])

	rec = serve(router, http.MethodPut, "/api/customers/45222608/lifetime-health-cover", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(365), decodeEnvelope(t, rec.Body.Bytes()).Customer["lhc_paid_hospital_days"])

	rec = serve(router, http.MethodDelete, "/api/customers/45222608/lifetime-health-cover", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Lifetime Health Cover data cleared for member 45222608", decodeEnvelope(t, rec.Body.Bytes()).Message)

	rec = serve(router, http.MethodGet, "/api/customers/45222608", "")
	c := decodeEnvelope(t, rec.Body.Bytes()).Customer
	for _, key := range []string{"lhc_person", "lhc_cae", "lhc_total_absent_days", "lhc_hospital_end_date", "lhc_paid_hospital_days", "lhc_update_date"} {
		assert.Nil(t, c[key], key)
	}
	assert.Equal(t, false, c["lhc_updated"])
}

func TestLifetimeHealthCover_UnknownMember(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaLifetimeHealthCover)

	rec := serve(router, http.MethodPut, "/api/customers/nope/lifetime-health-cover", `{"person":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = serve(router, http.MethodDelete, "/api/customers/nope/lifetime-health-cover", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDescriptor(t *testing.T) {
	router := newStoreRouter(t, domain.SchemaLifetimeHealthCover)

	rec := serve(router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message   string            `json:"message"`
		Version   string            `json:"version"`
		Schema    string            `json:"schema"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Mock CRM API", body.Message)
	assert.Equal(t, "1.0", body.Version)
	assert.Equal(t, "lifetime-health-cover", body.Schema)
	assert.Contains(t, body.Endpoints, "DELETE /api/customers/<member_number>/lifetime-health-cover")
	assert.NotContains(t, body.Endpoints, "PUT /api/customers/<member_number>/certificate")
}
