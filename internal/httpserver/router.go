package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mock-crm/internal/domain"
	customersvc "mock-crm/internal/service/customer"
)

// CustomerService is the customer store as seen by the HTTP layer.
type CustomerService interface {
	Schema() domain.Schema
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, memberNumber string) (*domain.Customer, error)
	Create(ctx context.Context, in customersvc.CreateInput) (*domain.Customer, error)
	UpdateCertificate(ctx context.Context, memberNumber string, in customersvc.CertificateInput) (*domain.Customer, error)
	UpdateLifetimeHealthCover(ctx context.Context, memberNumber string, in customersvc.LifetimeHealthCoverInput) (*domain.Customer, error)
	ClearLifetimeHealthCover(ctx context.Context, memberNumber string) (*domain.Customer, error)
}

// Deps groups the services used by the router.
type Deps struct {
	CustomerSvc CustomerService
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if deps.CustomerSvc == nil {
		return nil, errors.New("customer service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(logger),
		recovery(logger),
		cors.New(corsConfig(corsOrigins)),
	)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.CustomerSvc))

	schema := deps.CustomerSvc.Schema()
	router.GET("/", descriptorHandler(schema))

	h := &customerHandlers{svc: deps.CustomerSvc}
	api := router.Group("/api/customers")
	api.GET("", h.list)
	api.POST("", h.create)
	api.GET("/:memberNumber", h.get)

	switch schema {
	case domain.SchemaCertificate:
		api.PUT("/:memberNumber/certificate", h.updateCertificate)
	case domain.SchemaLifetimeHealthCover:
		api.PUT("/:memberNumber/lifetime-health-cover", h.updateLifetimeHealthCover)
		api.DELETE("/:memberNumber/lifetime-health-cover", h.clearLifetimeHealthCover)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody("Not found"))
	})

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func descriptorHandler(schema domain.Schema) gin.HandlerFunc {
	endpoints := map[string]string{
		"GET /api/customers":                 "Get all customers",
		"GET /api/customers/<member_number>": "Get customer by member number",
		"POST /api/customers":                "Add a new customer",
	}
	switch schema {
	case domain.SchemaCertificate:
		endpoints["PUT /api/customers/<member_number>/certificate"] = "Update certificate data for a customer"
	case domain.SchemaLifetimeHealthCover:
		endpoints["PUT /api/customers/<member_number>/lifetime-health-cover"] = "Update Lifetime Health Cover data for a customer"
		endpoints["DELETE /api/customers/<member_number>/lifetime-health-cover"] = "Clear Lifetime Health Cover data for a customer"
	}
	body := gin.H{
		"message":   "Mock CRM API",
		"version":   "1.0",
		"schema":    string(schema),
		"endpoints": endpoints,
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, body)
	}
}
