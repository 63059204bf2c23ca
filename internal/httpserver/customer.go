package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	customersvc "mock-crm/internal/service/customer"
)

type customerHandlers struct {
	svc CustomerService
}

func (h *customerHandlers) list(c *gin.Context) {
	customers, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(customers),
		"customers": customers,
	})
}

func (h *customerHandlers) get(c *gin.Context) {
	customer, err := h.svc.Get(c.Request.Context(), c.Param("memberNumber"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"customer": customer,
	})
}

func (h *customerHandlers) create(c *gin.Context) {
	var in customersvc.CreateInput
	if err := bindOptionalJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	customer, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Customer added successfully",
		"customer": customer,
	})
}

func (h *customerHandlers) updateCertificate(c *gin.Context) {
	memberNumber := c.Param("memberNumber")
	var in customersvc.CertificateInput
	if err := bindOptionalJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	customer, err := h.svc.UpdateCertificate(c.Request.Context(), memberNumber, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Certificate data updated for member %s", memberNumber),
		"customer": customer,
	})
}

func (h *customerHandlers) updateLifetimeHealthCover(c *gin.Context) {
	memberNumber := c.Param("memberNumber")
	var in customersvc.LifetimeHealthCoverInput
	if err := bindOptionalJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	customer, err := h.svc.UpdateLifetimeHealthCover(c.Request.Context(), memberNumber, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Lifetime Health Cover data updated for member %s", memberNumber),
		"customer": customer,
	})
}

func (h *customerHandlers) clearLifetimeHealthCover(c *gin.Context) {
	memberNumber := c.Param("memberNumber")
	customer, err := h.svc.ClearLifetimeHealthCover(c.Request.Context(), memberNumber)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Lifetime Health Cover data cleared for member %s", memberNumber),
		"customer": customer,
	})
}

// bindOptionalJSON decodes the request body into dst. A missing or empty body
// leaves dst untouched.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}
