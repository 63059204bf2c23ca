package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mock-crm/internal/domain"
)

var errInvalidBody = errors.New("invalid request body")

type errorMapping struct {
	err     error
	status  int
	message string
}

// errorStatus maps store errors to the status and message returned to clients.
var errorStatus = []errorMapping{
	{domain.ErrNotFound, http.StatusNotFound, "Customer not found"},
	{domain.ErrMissingRequiredField, http.StatusBadRequest, "member_number is required"},
	{domain.ErrAlreadyExists, http.StatusConflict, "Customer with this member number already exists"},
	{domain.ErrUnsupportedSchema, http.StatusNotFound, "Not found"},
	{errInvalidBody, http.StatusBadRequest, "invalid request body"},
}

func errorBody(message string) gin.H {
	return gin.H{"success": false, "error": message}
}

// writeError renders err as the JSON error body. Unknown errors become 500s.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			c.JSON(m.status, errorBody(m.message))
			return
		}
	}
	c.JSON(http.StatusInternalServerError, errorBody("internal error"))
}
