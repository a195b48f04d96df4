package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/response"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RoleKey is the gin context key the role middleware sets.
const RoleKey = "role"

// CostGate decides whether a role may see cost figures.
type CostGate interface {
	ShowCost(ctx context.Context, role enum.Role) bool
}

// GetRole extracts the caller's role from the Gin context. Missing means SALE.
func GetRole(c *gin.Context) enum.Role {
	val, exists := c.Get(RoleKey)
	if !exists {
		return enum.RoleSale
	}
	role, ok := val.(enum.Role)
	if !ok {
		return enum.RoleSale
	}
	return role
}

// showCost reports whether the caller may see cost figures.
func showCost(c *gin.Context, gate CostGate) bool {
	return gate.ShowCost(c.Request.Context(), GetRole(c))
}

// parseID reads the :id path parameter. It writes the error response itself.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseIndex reads the :index path parameter.
func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.BadRequest(c, "Invalid item index")
		return 0, false
	}
	return index, true
}

// bindError turns binding failures into a 422 with one entry per field,
// or a 400 when the body is not valid JSON.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   toSnake(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	response.ValidationError(c, fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "numeric":
		return "must contain digits only"
	case "eqfield":
		return "does not match"
	case "datetime":
		return fmt.Sprintf("must use the %s layout", fe.Param())
	}
	return "is invalid"
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
