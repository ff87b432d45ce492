// Package response writes the JSON envelope shared by all handlers.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Kilat-Pet-Delivery/service-pet/internal/domain/pet"
)

// ErrorBody is the error part of a failed response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the failure response shape.
type Envelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// Success writes 200 with data as the body.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes 201 with data as the body.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// BadRequest writes a 400 envelope.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// BindingError writes a 400 envelope describing a failed ShouldBind call.
func BindingError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, describeField(fe))
		}
		BadRequest(c, strings.Join(msgs, "; "))
		return
	}
	BadRequest(c, err.Error())
}

// Error maps a service error onto its HTTP status.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pet.ErrInvalidIdentifier):
		abort(c, http.StatusBadRequest, "INVALID_ID", "invalid pet id")
	case errors.Is(err, pet.ErrInvalidPet):
		abort(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, pet.ErrPetNotFound):
		abort(c, http.StatusNotFound, "NOT_FOUND", "Pet not found")
	case errors.Is(err, pet.ErrNotModified):
		// 304 must not carry a body.
		c.AbortWithStatus(http.StatusNotModified)
	default:
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   ErrorBody{Code: code, Message: message},
	})
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
