package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"healthagentapi/pkg/logger"
	"healthagentapi/services"
	"healthagentapi/services/dto"
	"healthagentapi/utils"
	"healthagentapi/validation"

	"github.com/gin-gonic/gin"
)

var policySrv services.PolicyService

// SetPolicyService initializes the policy service instance.
func SetPolicyService(srv services.PolicyService) {
	policySrv = srv
}

// createPolicy stores a new policy submitted by an agent
// @Summary Create a policy
// @Description Validates the submission, enforces one policy per PAN and stores the record. premium may be sent as a number or a numeric string. medicalConditions is "Yes" or "No"; any other value, or none, is stored as false.
// @Tags Policies
// @Accept json
// @Produce json
// @Param request body CreatePolicyRequestDoc true "Policy submission"
// @Success 201 {object} PolicyResponse "Stored policy"
// @Failure 400 {object} PolicyValidationErrorResponse "Missing or invalid fields"
// @Failure 401 {object} PolicyErrorResponse "No agent id"
// @Failure 409 {object} PolicyErrorResponse "PAN already used"
// @Failure 500 {object} PolicyErrorResponse "Internal server error"
// @Router /policies [post]
func createPolicy(c *gin.Context) {
	var req dto.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warnf("Invalid create policy body: %v", err)
		writeServiceError(c, bindError(err))
		return
	}

	policy, err := policySrv.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, policy)
}

// listPolicies returns every stored policy
// @Summary List policies
// @Description Returns all policies, most recently created first. No pagination.
// @Tags Policies
// @Produce json
// @Success 200 {array} PolicyResponse
// @Failure 500 {object} PolicyErrorResponse "Internal server error"
// @Router /policies [get]
func listPolicies(c *gin.Context) {
	policies, err := policySrv.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, policies)
}

// bindError turns a JSON decoding failure into a field-level validation error.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return &services.ValidationError{
			Message: services.MsgInvalidFields,
			Fields:  []string{typeErr.Field},
			Details: map[string]string{typeErr.Field: "Invalid value."},
		}
	case errors.Is(err, dto.ErrInvalidAmount):
		return &services.ValidationError{
			Message: services.MsgInvalidFields,
			Fields:  []string{validation.FieldPremium},
			Details: map[string]string{validation.FieldPremium: "Must be > 0."},
		}
	}
	return &services.ValidationError{
		Message: services.MsgInvalidFields,
		Fields:  []string{"body"},
		Details: map[string]string{"body": "Malformed JSON."},
	}
}

// writeServiceError maps a service error onto its HTTP status and body.
func writeServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Message, "fields": fieldsOrEmpty(verr.Fields)}
		if verr.Details != nil {
			body["details"] = verr.Details
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, services.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, services.MsgUnauthorized)
	case errors.Is(err, services.ErrConflict):
		utils.ErrorResponse(c, http.StatusConflict, services.MsgConflict)
	default:
		var ierr *services.InternalError
		if errors.As(err, &ierr) {
			logger.Errorf("Request %s failed to %s: %v", utils.RequestID(c), ierr.Op, ierr.Err)
		} else {
			logger.Errorf("Request %s failed: %v", utils.RequestID(c), err)
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, services.MsgInternal)
	}
}

func fieldsOrEmpty(fields []string) []string {
	if fields == nil {
		return []string{}
	}
	return fields
}

// RegisterPolicyRoutes registers HTTP endpoints for policy operations.
func RegisterPolicyRoutes(rg *gin.RouterGroup) {
	policies := rg.Group("/policies")
	{
		policies.POST("", createPolicy)
		policies.GET("", listPolicies)
	}
}
