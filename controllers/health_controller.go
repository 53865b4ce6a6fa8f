package controllers

import (
	"net/http"

	"healthagentapi/utils"

	"github.com/gin-gonic/gin"
)

// health reports that the process is serving requests
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func health(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, HealthResponse{Status: "ok"})
}

// RegisterHealthRoutes registers the health probe and the JSON 404 for unmatched routes.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", health)
	r.NoRoute(utils.NotFoundHandler)
}
