package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tixmarket/internal/shared/utils/response"
)

type Controller interface {
	GetConfig(c *gin.Context)
	UpdateConfig(c *gin.Context)
	ListScenarios(c *gin.Context)
	LoadScenario(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetConfig(c *gin.Context) {
	cfg, err := ctrl.service.Current(c.Request.Context())
	if err != nil {
		response.RespondError(c, "Failed to load configuration", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Configuration retrieved successfully", cfg, nil)
}

func (ctrl *controller) UpdateConfig(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	cfg, err := ctrl.service.Replace(c.Request.Context(), body)
	if err != nil {
		response.RespondError(c, "Failed to update configuration", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Configuration updated successfully", cfg, nil)
}

func (ctrl *controller) ListScenarios(c *gin.Context) {
	scenarios, err := ctrl.service.ListScenarios(c.Request.Context())
	if err != nil {
		response.RespondError(c, "Failed to load scenarios", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Scenarios retrieved successfully", scenarios, nil)
}

func (ctrl *controller) LoadScenario(c *gin.Context) {
	var req LoadScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	cfg, err := ctrl.service.LoadScenario(c.Request.Context(), req.Name)
	if err != nil {
		response.RespondError(c, "Failed to load scenario", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Scenario loaded successfully", cfg, nil)
}
