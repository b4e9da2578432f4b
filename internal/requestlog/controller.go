package requestlog

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tixmarket/internal/shared/utils/response"
)

type Controller interface {
	GetLogs(c *gin.Context)
	GetStats(c *gin.Context)
	ExportJSON(c *gin.Context)
	ExportCSV(c *gin.Context)
	ClearLogs(c *gin.Context)
}

type controller struct {
	service Service
	now     func() time.Time
}

func NewController(service Service) Controller {
	return &controller{service: service, now: time.Now}
}

func (ctrl *controller) GetLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	q := Query{
		Limit:     limit,
		AgentOnly: c.Query("agentOnly") == "true",
		Path:      c.Query("path"),
		Method:    c.Query("method"),
		Search:    c.Query("search"),
	}
	if raw := c.Query("statusCode"); raw != "" {
		if code, err := strconv.Atoi(raw); err == nil {
			q.StatusCode = &code
		}
	}

	response.RespondJSON(c, "success", http.StatusOK, "Logs retrieved successfully", ctrl.service.Query(q), nil)
}

func (ctrl *controller) GetStats(c *gin.Context) {
	response.RespondJSON(c, "success", http.StatusOK, "Log statistics retrieved successfully", ctrl.service.Stats(), nil)
}

func (ctrl *controller) ExportJSON(c *gin.Context) {
	entries := ctrl.service.Export(c.Query("agentOnly") == "true")
	c.Header("Content-Disposition", attachment(ExportFilename(ctrl.now(), "json")))
	c.JSON(http.StatusOK, entries)
}

func (ctrl *controller) ExportCSV(c *gin.Context) {
	entries := ctrl.service.Export(c.Query("agentOnly") == "true")
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", attachment(ExportFilename(ctrl.now(), "csv")))
	c.Status(http.StatusOK)
	if err := WriteCSV(c.Writer, entries); err != nil {
		_ = c.Error(err)
	}
}

func (ctrl *controller) ClearLogs(c *gin.Context) {
	if err := ctrl.service.Clear(c.Request.Context()); err != nil {
		response.RespondError(c, "Failed to clear logs", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Logs cleared", nil, nil)
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
