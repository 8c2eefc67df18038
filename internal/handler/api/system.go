package api

import (
	"context"
	"net/http"

	resdto "reservebook/internal/handler/dto/response"
	"reservebook/internal/handler/httperr"
	"reservebook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database accepts connections.
type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemHandler struct {
	schema commands.SchemaCommands
	pinger Pinger
}

func NewSystemHandler(schema commands.SchemaCommands, pinger Pinger) *SystemHandler {
	return &SystemHandler{
		schema: schema,
		pinger: pinger,
	}
}

// @Summary Liveness probe
// @Tags system
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (h *SystemHandler) Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// @Summary Readiness probe
// @Description Succeeds once the database answers a ping
// @Tags system
// @Produce plain
// @Success 200 {string} string "ok"
// @Failure 503 {string} string "unavailable"
// @Router /readyz [get]
func (h *SystemHandler) Readyz(c *gin.Context) {
	if h.pinger == nil {
		c.String(http.StatusServiceUnavailable, "unavailable")
		return
	}
	if err := h.pinger.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.String(http.StatusServiceUnavailable, "unavailable")
		return
	}
	c.String(http.StatusOK, "ok")
}

// @Summary Initialize database
// @Description Applies pending schema migrations and lists the application tables
// @Tags system
// @Produce json
// @Success 200 {object} resdto.InitDBResponse
// @Failure 500 {object} httperr.Response
// @Router /initdb [get]
func (h *SystemHandler) InitDB(c *gin.Context) {
	res, err := h.schema.InitDB(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to initialize database", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInitDBResult(res))
}
