package capture

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/domain"
	"github.com/ano333333/llm-time-manager/internal/app/models"
)

type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// scheduleResponse encodes a missing schedule as "schedule": null.
type scheduleResponse struct {
	Schedule *models.CaptureScheduleResponse `json:"schedule"`
}

func newScheduleResponse(s *models.CaptureSchedule) scheduleResponse {
	if s == nil {
		return scheduleResponse{}
	}
	resp := s.ToResponse()
	return scheduleResponse{Schedule: &resp}
}

// Get handles GET /api/capture/schedule
func (h *Handler) Get(c *gin.Context) {
	schedule, err := h.service.Active(c.Request.Context())
	if err != nil {
		domain.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newScheduleResponse(schedule))
}

// Update handles PUT /api/capture/schedule
func (h *Handler) Update(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := domain.BindJSON(c, &req); err != nil {
		domain.RespondError(c, h.log, err)
		return
	}

	schedule, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		domain.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newScheduleResponse(schedule))
}
