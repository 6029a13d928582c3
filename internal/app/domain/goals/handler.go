package goals

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/domain"
	"github.com/ano333333/llm-time-manager/internal/app/models"
)

type Handler struct {
	service Service
	loc     *time.Location
	log     *zap.Logger
}

func NewHandler(service Service, loc *time.Location, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		log:     log,
	}
}

type listResponse struct {
	Goals []models.GoalResponse `json:"goals"`
}

type goalResponse struct {
	Goal models.GoalResponse `json:"goal"`
}

// List handles GET /api/goal?status=a,b
func (h *Handler) List(c *gin.Context) {
	goals, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		domain.RespondError(c, h.log, err)
		return
	}

	resp := listResponse{Goals: make([]models.GoalResponse, 0, len(goals))}
	for _, g := range goals {
		resp.Goals = append(resp.Goals, g.ToResponse(h.loc))
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/goal
func (h *Handler) Create(c *gin.Context) {
	var req CreateGoalRequest
	if err := domain.BindJSON(c, &req); err != nil {
		domain.RespondError(c, h.log, err)
		return
	}

	goal, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		domain.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, goalResponse{Goal: goal.ToResponse(h.loc)})
}
