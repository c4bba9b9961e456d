package schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pedassist/clinic-api/internal/handler"
	"github.com/pedassist/clinic-api/internal/model"
	"github.com/pedassist/clinic-api/internal/repository"
	"github.com/pedassist/clinic-api/internal/service/schedule"
)

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sched := r.Group("/schedule")
	{
		sched.GET("/templates", h.ListTemplates)
		sched.PUT("/templates", h.UpsertTemplate)
		sched.GET("/blocks", h.ListBlocks)
		sched.POST("/blocks", h.CreateBlock)
		sched.DELETE("/blocks/:id", h.DeleteBlock)
	}
}

func (h *Handler) ListTemplates(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	templates, err := h.service.ListTemplates(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list schedule templates"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(templates))
}

func (h *Handler) UpsertTemplate(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.UpsertScheduleTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tmpl, err := h.service.UpsertTemplate(c.Request.Context(), doctorID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tmpl))
}

func (h *Handler) ListBlocks(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	from := time.Now()
	to := from.AddDate(0, 3, 0)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid from timestamp, expected RFC3339"))
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid to timestamp, expected RFC3339"))
			return
		}
		to = parsed
	}

	blocks, err := h.service.BlocksInRange(c.Request.Context(), doctorID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list time blocks"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(blocks))
}

func (h *Handler) CreateBlock(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateTimeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	block, err := h.service.CreateBlock(c.Request.Context(), doctorID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(block))
}

func (h *Handler) DeleteBlock(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid block ID"))
		return
	}

	if err := h.service.DeleteBlock(c.Request.Context(), doctorID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("time block not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to delete time block"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
