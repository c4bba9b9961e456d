package consultation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pedassist/clinic-api/internal/handler"
	"github.com/pedassist/clinic-api/internal/model"
	"github.com/pedassist/clinic-api/internal/repository"
	"github.com/pedassist/clinic-api/internal/service/consultation"
)

type Handler struct {
	service *consultation.Service
}

func NewHandler(service *consultation.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	consultations := r.Group("/consultations")
	{
		consultations.POST("", h.StartConsultation)
		consultations.GET("/:id", h.GetConsultation)
		consultations.PUT("/:id", h.UpdateConsultation)
		consultations.POST("/:id/complete", h.CompleteConsultation)
	}
	r.GET("/patients/:id/consultations", h.ListForPatient)
}

func (h *Handler) StartConsultation(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.StartConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	consult, err := h.service.StartConsultation(c.Request.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
		case errors.Is(err, consultation.ErrAlreadyStarted):
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(consult))
}

func (h *Handler) GetConsultation(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid consultation ID"))
		return
	}

	consult, err := h.service.GetConsultation(c.Request.Context(), doctorID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("consultation not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to get consultation"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(consult))
}

func (h *Handler) UpdateConsultation(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid consultation ID"))
		return
	}

	var req model.UpdateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	consult, err := h.service.UpdateConsultation(c.Request.Context(), doctorID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("consultation not found"))
		case errors.Is(err, consultation.ErrAlreadyCompleted):
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(consult))
}

func (h *Handler) CompleteConsultation(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid consultation ID"))
		return
	}

	consult, err := h.service.CompleteConsultation(c.Request.Context(), doctorID, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("consultation not found"))
		case errors.Is(err, consultation.ErrAlreadyCompleted):
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to complete consultation"))
		}
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(consult))
}

func (h *Handler) ListForPatient(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	consultations, err := h.service.ListForPatient(c.Request.Context(), doctorID, patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list consultations"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultations))
}
