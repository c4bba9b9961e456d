package appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pedassist/clinic-api/internal/handler"
	"github.com/pedassist/clinic-api/internal/model"
	"github.com/pedassist/clinic-api/internal/repository"
	"github.com/pedassist/clinic-api/internal/scheduling"
	"github.com/pedassist/clinic-api/internal/service/appointment"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/available-slots", h.GetAvailableSlots)
		appointments.POST("/check-availability", h.CheckAvailability)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id/reschedule", h.RescheduleAppointment)
		appointments.PUT("/:id/status", h.UpdateStatus)
		appointments.DELETE("/:id", h.CancelAppointment)
	}
}

// GetAvailableSlots returns the full slot grid for one day plus the next
// free slots when the day is short on availability. The response shape is
// consumed directly by the booking UI:
//
//	{"date": "...", "slots": [...], "suggested_slots": [...]}
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	date, err := h.service.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	count := 3
	if v := c.Query("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 20 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("count must be between 0 and 20"))
			return
		}
		count = n
	}

	slots, suggested, err := h.service.GetDaySlots(c.Request.Context(), doctorID, date, count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to generate slots"))
		return
	}

	if slots == nil {
		slots = []scheduling.Slot{}
	}
	if suggested == nil {
		suggested = []scheduling.Slot{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            date.Format("2006-01-02"),
		"slots":           slots,
		"suggested_slots": suggested,
	})
}

// CheckAvailability answers a yes/no probe for one candidate time:
//
//	{"available": bool, "errors": [...]}
func (h *Handler) CheckAvailability(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	available, msgs, err := h.service.CheckAvailability(c.Request.Context(), doctorID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if msgs == nil {
		msgs = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"available": available,
		"errors":    msgs,
	})
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.CreateAppointment(c.Request.Context(), doctorID, &req)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

// writeBookingError maps booking failures onto statuses. Conflicts get the
// detailed 400 body the booking UI renders:
//
//	{"error": "...", "validation_errors": [...], "suggested_slots": [...]}
func (h *Handler) writeBookingError(c *gin.Context, err error) {
	var verr *appointment.ValidationError
	switch {
	case errors.As(err, &verr):
		suggested := verr.Suggestions
		if suggested == nil {
			suggested = []scheduling.Slot{}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "appointment time is not available",
			"validation_errors": verr.Result.Messages(),
			"suggested_slots":   suggested,
		})
	case errors.Is(err, appointment.ErrSlotBeingBooked):
		c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("patient not found"))
	default:
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
	}
}

func (h *Handler) GetAppointment(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), doctorID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to get appointment"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	filters := &model.AppointmentFilters{DoctorID: doctorID}

	if v := c.Query("patient_id"); v != "" {
		patientID, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
			return
		}
		filters.PatientID = patientID
	}
	if v := c.Query("status"); v != "" {
		filters.Status = model.AppointmentStatus(v)
	}
	if v := c.Query("date_from"); v != "" {
		from, err := h.service.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		filters.DateFrom = from
	}
	if v := c.Query("date_to"); v != "" {
		to, err := h.service.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		filters.DateTo = to
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list appointments"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) RescheduleAppointment(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.Reschedule(c.Request.Context(), doctorID, id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
			return
		}
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

type updateStatusRequest struct {
	Status model.AppointmentStatus `json:"status" binding:"required,oneof=confirmed in_progress completed"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.AdvanceStatus(c.Request.Context(), doctorID, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
		case errors.Is(err, appointment.ErrInvalidTransition),
			errors.Is(err, appointment.ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update appointment status"))
		}
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	doctorID, ok := handler.DoctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.CancelAppointment(c.Request.Context(), doctorID, id, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
		case errors.Is(err, appointment.ErrAlreadyCancelled),
			errors.Is(err, appointment.ErrCompletedImmutable):
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to cancel appointment"))
		}
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}
