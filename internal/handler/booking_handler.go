package handler

import (
	"errors"
	"net/http"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/service"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
	"go-gin-cinema-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service service.BookingService
}

func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api")
	{
		router.POST("create-booking", h.CreateBooking)
		router.POST("confirm-booking", h.ConfirmBooking)
		router.GET("bookings/:id", h.GetBooking)
	}
}

type bookingURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type bookingOwnerQuery struct {
	UserID int64 `form:"user_id" binding:"required,min=1"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	booking, err := h.service.CreateBooking(c, req)
	if err != nil {
		h.handleBookingError(c, err, "CreateBooking")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created",
		"booking": booking,
	})
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var req model.ConfirmBookingRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.ConfirmBooking(c, req)
	if err != nil {
		h.handleBookingError(c, err, "ConfirmBooking")
		return
	}

	message := "Booking updated"
	if !result.Applied {
		message = "Booking already settled"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"applied": result.Applied,
		"booking": result.Booking,
	})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	var uri bookingURI
	if err := BindUri(c, &uri); err != nil {
		return
	}
	var query bookingOwnerQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	booking, err := h.service.GetBooking(c, uri.ID, query.UserID)
	if err != nil {
		h.handleBookingError(c, err, "GetBooking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func (h *BookingHandler) handleBookingError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn("User not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
	case errors.Is(err, apperrors.ErrShowtimeNotFound):
		log.Warn("Showtime not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Showtime not found",
		})
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, apperrors.ErrInvalidPaymentStatus):
		log.Warn("Invalid payment status")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid payment status",
		})
	case errors.Is(err, apperrors.ErrUnverifiedPayment):
		log.Warn("Unverified confirmation rejected")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Payment must be confirmed by the gateway",
		})
	case errors.Is(err, apperrors.ErrInvalidSignature):
		log.Warn("Invalid gateway signature")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid gateway signature",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	default:
		writeError(c, log, err)
	}
}
