package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go-gin-cinema-booking/internal/service"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
	"go-gin-cinema-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultStaleAge = 30 * time.Minute

type AdminHandler struct {
	service service.BookingService
}

func NewAdminHandler(service service.BookingService) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes mounts /api/admin behind the given middleware (auth).
func (h *AdminHandler) RegisterRoutes(r *gin.Engine, middleware ...gin.HandlerFunc) {
	router := r.Group("/api/admin", middleware...)
	{
		router.GET("revenue", h.Revenue)
		router.GET("bookings/code/:code", h.FindByCode)
		router.GET("bookings/stale", h.StaleBookings)
	}
}

type revenueQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type staleQuery struct {
	OlderThan string `form:"older_than"`
}

func (h *AdminHandler) Revenue(c *gin.Context) {
	var query revenueQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	from, err := parseTimeParam("from", query.From)
	if err != nil {
		h.handleAdminError(c, err, "Revenue")
		return
	}
	to, err := parseTimeParam("to", query.To)
	if err != nil {
		h.handleAdminError(c, err, "Revenue")
		return
	}

	summary, err := h.service.Revenue(c, from, to)
	if err != nil {
		h.handleAdminError(c, err, "Revenue")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AdminHandler) FindByCode(c *gin.Context) {
	booking, err := h.service.FindByCode(c, c.Param("code"))
	if err != nil {
		h.handleAdminError(c, err, "FindByCode")
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func (h *AdminHandler) StaleBookings(c *gin.Context) {
	var query staleQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	olderThan := defaultStaleAge
	if query.OlderThan != "" {
		d, err := time.ParseDuration(query.OlderThan)
		if err != nil {
			h.handleAdminError(c, apperrors.NewValidationError("older_than", "must be a duration like 30m or 2h"), "StaleBookings")
			return
		}
		olderThan = d
	}

	bookings, err := h.service.ListStale(c, olderThan)
	if err != nil {
		h.handleAdminError(c, err, "StaleBookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"older_than": olderThan.String(),
		"count":      len(bookings),
		"bookings":   bookings,
	})
}

// parseTimeParam accepts RFC3339 or a plain date (UTC midnight).
func parseTimeParam(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	return nil, apperrors.NewValidationError(field, "must be RFC3339 or YYYY-MM-DD")
}

func (h *AdminHandler) handleAdminError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	default:
		writeError(c, log, err)
	}
}
