package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-gin-cinema-booking/internal/handler"
	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/service/mocks"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAdminTestRouter(mockService *mocks.MockBookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	adminHandler := handler.NewAdminHandler(mockService)
	adminHandler.RegisterRoutes(router)

	return router
}

func TestRevenue(t *testing.T) {
	t.Run("Success - date bounds", func(t *testing.T) {
		mockService := mocks.NewMockBookingService(t)
		router := setupAdminTestRouter(mockService)

		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		mockService.EXPECT().Revenue(mock.Anything,
			mock.MatchedBy(func(t *time.Time) bool { return t != nil && t.Equal(from) }),
			mock.MatchedBy(func(t *time.Time) bool { return t != nil && t.Equal(to) }),
		).
			Return(&model.RevenueSummary{TotalRevenue: 600000, BookingCount: 3, From: &from, To: &to}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/revenue?from=2024-01-01&to=2024-02-01T00:00:00Z", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody(t, w.Body)
		assert.Equal(t, float64(600000), resp["total_revenue"])
		assert.Equal(t, float64(3), resp["booking_count"])
	})

	t.Run("Success - unbounded", func(t *testing.T) {
		mockService := mocks.NewMockBookingService(t)
		router := setupAdminTestRouter(mockService)

		mockService.EXPECT().Revenue(mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).
			Return(&model.RevenueSummary{}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/revenue", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - bad date", func(t *testing.T) {
		mockService := mocks.NewMockBookingService(t)
		router := setupAdminTestRouter(mockService)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/revenue?from=yesterday", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "from", decodeBody(t, w.Body)["field"])
	})
}

func TestFindByCode(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockBookingService(t)
		router := setupAdminTestRouter(mockService)

		mockService.EXPECT().FindByCode(mock.Anything, "AB12CD34").Return(&model.Booking{ID: 3}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/bookings/code/AB12CD34", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - ErrBookingNotFound", func(t *testing.T) {
		mockService := mocks.NewMockBookingService(t)
		router := setupAdminTestRouter(mockService)

		mockService.EXPECT().FindByCode(mock.Anything, "ZZZZZZZZ").Return(nil, apperrors.ErrBookingNotFound).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/bookings/code/ZZZZZZZZ", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStaleBookings(t *testing.T) {
	t.Run("Success - default age", func(t *testing.T) {
		mockService := mocks.NewMockBookingService(t)
		router := setupAdminTestRouter(mockService)

		mockService.EXPECT().ListStale(mock.Anything, 30*time.Minute).
			Return([]*model.Booking{{ID: 1}, {ID: 2}}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/bookings/stale", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(2), decodeBody(t, w.Body)["count"])
	})

	t.Run("Success - custom age", func(t *testing.T) {
		mockService := mocks.NewMockBookingService(t)
		router := setupAdminTestRouter(mockService)

		mockService.EXPECT().ListStale(mock.Anything, 2*time.Hour).Return([]*model.Booking{}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/bookings/stale?older_than=2h", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - bad duration", func(t *testing.T) {
		mockService := mocks.NewMockBookingService(t)
		router := setupAdminTestRouter(mockService)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/bookings/stale?older_than=soon", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "ListStale")
	})
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success", func(t *testing.T) {
		router := gin.New()
		handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": func(ctx context.Context) error { return nil },
		}).RegisterRoutes(router)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - dependency down", func(t *testing.T) {
		router := gin.New()
		handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": func(ctx context.Context) error { return nil },
			"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
		}).RegisterRoutes(router)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decodeBody(t, w.Body)
		assert.Equal(t, "degraded", resp["status"])
		assert.Equal(t, "connection refused", resp["checks"].(map[string]interface{})["redis"])
	})
}
