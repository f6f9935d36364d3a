package handler

import (
	"errors"
	"net/http"

	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// writeError maps the error taxonomy onto status codes. Handlers check
// their own sentinels first and fall through to this.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var (
		validationErr *apperrors.ValidationError
		gatewayErr    *apperrors.GatewayError
		configErr     *apperrors.ConfigurationError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Error(),
			"field": validationErr.Field,
		})
	case errors.Is(err, apperrors.ErrValidation):
		log.Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrNotFound):
		log.Warn("Not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	case errors.As(err, &gatewayErr):
		log.Error("Gateway error", zap.Int("gateway_status", gatewayErr.StatusCode))
		status := gatewayErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"error":      gatewayErr.Message,
			"gateway":    gatewayErr.Gateway,
			"resultCode": gatewayErr.ResultCode,
		})
	case errors.As(err, &configErr):
		log.Error("Gateway not configured", zap.Strings("missing", configErr.Missing))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Payment gateway is not configured",
			"missing": configErr.Missing,
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
