package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go-gin-cinema-booking/internal/model"
	"go-gin-cinema-booking/internal/service"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
	"go-gin-cinema-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VNPay IPN response codes.
const (
	vnpayRspSuccess          = "00"
	vnpayRspOrderNotFound    = "01"
	vnpayRspAlreadyConfirmed = "02"
	vnpayRspInvalidAmount    = "04"
	vnpayRspInvalidSignature = "97"
	vnpayRspUnknown          = "99"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(service service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api")
	{
		router.POST("momo/create-payment", h.CreateMoMoPayment)
		router.POST("momo/ipn", h.MoMoIPN)
		router.GET("momo/return", h.MoMoReturn)

		router.POST("vnpay/create-payment", h.CreateVNPayPayment)
		router.GET("vnpay/ipn", h.VNPayIPN)
		router.POST("vnpay/ipn", h.VNPayIPN)
		router.GET("vnpay/return", h.VNPayReturn)
	}
}

func (h *PaymentHandler) CreateMoMoPayment(c *gin.Context) {
	var req model.MoMoPaymentRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	link, err := h.service.CreateMoMoPayment(c, req)
	if err != nil {
		h.handlePaymentError(c, err, "CreateMoMoPayment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payUrl":    link.PayURL,
		"orderId":   link.OrderID,
		"bookingId": link.BookingID,
		"data":      link.Data,
	})
}

func (h *PaymentHandler) CreateVNPayPayment(c *gin.Context) {
	var req model.VNPayPaymentRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	req.IPAddr = c.ClientIP()

	link, err := h.service.CreateVNPayPayment(c, req)
	if err != nil {
		h.handlePaymentError(c, err, "CreateVNPayPayment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payUrl":    link.PayURL,
		"orderId":   link.OrderID,
		"bookingId": link.BookingID,
	})
}

// MoMoIPN always answers 200 so MoMo stops retrying; failures are logged.
func (h *PaymentHandler) MoMoIPN(c *gin.Context) {
	log := logger.WithComponent("handler").With(zap.String("operation", "MoMoIPN"), zap.String("gateway", "momo"))

	params, err := decodeMoMoBody(c)
	if err != nil {
		log.Error("Malformed MoMo IPN body", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"result": true})
		return
	}

	result, err := h.service.HandleMoMoNotification(c, params)
	if err != nil {
		log.Error("MoMo IPN not reconciled",
			zap.String("order_id", params["orderId"]),
			zap.String("result_code", params["resultCode"]),
			zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"result": true})
		return
	}

	log.Info("MoMo IPN reconciled",
		zap.Int64("booking_id", result.Booking.ID),
		zap.String("order_id", params["orderId"]),
		zap.Bool("applied", result.Applied))
	c.JSON(http.StatusOK, gin.H{"result": true})
}

// VNPayIPN answers with VNPay's RspCode contract, always HTTP 200.
func (h *PaymentHandler) VNPayIPN(c *gin.Context) {
	log := logger.WithComponent("handler").With(zap.String("operation", "VNPayIPN"), zap.String("gateway", "vnpay"))

	query := vnpayParams(c)
	result, err := h.service.HandleVNPayNotification(c, query)

	code, message := vnpayRspSuccess, "Confirm Success"
	switch {
	case err == nil && !result.Applied:
		code, message = vnpayRspAlreadyConfirmed, "Order already confirmed"
	case err == nil:
	case errors.Is(err, apperrors.ErrInvalidSignature):
		code, message = vnpayRspInvalidSignature, "Invalid signature"
	case errors.Is(err, apperrors.ErrNotFound):
		code, message = vnpayRspOrderNotFound, "Order not found"
	case errors.Is(err, apperrors.ErrAmountMismatch):
		code, message = vnpayRspInvalidAmount, "Invalid amount"
	default:
		code, message = vnpayRspUnknown, "Unknown error"
	}

	if err != nil {
		log.Error("VNPay IPN not reconciled",
			zap.String("order_id", query.Get("vnp_TxnRef")),
			zap.String("rsp_code", code),
			zap.Error(err))
	} else {
		log.Info("VNPay IPN reconciled",
			zap.Int64("booking_id", result.Booking.ID),
			zap.String("order_id", query.Get("vnp_TxnRef")),
			zap.Bool("applied", result.Applied))
	}

	c.JSON(http.StatusOK, gin.H{
		"RspCode": code,
		"Message": message,
		"result":  true,
	})
}

func (h *PaymentHandler) MoMoReturn(c *gin.Context) {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	result, err := h.service.HandleMoMoReturn(c, params)
	if err != nil {
		h.handlePaymentError(c, err, "MoMoReturn")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) VNPayReturn(c *gin.Context) {
	result, err := h.service.HandleVNPayReturn(c, c.Request.URL.Query())
	if err != nil {
		h.handlePaymentError(c, err, "VNPayReturn")
		return
	}
	c.JSON(http.StatusOK, result)
}

// decodeMoMoBody reads the IPN JSON and stringifies every value the way
// MoMo signs them.
func decodeMoMoBody(c *gin.Context) (map[string]string, error) {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()

	var raw map[string]interface{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}

	params := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			params[key] = ""
		case string:
			params[key] = v
		case json.Number:
			params[key] = v.String()
		default:
			params[key] = fmt.Sprint(v)
		}
	}
	return params, nil
}

// vnpayParams merges the query string with a POSTed form body.
func vnpayParams(c *gin.Context) url.Values {
	if c.Request.Method == http.MethodPost {
		if err := c.Request.ParseForm(); err == nil && len(c.Request.Form) > 0 {
			return c.Request.Form
		}
	}
	return c.Request.URL.Query()
}

func (h *PaymentHandler) handlePaymentError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidSignature):
		log.Warn("Invalid gateway signature")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid gateway signature",
		})
	case errors.Is(err, apperrors.ErrDuplicateOrderID):
		log.Warn("Order id reused")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Order id already used, retry with a new one",
		})
	case errors.Is(err, apperrors.ErrAmountMismatch):
		log.Warn("Amount does not match booking total")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Amount does not match booking total",
		})
	case errors.Is(err, apperrors.ErrGatewayMismatch):
		log.Warn("Gateway does not match booking payment method")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Gateway does not match booking payment method",
		})
	case errors.Is(err, apperrors.ErrBookingMismatch):
		log.Warn("Payment belongs to another booking")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Payment belongs to another booking",
		})
	case errors.Is(err, apperrors.ErrBookingNotPending):
		log.Warn("Booking is not pending")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking is already settled",
		})
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	default:
		writeError(c, log, err)
	}
}
