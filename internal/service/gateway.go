package service

import (
	"context"
	"net/url"

	"go-gin-cinema-booking/internal/gateway/momo"
	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
)

// MoMoGateway is implemented by *momo.Client.
type MoMoGateway interface {
	CreatePayment(ctx context.Context, intent *model.MoMoIntent, fromBody momo.Credentials) (*momo.CreateResult, error)
	VerifyResult(params map[string]string) (*model.GatewayResult, error)
}

// VNPayGateway is implemented by *vnpay.Builder.
type VNPayGateway interface {
	BuildPaymentURL(intent *model.VNPayIntent) (string, error)
	VerifyResult(query url.Values) (*model.GatewayResult, error)
}

// GatewayVerifier checks gateway evidence attached to a confirm-booking call.
type GatewayVerifier struct {
	MoMo  MoMoGateway
	VNPay VNPayGateway
}

func (v *GatewayVerifier) Verify(gateway model.Gateway, params map[string]string) (*model.GatewayResult, error) {
	switch gateway {
	case model.GatewayMoMo:
		if v == nil || v.MoMo == nil {
			return nil, &apperrors.ConfigurationError{Gateway: string(gateway), Missing: []string{"client"}}
		}
		return v.MoMo.VerifyResult(params)
	case model.GatewayVNPay:
		if v == nil || v.VNPay == nil {
			return nil, &apperrors.ConfigurationError{Gateway: string(gateway), Missing: []string{"client"}}
		}
		query := url.Values{}
		for k, val := range params {
			query.Set(k, val)
		}
		return v.VNPay.VerifyResult(query)
	default:
		return nil, apperrors.NewValidationError("gateway", "must be momo or vnpay")
	}
}
