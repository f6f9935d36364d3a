package momo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"go-gin-cinema-booking/internal/model"
)

// Sign returns the lowercase hex HMAC-SHA256 of payload.
func Sign(secretKey, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time; signature case is ignored.
func Verify(secretKey, payload, signature string) bool {
	expected, err := hex.DecodeString(Sign(secretKey, payload))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(strings.ToLower(signature))
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}

// CreateSignaturePayload builds the raw string signed for a create request.
// Field order is fixed and alphabetical.
func CreateSignaturePayload(accessKey string, req *CreateRequest) string {
	return fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		accessKey,
		req.Amount,
		req.ExtraData,
		req.IpnURL,
		req.OrderID,
		req.OrderInfo,
		req.PartnerCode,
		req.RedirectURL,
		req.RequestID,
		req.RequestType,
	)
}

// resultFields is the signed field order of IPN bodies and redirect queries.
var resultFields = []string{
	"amount", "extraData", "message", "orderId", "orderInfo", "orderType",
	"partnerCode", "payType", "requestId", "responseTime", "resultCode", "transId",
}

// ResultSignaturePayload builds the raw string MoMo signs on results.
func ResultSignaturePayload(accessKey string, params map[string]string) string {
	var b strings.Builder
	b.WriteString("accessKey=")
	b.WriteString(accessKey)
	for _, field := range resultFields {
		b.WriteByte('&')
		b.WriteString(field)
		b.WriteByte('=')
		b.WriteString(params[field])
	}
	return b.String()
}

// EncodeExtraData packs a checkout snapshot as URL-safe base64 JSON.
func EncodeExtraData(snapshot *model.CheckoutSnapshot) (string, error) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// DecodeExtraData accepts URL-safe or standard base64, padded or not.
func DecodeExtraData(extraData string) (*model.CheckoutSnapshot, error) {
	extraData = strings.TrimSpace(extraData)
	if extraData == "" {
		return nil, fmt.Errorf("empty extraData")
	}

	encodings := []*base64.Encoding{
		base64.URLEncoding, base64.RawURLEncoding, base64.StdEncoding, base64.RawStdEncoding,
	}
	var lastErr error
	for _, enc := range encodings {
		raw, err := enc.DecodeString(extraData)
		if err != nil {
			lastErr = err
			continue
		}
		var snapshot model.CheckoutSnapshot
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			return nil, fmt.Errorf("decode extraData json: %w", err)
		}
		return &snapshot, nil
	}
	return nil, fmt.Errorf("decode extraData: %w", lastErr)
}
