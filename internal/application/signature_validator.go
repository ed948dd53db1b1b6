package application

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/sirupsen/logrus"

	"line-webhook-gateway/internal/ports/output"
)

const (
	signatureCacheKeyPrefix = "line_sig:"
	signatureCacheTTL       = 5 * time.Minute

	cacheValueValid   = "valid"
	cacheValueInvalid = "invalid"
)

// SignatureValidator struct - Verifies LINE webhook authenticity
// Computes HMAC-SHA256 over the raw request bytes keyed by the channel
// secret and compares the base64 digest against the x-line-signature header.
type SignatureValidator struct {
	channelSecret string
	cache         output.SignatureCache // nil disables caching
}

// NewSignatureValidator func - Creates new signature validator
// cache may be nil; when set, validation results are cached per signature
// value for a few minutes. Cache failures never affect the outcome.
func NewSignatureValidator(channelSecret string, cache output.SignatureCache) *SignatureValidator {
	return &SignatureValidator{
		channelSecret: channelSecret,
		cache:         cache,
	}
}

// Validate func - Reports whether signature authenticates body
// A missing signature fails closed.
func (v *SignatureValidator) Validate(body []byte, signature string) bool {
	if signature == "" {
		logrus.Error("Missing x-line-signature header")
		return false
	}

	cacheKey := signatureCacheKeyPrefix + signature
	if v.cache != nil {
		cached, found, err := v.cache.Get(cacheKey)
		if err != nil {
			logrus.Errorf("Signature cache check failed: %v", err)
			// Continue with validation if cache fails
		} else if found {
			return cached == cacheValueValid
		}
	}

	mac := hmac.New(sha256.New, []byte(v.channelSecret))
	mac.Write(body)
	hash := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	isValid := hmac.Equal([]byte(hash), []byte(signature))

	if v.cache != nil {
		value := cacheValueInvalid
		if isValid {
			value = cacheValueValid
		}
		if err := v.cache.Set(cacheKey, value, signatureCacheTTL); err != nil {
			logrus.Errorf("Signature cache set failed: %v", err)
			// Continue even if caching fails
		}
	}

	if !isValid {
		logrus.Errorf("Invalid signature: expected=%s received=%s", hash, signature)
	}

	return isValid
}
