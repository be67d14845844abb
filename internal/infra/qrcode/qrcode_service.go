package qrcode

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"storerating/config"
	"storerating/internal/domain/service"
	"storerating/internal/errors"
)

const (
	defaultSize    = 256
	defaultBaseURL = "http://localhost:4433"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService builds the service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level, baseURL := defaultSize, "M", defaultBaseURL
	if qc := cfg.QRCode; qc != nil {
		if qc.Size > 0 {
			size = qc.Size
		}
		if qc.ErrorCorrectionLevel != "" {
			level = qc.ErrorCorrectionLevel
		}
		if qc.BaseURL != "" {
			baseURL = qc.BaseURL
		}
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: parseRecoveryLevel(level),
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

func parseRecoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

func (s *qrcodeService) StoreRatingURL(storeID uuid.UUID) string {
	return fmt.Sprintf("%s/stores/%s/rate", s.baseURL, storeID)
}

func (s *qrcodeService) GenerateStoreQR(storeID uuid.UUID) ([]byte, error) {
	qr, err := qrcode.New(s.StoreRatingURL(storeID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	png, err := qr.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return png, nil
}
