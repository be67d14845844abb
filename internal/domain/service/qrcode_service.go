package service

import (
	"github.com/google/uuid"
)

// QRCodeService renders store rating links as QR codes.
type QRCodeService interface {
	// GenerateStoreQR returns a PNG encoding StoreRatingURL(storeID).
	GenerateStoreQR(storeID uuid.UUID) ([]byte, error)

	StoreRatingURL(storeID uuid.UUID) string
}
