package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== RECEIPT REF ====================

// GenerateReceiptRef creates a receipt reference to hand to the payment
// gateway when creating an order.
func GenerateReceiptRef() string {
	return fmt.Sprintf("receipt_%s", uuid.New().String())
}

// ==================== BOOKING ID ====================

// bookingAlphabet excludes 0/O and 1/I so the ID survives being read
// over the phone.
const bookingAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateBookingID creates a human-presentable booking identifier.
// Format: BK + 8 characters, e.g. BK7GK2MQ4X. Uniqueness is enforced by
// the booking store; callers must retry on collision.
func GenerateBookingID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(fmt.Sprintf("generate booking id: %v", err))
	}

	id := make([]byte, 8)
	for i, b := range buf {
		id[i] = bookingAlphabet[int(b)%len(bookingAlphabet)]
	}

	return "BK" + string(id)
}
