// File: services/checkin/checkin.go
package checkin

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	bookingRepo "shuttle/database/repository/booking"
	"shuttle/utils"
)

var (
	// ErrCodeExpired signals a redeem with no live code for the booking.
	ErrCodeExpired = errors.New("check-in code expired or never issued")
	// ErrCodeMismatch signals a redeem with the wrong code.
	ErrCodeMismatch = errors.New("check-in code does not match")
	// ErrNotConfirmed signals an issue request for a booking that has not
	// secured its seats yet.
	ErrNotConfirmed = errors.New("booking is not confirmed")
)

const codeLength = 6

// CheckInService issues one-time boarding codes for confirmed bookings
// and redeems them at the vehicle door. The code lives only in Redis,
// hashed, and is deleted on the first successful redeem.
type CheckInService interface {
	Issue(ctx context.Context, bookingID string) (string, error)
	Redeem(ctx context.Context, bookingID, code string) error
}

// DefaultCheckInService implements CheckInService.
type DefaultCheckInService struct {
	Bookings bookingRepo.BookingRepository

	// TTL is how long an issued code stays redeemable; zero means the
	// configured default.
	TTL time.Duration
}

func codeKey(bookingID string) string {
	return fmt.Sprintf("checkin:%s", bookingID)
}

// generateCode returns a short random base32 code.
func generateCode(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(code) > length {
		code = code[:length]
	}
	return code, nil
}

// Issue creates a fresh code for a confirmed booking, overwriting any
// code issued earlier. Only the bcrypt hash is stored.
func (s *DefaultCheckInService) Issue(ctx context.Context, bookingID string) (string, error) {
	logger := utils.GetLogger()

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if !booking.Reservation.Confirmed || booking.Cancelled || booking.Completed {
		return "", ErrNotConfirmed
	}

	code, err := generateCode(codeLength)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash check-in code: %w", err)
	}

	client := utils.GetCheckInCacheClient()
	if client == nil {
		return "", fmt.Errorf("check-in cache client not initialized")
	}
	if err := client.Set(ctx, codeKey(bookingID), hash, s.ttl()).Err(); err != nil {
		logger.Error("failed to cache check-in code", zap.String("bookingId", bookingID), zap.Error(err))
		return "", fmt.Errorf("failed to issue check-in code")
	}

	logger.Info("check-in code issued",
		zap.String("bookingId", bookingID),
		zap.Duration("ttl", s.ttl()))
	return code, nil
}

// Redeem verifies the code against the stored hash, burns it, and marks
// the booking verified. A second redeem of the same code fails with
// ErrCodeExpired.
func (s *DefaultCheckInService) Redeem(ctx context.Context, bookingID, code string) error {
	logger := utils.GetLogger()

	client := utils.GetCheckInCacheClient()
	if client == nil {
		return fmt.Errorf("check-in cache client not initialized")
	}

	hash, err := client.Get(ctx, codeKey(bookingID)).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCodeExpired
		}
		return fmt.Errorf("failed to retrieve check-in code: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return ErrCodeMismatch
	}

	// Burn before marking: a crash between the two leaves the booking
	// unverified, and staff can simply issue a new code.
	if err := client.Del(ctx, codeKey(bookingID)).Err(); err != nil {
		logger.Error("failed to delete redeemed check-in code", zap.String("bookingId", bookingID), zap.Error(err))
	}

	if err := s.Bookings.MarkVerified(ctx, bookingID); err != nil {
		return err
	}
	logger.Info("booking verified at the door", zap.String("bookingId", bookingID))
	return nil
}

func (s *DefaultCheckInService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 15 * time.Minute
}
