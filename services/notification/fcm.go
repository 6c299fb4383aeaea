// File: services/notification/fcm.go
package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	userRepo "shuttle/database/repository/user"
	"shuttle/models"
	"shuttle/utils"
)

// FCMSender delivers pushes through Firebase Cloud Messaging, resolving
// the recipient's device token from the user repository.
type FCMSender struct {
	Users userRepo.UserRepository
}

func NewFCMSender(users userRepo.UserRepository) *FCMSender {
	return &FCMSender{Users: users}
}

func (s *FCMSender) Send(ctx context.Context, payload models.PushPayload) error {
	token, err := s.deviceToken(ctx, payload)
	if err != nil {
		return err
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}
	if utils.FCMClient == nil {
		return fmt.Errorf("fcm client not initialized")
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm send to %s %s: %w", payload.Target, payload.ID, err)
	}
	return nil
}

func (s *FCMSender) deviceToken(ctx context.Context, payload models.PushPayload) (string, error) {
	switch payload.Target {
	case "guest":
		guest, err := s.Users.GetGuestByID(ctx, payload.ID)
		if err != nil {
			return "", fmt.Errorf("resolve guest %s: %w", payload.ID, err)
		}
		if guest.FCMToken == "" {
			return "", fmt.Errorf("guest %s has no device token", payload.ID)
		}
		return guest.FCMToken, nil
	case "driver":
		driver, err := s.Users.GetDriverByID(ctx, payload.ID)
		if err != nil {
			return "", fmt.Errorf("resolve driver %s: %w", payload.ID, err)
		}
		if driver.FCMToken == "" {
			return "", fmt.Errorf("driver %s has no device token", payload.ID)
		}
		return driver.FCMToken, nil
	default:
		return "", fmt.Errorf("unknown push target %q", payload.Target)
	}
}
