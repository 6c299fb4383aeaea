package models

import "time"

// Role names the three principals the API serves.
const (
	RoleGuest  = "guest"
	RoleStaff  = "staff"
	RoleDriver = "driver"
)

// Guest is a hotel guest who books shuttle seats.
type Guest struct {
	ID          string    `bson:"id" json:"id"`
	HotelID     string    `bson:"hotelId" json:"hotelId"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	PhoneNumber string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	FCMToken    string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}

// Driver runs shuttle trips within duty windows.
type Driver struct {
	ID        string    `bson:"id" json:"id"`
	HotelID   string    `bson:"hotelId" json:"hotelId"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}
