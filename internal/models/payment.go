package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Payment struct {
	ID            primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Email         string               `json:"email" bson:"email"`
	Price         float64              `json:"price" bson:"price"`
	CartItemIDs   []primitive.ObjectID `json:"cartItems" bson:"cartItems"`
	MenuItemIDs   []primitive.ObjectID `json:"menuItems" bson:"menuItems"`
	TransactionID string               `json:"transactionId" bson:"transactionId"`
	Status        PaymentStatus        `json:"status" bson:"status"`
	CreatedAt     time.Time            `json:"date" bson:"date"`
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusDone    PaymentStatus = "Done"
)

type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type CommitOrderRequest struct {
	Price       float64  `json:"price"`
	CartItemIDs []string `json:"cartItems"`
	MenuItemIDs []string `json:"menuItems"`
}

type CommitOrderResult struct {
	PaymentID     primitive.ObjectID `json:"paymentId"`
	DeletedCount  int64              `json:"deletedCount"`
	TransactionID string             `json:"transactionId"`
}
