package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type CartEntry struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ItemID   primitive.ObjectID `json:"itemId" bson:"itemId"`
	Email    string             `json:"email" bson:"email"`
	Name     string             `json:"name" bson:"name"`
	Category string             `json:"category" bson:"category"`
	Price    float64            `json:"price" bson:"price"`
	Recipe   string             `json:"recipe,omitempty" bson:"recipe,omitempty"`
	Image    string             `json:"image,omitempty" bson:"image,omitempty"`
}

// AddToCartRequest carries a product snapshot; ID is the product id.
type AddToCartRequest struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"`
}
