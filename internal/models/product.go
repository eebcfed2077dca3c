package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Category string             `json:"category" bson:"category"`
	Price    float64            `json:"price" bson:"price"`
	Recipe   string             `json:"recipe,omitempty" bson:"recipe,omitempty"`
	Image    string             `json:"image,omitempty" bson:"image,omitempty"`
}

// ProductFilter selects products. An empty Category matches every product;
// zero Limit means no limit.
type ProductFilter struct {
	Category string
	Skip     int64
	Limit    int64
}

type Review struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Details string             `json:"details" bson:"details"`
	Rating  float64            `json:"rating" bson:"rating"`
}
