package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
	Role  UserRole           `json:"role,omitempty" bson:"role,omitempty"`
}

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
)

// EffectiveRole treats a missing or unknown role as customer.
func (u *User) EffectiveRole() UserRole {
	if u.Role == RoleAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

func (u *User) IsAdmin() bool {
	return u.EffectiveRole() == RoleAdmin
}

type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TokenRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}
