package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a new user with an
// opening balance in their preferred currency.
type CreateUserRequest struct {
	Username       string          `json:"username" binding:"required,min=3,max=50"`
	Password       string          `json:"password" binding:"required,min=8"`
	Name           string          `json:"name" binding:"required,max=100"`
	CurrencyCode   string          `json:"currencyCode" binding:"required,len=3,alpha,supportedcurrency"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero values.
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID          string          `json:"userID"`
	Username        string          `json:"username"`
	Name            string          `json:"name"`
	BalanceAmount   decimal.Decimal `json:"balanceAmount"`
	BalanceCurrency string          `json:"balanceCurrency"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:          u.UserID,
		Username:        u.Username,
		Name:            u.Name,
		BalanceAmount:   u.Balance.Amount(),
		BalanceCurrency: u.Balance.CurrencyCode(),
		CreatedAt:       u.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO.
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}
