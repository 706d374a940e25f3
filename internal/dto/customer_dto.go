package dto

type CustomerResponse struct {
	CustomerID string  `json:"customer_id"`
	Username   string  `json:"username"`
	Email      *string `json:"email"`
}
