package dto

import "github.com/antusaha970/member-management-backend-sub000/internal/core/domain"

// CreateLookupRequest adds a payment method, income particular or received-from party.
type CreateLookupRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// LookupResponse is one reference row.
type LookupResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// ToLookupResponses converts lookups to their DTOs.
func ToLookupResponses(ls []domain.Lookup) []LookupResponse {
	res := make([]LookupResponse, len(ls))
	for i, l := range ls {
		res[i] = LookupResponse{ID: l.ID, Name: l.Name, IsActive: l.IsActive}
	}
	return res
}
