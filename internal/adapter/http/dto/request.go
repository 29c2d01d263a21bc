package dto

import (
	"github.com/paymatch/paymatch/internal/usecase"
)

// BulkDecideRequest asks for a bulk approve/reject. Either explicit ids or a
// page of pending suggestions when ids is empty.
type BulkDecideRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids,omitempty"`
	Limit  int      `json:"limit,omitempty"`
	Offset int      `json:"offset,omitempty"`
}

// ToUseCaseInput converts the request to usecase input.
func (r *BulkDecideRequest) ToUseCaseInput() usecase.BulkDecideInput {
	return usecase.BulkDecideInput{
		Action: usecase.BulkAction(r.Action),
		IDs:    r.IDs,
		Limit:  r.Limit,
		Offset: r.Offset,
	}
}
