package invoice

import "time"

type CreateInvoiceRequest struct {
	ProjectID      string  `json:"project_id" binding:"required"`
	Milestone      *string `json:"milestone"`
	EstimatedHours float64 `json:"estimated_hours" binding:"gte=0"`
	EstimatedCost  float64 `json:"estimated_cost" binding:"gte=0"`
}

type UpdateInvoiceRequest struct {
	Milestone      *string  `json:"milestone"`
	EstimatedHours *float64 `json:"estimated_hours" binding:"omitempty,gte=0"`
	EstimatedCost  *float64 `json:"estimated_cost" binding:"omitempty,gte=0"`
	ActualHours    *float64 `json:"actual_hours" binding:"omitempty,gte=0"`
	ActualCost     *float64 `json:"actual_cost" binding:"omitempty,gte=0"`
	Status         *string  `json:"status"`
}

type InvoiceResponse struct {
	ID             string  `json:"id"`
	ProjectID      string  `json:"project_id"`
	Milestone      *string `json:"milestone,omitempty"`
	EstimatedHours float64 `json:"estimated_hours"`
	EstimatedCost  float64 `json:"estimated_cost"`
	ActualHours    float64 `json:"actual_hours"`
	ActualCost     float64 `json:"actual_cost"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
}

func mapToResponse(i Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:             i.ID.String(),
		ProjectID:      i.ProjectID.String(),
		Milestone:      i.Milestone,
		EstimatedHours: i.EstimatedHours,
		EstimatedCost:  i.EstimatedCost,
		ActualHours:    i.ActualHours,
		ActualCost:     i.ActualCost,
		Status:         string(i.Status),
		CreatedAt:      i.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(invoices []Invoice) []InvoiceResponse {
	resp := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = mapToResponse(inv)
	}
	return resp
}
