package reimbursement

import "time"

type CreateReimbursementRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
	Receipt     *string `json:"receipt"` // base64, optional
}

type ReviewRequest struct {
	Comments string `json:"comments"`
}

type ReceiptInfo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type ReimbursementResponse struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Amount      float64      `json:"amount"`
	Description string       `json:"description"`
	Receipt     *ReceiptInfo `json:"receipt,omitempty"`
	Status      string       `json:"status"`
	ReviewedBy  *string      `json:"reviewed_by,omitempty"`
	ReviewedAt  *string      `json:"reviewed_at,omitempty"`
	Comments    *string      `json:"comments,omitempty"`
	CreatedAt   string       `json:"created_at"`
}

// mapToResponse omits the receipt payload, listings only carry the file
// metadata. The bytes are served by the download endpoint.
func mapToResponse(r Reimbursement) ReimbursementResponse {
	resp := ReimbursementResponse{
		ID:          r.ID.String(),
		UserID:      r.UserID.String(),
		Amount:      r.Amount,
		Description: r.Description,
		Status:      string(r.Status),
		Comments:    r.Comments,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.Receipt != nil {
		resp.Receipt = &ReceiptInfo{
			Filename:    r.Receipt.Filename,
			ContentType: r.Receipt.ContentType,
		}
	}
	if r.ReviewedBy != nil {
		v := r.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if r.ReviewedAt != nil {
		v := r.ReviewedAt.UTC().Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(reimbursements []Reimbursement) []ReimbursementResponse {
	resp := make([]ReimbursementResponse, len(reimbursements))
	for i, r := range reimbursements {
		resp[i] = mapToResponse(r)
	}
	return resp
}
