package response

import "studio-booking/internal/usecase/commands"

type ExpireCreditsResponse struct {
	Success          bool  `json:"success"`
	TotalExpired     int64 `json:"totalExpired"`
	AffectedAccounts int   `json:"affectedAccounts"`
	BatchesExpired   int   `json:"batchesExpired"`
	Failures         int   `json:"failures"`
	Skipped          int   `json:"skipped"`
}

type SweepErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func FromExpireResult(r *commands.ExpireResult) *ExpireCreditsResponse {
	return &ExpireCreditsResponse{
		Success:          true,
		TotalExpired:     r.TotalExpired,
		AffectedAccounts: r.AffectedAccounts,
		BatchesExpired:   r.BatchesExpired,
		Failures:         r.Failures,
		Skipped:          r.Skipped,
	}
}
