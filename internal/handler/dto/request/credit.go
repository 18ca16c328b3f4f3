package request

import (
	"strings"

	"studio-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type GrantCreditsRequest struct {
	AccountID uuid.UUID `json:"accountId" binding:"required"`
	Amount    int64     `json:"amount" binding:"required,gt=0"`
	ValidDays int       `json:"validDays" binding:"required,gt=0"`
	SourceID  string    `json:"sourceId" binding:"max=200"`
}

func (r GrantCreditsRequest) ToInput(providerID uuid.UUID) commands.GrantInput {
	return commands.GrantInput{
		AccountID:  r.AccountID,
		ProviderID: providerID,
		Amount:     r.Amount,
		ValidDays:  r.ValidDays,
		SourceID:   strings.TrimSpace(r.SourceID),
	}
}

type ConsumeCreditsRequest struct {
	AccountID uuid.UUID `json:"accountId" binding:"required"`
	Amount    int64     `json:"amount" binding:"required,gt=0"`
}

func (r ConsumeCreditsRequest) ToInput(providerID uuid.UUID) commands.ConsumeInput {
	return commands.ConsumeInput{
		AccountID:  r.AccountID,
		ProviderID: providerID,
		Amount:     r.Amount,
	}
}
