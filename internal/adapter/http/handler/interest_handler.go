package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/gopawn/internal/adapter/http/dto"
	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/usecase"
)

// InterestService defines the behavior needed by InterestHandler.
type InterestService interface {
	QuoteInterest(input usecase.QuoteInterestInput) (*domain.InterestCalculation, error)
}

// InterestHandler serves the stateless interest calculator.
type InterestHandler struct {
	interestUC InterestService
}

// NewInterestHandler creates a new InterestHandler.
func NewInterestHandler(interestUC InterestService) *InterestHandler {
	return &InterestHandler{interestUC: interestUC}
}

// DailyRate converts ?annual_rate= to a daily rate. Without the parameter it
// returns the preset annual rates.
func (h *InterestHandler) DailyRate(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("annual_rate")
	if raw == "" {
		writeJSON(w, http.StatusOK, []*dto.DailyRateResponse{
			dto.NewDailyRateResponse(domain.AnnualRateStandard),
			dto.NewDailyRateResponse(domain.AnnualRatePremium),
		})
		return
	}

	annual, err := decimal.NewFromString(raw)
	if err != nil || annual.IsNegative() {
		writeError(w, http.StatusBadRequest, "invalid annual_rate", raw)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewDailyRateResponse(annual))
}

// Quote previews interest for an arbitrary principal and period.
func (h *InterestHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteInterestRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeDomainError(w, r, "invalid request", err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid request", err)
		return
	}

	calc, err := h.interestUC.QuoteInterest(input)
	if err != nil {
		writeDomainError(w, r, "failed to calculate interest", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.QuoteFromCalculation(calc))
}
