package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gopawn/internal/adapter/http/dto"
	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	CreateEntry(ctx context.Context, actor *domain.Actor, input usecase.CreateEntryInput) (*domain.Entry, error)
	EditEntry(ctx context.Context, actor *domain.Actor, input usecase.EditEntryInput) (*domain.Entry, error)
	ApplyInterest(ctx context.Context, actor *domain.Actor, input usecase.ApplyInterestInput) (*usecase.InterestResult, error)
	ReleaseEntry(ctx context.Context, actor *domain.Actor, entryID string) (*domain.Entry, error)
	GetEntry(ctx context.Context, actor *domain.Actor, id string) (*domain.Entry, error)
	ListActiveEntries(ctx context.Context, actor *domain.Actor, input usecase.ListActiveEntriesInput) ([]*domain.Entry, error)
	GetEntryHistory(ctx context.Context, actor *domain.Actor, entryID string) ([]*domain.AuditLog, error)
}

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	entryUC EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Create records a new entry owned by the actor.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeDomainError(w, r, "invalid request", err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid request", err)
		return
	}

	entry, err := h.entryUC.CreateEntry(r.Context(), actor, input)
	if err != nil {
		writeDomainError(w, r, "failed to create entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// List lists the actor's active entries.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.entryUC.ListActiveEntries(r.Context(), actor, usecase.ListActiveEntriesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(w, r, "failed to list entries", err)
		return
	}

	limit, offset = domain.ValidatePagination(limit, offset)
	writeJSON(w, http.StatusOK, dto.NewListEntriesResponse(entries, limit, offset))
}

// Get retrieves an entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	entry, err := h.entryUC.GetEntry(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Edit changes the supplied fields of an active entry.
func (h *EntryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.EditEntryRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeDomainError(w, r, "invalid request", err)
		return
	}

	input, err := req.ToUseCaseInput(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "invalid request", err)
		return
	}

	entry, err := h.entryUC.EditEntry(r.Context(), actor, input)
	if err != nil {
		writeDomainError(w, r, "failed to edit entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// ApplyInterest calculates interest and stores it on the entry.
func (h *EntryHandler) ApplyInterest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.ApplyInterestRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeDomainError(w, r, "invalid request", err)
		return
	}

	input, err := req.ToUseCaseInput(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "invalid request", err)
		return
	}

	result, err := h.entryUC.ApplyInterest(r.Context(), actor, input)
	if err != nil {
		writeDomainError(w, r, "failed to calculate interest", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InterestFromResult(result))
}

// Release marks an active entry as released.
func (h *EntryHandler) Release(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	entry, err := h.entryUC.ReleaseEntry(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to release entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// History returns the audit trail of an entry, oldest first.
func (h *EntryHandler) History(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	logs, err := h.entryUC.GetEntryHistory(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get entry history", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
