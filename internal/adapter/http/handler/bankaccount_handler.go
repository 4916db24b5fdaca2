package handler

import (
	"context"
	"net/http"

	"github.com/iho/gocaja/internal/adapter/http/dto"
	"github.com/iho/gocaja/internal/domain"
)

// BankAccountService defines the behavior needed by BankAccountHandler.
type BankAccountService interface {
	List(ctx context.Context) ([]*domain.BankAccount, error)
}

// BankAccountHandler serves the bank account catalog.
type BankAccountHandler struct {
	accounts BankAccountService
}

// NewBankAccountHandler creates a new BankAccountHandler.
func NewBankAccountHandler(accounts BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{accounts: accounts}
}

// List lists the registered bank accounts.
func (h *BankAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bank accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountsFromDomain(accounts))
}
