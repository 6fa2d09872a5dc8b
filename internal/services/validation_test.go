package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/goldchip/casino-backend/internal/games"
	"github.com/goldchip/casino-backend/internal/ledger"
)

type wagerPayload struct {
	Game   string `validate:"required,oneof=roulette dice slots blackjack poker"`
	Email  string `validate:"required,email"`
	Amount int    `validate:"required,gte=1"`
}

func TestValidationHelper_ValidateStruct(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid payload", func(t *testing.T) {
		valid := wagerPayload{
			Game:   "roulette",
			Email:  "player@example.com",
			Amount: 10,
		}

		assert.NoError(t, vh.ValidateStruct(&valid))
	})

	t.Run("multiple failing fields", func(t *testing.T) {
		invalid := wagerPayload{
			Game:   "bingo",
			Amount: 0,
		}

		err := vh.ValidateStruct(&invalid)
		assert.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		assert.True(t, ok)
		assert.Len(t, validationErrors, 3)
	})
}

func TestSendErrorResponse(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		w := httptest.NewRecorder()
		SendErrorResponse(w, "Insufficient funds", http.StatusBadRequest, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Insufficient funds", resp.Error)
		assert.Empty(t, resp.Details)
	})

	t.Run("validation error carries field details", func(t *testing.T) {
		vh := NewValidationHelper()
		err := vh.ValidateStruct(&wagerPayload{})
		assert.Error(t, err)

		w := httptest.NewRecorder()
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)

		var resp ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Details, "Game")
		assert.Contains(t, resp.Details, "Email")
		assert.Contains(t, resp.Details, "Amount")
	})
}

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{games.ErrInvalidBet, http.StatusBadRequest},
		{fmt.Errorf("%w: bad bet key", games.ErrInvalidBet), http.StatusBadRequest},
		{ledger.ErrInsufficientFunds, http.StatusBadRequest},
		{ledger.ErrAccountNotFound, http.StatusNotFound},
		{ledger.ErrConflict, http.StatusConflict},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusFromError(tc.err), "error: %v", tc.err)
	}
}
