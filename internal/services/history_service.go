package services

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/goldchip/casino-backend/internal/ledger"
	"github.com/goldchip/casino-backend/internal/middleware"
	"github.com/goldchip/casino-backend/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// HistoryService serves the read side: balance, movement ledger, game
// history and aggregate stats.
type HistoryService struct {
	db     *sql.DB
	ledger *ledger.Service
	log    *zap.Logger
}

func NewHistoryService(db *sql.DB, ledgerSvc *ledger.Service, log *zap.Logger) *HistoryService {
	return &HistoryService{db: db, ledger: ledgerSvc, log: log}
}

func (s *HistoryService) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	balance, err := s.ledger.Balance(r.Context(), userID)
	if err != nil {
		s.log.Warn("balance read failed", zap.String("user_id", userID), zap.Error(err))
		SendErrorResponse(w, settlementErrorMessage(err), StatusFromError(err), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"balance": balance})
}

func (s *HistoryService) GetMovements(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit, offset := pagination(r)
	rows, err := s.db.QueryContext(r.Context(), `
		SELECT m.id, m.account_id, m.round_id, m.kind, m.amount, m.balance_before, m.balance_after, m.created_at
		FROM movements m
		JOIN accounts a ON a.id = m.account_id
		WHERE a.owner_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		s.log.Error("movements query failed", zap.String("user_id", userID), zap.Error(err))
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	movements := make([]models.Movement, 0, limit)
	for rows.Next() {
		var m models.Movement
		if err := rows.Scan(&m.ID, &m.AccountID, &m.RoundID, &m.Kind,
			&m.Amount, &m.BalanceBefore, &m.BalanceAfter, &m.CreatedAt); err != nil {
			s.log.Error("movement scan failed", zap.Error(err))
			SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
			return
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"movements": movements})
}

func (s *HistoryService) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit, offset := pagination(r)
	query := `
		SELECT h.id, h.account_id, h.round_id, h.game_type, h.bet_amount, h.win_amount, h.result, h.game_data, h.created_at
		FROM game_history h
		JOIN accounts a ON a.id = h.account_id
		WHERE a.owner_id = $1`
	args := []any{userID}

	if game := r.URL.Query().Get("game"); game != "" {
		query += ` AND h.game_type = $2
		ORDER BY h.created_at DESC
		LIMIT $3 OFFSET $4`
		args = append(args, game, limit, offset)
	} else {
		query += `
		ORDER BY h.created_at DESC
		LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := s.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		s.log.Error("history query failed", zap.String("user_id", userID), zap.Error(err))
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	history := make([]models.GameHistory, 0, limit)
	for rows.Next() {
		var h models.GameHistory
		if err := rows.Scan(&h.ID, &h.AccountID, &h.RoundID, &h.GameType,
			&h.BetAmount, &h.WinAmount, &h.Result, &h.GameData, &h.CreatedAt); err != nil {
			s.log.Error("history scan failed", zap.Error(err))
			SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
			return
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"history": history})
}

func (s *HistoryService) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var stats models.GameStats
	err := s.db.QueryRowContext(r.Context(), `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE h.result = 'win'),
		       COUNT(*) FILTER (WHERE h.result = 'loss'),
		       COUNT(*) FILTER (WHERE h.result = 'draw'),
		       COALESCE(SUM(h.bet_amount), 0),
		       COALESCE(SUM(h.win_amount), 0)
		FROM game_history h
		JOIN accounts a ON a.id = h.account_id
		WHERE a.owner_id = $1`, userID).
		Scan(&stats.TotalRounds, &stats.TotalWins, &stats.TotalLosses, &stats.TotalDraws,
			&stats.TotalBet, &stats.TotalWon)
	if err != nil {
		s.log.Error("stats query failed", zap.String("user_id", userID), zap.Error(err))
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}
	stats.NetResult = stats.TotalWon.Sub(stats.TotalBet)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
		if limit > maxPageSize {
			limit = maxPageSize
		}
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
