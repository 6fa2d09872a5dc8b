package services

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/goldchip/casino-backend/internal/events"
	"github.com/goldchip/casino-backend/internal/games"
	"github.com/goldchip/casino-backend/internal/ledger"
	"github.com/goldchip/casino-backend/internal/metrics"
	"github.com/goldchip/casino-backend/internal/middleware"
)

// idempotencyTTL is how long a settled response stays replayable under
// its Idempotency-Key.
const idempotencyTTL = time.Minute

// GameService owns the play endpoints. Every handler resolves the round
// first, then hands the money movement to the ledger in one atomic
// settlement.
type GameService struct {
	ledger    *ledger.Service
	redis     *redis.Client
	events    *events.Publisher
	validator *ValidationHelper
	log       *zap.Logger
}

func NewGameService(ledgerSvc *ledger.Service, redisClient *redis.Client, publisher *events.Publisher, log *zap.Logger) *GameService {
	return &GameService{
		ledger:    ledgerSvc,
		redis:     redisClient,
		events:    publisher,
		validator: NewValidationHelper(),
		log:       log,
	}
}

type PlayRouletteRequest struct {
	Bets []games.RouletteBet `json:"bets" validate:"required,min=1,dive"`
}

type PlayDiceRequest struct {
	BetType string          `json:"betType" validate:"required"`
	Amount  decimal.Decimal `json:"amount"`
}

type PlaySlotsRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type PlayBlackjackRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type PlayPokerRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	CardsToKeep []int           `json:"cardsToKeep"`
}

// PlayResponse is the settled round as returned to the player.
type PlayResponse struct {
	RoundID   string          `json:"round_id"`
	GameType  string          `json:"game_type"`
	Result    string          `json:"result"`
	BetAmount decimal.Decimal `json:"bet_amount"`
	WinAmount decimal.Decimal `json:"win_amount"`
	NetChange decimal.Decimal `json:"net_change"`
	Balance   decimal.Decimal `json:"balance"`
	GameData  map[string]any  `json:"game_data"`
}

func (s *GameService) PlayRoulette(w http.ResponseWriter, r *http.Request) {
	var req PlayRouletteRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := games.ValidateRouletteBets(req.Bets); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	rng := games.NewRand()
	outcome := games.ResolveRoulette(games.SpinWheel(rng), req.Bets)

	s.settleAndRespond(w, r, games.TotalRouletteWager(req.Bets), outcome)
}

func (s *GameService) PlayDice(w http.ResponseWriter, r *http.Request) {
	var req PlayDiceRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := games.ValidateDiceBet(req.BetType, req.Amount); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	rng := games.NewRand()
	die1, die2 := games.RollDice(rng)
	outcome := games.ResolveDice(rng, req.BetType, req.Amount, die1, die2)

	s.settleAndRespond(w, r, req.Amount, outcome)
}

func (s *GameService) PlaySlots(w http.ResponseWriter, r *http.Request) {
	var req PlaySlotsRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := games.ValidateWager(req.Amount); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	outcome := games.ResolveSlots(games.SpinReels(games.NewRand()), req.Amount)

	s.settleAndRespond(w, r, req.Amount, outcome)
}

func (s *GameService) PlayBlackjack(w http.ResponseWriter, r *http.Request) {
	var req PlayBlackjackRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := games.ValidateWager(req.Amount); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	round := games.DealBlackjack(games.NewRand())
	outcome := games.ResolveBlackjack(round, req.Amount)

	s.settleAndRespond(w, r, req.Amount, outcome)
}

func (s *GameService) PlayPoker(w http.ResponseWriter, r *http.Request) {
	var req PlayPokerRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := games.ValidateWager(req.Amount); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := games.ValidatePokerKeeps(req.CardsToKeep); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	hand := games.DealPokerHand(games.NewRand(), req.CardsToKeep)
	outcome := games.ResolvePoker(hand, req.CardsToKeep, req.Amount)

	s.settleAndRespond(w, r, req.Amount, outcome)
}

// decodeRequest enforces the shared body rules: size cap, unknown fields
// rejected, exactly one JSON object.
func (s *GameService) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}
	if err := s.validator.ValidateStruct(dst); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return false
	}
	return true
}

// settleAndRespond applies the resolved outcome to the player's wallet
// and writes the settled round. When an Idempotency-Key header repeats
// within the TTL, the cached response is replayed instead of settling a
// second round.
func (s *GameService) settleAndRespond(w http.ResponseWriter, r *http.Request, wager decimal.Decimal, outcome games.Outcome) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")
	if cached, ok := s.cachedResponse(r, userID, idemKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Idempotency-Replayed", "true")
		w.Write(cached)
		return
	}

	gameData, err := json.Marshal(outcome.GameData)
	if err != nil {
		s.log.Error("game data marshal failed", zap.Error(err))
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}

	stl := ledger.Settlement{
		OwnerID:   userID,
		RoundID:   uuid.NewString(),
		GameType:  string(outcome.GameType),
		Wager:     wager,
		WinAmount: outcome.WinAmount,
		Result:    string(outcome.Result),
		GameData:  gameData,
	}

	start := time.Now()
	res, err := s.ledger.Settle(r.Context(), stl)
	if err != nil {
		metrics.RecordSettlementError(stl.GameType, errorKind(err))
		s.log.Warn("settlement failed",
			zap.String("round_id", stl.RoundID),
			zap.String("user_id", userID),
			zap.String("game", stl.GameType),
			zap.Error(err))
		SendErrorResponse(w, settlementErrorMessage(err), StatusFromError(err), nil)
		return
	}
	metrics.RecordSettlement(stl.GameType, stl.Result, time.Since(start))

	s.events.PublishRoundSettled(r.Context(), events.RoundSettled{
		RoundID:   res.RoundID,
		AccountID: userID,
		GameType:  stl.GameType,
		BetAmount: wager,
		WinAmount: outcome.WinAmount,
		Result:    stl.Result,
	})

	resp := PlayResponse{
		RoundID:   res.RoundID,
		GameType:  stl.GameType,
		Result:    stl.Result,
		BetAmount: wager,
		WinAmount: outcome.WinAmount,
		NetChange: outcome.WinAmount.Sub(wager),
		Balance:   res.NewBalance,
		GameData:  outcome.GameData,
	}

	body, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("response marshal failed", zap.Error(err))
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}
	s.cacheResponse(r, userID, idemKey, body)

	s.log.Info("round settled",
		zap.String("round_id", res.RoundID),
		zap.String("user_id", userID),
		zap.String("game", stl.GameType),
		zap.String("result", stl.Result))

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (s *GameService) cachedResponse(r *http.Request, userID, idemKey string) ([]byte, bool) {
	if s.redis == nil || idemKey == "" {
		return nil, false
	}
	cached, err := s.redis.Get(r.Context(), idempotencyCacheKey(userID, idemKey)).Bytes()
	if err != nil {
		return nil, false
	}
	return cached, true
}

func (s *GameService) cacheResponse(r *http.Request, userID, idemKey string, body []byte) {
	if s.redis == nil || idemKey == "" {
		return
	}
	if err := s.redis.Set(r.Context(), idempotencyCacheKey(userID, idemKey), body, idempotencyTTL).Err(); err != nil {
		s.log.Warn("idempotency cache write failed", zap.Error(err))
	}
}

func idempotencyCacheKey(userID, idemKey string) string {
	return "idem:" + userID + ":" + idemKey
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, games.ErrInvalidBet):
		return "validation"
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ledger.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, ledger.ErrConflict):
		return "conflict"
	default:
		return "storage"
	}
}

func settlementErrorMessage(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "Insufficient funds"
	case errors.Is(err, ledger.ErrAccountNotFound):
		return "Account not found"
	case errors.Is(err, ledger.ErrConflict):
		return "Settlement conflict, please retry"
	default:
		return "An Internal Error Occurred"
	}
}
