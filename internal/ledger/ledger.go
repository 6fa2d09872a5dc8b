package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/goldchip/casino-backend/internal/metrics"
	"github.com/goldchip/casino-backend/internal/models"
)

// maxSettleAttempts bounds the optimistic-lock retry loop. Conflicts past
// this point surface as ErrConflict to the caller.
const maxSettleAttempts = 3

// Settlement is one round ready to be applied to an account: the stake to
// debit, the amount to credit back, and the record to keep.
type Settlement struct {
	OwnerID   string
	RoundID   string
	GameType  string
	Wager     decimal.Decimal
	WinAmount decimal.Decimal
	Result    string
	GameData  json.RawMessage
}

// Result reports what one settlement wrote.
type Result struct {
	RoundID       string
	NewBalance    decimal.Decimal
	BetMovementID string
	WinMovementID string
}

type Service struct {
	db  *sql.DB
	log *zap.Logger
}

func NewService(db *sql.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// Settle atomically debits the wager, credits the winnings and records
// the round. Each attempt runs in its own transaction; a version conflict
// rolls everything back and retries from the balance read, so either all
// rows land or none do.
func (s *Service) Settle(ctx context.Context, stl Settlement) (*Result, error) {
	var lastErr error
	for attempt := 1; attempt <= maxSettleAttempts; attempt++ {
		res, err := s.settleOnce(ctx, stl)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, err
		}
		lastErr = err
		metrics.RecordConflict()
		s.log.Warn("settlement conflict, retrying",
			zap.String("round_id", stl.RoundID),
			zap.String("owner_id", stl.OwnerID),
			zap.Int("attempt", attempt))
	}
	return nil, lastErr
}

func (s *Service) settleOnce(ctx context.Context, stl Settlement) (*Result, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback()

	account, err := lockAccount(ctx, tx, stl.OwnerID)
	if err != nil {
		return nil, err
	}

	if account.Balance.LessThan(stl.Wager) {
		return nil, fmt.Errorf("%w: balance %s, wager %s",
			ErrInsufficientFunds, account.Balance, stl.Wager)
	}

	afterBet := account.Balance.Sub(stl.Wager)
	finalBalance := afterBet.Add(stl.WinAmount)

	// The funds check above already bounds the debit, so a negative
	// result can only mean a corrupt settlement. Never write it.
	if finalBalance.IsNegative() {
		return nil, fmt.Errorf("settlement would drive balance negative: account %s, round %s, balance %s",
			account.ID, stl.RoundID, finalBalance)
	}

	if err := updateBalance(ctx, tx, account.ID, finalBalance, account.Version); err != nil {
		return nil, err
	}

	res := &Result{RoundID: stl.RoundID, NewBalance: finalBalance}

	res.BetMovementID, err = insertMovement(ctx, tx, models.Movement{
		AccountID:     account.ID,
		RoundID:       stl.RoundID,
		Kind:          models.MovementBet,
		Amount:        stl.Wager.Neg(),
		BalanceBefore: account.Balance,
		BalanceAfter:  afterBet,
	})
	if err != nil {
		return nil, err
	}

	if stl.WinAmount.IsPositive() {
		res.WinMovementID, err = insertMovement(ctx, tx, models.Movement{
			AccountID:     account.ID,
			RoundID:       stl.RoundID,
			Kind:          models.MovementWin,
			Amount:        stl.WinAmount,
			BalanceBefore: afterBet,
			BalanceAfter:  finalBalance,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := insertHistory(ctx, tx, account.ID, stl); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", err)
	}
	return res, nil
}

// Balance reads the current balance without locking.
func (s *Service) Balance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.db.QueryRowContext(ctx, `
		SELECT balance FROM accounts WHERE owner_id = $1`,
		ownerID).Scan(&balance)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrAccountNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}

func lockAccount(ctx context.Context, tx *sql.Tx, ownerID string) (*models.Account, error) {
	var account models.Account
	err := tx.QueryRowContext(ctx, `
		SELECT id, balance, version
		FROM accounts
		WHERE owner_id = $1
		FOR UPDATE`, ownerID).Scan(&account.ID, &account.Balance, &account.Version)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock account: %w", err)
	}
	return &account, nil
}

func updateBalance(ctx context.Context, tx *sql.Tx, accountID string, newBalance decimal.Decimal, version int) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4`,
		newBalance, time.Now(), accountID, version)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: account %s version %d", ErrConflict, accountID, version)
	}
	return nil
}

func insertMovement(ctx context.Context, tx *sql.Tx, m models.Movement) (string, error) {
	id := uuid.NewString()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO movements (id, account_id, round_id, kind, amount, balance_before, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, m.AccountID, m.RoundID, m.Kind, m.Amount, m.BalanceBefore, m.BalanceAfter, time.Now())
	if err != nil {
		return "", fmt.Errorf("insert %s movement: %w", m.Kind, err)
	}
	return id, nil
}

func insertHistory(ctx context.Context, tx *sql.Tx, accountID string, stl Settlement) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO game_history (id, account_id, round_id, game_type, bet_amount, win_amount, result, game_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.NewString(), accountID, stl.RoundID, stl.GameType,
		stl.Wager, stl.WinAmount, stl.Result, stl.GameData, time.Now())
	if err != nil {
		return fmt.Errorf("insert game history: %w", err)
	}
	return nil
}
