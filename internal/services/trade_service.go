package services

import (
	"context"
	"errors"
	"time"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/events"
	"stockfolio/internal/logger"
	"stockfolio/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxTradeAttempts bounds retries of a trade that lost a lock race.
const maxTradeAttempts = 3

// tradeService applies buy and sell instructions to the ledger. Each trade
// runs in one database transaction holding row locks on the cash balance
// and the holding, and trades are additionally serialized in-process.
type tradeService struct {
	db        *gorm.DB
	publisher events.Publisher
	timeout   time.Duration
	slot      chan struct{}
	now       func() time.Time
	log       *zap.SugaredLogger
}

// NewTradeService creates a new TradeServicer. Each trade must finish
// within timeout or it is rolled back.
func NewTradeService(db *gorm.DB, publisher events.Publisher, timeout time.Duration) TradeServicer {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &tradeService{
		db:        db,
		publisher: publisher,
		timeout:   timeout,
		slot:      make(chan struct{}, 1),
		now:       time.Now,
		log:       logger.Named("trade"),
	}
}

// Buy debits quantity * price from the balance and adds the shares.
func (s *tradeService) Buy(ctx context.Context, req TradeRequest) (*TradeResult, error) {
	return s.execute(ctx, models.TradeBuy, req)
}

// Sell removes the shares and credits quantity * price to the balance.
func (s *tradeService) Sell(ctx context.Context, req TradeRequest) (*TradeResult, error) {
	return s.execute(ctx, models.TradeSell, req)
}

func (s *tradeService) execute(ctx context.Context, side models.TradeType, req TradeRequest) (*TradeResult, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be a positive integer")
	}
	if req.PortfolioID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "portfolio_id is required")
	}
	if req.ClientPrice != nil && !req.ClientPrice.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price must be positive")
	}
	req.Symbol = normalizeSymbol(req.Symbol)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	select {
	case s.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, apperrors.Wrap(apperrors.ErrTradeTimeout, ctx.Err())
	}
	defer func() { <-s.slot }()

	var (
		result *TradeResult
		err    error
	)
	for attempt := 1; attempt <= maxTradeAttempts; attempt++ {
		result, err = s.apply(ctx, side, req)
		if err == nil || !isLockConflict(err) {
			break
		}
		s.log.Warnw("trade lost a lock race, retrying",
			"attempt", attempt,
			"symbol", req.Symbol,
			"portfolio_id", req.PortfolioID,
			"error", err,
		)
	}
	if err != nil {
		switch {
		case isLockConflict(err):
			return nil, apperrors.Wrap(apperrors.ErrConcurrencyConflict, err)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return nil, apperrors.Wrap(apperrors.ErrTradeTimeout, err)
		}
		return nil, err
	}

	s.log.Infow("trade executed",
		"side", side,
		"symbol", req.Symbol,
		"portfolio_id", req.PortfolioID,
		"quantity", req.Quantity,
		"price", result.Transaction.Price.String(),
		"new_balance", result.NewBalance.StringFixed(2),
	)
	s.publish(ctx, result)
	return result, nil
}

// apply runs one attempt of the trade inside a database transaction.
func (s *tradeService) apply(ctx context.Context, side models.TradeType, req TradeRequest) (*TradeResult, error) {
	var result TradeResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stock, err := findStock(tx, req.Symbol)
		if err != nil {
			return err
		}
		portfolio, err := lockPortfolio(tx, req.PortfolioID, "SHARE")
		if err != nil {
			return err
		}

		price := stock.CurrentPrice
		if !price.IsPositive() {
			return apperrors.ErrQuoteUnavailable
		}
		if req.ClientPrice != nil && !req.ClientPrice.Equal(price) {
			s.log.Infow("client price differs from ledger price, executing at ledger price",
				"symbol", stock.Symbol,
				"client_price", req.ClientPrice.String(),
				"ledger_price", price.String(),
			)
		}

		var account models.AccountBalance
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, models.AccountID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		pos, err := lockPosition(tx, portfolio.ID, stock.ID)
		if err != nil {
			return err
		}

		total := price.Mul(decimal.NewFromInt(req.Quantity))
		switch side {
		case models.TradeBuy:
			if total.GreaterThan(account.Balance) {
				return apperrors.ErrInsufficientFunds
			}
			account.Balance = account.Balance.Sub(total)
			pos = pos.buy(req.Quantity, price)
		case models.TradeSell:
			if pos.quantity() < req.Quantity {
				return apperrors.ErrInsufficientShares
			}
			account.Balance = account.Balance.Add(total)
			pos = pos.sell(req.Quantity)
		}

		if _, err := pos.save(tx); err != nil {
			return err
		}

		now := s.now().UTC()
		if err := tx.Model(&models.AccountBalance{}).Where("id = ?", models.AccountID).Updates(map[string]any{
			"balance":      account.Balance,
			"last_updated": now,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		txn := &models.Transaction{
			PortfolioID: portfolio.ID,
			StockID:     stock.ID,
			Type:        side,
			Quantity:    req.Quantity,
			Price:       price,
			Timestamp:   now,
		}
		if err := tx.Omit(clause.Associations).Create(txn).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		txn.Stock = *stock
		txn.Portfolio = *portfolio

		snapshot, err := recordSnapshot(tx, models.SnapshotSourceTrade, now)
		if err != nil {
			return err
		}

		result = TradeResult{Transaction: txn, NewBalance: account.Balance, Snapshot: snapshot}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// publish emits the trade event. The trade is already committed, so a
// failure is only logged.
func (s *tradeService) publish(ctx context.Context, result *TradeResult) {
	txn := result.Transaction
	event := events.TradeEvent{
		TransactionID: txn.ID,
		PortfolioID:   txn.PortfolioID,
		Symbol:        txn.Stock.Symbol,
		Side:          string(txn.Type),
		Quantity:      txn.Quantity,
		Price:         txn.Price,
		Total:         txn.Total(),
		NewBalance:    result.NewBalance,
		NetWorth:      result.Snapshot.TotalNetWorth,
		ExecutedAt:    txn.Timestamp,
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishTrade(pubCtx, event); err != nil {
		s.log.Errorw("failed to publish trade event", "transaction_id", txn.ID, "error", err)
	}
}

// isLockConflict reports whether err is a serialization failure or deadlock
// that a retry may resolve.
func isLockConflict(err error) bool {
	if errors.Is(err, apperrors.ErrConcurrencyConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}
