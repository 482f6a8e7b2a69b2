package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portsrepo "github.com/KwakuBoohene/ackontant/internal/core/ports/repositories"
	portssvc "github.com/KwakuBoohene/ackontant/internal/core/ports/services"
	"github.com/KwakuBoohene/ackontant/internal/dto"
	"github.com/KwakuBoohene/ackontant/internal/middleware"
)

var (
	ErrSameAccount    = errors.New("source and destination accounts must differ")
	ErrNotCancellable = errors.New("only completed transfers can be cancelled")
)

// transferService orchestrates fund movement between two accounts of one
// user. Creation and cancellation each commit the transfer row, both linked
// transaction rows and both balance updates as a single unit.
type transferService struct {
	transferRepo portsrepo.TransferRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	balanceSvc   portssvc.BalanceSvc
	rateSvc      portssvc.ExchangeRateReaderSvc
}

// NewTransferService creates a new transfer service.
func NewTransferService(transferRepo portsrepo.TransferRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, balanceSvc portssvc.BalanceSvc, rateSvc portssvc.ExchangeRateReaderSvc) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo: transferRepo,
		accountRepo:  accountRepo,
		userRepo:     userRepo,
		balanceSvc:   balanceSvc,
		rateSvc:      rateSvc,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) loadOwnedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *transferService) CreateTransfer(ctx context.Context, userID string, req dto.CreateTransferRequest) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.SourceAccountID == req.DestinationAccountID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameAccount)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	source, err := s.loadOwnedAccount(ctx, userID, req.SourceAccountID)
	if err != nil {
		return nil, err
	}
	destination, err := s.loadOwnedAccount(ctx, userID, req.DestinationAccountID)
	if err != nil {
		return nil, err
	}
	if !source.IsActive || !destination.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAccountInactive)
	}

	// The transfer amount is denominated in the source account's currency.
	// ExchangeRate converts that amount to the user's base currency.
	rate := decimal.NewFromInt(1)
	rateSource := domain.RateSourcePlatform
	var userExchangeRateID *string
	switch {
	case req.UserExchangeRateID != nil:
		userRate, err := s.rateSvc.GetUserRateByID(ctx, userID, *req.UserExchangeRateID)
		if err != nil {
			return nil, err
		}
		if !userRate.IsActive {
			return nil, fmt.Errorf("%w: exchange rate %s is inactive", apperrors.ErrValidation, userRate.UserExchangeRateID)
		}
		if userRate.FromCurrencyCode != source.CurrencyCode || userRate.ToCurrencyCode != user.BaseCurrencyCode {
			return nil, fmt.Errorf("%w: exchange rate %s does not convert %s to %s", apperrors.ErrValidation, userRate.UserExchangeRateID, source.CurrencyCode, user.BaseCurrencyCode)
		}
		rate = userRate.Rate
		rateSource = domain.RateSourceUser
		userExchangeRateID = &userRate.UserExchangeRateID
	case req.ExchangeRate != nil:
		if req.ExchangeRate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
		}
		rate = req.ExchangeRate.Round(rateScale)
	case source.CurrencyCode != user.BaseCurrencyCode:
		resolved, err := s.rateSvc.ResolveRate(ctx, userID, source.CurrencyCode, user.BaseCurrencyCode, req.TransferDate)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("no %s to %s rate for %s: %w", source.CurrencyCode, user.BaseCurrencyCode, req.TransferDate.Format("2006-01-02"), apperrors.ErrRateUnavailable)
			}
			return nil, fmt.Errorf("failed to resolve rate: %w", err)
		}
		rate = resolved.Rate
		rateSource = resolved.Source
		userExchangeRateID = resolved.UserExchangeRateID
	}

	// The destination leg is denominated in the destination account's
	// currency: amount times the source-to-base rate.
	destAmount := req.Amount.Mul(rate).Round(amountScale)

	sourceChange, err := s.balanceSvc.ComputeChangeWithRate(ctx, user, source, domain.DirectionDebit, req.Amount, source.CurrencyCode, rate, req.TransferDate, req.AllowNegative)
	if err != nil {
		return nil, err
	}
	destChange, err := s.balanceSvc.ComputeChangeWithRate(ctx, user, destination, domain.DirectionCredit, destAmount, destination.CurrencyCode, decimal.NewFromInt(1), req.TransferDate, true)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	transferID := uuid.NewString()
	sourceTxnID := uuid.NewString()
	destTxnID := uuid.NewString()

	var ratePtr *decimal.Decimal
	if source.CurrencyCode != user.BaseCurrencyCode {
		r := rate
		ratePtr = &r
	}
	baseAmount := sourceChange.BaseDelta.Abs()

	sourceTxn := domain.Transaction{
		TransactionID:      sourceTxnID,
		UserID:             userID,
		AccountID:          source.AccountID,
		TransactionType:    domain.TransferTxn,
		Amount:             req.Amount.Round(amountScale),
		CurrencyCode:       source.CurrencyCode,
		BaseCurrencyAmount: baseAmount,
		ExchangeRate:       ratePtr,
		Description:        req.Description,
		TransactionDate:    req.TransferDate,
		TransferID:         &transferID,
		AuditFields:        audit,
	}
	destTxn := domain.Transaction{
		TransactionID:      destTxnID,
		UserID:             userID,
		AccountID:          destination.AccountID,
		TransactionType:    domain.TransferTxn,
		Amount:             destAmount,
		CurrencyCode:       destination.CurrencyCode,
		BaseCurrencyAmount: destChange.BaseDelta.Abs(),
		Description:        req.Description,
		TransactionDate:    req.TransferDate,
		TransferID:         &transferID,
		AuditFields:        audit,
	}

	transfer := domain.Transfer{
		TransferID:               transferID,
		UserID:                   userID,
		SourceAccountID:          source.AccountID,
		DestinationAccountID:     destination.AccountID,
		Amount:                   req.Amount.Round(amountScale),
		SourceCurrencyCode:       source.CurrencyCode,
		DestinationCurrencyCode:  destination.CurrencyCode,
		ExchangeRate:             rate,
		BaseCurrencyAmount:       baseAmount,
		TransferDate:             req.TransferDate,
		Description:              req.Description,
		Status:                   domain.TransferPending,
		RateSource:               rateSource,
		UserExchangeRateID:       userExchangeRateID,
		SourceTransactionID:      &sourceTxnID,
		DestinationTransactionID: &destTxnID,
		AuditFields:              audit,
	}

	if err := s.transferRepo.SaveTransfer(ctx, transfer, sourceTxn, destTxn, *sourceChange, *destChange); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Transfer rejected for insufficient funds", slog.String("source_account_id", source.AccountID))
			return nil, err
		}
		logger.Error("Failed to save transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	// SaveTransfer marks the row COMPLETED once both balances are applied.
	transfer.Status = domain.TransferCompleted

	logger.Info("Transfer created successfully", slog.String("transfer_id", transferID), slog.String("source_account_id", source.AccountID), slog.String("destination_account_id", destination.AccountID))
	return &transfer, nil
}

func (s *transferService) CancelTransfer(ctx context.Context, userID, transferID string) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if transfer.Status != domain.TransferCompleted {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrNotCancellable)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	source, err := s.accountRepo.FindAccountByID(ctx, transfer.SourceAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load source account: %w", err)
	}
	destination, err := s.accountRepo.FindAccountByID(ctx, transfer.DestinationAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load destination account: %w", err)
	}

	// Cancellation is a compensating action: it credits the source back and
	// debits the destination back with the stored rate, and may push the
	// destination balance negative.
	destAmount := transfer.Amount.Mul(transfer.ExchangeRate).Round(amountScale)
	sourceChange, err := s.balanceSvc.ComputeChangeWithRate(ctx, user, source, domain.DirectionCredit, transfer.Amount, transfer.SourceCurrencyCode, transfer.ExchangeRate, transfer.TransferDate, true)
	if err != nil {
		return nil, err
	}
	destChange, err := s.balanceSvc.ComputeChangeWithRate(ctx, user, destination, domain.DirectionDebit, destAmount, transfer.DestinationCurrencyCode, decimal.NewFromInt(1), transfer.TransferDate, true)
	if err != nil {
		return nil, err
	}

	if err := s.transferRepo.CancelTransfer(ctx, *transfer, *sourceChange, *destChange, userID); err != nil {
		logger.Error("Failed to cancel transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		return nil, fmt.Errorf("failed to cancel transfer: %w", err)
	}

	transfer.Status = domain.TransferCancelled
	transfer.SourceTransactionID = nil
	transfer.DestinationTransactionID = nil
	transfer.LastUpdatedAt = time.Now().UTC()
	transfer.LastUpdatedBy = userID

	logger.Info("Transfer cancelled successfully", slog.String("transfer_id", transferID))
	return transfer, nil
}

func (s *transferService) GetTransferByID(ctx context.Context, userID, transferID string) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return transfer, nil
}

func (s *transferService) ListTransfers(ctx context.Context, userID string, params portssvc.ListTransfersParams) (*portssvc.ListTransfersResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	transfers, nextToken, err := s.transferRepo.ListTransfersByUser(ctx, userID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transfers", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	if transfers == nil {
		transfers = []domain.Transfer{}
	}

	return &portssvc.ListTransfersResult{
		Transfers: transfers,
		NextToken: nextToken,
	}, nil
}
