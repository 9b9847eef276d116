package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// walletColumns maps each spendable currency onto its wallets column
var walletColumns = map[fort.PaymentType]string{
	fort.PaymentTypeCoin:                "coin",
	fort.PaymentTypeWyrmite:             "wyrmite",
	fort.PaymentTypeDiamantium:          "diamantium",
	fort.PaymentTypeHalidomHustleHammer: "build_time_point",
	fort.PaymentTypeDewPoint:            "dew_point",
}

// GormWalletRepository implements fort.PaymentService and fort.Wallet using GORM.
// Every balance change is written to the payment_records ledger.
type GormWalletRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormWalletRepository creates a new GORM wallet repository
func NewGormWalletRepository(db *gorm.DB, clock shared.Clock) *GormWalletRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormWalletRepository{db: db, clock: clock}
}

// ProcessPayment debits amount of paymentType, failing with ShopInsufficientFunds on a short balance
func (r *GormWalletRepository) ProcessPayment(ctx context.Context, playerID shared.PlayerID, paymentType fort.PaymentType, amount int) error {
	column, ok := walletColumns[paymentType]
	if !ok {
		return fort.NewPaymentTypeInvalidError(paymentType, "payment")
	}
	if amount < 0 {
		return shared.NewValidationError("amount", "must not be negative")
	}
	if amount == 0 {
		return nil
	}

	wallet, err := r.ensureWallet(ctx, playerID)
	if err != nil {
		return err
	}

	balance := balanceOf(wallet, paymentType)
	if balance < amount {
		return fort.NewInsufficientFundsError(paymentType, amount, balance)
	}

	// Conditional update guards against a concurrent debit between read and write
	result := r.db.WithContext(ctx).
		Model(&WalletModel{}).
		Where("player_id = ? AND "+column+" >= ?", playerID.Value(), amount).
		Update(column, gorm.Expr(column+" - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fort.NewInsufficientFundsError(paymentType, amount, balance)
	}

	return r.record(ctx, playerID, paymentType, -amount, balance)
}

// Grant credits amount of paymentType
func (r *GormWalletRepository) Grant(ctx context.Context, playerID shared.PlayerID, paymentType fort.PaymentType, amount int) error {
	column, ok := walletColumns[paymentType]
	if !ok {
		return fort.NewPaymentTypeInvalidError(paymentType, "grant")
	}
	if amount <= 0 {
		return shared.NewValidationError("amount", "must be positive")
	}

	wallet, err := r.ensureWallet(ctx, playerID)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&WalletModel{}).
		Where("player_id = ?", playerID.Value()).
		Update(column, gorm.Expr(column+" + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit wallet: %w", result.Error)
	}

	return r.record(ctx, playerID, paymentType, amount, balanceOf(wallet, paymentType))
}

// Balances returns every currency the player holds
func (r *GormWalletRepository) Balances(ctx context.Context, playerID shared.PlayerID) (map[fort.PaymentType]int, error) {
	wallet, err := r.ensureWallet(ctx, playerID)
	if err != nil {
		return nil, err
	}

	balances := make(map[fort.PaymentType]int, len(walletColumns))
	for paymentType := range walletColumns {
		balances[paymentType] = balanceOf(wallet, paymentType)
	}
	return balances, nil
}

// History returns the player's ledger entries, newest first
func (r *GormWalletRepository) History(ctx context.Context, playerID shared.PlayerID, limit int) ([]PaymentRecordModel, error) {
	query := r.db.WithContext(ctx).
		Where("player_id = ?", playerID.Value()).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []PaymentRecordModel
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment records: %w", err)
	}
	return records, nil
}

func (r *GormWalletRepository) record(ctx context.Context, playerID shared.PlayerID, paymentType fort.PaymentType, delta, before int) error {
	entry := &PaymentRecordModel{
		ID:            uuid.New().String(),
		PlayerID:      playerID.Value(),
		PaymentType:   paymentType.String(),
		Amount:        delta,
		BalanceBefore: before,
		BalanceAfter:  before + delta,
		CreatedAt:     r.clock.Now(),
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}

func (r *GormWalletRepository) ensureWallet(ctx context.Context, playerID shared.PlayerID) (*WalletModel, error) {
	var model WalletModel
	result := r.db.WithContext(ctx).Where("player_id = ?", playerID.Value()).First(&model)
	if result.Error == nil {
		return &model, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find wallet: %w", result.Error)
	}

	model = WalletModel{PlayerID: playerID.Value()}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	if err := r.db.WithContext(ctx).Where("player_id = ?", playerID.Value()).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}
	return &model, nil
}

func balanceOf(wallet *WalletModel, paymentType fort.PaymentType) int {
	switch paymentType {
	case fort.PaymentTypeCoin:
		return wallet.Coin
	case fort.PaymentTypeWyrmite:
		return wallet.Wyrmite
	case fort.PaymentTypeDiamantium:
		return wallet.Diamantium
	case fort.PaymentTypeHalidomHustleHammer:
		return wallet.BuildTimePoint
	case fort.PaymentTypeDewPoint:
		return wallet.DewPoint
	default:
		return 0
	}
}
