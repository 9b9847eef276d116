package persistence

import (
	"time"
)

// epoch is the legacy "no construction window" sentinel stored in both build date columns
var epoch = time.Unix(0, 0).UTC()

// FortBuildModel represents the fort_builds table
// NOTE: an idle build stores the Unix epoch in build_start_date and build_end_date
type FortBuildModel struct {
	BuildID        int64     `gorm:"column:build_id;primaryKey;autoIncrement"`
	PlayerID       int       `gorm:"column:player_id;not null;index:idx_fort_builds_player"`
	PlantID        int       `gorm:"column:plant_id;not null"`
	Level          int       `gorm:"column:level;not null;default:0"`
	PositionX      int       `gorm:"column:position_x;not null"`
	PositionZ      int       `gorm:"column:position_z;not null"`
	BuildStartDate time.Time `gorm:"column:build_start_date;not null"`
	BuildEndDate   time.Time `gorm:"column:build_end_date;not null"`
	IsNew          bool      `gorm:"column:is_new;not null;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
}

func (FortBuildModel) TableName() string {
	return "fort_builds"
}

// FortDetailModel represents the fort_details table (one row per player)
// The working carpenter count is never stored; it is derived from fort_builds.
type FortDetailModel struct {
	PlayerID     int       `gorm:"column:player_id;primaryKey;autoIncrement:false"`
	CarpenterNum int       `gorm:"column:carpenter_num;not null;default:2"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (FortDetailModel) TableName() string {
	return "fort_details"
}

// WalletModel represents the wallets table
type WalletModel struct {
	PlayerID       int       `gorm:"column:player_id;primaryKey;autoIncrement:false"`
	Coin           int       `gorm:"column:coin;not null;default:0"`
	Wyrmite        int       `gorm:"column:wyrmite;not null;default:0"`
	Diamantium     int       `gorm:"column:diamantium;not null;default:0"`
	BuildTimePoint int       `gorm:"column:build_time_point;not null;default:0"` // halidom hustle hammers
	DewPoint       int       `gorm:"column:dew_point;not null;default:0"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (WalletModel) TableName() string {
	return "wallets"
}

// MaterialModel represents the materials table
type MaterialModel struct {
	PlayerID   int       `gorm:"column:player_id;primaryKey;autoIncrement:false"`
	MaterialID int       `gorm:"column:material_id;primaryKey;autoIncrement:false"`
	Quantity   int       `gorm:"column:quantity;not null;default:0"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (MaterialModel) TableName() string {
	return "materials"
}

// PaymentRecordModel represents the payment_records ledger table
type PaymentRecordModel struct {
	ID            string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	PlayerID      int       `gorm:"column:player_id;not null;index:idx_payment_records_player"`
	PaymentType   string    `gorm:"column:payment_type;not null"`
	Amount        int       `gorm:"column:amount;not null"` // Positive for grants, negative for debits
	BalanceBefore int       `gorm:"column:balance_before;not null"`
	BalanceAfter  int       `gorm:"column:balance_after;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;not null;index:idx_payment_records_created"`
}

func (PaymentRecordModel) TableName() string {
	return "payment_records"
}

// MissionProgressModel represents the mission_progress table
type MissionProgressModel struct {
	PlayerID  int       `gorm:"column:player_id;primaryKey;autoIncrement:false"`
	Event     string    `gorm:"column:event;primaryKey"`
	Count     int       `gorm:"column:count;not null;default:0"`
	LastValue int       `gorm:"column:last_value;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (MissionProgressModel) TableName() string {
	return "mission_progress"
}

// AllModels lists every table managed by this package, in migration order
func AllModels() []interface{} {
	return []interface{}{
		&FortDetailModel{},
		&FortBuildModel{},
		&WalletModel{},
		&MaterialModel{},
		&PaymentRecordModel{},
		&MissionProgressModel{},
	}
}
