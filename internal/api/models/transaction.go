package models

import (
	"time"
)

const (
	KindIncome  = "entrada"
	KindExpense = "saida"
)

// Transaction is a ledger movement owned by a user. Amount is in cents.
type Transaction struct {
	ID       int64     `gorm:"primaryKey" json:"id"`
	UserID   int64     `gorm:"not null;index" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name     string    `gorm:"not null" json:"name"`
	Amount   int64     `gorm:"not null" json:"amount"`
	Category string    `gorm:"not null" json:"category"`
	Kind     string    `gorm:"not null;check:chk_transactions_kind,kind IN ('entrada','saida')" json:"kind"`
	Date     time.Time `gorm:"autoCreateTime;index" json:"date"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Summary aggregates a user's transactions.
type Summary struct {
	Count   int64
	Income  int64
	Expense int64
}
