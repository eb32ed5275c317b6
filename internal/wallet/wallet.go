// Package wallet provides the debit/credit capability consumed by the game
// engines. Engines never see more than the balance; storage belongs to the
// calling shell.
package wallet

import (
	"errors"
	"math"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Wallet tracks a single player's balance in dollars.
type Wallet struct {
	balance float64
}

// New creates a wallet with the given starting balance.
func New(balance float64) *Wallet {
	if !isFinite(balance) || balance < 0 {
		balance = 0
	}
	return &Wallet{balance: balance}
}

// Balance returns the current balance.
func (w *Wallet) Balance() float64 {
	return w.balance
}

// Debit removes amount from the balance. The amount must be positive, finite
// and covered by the balance; on error nothing is mutated.
func (w *Wallet) Debit(amount float64) error {
	if !isFinite(amount) || amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > w.balance {
		return ErrInsufficientFunds
	}
	w.balance -= amount
	return nil
}

// Credit adds amount to the balance. Zero is a valid credit (a settled loss).
func (w *Wallet) Credit(amount float64) error {
	if !isFinite(amount) || amount < 0 {
		return ErrInvalidAmount
	}
	w.balance += amount
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
