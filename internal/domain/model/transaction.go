package model

import "time"

type TransactionType string

const (
	TxTransfer TransactionType = "transfer"
	TxReward   TransactionType = "reward"
	TxPayment  TransactionType = "payment"
	TxMint     TransactionType = "mint"
)

type TransactionStatus string

const (
	TxCompleted TransactionStatus = "completed"
	TxPending   TransactionStatus = "pending"
	TxFailed    TransactionStatus = "failed"
)

// Transaction is an append-only ledger entry. Status is fixed at creation;
// no settlement follow-up is modeled.
type Transaction struct {
	ID          string            `json:"id"`
	Hash        string            `json:"hash"` // decorative, generated
	Type        TransactionType   `json:"type"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Amount      int               `json:"amount"`
	Status      TransactionStatus `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Description string            `json:"description,omitempty"`
}
