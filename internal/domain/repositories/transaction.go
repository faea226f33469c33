package repositories

import "context"

// TxFn is a function that runs within a transaction.
// Repositories called with the ctx it receives join the transaction.
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions
type TransactionManager interface {
	// ExecTx runs fn in a transaction, committing if fn returns nil
	ExecTx(ctx context.Context, fn TxFn) error
}
