package settlement

import "errors"

// The failure taxonomy of the engine. Every operation returns either a
// success outcome or exactly one of these, possibly wrapped with context;
// match with errors.Is. None of them is retryable by the engine itself.
var (
	// ErrPlayerNotFound: no local player row for the given play ID.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrTransactionNotFound: the referenced round or bet does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionAlreadyExists: idempotency rejection on bet or bonus
	// creation. The vendor should treat it as "already processed".
	ErrTransactionAlreadyExists = errors.New("transaction already exists")

	// ErrTransactionAlreadySettled: settle or cancel hit a terminal row.
	ErrTransactionAlreadySettled = errors.New("transaction already settled")

	// ErrInsufficientFunds: the balance gate failed before any debit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrWallet: the wallet RPC errored, timed out or returned a non-success
	// status. Whether money moved is not inferred here.
	ErrWallet = errors.New("wallet error")

	// ErrInvalidRequest: structurally malformed normalized input. Adapters
	// should catch this earlier; the engine rejects it regardless.
	ErrInvalidRequest = errors.New("invalid request")
)
