package interfaces

import "context"

// PasscodeStore keeps one short-lived passcode hash per email.
type PasscodeStore interface {
	Put(ctx context.Context, email, codeHash string) error
	// Consume reports whether codeHash matches the stored value and, if it
	// does, removes it so the code cannot be replayed.
	Consume(ctx context.Context, email, codeHash string) (bool, error)
}
