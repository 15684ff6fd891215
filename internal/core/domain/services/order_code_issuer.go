package services

import (
	"context"
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/order"
)

// DefaultMaxCodeAttempts bounds the retry loop per code kind.
const DefaultMaxCodeAttempts = 32

// ErrCodeSpaceExhausted is returned when no free code was found within the
// attempt budget.
var ErrCodeSpaceExhausted = errors.New("could not generate a unique order code")

// CodeLookup answers whether a code is already taken.
type CodeLookup interface {
	ExistsPublicCode(ctx context.Context, code order.PublicCode) (bool, error)
	ExistsSecretCode(ctx context.Context, code order.SecretCode) (bool, error)
}

// OrderCodeIssuer picks a public and a secret code that no stored order uses.
//
// The public code space is only 36^4, so collisions are expected once the
// store holds a few thousand orders and retrying is part of normal operation.
// The uniqueness constraint in storage stays the final arbiter: a concurrent
// writer may still claim the same code between lookup and insert.
//
// Example:
//
//	issuer := NewOrderCodeIssuer(NewRandomCodeGenerator(), DefaultMaxCodeAttempts)
//	publicCode, secretCode, err := issuer.Issue(ctx, orderRepo)
type OrderCodeIssuer struct {
	generator   CodeGenerator
	maxAttempts int
}

func NewOrderCodeIssuer(generator CodeGenerator, maxAttempts int) OrderCodeIssuer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxCodeAttempts
	}
	return OrderCodeIssuer{
		generator:   generator,
		maxAttempts: maxAttempts,
	}
}

// Issue returns a fresh pair of codes.
func (i OrderCodeIssuer) Issue(ctx context.Context, lookup CodeLookup) (order.PublicCode, order.SecretCode, error) {
	publicCode, err := retryUnique(ctx, i.maxAttempts, "public", i.generator.PublicCode, lookup.ExistsPublicCode)
	if err != nil {
		return "", "", err
	}

	secretCode, err := retryUnique(ctx, i.maxAttempts, "secret", i.generator.SecretCode, lookup.ExistsSecretCode)
	if err != nil {
		return "", "", err
	}

	return publicCode, secretCode, nil
}

func retryUnique[C any](
	ctx context.Context,
	maxAttempts int,
	kind string,
	generate func() (C, error),
	exists func(context.Context, C) (bool, error),
) (C, error) {
	var zero C
	for range maxAttempts {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		candidate, err := generate()
		if err != nil {
			return zero, err
		}

		taken, err := exists(ctx, candidate)
		if err != nil {
			return zero, err
		}
		if !taken {
			return candidate, nil
		}
	}

	return zero, fmt.Errorf("%w: %s code, %d attempts", ErrCodeSpaceExhausted, kind, maxAttempts)
}
