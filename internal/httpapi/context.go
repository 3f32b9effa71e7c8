// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package httpapi

import (
	"context"

	"github.com/quibble/quibble/internal/auth"
)

type contextKey int

const accountKey contextKey = iota

// withAccount attaches the authenticated account to the request context.
func withAccount(ctx context.Context, account *auth.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// AccountFrom returns the authenticated account, or nil outside an
// authenticated request.
func AccountFrom(ctx context.Context) *auth.Account {
	account, _ := ctx.Value(accountKey).(*auth.Account)
	return account
}
