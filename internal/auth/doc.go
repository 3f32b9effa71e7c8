// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

// Package auth implements the account and session-token lifecycle for Quibble.
//
// # Domain Types
//
// Account is the credential record persisted by the registrar. Accounts should
// be created through NewAccount, which validates the email and username before
// the record ever reaches a repository. Direct struct initialization bypasses
// validation and may create invalid state.
//
// # Components
//
//   - PasswordHasher / Argon2idHasher - one-way salted password hashing
//   - VerificationCodec - signed, time-bounded email verification tokens
//   - SessionCodec - signed access/refresh token pairs
//   - Registrar - signup and registration orchestration
//   - Service - login and credential verification
//   - CookieManager - session cookie directives
//
// Tokens are stateless: validity is signature plus expiry, with no server-side
// session or token table. A verification token therefore stays valid until its
// natural expiry even after it has been used once.
package auth
