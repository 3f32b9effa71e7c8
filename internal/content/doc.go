// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

// Package content holds the community, post, and follow domain model.
//
// # Domain Types
//
//   - Community: a named topic space accounts can join.
//   - Post: a text or media submission by an account, optionally in a community.
//
// # Components
//
//   - Service: validation and authorization in front of the repositories.
//
// Membership and follow relations are plain join rows; they carry no domain
// type of their own.
package content
