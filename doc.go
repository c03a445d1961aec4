// Package capi provides the shared value types used to represent an
// investment account's activity: exact decimal quantities and monetary
// amounts. It is designed so that parsed statements stay exact end to end,
// without float rounding surprises between the broker's file and the
// reports derived from it.
//
// The core functionalities include:
//   - Quantity: an exact decimal number of units, with the arithmetic
//     needed to track signed running positions.
//   - Money: an exact decimal amount in a given currency, formatted using
//     the currency's own conventions.
//   - Statement parsing: the interactivebrokers sub-package reconstructs a
//     structured statement from a broker-exported activity CSV.
//
// This package serves as the foundational logic for the `cas` command-line
// tool, which loads a statement file and renders reports from it.
package capi
