// Package units provides the pure conversion helpers used across the CVN-1
// SDK for Go: basis-point and percent conversion, address truncation for
// display, coercion of loosely typed numeric input into big integers, and
// fixed-decimal balance formatting.
//
// None of the functions in this package perform I/O.
//
// This package is part of the CVN-1 Vaulted NFT SDK for Go.
package units
