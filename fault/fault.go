// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RangeError GenericError
type RecordError GenericError
type RejectedError GenericError
type TransientError GenericError

// common errors - keep in alphabetic order
var (
	ErrAllProvidersExhausted = TransientError("all providers exhausted")
	ErrAlreadyInitialised    = ExistsError("already initialised")
	ErrCancelled             = ProcessError("cancelled")
	ErrDuplicateFieldName    = InvalidError("duplicate field name")
	ErrEmptyFieldName        = InvalidError("empty field name")
	ErrHashMismatch          = InvalidError("transaction hash mismatch")
	ErrInvalidAddress        = InvalidError("invalid address")
	ErrInvalidAmount         = InvalidError("invalid amount")
	ErrInvalidAsset          = InvalidError("invalid asset")
	ErrInvalidConfiguration  = InvalidError("invalid configuration")
	ErrInvalidCount          = InvalidError("invalid count")
	ErrInvalidDirection      = InvalidError("invalid direction")
	ErrInvalidEvent          = InvalidError("invalid event for state")
	ErrInvalidHash           = InvalidError("invalid hash")
	ErrInvalidIPAddress      = InvalidError("invalid IP address")
	ErrInvalidKeyFile        = InvalidError("invalid key file")
	ErrInvalidKind           = InvalidError("invalid kind")
	ErrInvalidLoggerChannel  = InvalidError("invalid logger channel")
	ErrInvalidNetwork        = InvalidError("invalid network")
	ErrInvalidPortNumber     = InvalidError("invalid port number")
	ErrInvalidPrivateKey     = InvalidError("invalid private key")
	ErrInvalidPublicKey      = InvalidError("invalid public key")
	ErrInvalidPublicKeyHash  = InvalidError("invalid public key hash")
	ErrInvalidResponse       = TransientError("invalid response")
	ErrInvalidSelector       = InvalidError("invalid selector")
	ErrInvalidState          = InvalidError("invalid state")
	ErrInvalidStructPointer  = InvalidError("invalid struct pointer")
	ErrInvalidStructType     = InvalidError("invalid struct type")
	ErrInvalidTransfer       = InvalidError("invalid transfer")
	ErrInvalidUTF8           = InvalidError("string is not valid UTF-8")
	ErrKeyFileAlreadyExists  = ExistsError("key file already exists")
	ErrMalformedEncoding     = RecordError("malformed encoding")
	ErrMalformedResponse     = InvalidError("malformed network response")
	ErrMissingConfiguration  = InvalidError("missing configuration")
	ErrMissingDestination    = InvalidError("missing destination")
	ErrMissingField          = InvalidError("missing struct field")
	ErrMissingPrivateKey     = InvalidError("missing private key")
	ErrMissingResponse       = InvalidError("missing network response")
	ErrNetworkUnavailable    = TransientError("network unavailable")
	ErrNoProviders           = InvalidError("no providers")
	ErrNotInitialised        = ProcessError("not initialised")
	ErrProviderStatus        = TransientError("provider returned bad status")
	ErrReadOnly              = ProcessError("database is read only")
	ErrRPCFailed             = ProcessError("rpc call failed")
	ErrStageAlreadyRecorded  = ExistsError("stage already recorded")
	ErrTerminalTransfer      = InvalidError("transfer is in a terminal state")
	ErrTransactionNotFound   = NotFoundError("transaction not found")
	ErrTransactionReverted   = RejectedError("transaction reverted")
	ErrTransferExists        = ExistsError("transfer already exists")
	ErrTransferExpired       = ProcessError("transfer expired")
	ErrTransferNotFound      = NotFoundError("transfer not found")
	ErrTypeMismatch          = InvalidError("value does not match type")
	ErrUnsupportedHost       = InvalidError("unsupported host chain")
	ErrUnsupportedNetwork    = InvalidError("unsupported network")
	ErrValueOutOfRange       = RangeError("value out of range")
	ErrWrongLength           = LengthError("wrong length")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e LengthError) Error() string    { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }
func (e RangeError) Error() string     { return string(e) }
func (e RecordError) Error() string    { return string(e) }
func (e RejectedError) Error() string  { return string(e) }
func (e TransientError) Error() string { return string(e) }

// determine the class of an error
//
// wrapped errors are unwrapped so fmt.Errorf("…: %w", fault.ErrX)
// keeps the class of ErrX
func IsErrExists(e error) bool    { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool   { var x InvalidError; return errors.As(e, &x) }
func IsErrLength(e error) bool    { var x LengthError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool  { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool   { var x ProcessError; return errors.As(e, &x) }
func IsErrRange(e error) bool     { var x RangeError; return errors.As(e, &x) }
func IsErrRecord(e error) bool    { var x RecordError; return errors.As(e, &x) }
func IsErrRejected(e error) bool  { var x RejectedError; return errors.As(e, &x) }
func IsErrTransient(e error) bool { var x TransientError; return errors.As(e, &x) }

// IsErrValidation - any error that indicates bad input rather than a
// failure of some remote system
func IsErrValidation(e error) bool {
	return IsErrInvalid(e) || IsErrLength(e) || IsErrRange(e) || IsErrRecord(e)
}
