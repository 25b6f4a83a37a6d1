// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/transaction"
)

// NetworkRelease - destination of a burn, the network itself sends
// the released asset so there is nothing to submit
type NetworkRelease struct{}

// Submit - the release transaction id from the network output, or the
// network transaction hash if the output does not carry one
func (NetworkRelease) Submit(ctx context.Context, t *Transfer, response *transaction.Transaction) (string, error) {
	if nil == response {
		return "", fault.ErrMissingResponse
	}
	txID, ok := response.OutField("txid")
	if !ok {
		return response.Hash.String(), nil
	}
	switch id := txID.(type) {
	case []byte:
		return hex.EncodeToString(id), nil
	case [32]byte:
		return hex.EncodeToString(id[:]), nil
	case string:
		return id, nil
	default:
		return "", fmt.Errorf("txid: %T: %w", txID, fault.ErrTypeMismatch)
	}
}

// Settled - a network release is final once the response exists
func (NetworkRelease) Settled(ctx context.Context, t *Transfer, reference string) (bool, error) {
	return "" != reference, nil
}
