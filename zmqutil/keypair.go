// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"encoding/hex"
	"os"
	"strings"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/gatewayd/fault"
	"github.com/bitmark-inc/gatewayd/util"
)

// key files hold one tagged line of hex
const (
	publicTag  = "PUBLIC:"
	privateTag = "PRIVATE:"
	keyLength  = 32
)

// MakeKeyPair - create a CURVE key pair in two new files
func MakeKeyPair(publicKeyFileName string, privateKeyFileName string) error {
	if util.EnsureFileExists(publicKeyFileName) || util.EnsureFileExists(privateKeyFileName) {
		return fault.ErrKeyFileAlreadyExists
	}

	public, private, err := zmq.NewCurveKeypair()
	if nil != err {
		return err
	}

	publicLine := publicTag + hex.EncodeToString([]byte(zmq.Z85decode(public))) + "\n"
	privateLine := privateTag + hex.EncodeToString([]byte(zmq.Z85decode(private))) + "\n"

	if err := os.WriteFile(publicKeyFileName, []byte(publicLine), 0o666); nil != err {
		return err
	}
	if err := os.WriteFile(privateKeyFileName, []byte(privateLine), 0o600); nil != err {
		os.Remove(publicKeyFileName)
		return err
	}
	return nil
}

// ReadPublicKeyFile - the 32 byte key from a PUBLIC: file
func ReadPublicKeyFile(fileName string) ([]byte, error) {
	return readKeyFile(fileName, publicTag)
}

// ReadPrivateKeyFile - the 32 byte key from a PRIVATE: file
func ReadPrivateKeyFile(fileName string) ([]byte, error) {
	return readKeyFile(fileName, privateTag)
}

func readKeyFile(fileName string, tag string) ([]byte, error) {
	data, err := os.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	return ParseKey(string(data), tag)
}

// ParseKey - decode a tagged key line
func ParseKey(s string, tag string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, tag) {
		return nil, fault.ErrInvalidKeyFile
	}
	key, err := hex.DecodeString(s[len(tag):])
	if nil != err || keyLength != len(key) {
		return nil, fault.ErrInvalidKeyFile
	}
	return key, nil
}
