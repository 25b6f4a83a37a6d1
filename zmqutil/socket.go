// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"strings"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/gatewayd/util"
)

// zap domain of the publisher
const publishDomain = "gatewayd-publish"

// NewPublisher - a PUB socket bound to every listen address
//
// with a key pair subscribers must use CURVE and the server public
// key, without one the socket is plain text
func NewPublisher(log *logger.L, privateKey []byte, publicKey []byte, listen []string) (*zmq.Socket, error) {
	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return nil, err
	}

	if 0 != len(privateKey) {
		if err := StartAuthentication(); nil != err {
			socket.Close()
			return nil, err
		}
		zmq.AuthCurveAdd(publishDomain, zmq.CURVE_ALLOW_ANY)
		if err := socket.SetCurveServer(1); nil != err {
			socket.Close()
			return nil, err
		}
		if err := socket.SetCurveSecretkey(string(privateKey)); nil != err {
			socket.Close()
			return nil, err
		}
		if err := socket.SetZapDomain(publishDomain); nil != err {
			socket.Close()
			return nil, err
		}
		socket.SetIdentity(string(publicKey))
	}
	socket.SetLinger(0)

	for i, address := range listen {
		endpoint, v6, err := bindAddress(address)
		if nil != err {
			socket.Close()
			return nil, err
		}
		if v6 {
			socket.SetIpv6(true)
		}
		if err := socket.Bind(endpoint); nil != err {
			log.Errorf("cannot bind[%d]: %q  error: %s", i, endpoint, err)
			socket.Close()
			return nil, err
		}
		log.Infof("bind[%d]: %q  IPv6: %t", i, endpoint, v6)
	}
	return socket, nil
}

// "IP:port" to a tcp endpoint, anything with a scheme is used as is
func bindAddress(address string) (string, bool, error) {
	if strings.Contains(address, "://") {
		return address, false, nil
	}
	hostPort, err := util.CanonicalIPandPort(address)
	if nil != err {
		return "", false, err
	}
	return "tcp://" + hostPort, strings.HasPrefix(hostPort, "["), nil
}
