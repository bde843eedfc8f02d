// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"
)

// ServerConfig tunes the API listener. Zero timeouts are unlimited.
type ServerConfig struct {
	ListenAddr string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration // zero by default so long streams are not cut
	IdleTimeout  time.Duration

	ShutdownTimeout time.Duration
	MaxHeaderBytes  int
}

// BindListenAddr pins a wildcard listen address (":5000", "0.0.0.0:5000",
// "[::]:5000") to bind, which is either a host or "if:<name>" for the first
// non-loopback IPv4 of that interface. Addresses with a concrete host are
// returned unchanged.
func BindListenAddr(listenAddr, bind string) (string, error) {
	if bind == "" {
		return listenAddr, nil
	}

	host, port := "", "0"
	if listenAddr != "" {
		var err error
		if host, port, err = net.SplitHostPort(listenAddr); err != nil {
			return "", fmt.Errorf("parse listen addr %q: %w", listenAddr, err)
		}
	}
	switch host {
	case "", "0.0.0.0", "::":
	default:
		return listenAddr, nil
	}

	ifName, isIface := strings.CutPrefix(bind, "if:")
	if !isIface {
		return net.JoinHostPort(bind, port), nil
	}
	ip, err := interfaceIPv4(ifName)
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(ip, port), nil
}

func interfaceIPv4(ifName string) (string, error) {
	iface, err := net.InterfaceByName(ifName)
	if err != nil {
		return "", fmt.Errorf("resolve interface %q: %w", ifName, err)
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return "", fmt.Errorf("list addrs for %q: %w", ifName, err)
	}
	for _, a := range addrs {
		prefix, err := netip.ParsePrefix(a.String())
		if err != nil {
			continue
		}
		if ip := prefix.Addr().Unmap(); ip.Is4() && !ip.IsLoopback() {
			return ip.String(), nil
		}
	}
	return "", fmt.Errorf("no non-loopback IPv4 on interface %q", ifName)
}
