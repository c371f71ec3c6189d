// Package to collect (NOT be send anywhere) OS & network information.
package system

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"time"
)

const defaultProbeHost = "discord.com"

// Clear screen functions for Windows, Linux and MacOS.
var clear = map[string]func(){
	"linux":   func() { runClear("clear") },
	"darwin":  func() { runClear("clear") },
	"windows": func() { runClear("cmd", "/c", "cls") },
}

// Detects the OS of the runtime => determined by compile option GOOS.
func DetermineOS() string {
	switch runtime.GOOS {
	case "windows", "linux", "darwin":
		return runtime.GOOS
	default:
		return "unknown"
	}
}

// Detects if there is a working DNS resolver on the host or the network.
//
// host may be a bare host name or a URL. An empty host probes the default
// webhook provider. This might not represent a working internet connection,
// usually a good hint however.
func TestConnection(host string) error {
	host = HostOf(host)
	if host == "" {
		host = defaultProbeHost
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := net.DefaultResolver.LookupHost(ctx, host); err != nil {
		return fmt.Errorf("resolving %s: %w", host, err)
	}

	return nil
}

// HostOf returns the host name of raw, which may be a URL or a bare host.
func HostOf(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return raw
}

// Clears the terminal on supported platforms, no-op everywhere else.
func CallClear() {
	if fn, ok := clear[runtime.GOOS]; ok {
		fn()
	}
}

func runClear(name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	_ = cmd.Run()
}
