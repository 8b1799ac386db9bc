// Command stun-probe sends a single STUN binding request against a server
// and prints the outcome, exercising the full engine end to end: config,
// registry, access layer, and collector.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pion/stun"
	"github.com/pion/transport/v2/stdnet"
	"github.com/sirupsen/logrus"

	"github.com/sonbt56/ice4j/collector"
	"github.com/sonbt56/ice4j/config"
	"github.com/sonbt56/ice4j/message"
	"github.com/sonbt56/ice4j/netaccess"
	"github.com/sonbt56/ice4j/stack"
)

func main() {
	server := flag.String("server", "stun.l.google.com:19302", "STUN server host:port")
	local := flag.String("local", "0.0.0.0:0", "local address to bind")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	dest, err := resolveDest(*server)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stun-probe: %v\n", err)
		os.Exit(1)
	}

	n, err := stdnet.NewNet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stun-probe: %v\n", err)
		os.Exit(1)
	}

	access := netaccess.NewUDPAccessLayer(n, nil)
	ap := netaccess.NewPointDescriptor("probe")
	if err := access.Bind(ap, *local); err != nil {
		fmt.Fprintf(os.Stderr, "stun-probe: %v\n", err)
		os.Exit(1)
	}
	defer access.Close()

	req, err := message.NewRequest(stun.MethodBinding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stun-probe: %v\n", err)
		os.Exit(1)
	}

	registry := stack.NewRegistry(access, stack.RealClock)

	done := make(chan struct{})
	coll := collector.Funcs{
		Response: func(evt collector.Event) {
			fmt.Printf("response from %s after %s\n", evt.From, time.Since(start))
			printMappedAddress(evt.Response)
			close(done)
		},
		Timeout: func() {
			fmt.Println("timed out: no response received")
			close(done)
		},
	}

	tx, err := registry.Submit(req, dest, ap, coll, config.FromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "stun-probe: submit failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("sent binding request %s to %s\n", tx.ID(), dest)

	<-done
}

var start = time.Now()

func resolveDest(hostport string) (netaccess.Address, error) {
	host, portStr, err := splitHostPort(hostport)
	if err != nil {
		return netaccess.Address{}, err
	}
	port, err := parsePort(portStr)
	if err != nil {
		return netaccess.Address{}, err
	}
	return netaccess.Address{Host: host, Port: port, Kind: netaccess.UDP}, nil
}

func splitHostPort(hostport string) (host, port string, err error) {
	for i := len(hostport) - 1; i >= 0; i-- {
		if hostport[i] == ':' {
			return hostport[:i], hostport[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("invalid host:port %q", hostport)
}

func parsePort(s string) (int, error) {
	var port int
	if _, err := fmt.Sscanf(s, "%d", &port); err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	return port, nil
}

func printMappedAddress(resp *message.Response) {
	var xorAddr stun.XORMappedAddress
	if err := xorAddr.GetFrom(resp.Msg); err == nil {
		fmt.Printf("mapped address: %s:%d\n", xorAddr.IP, xorAddr.Port)
		return
	}
	var addr stun.MappedAddress
	if err := addr.GetFrom(resp.Msg); err == nil {
		fmt.Printf("mapped address: %s:%d\n", addr.IP, addr.Port)
	}
}
