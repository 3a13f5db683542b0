// Package listeners creates the network listener the server accepts
// connections on.
package listeners

import (
	"fmt"
	"net"

	"github.com/docker/go-connections/sockets"
	"golang.org/x/net/netutil"
)

// MaxConnections is the number of connections served simultaneously.
// Connections beyond this wait in the kernel backlog until one is closed.
const MaxConnections = 512

// BindError is returned by Init when the listen address cannot be bound,
// for example because the port is in use or the process lacks permission.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to listen on %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Init binds a TCP listener on addr. It does not retry.
func Init(addr string) (net.Listener, error) {
	l, err := sockets.NewTCPSocket(addr, nil)
	if err != nil {
		return nil, &BindError{Addr: addr, Err: err}
	}
	return netutil.LimitListener(l, MaxConnections), nil
}
