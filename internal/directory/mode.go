package directory

import (
	"fmt"
	"net"
	"strings"

	"github.com/cwkr/peopledir/internal/people"
)

const (
	ModeAuto   = "auto"
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// IsLocalHost reports whether host, optionally with a port, names the
// development machine.
func IsLocalHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.EqualFold(strings.Trim(host, "[]"), "localhost")
}

// SelectStore picks the local store for development hosts and the remote
// store everywhere else, unless mode forces one of them.
func SelectStore(mode, host string, remote, local people.Store) (people.Store, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeAuto:
		if IsLocalHost(host) {
			return storeOrError(local, ModeLocal)
		}
		return storeOrError(remote, ModeRemote)
	case ModeLocal:
		return storeOrError(local, ModeLocal)
	case ModeRemote:
		return storeOrError(remote, ModeRemote)
	}
	return nil, fmt.Errorf("unsupported mode: %q", mode)
}

func storeOrError(store people.Store, mode string) (people.Store, error) {
	if store == nil {
		return nil, fmt.Errorf("no %s people store configured", mode)
	}
	return store, nil
}
