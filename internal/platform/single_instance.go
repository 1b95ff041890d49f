package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

const activateCommand = "show"

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock and listens for activation
// requests from later launches.
type InstanceGuard struct {
	listener net.Listener
	address  string
	once     sync.Once
}

// AcquireSingleInstance binds a deterministic loopback port. When another
// instance holds it, that instance is asked to show itself and
// ErrAlreadyRunning is returned.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if activateErr := activate(address); activateErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, activateErr)
		}
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// OnActivate calls handler whenever a later launch asks this instance to show.
// It returns immediately; the handler runs on a background goroutine.
func (guard *InstanceGuard) OnActivate(handler func()) {
	if guard == nil || guard.listener == nil {
		return
	}
	go func() {
		for {
			conn, err := guard.listener.Accept()
			if err != nil {
				return
			}
			if readCommand(conn) == activateCommand && handler != nil {
				handler()
			}
		}
	}()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	var err error
	guard.once.Do(func() {
		err = guard.listener.Close()
	})
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func activate(address string) error {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return err
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	_, err = conn.Write([]byte(activateCommand + "\n"))
	return err
}

func readCommand(conn net.Conn) string {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
