package database

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// ConnectNATS dials the NATS server used for lifecycle event fan-out.
func ConnectNATS(addr string) (*nats.Conn, error) {
	if addr == "" {
		return nil, fmt.Errorf("nats address must not be empty")
	}

	conn, err := nats.Connect(addr, nats.Name("talentbridge-api"))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to nats: %w", err)
	}

	return conn, nil
}
