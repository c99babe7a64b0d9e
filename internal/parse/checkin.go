// Package parse decodes the check-in payload encoded in the QR code stuck
// to each table.
package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckIn is the decoded content of a table QR code.
type CheckIn struct {
	TableNumber int
	DeviceID    string
}

// ParseCheckIn parses a payload of the form "t=<table>&d=<device>". The
// device part is optional; the caller generates an id when it is absent.
func ParseCheckIn(payload string) (CheckIn, error) {
	if payload == "" {
		return CheckIn{}, fmt.Errorf("empty check-in payload")
	}

	var checkIn CheckIn
	seenTable := false
	for _, part := range strings.Split(payload, "&") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			return CheckIn{}, fmt.Errorf("malformed check-in segment %q", part)
		}
		switch key {
		case "t":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return CheckIn{}, fmt.Errorf("invalid table number %q", value)
			}
			checkIn.TableNumber = n
			seenTable = true
		case "d":
			checkIn.DeviceID = value
		default:
			return CheckIn{}, fmt.Errorf("unknown check-in key %q", key)
		}
	}

	if !seenTable {
		return CheckIn{}, fmt.Errorf("check-in payload %q has no table number", payload)
	}
	return checkIn, nil
}
