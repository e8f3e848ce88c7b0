package streaming

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Engine.IO v4 packet types.
const (
	engineOpen    byte = '0'
	engineClose   byte = '1'
	enginePing    byte = '2'
	enginePong    byte = '3'
	engineMessage byte = '4'
	engineNoop    byte = '6'
)

// Socket.IO v5 packet types, carried inside an engine message.
const (
	socketConnect      byte = '0'
	socketDisconnect   byte = '1'
	socketEvent        byte = '2'
	socketConnectError byte = '4'
)

var errEmptyPacket = errors.New("empty packet")

type packet struct {
	Engine byte
	Socket byte
	Event  string
	Data   json.RawMessage
}

type openPayload struct {
	SID          string `json:"sid"`
	PingInterval int    `json:"pingInterval"`
	PingTimeout  int    `json:"pingTimeout"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func encodeConnect() []byte {
	return []byte{engineMessage, socketConnect}
}

func encodeEvent(event string, payload any) ([]byte, error) {
	body, err := json.Marshal([]any{event, payload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode event %s: %w", event, err)
	}
	return append([]byte{engineMessage, socketEvent}, body...), nil
}

func decodePacket(msg []byte) (packet, error) {
	if len(msg) == 0 {
		return packet{}, errEmptyPacket
	}

	p := packet{Engine: msg[0]}
	rest := msg[1:]

	switch p.Engine {
	case engineOpen:
		p.Data = rest
		return p, nil
	case engineClose, enginePing, enginePong, engineNoop:
		return p, nil
	case engineMessage:
	default:
		return p, fmt.Errorf("unknown engine packet type %q", p.Engine)
	}

	if len(rest) == 0 {
		return p, fmt.Errorf("message packet without socket type")
	}
	p.Socket = rest[0]
	rest = rest[1:]

	// Optional namespace ("/admin,") and ack id digits.
	if len(rest) > 0 && rest[0] == '/' {
		if i := bytes.IndexByte(rest, ','); i >= 0 {
			rest = rest[i+1:]
		} else {
			rest = nil
		}
	}
	for len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		rest = rest[1:]
	}

	switch p.Socket {
	case socketEvent:
		var args []json.RawMessage
		if err := json.Unmarshal(rest, &args); err != nil {
			return p, fmt.Errorf("invalid event body: %w", err)
		}
		if len(args) == 0 {
			return p, fmt.Errorf("event without name")
		}
		if err := json.Unmarshal(args[0], &p.Event); err != nil {
			return p, fmt.Errorf("invalid event name: %w", err)
		}
		if len(args) > 1 {
			p.Data = args[1]
		}
	case socketConnect, socketConnectError, socketDisconnect:
		p.Data = rest
	default:
		return p, fmt.Errorf("unsupported socket packet type %q", p.Socket)
	}

	return p, nil
}
