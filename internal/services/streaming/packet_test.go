package streaming

import (
	"encoding/json"
	"testing"
)

func TestDecodePacket(t *testing.T) {
	tests := []struct {
		name   string
		msg    string
		engine byte
		socket byte
		event  string
		data   string
	}{
		{"open", `0{"sid":"abc","pingInterval":25000,"pingTimeout":20000}`, engineOpen, 0, "", `{"sid":"abc","pingInterval":25000,"pingTimeout":20000}`},
		{"ping", "2", enginePing, 0, "", ""},
		{"close", "1", engineClose, 0, "", ""},
		{"connect", `40{"sid":"def"}`, engineMessage, socketConnect, "", `{"sid":"def"}`},
		{"connect error", `44{"message":"nope"}`, engineMessage, socketConnectError, "", `{"message":"nope"}`},
		{"event", `42["processed_frame",{"stats":{"vehicle_count":2}}]`, engineMessage, socketEvent, "processed_frame", `{"stats":{"vehicle_count":2}}`},
		{"event without data", `42["connected"]`, engineMessage, socketEvent, "connected", ""},
		{"event with ack id", `4213["processed_frame",{}]`, engineMessage, socketEvent, "processed_frame", `{}`},
		{"event with namespace", `42/admin,["x",1]`, engineMessage, socketEvent, "x", `1`},
		{"disconnect", "41", engineMessage, socketDisconnect, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := decodePacket([]byte(tt.msg))
			if err != nil {
				t.Fatalf("decodePacket(%q) failed: %v", tt.msg, err)
			}
			if p.Engine != tt.engine {
				t.Errorf("Engine = %q, expected %q", p.Engine, tt.engine)
			}
			if p.Socket != tt.socket {
				t.Errorf("Socket = %q, expected %q", p.Socket, tt.socket)
			}
			if p.Event != tt.event {
				t.Errorf("Event = %q, expected %q", p.Event, tt.event)
			}
			if string(p.Data) != tt.data {
				t.Errorf("Data = %q, expected %q", string(p.Data), tt.data)
			}
		})
	}
}

func TestDecodePacket_Invalid(t *testing.T) {
	for _, msg := range []string{"", "9", "4", "42", "42[]", "42{}", "47"} {
		if _, err := decodePacket([]byte(msg)); err == nil {
			t.Errorf("Expected error for %q", msg)
		}
	}
}

func TestEncodeEvent(t *testing.T) {
	msg, err := encodeEvent("stream_frame", map[string]string{"image": "data:image/jpeg;base64,AAA"})
	if err != nil {
		t.Fatalf("encodeEvent failed: %v", err)
	}

	want := `42["stream_frame",{"image":"data:image/jpeg;base64,AAA"}]`
	if string(msg) != want {
		t.Errorf("encodeEvent = %s, expected %s", msg, want)
	}

	p, err := decodePacket(msg)
	if err != nil {
		t.Fatalf("decodePacket failed: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(p.Data, &payload); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.Event != "stream_frame" || payload["image"] == "" {
		t.Errorf("Unexpected decoded packet: %+v", p)
	}
}
