package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{"none", Config{Type: "none"}, "none", false},
		{"empty means none", Config{}, "none", false},
		{"usb", Config{Type: "usb", USBPath: "/dev/usb/lp0"}, "usb:/dev/usb/lp0", false},
		{"usb without path", Config{Type: "usb"}, "", true},
		{"network", Config{Type: "network", Address: "10.0.0.5:9100"}, "network:10.0.0.5:9100", false},
		{"network without address", Config{Type: "network"}, "", true},
		{"unknown", Config{Type: "bluetooth"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.want)
			}
		})
	}
}

func TestNetworkPrinter_Print(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		b, _ := io.ReadAll(conn)
		received <- b
	}()

	p := NewNetworkPrinter(ln.Addr().String(), time.Second)
	job := NewReceipt(32).Line("hello").Cut().Bytes()
	if err := p.Print(context.Background(), job); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	select {
	case got := <-received:
		if !bytes.Equal(got, job) {
			t.Errorf("printer received %q, want %q", got, job)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("printer never received the job")
	}
}

func TestReceipt_Pair(t *testing.T) {
	r := NewReceipt(20)
	r.Pair("Tong", "240.000")
	out := string(r.Bytes()[2:])
	want := "Tong" + strings.Repeat(" ", 9) + "240.000\n"
	if out != want {
		t.Errorf("Pair() = %q, want %q", out, want)
	}

	long := NewReceipt(10)
	long.Pair("Khach hang dai", "1.000")
	lines := strings.Split(strings.TrimSuffix(string(long.Bytes()[2:]), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("overflowing Pair() wrote %d lines, want 2", len(lines))
	}
	if lines[1] != "     1.000" {
		t.Errorf("second line = %q, want right-aligned value", lines[1])
	}
}
