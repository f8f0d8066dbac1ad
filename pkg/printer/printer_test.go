package printer

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// body strips the ESC @ init sequence from a document.
func body(d *Document) string {
	return strings.TrimPrefix(string(d.Bytes()), string([]byte{ESC, '@'}))
}

func TestDocument_KeyValue(t *testing.T) {
	d := NewDocument(20)
	d.KeyValue("Total", "Rs.80.00")

	line := strings.TrimSuffix(body(d), "\n")
	assert.Equal(t, 20, textWidth(line))
	assert.True(t, strings.HasPrefix(line, "Total "))
	assert.True(t, strings.HasSuffix(line, "Rs.80.00"))
}

func TestDocument_KeyValueCountsRunes(t *testing.T) {
	d := NewDocument(20)
	d.KeyValue("Total", "₹80.00")

	line := strings.TrimSuffix(body(d), "\n")
	assert.Equal(t, 20, textWidth(line))
}

func TestDocument_ItemRow(t *testing.T) {
	d := NewDocument(32)
	d.ItemRow("Pani Puri", "2", "40.00", "80.00")

	line := strings.TrimSuffix(body(d), "\n")
	assert.Equal(t, 32, textWidth(line))
	assert.True(t, strings.HasPrefix(line, "Pani Puri"))
	assert.True(t, strings.HasSuffix(line, "80.00"))
}

func TestDocument_ItemRowTruncatesLongNames(t *testing.T) {
	d := NewDocument(32)
	d.ItemRow("Special Masala Dahi Sev Batata Puri", "10", "120.00", "1200.00")

	line := strings.TrimSuffix(body(d), "\n")
	assert.Equal(t, 32, textWidth(line))
	assert.True(t, strings.HasPrefix(line, "Specia"))
}

func TestDocument_Separator(t *testing.T) {
	d := NewDocument(0)
	d.Separator('=')
	assert.Equal(t, strings.Repeat("=", 32)+"\n", body(d))
	assert.Equal(t, 32, d.Width())
}

func TestDocument_Reset(t *testing.T) {
	d := NewDocument(32)
	d.Text("hello").Reset()
	assert.Equal(t, []byte{ESC, '@'}, d.Bytes())
}

func TestOpen_FallsBackToNullPrinter(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"none", Config{Type: TypeNone}, false},
		{"unset", Config{}, false},
		{"usb without path", Config{Type: TypeUSB}, true},
		{"network without port", Config{Type: TypeNetwork, Address: "192.168.1.100"}, true},
		{"unknown type", Config{Type: "bluetooth"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Open(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, p)
			assert.False(t, p.IsConnected())
			assert.NoError(t, p.Print([]byte("x")))
		})
	}
}

func TestUSBPrinter_WritesToDevice(t *testing.T) {
	dev := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(dev, nil, 0o600))

	p, err := Open(Config{Type: TypeUSB, USBPath: dev})
	require.NoError(t, err)
	assert.True(t, p.IsConnected())

	require.NoError(t, p.Print([]byte("receipt")))
	got, err := os.ReadFile(dev)
	require.NoError(t, err)
	assert.Equal(t, "receipt", string(got))
}

func TestUSBPrinter_Unplugged(t *testing.T) {
	p := NewUSBPrinter(filepath.Join(t.TempDir(), "missing"))
	assert.False(t, p.IsConnected())
	assert.ErrorIs(t, p.Print([]byte("receipt")), ErrUnavailable)
}

func TestNetworkPrinter_SendsJob(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			data, _ := io.ReadAll(conn)
			conn.Close()
			if len(data) > 0 {
				received <- data
			}
		}
	}()

	p, err := Open(Config{Type: TypeNetwork, Address: ln.Addr().String(), Timeout: time.Second})
	require.NoError(t, err)
	assert.True(t, p.IsConnected())
	require.NoError(t, p.Print([]byte("receipt")))

	select {
	case got := <-received:
		assert.Equal(t, "receipt", string(got))
	case <-time.After(2 * time.Second):
		t.Fatal("job not received")
	}
}

func TestNetworkPrinter_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	p := NewNetworkPrinter(addr, 200*time.Millisecond)
	assert.False(t, p.IsConnected())
	assert.ErrorIs(t, p.Print([]byte("receipt")), ErrUnavailable)
}
