package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/forest33/srun/adapter/uidfile"
	"github.com/forest33/srun/business/entity"
	"github.com/forest33/srun/pkg/logger"
)

func TestMaskHardwareAddress(t *testing.T) {
	tests := map[string]string{
		"aa:bb:cc:dd:ee:ff": "ff:ff:cc:dd:ee:ff",
		"ff:ff:cc:dd:ee:ff": "ff:ff:cc:dd:ee:ff",
		"00:00:00:00:00:00": "ff:ff:00:00:00:00",
		"0a:00:00:01":       "ff:ff:00:01",
		"0a":                "ff",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got := MaskHardwareAddress(in)
			if got != want {
				t.Fatalf("expected %s, got %s", want, got)
			}
			if again := MaskHardwareAddress(got); again != got {
				t.Errorf("not idempotent: %s -> %s", got, again)
			}
		})
	}
}

func TestResolveHardwareAddress(t *testing.T) {
	enum := &MockEnumerator{Addrs: map[string][]string{
		"eth0": {"aa:bb:cc:dd:ee:ff", "11:22:33:44:55:66"},
		"tun0": {},
	}}

	mac, err := ResolveHardwareAddress(enum, "eth0")
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	if mac != "ff:ff:cc:dd:ee:ff" {
		t.Errorf("expected first address masked, got %s", mac)
	}

	for _, name := range []string{"tun0", "wlan0", ""} {
		if _, err := ResolveHardwareAddress(enum, name); !errors.Is(err, entity.ErrInterfaceNotFound) {
			t.Errorf("%q: expected %v, got %v", name, entity.ErrInterfaceNotFound, err)
		}
	}
}

func TestLoginInterfaceNotFound(t *testing.T) {
	transport := &MockTransport{Body: "123456`ok"}
	store := uidfile.New(logger.NewDefault())
	uc := NewPortalUseCase(logger.NewDefault(), transport, &MockEnumerator{Addrs: map[string][]string{"tun0": {}}}, store)
	uidFile := filepath.Join(t.TempDir(), "uid")

	for _, name := range []string{"tun0", "eth0"} {
		_, err := uc.Login(context.Background(), entity.Credentials{Username: "u", Password: "p"}, name, entity.Server{Address: "127.0.0.1", Port: "69"}, uidFile)
		if !errors.Is(err, entity.ErrInterfaceNotFound) {
			t.Errorf("%s: expected %v, got %v", name, entity.ErrInterfaceNotFound, err)
		}
	}

	if transport.Calls != 0 {
		t.Errorf("expected no requests, got %d", transport.Calls)
	}
	if _, err := store.Read(uidFile); !errors.Is(err, entity.ErrNoIdentifierFound) {
		t.Errorf("session identifier must not be written: %v", err)
	}
}
