package entity

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestServerURL(t *testing.T) {
	tests := []struct {
		in   Server
		path string
		out  string
	}{
		{in: Server{Address: "10.0.0.1", Port: "69"}, path: LoginPath, out: "http://10.0.0.1:69/cgi-bin/do_login"},
		{in: Server{Address: "portal.example.edu", Port: "8080"}, path: LogoutPath, out: "http://portal.example.edu:8080/cgi-bin/do_logout"},
		{in: Server{Address: "fe80::1", Port: "69"}, path: ForceLogoutPath, out: "http://[fe80::1]:69/cgi-bin/force_logout"},
	}

	for _, tc := range tests {
		if got := tc.in.URL(tc.path); got != tc.out {
			t.Errorf("expected %s, got %s", tc.out, got)
		}
	}
}

func TestIsSessionID(t *testing.T) {
	tests := map[string]bool{
		"123456":         true,
		"aB3":            true,
		"":               false,
		"12 34":          false,
		"username_error": false,
		"12-34":          false,
	}

	for in, want := range tests {
		if got := IsSessionID(in); got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
	}
}

func TestOutcomeErr(t *testing.T) {
	if err := Success("123").Err(); err != nil {
		t.Errorf("success: unexpected error %v", err)
	}

	err := KnownError("flux_error").Err()
	var serverErr *ServerError
	if !errors.As(err, &serverErr) || !errors.Is(err, ErrKnownServerError) {
		t.Errorf("known error: got %v", err)
	} else if serverErr.Error() != ServerErrorMessages["flux_error"] {
		t.Errorf("known error: wrong message %q", serverErr.Error())
	}

	if err := KnownError("not_in_table").Err(); !errors.Is(err, ErrUnknownProtocolResponse) {
		t.Errorf("unlisted code: got %v", err)
	}

	err = UnknownResponse("garbage").Err()
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) || protoErr.Raw != "garbage" {
		t.Errorf("unknown response: got %v", err)
	}

	reason := errors.New("connection refused")
	err = TransportFailure(reason).Err()
	if !errors.Is(err, ErrTransportFailure) {
		t.Errorf("transport failure: got %v", err)
	}
	if errors.Is(err, ErrKnownServerError) || errors.Is(err, ErrUnknownProtocolResponse) {
		t.Errorf("transport failure mixed with protocol errors: %v", err)
	}
	if TransportFailure(err).Err() != err {
		t.Error("transport failure wrapped twice")
	}
	if msg := err.Error(); msg != "transport failure: connection refused" {
		t.Errorf("wrong message %q", msg)
	}
	if !errors.Is(err, reason) {
		t.Error("cause is lost")
	}
}

func TestNewLoginForm(t *testing.T) {
	f := NewLoginForm(Credentials{Username: "u", Password: "p"}, "ff:ff:00:11:22:33")
	if f.Drop != "0" || f.Type != "3" || f.N != "99" {
		t.Errorf("wrong fixed fields %+v", f)
	}
	if f.Username != "u" || f.Password != "p" || f.MAC != "ff:ff:00:11:22:33" {
		t.Errorf("wrong fields %+v", f)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := map[string]string{
		"~":                home,
		"~/.srun_uid":      filepath.Join(home, ".srun_uid"),
		"/var/lib/srun":    "/var/lib/srun",
		"relative/uid":     "relative/uid",
		"~other/.srun_uid": "~other/.srun_uid",
	}

	for in, want := range tests {
		got, err := ExpandHome(in)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if got != want {
			t.Errorf("%s: expected %s, got %s", in, want, got)
		}
	}
}

func TestClientConfigValidate(t *testing.T) {
	valid := func() *ClientConfig {
		return &ClientConfig{
			Account: &AccountConfig{Username: "u", Password: "p"},
			Client:  &NetworkConfig{Interface: "eth0"},
			Server:  &ServerConfig{Address: "10.0.0.1", Port: "69"},
			Session: &SessionConfig{UIDFile: "~/.srun_uid"},
			Logger:  &LoggerConfig{},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]func(c *ClientConfig){
		"no username": func(c *ClientConfig) { c.Account.Username = "" },
		"no password": func(c *ClientConfig) { c.Account.Password = "" },
		"no address":  func(c *ClientConfig) { c.Server.Address = "" },
		"bad address": func(c *ClientConfig) { c.Server.Address = "not a host" },
		"bad port":    func(c *ClientConfig) { c.Server.Port = "70000" },
		"bad timeout": func(c *ClientConfig) { c.Server.Timeout = -1 },
		"no uid file": func(c *ClientConfig) { c.Session.UIDFile = "" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			if err := c.Validate(); !errors.Is(err, ErrConfigurationMissing) {
				t.Errorf("expected %v, got %v", ErrConfigurationMissing, err)
			}
		})
	}
}
