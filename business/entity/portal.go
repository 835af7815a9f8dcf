package entity

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"regexp"

	"github.com/pkg/errors"
)

const (
	LoginPath       = "/cgi-bin/do_login"
	LogoutPath      = "/cgi-bin/do_logout"
	ForceLogoutPath = "/cgi-bin/force_logout"

	// LogoutSuccess body of a successful logout and kick
	LogoutSuccess = "logout_ok"

	// LoginSeparator splits the login response into the identifier or error code and the rest
	LoginSeparator = "`"
)

// SessionIDPattern a session identifier issued by the portal.
// Derived from observed responses only.
var SessionIDPattern = regexp.MustCompile(`^[0-9A-Za-z]+$`)

// IsSessionID reports whether s looks like a session identifier
func IsSessionID(s string) bool {
	return SessionIDPattern.MatchString(s)
}

// Credentials portal account
type Credentials struct {
	Username string
	Password string
}

// Server portal endpoint
type Server struct {
	Address string
	Port    string
}

// URL returns the absolute URL of path on the portal
func (s Server) URL(path string) string {
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(s.Address, s.Port),
		Path:   path,
	}
	return u.String()
}

// LoginForm do_login request body
type LoginForm struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Drop     string `mapstructure:"drop"`
	Type     string `mapstructure:"type"`
	N        string `mapstructure:"n"`
	MAC      string `mapstructure:"mac"`
}

// NewLoginForm creates login form with the fixed protocol fields
func NewLoginForm(c Credentials, mac string) *LoginForm {
	return &LoginForm{
		Username: c.Username,
		Password: c.Password,
		Drop:     "0",
		Type:     "3",
		N:        "99",
		MAC:      mac,
	}
}

// LogoutForm do_logout request body
type LogoutForm struct {
	UID string `mapstructure:"uid"`
}

// ForceLogoutForm force_logout request body
type ForceLogoutForm struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type OutcomeKind uint8

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeKnownError
	OutcomeUnknownResponse
	OutcomeTransportFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeKnownError:
		return "known-error"
	case OutcomeUnknownResponse:
		return "unknown-response"
	case OutcomeTransportFailure:
		return "transport-failure"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(k))
	}
}

// Outcome result of a single portal exchange
type Outcome struct {
	Kind    OutcomeKind
	Payload string
	Code    string
	Raw     string
	Reason  error
}

func Success(payload string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Payload: payload}
}

func KnownError(code string) Outcome {
	return Outcome{Kind: OutcomeKnownError, Code: code}
}

func UnknownResponse(raw string) Outcome {
	return Outcome{Kind: OutcomeUnknownResponse, Raw: raw}
}

func TransportFailure(reason error) Outcome {
	return Outcome{Kind: OutcomeTransportFailure, Reason: reason}
}

// Err converts the outcome to an error, nil on success
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeSuccess:
		return nil
	case OutcomeKnownError:
		msg, ok := ServerErrorMessage(o.Code)
		if !ok {
			return &ProtocolError{Raw: o.Code}
		}
		return &ServerError{Code: o.Code, Message: msg}
	case OutcomeTransportFailure:
		if o.Reason == nil {
			return ErrTransportFailure
		}
		if errors.Is(o.Reason, ErrTransportFailure) {
			return o.Reason
		}
		return NewTransportError(o.Reason)
	default:
		return &ProtocolError{Raw: o.Raw}
	}
}

// InterfaceEnumerator lists link-layer addresses per interface name
type InterfaceEnumerator interface {
	Enumerate() map[string][]string
}

// SessionStore persists the session identifier between invocations
type SessionStore interface {
	Write(id, location string) error
	Read(location string) (string, error)
}

// PortalTransport sends a form to the portal and returns the response body
type PortalTransport interface {
	PostForm(ctx context.Context, url string, form url.Values) (string, error)
}
