package entity

import (
	"errors"
	"fmt"
)

var (
	ErrConfigurationMissing    = errors.New("required setting is missing")
	ErrInterfaceNotFound       = errors.New("interface not found")
	ErrNoIdentifierFound       = errors.New("no session identifier found")
	ErrTransportFailure        = errors.New("transport failure")
	ErrKnownServerError        = errors.New("server error")
	ErrUnknownProtocolResponse = errors.New("unknown protocol response")
)

// ServerErrorMessages maps SRUN error codes to messages.
// The codes were collected from the web portal scripts, the list is not exhaustive.
var ServerErrorMessages = map[string]string{
	"user_tab_error":    "authentication program is not running",
	"username_error":    "wrong username",
	"non_auth_error":    "no authentication required, you can access the network directly",
	"password_error":    "wrong password",
	"status_error":      "account is in arrears, please recharge",
	"available_error":   "account is disabled",
	"ip_exist_error":    "your IP is still online, please wait 2 minutes and try again",
	"usernum_error":     "number of users has reached the limit",
	"online_num_error":  "number of logins for this account exceeds the limit",
	"mode_error":        "web login is disabled, please use the client",
	"time_policy_error": "connection is not allowed at this time",
	"flux_error":        "traffic quota exceeded",
	"minutes_error":     "time quota exceeded",
	"ip_error":          "invalid IP address",
	"mac_error":         "invalid MAC address",
	"sync_error":        "account data was modified and is waiting for synchronization, please try again in 2 minutes",
	"logout_error":      "you are not online",
	"uid_error":         "invalid session identifier",
}

// ServerErrorMessage returns the message for code
func ServerErrorMessage(code string) (string, bool) {
	msg, ok := ServerErrorMessages[code]
	return msg, ok
}

// ServerError a known error code returned by the portal
type ServerError struct {
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

func (e *ServerError) Unwrap() error {
	return ErrKnownServerError
}

// ProtocolError a response that does not fit the protocol or carries an unknown error code
type ProtocolError struct {
	Raw string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownProtocolResponse, e.Raw)
}

func (e *ProtocolError) Unwrap() error {
	return ErrUnknownProtocolResponse
}

// TransportError the request did not complete, Err holds the cause
type TransportError struct {
	Err error
}

// NewTransportError wraps err as a transport failure
func NewTransportError(err error) error {
	return &TransportError{Err: err}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", ErrTransportFailure, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransportFailure, e.Err}
}
