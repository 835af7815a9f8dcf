// Package entity provides entities for business logic.
package entity

import (
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pkg/errors"
)

const (
	DefaultClientConfigFileName = "srun.yaml"
)

// ClientConfig client configuration
type ClientConfig struct {
	Account *AccountConfig `yaml:"Account"`
	Client  *NetworkConfig `yaml:"Client"`
	Server  *ServerConfig  `yaml:"Server"`
	Session *SessionConfig `yaml:"Session"`
	Logger  *LoggerConfig  `yaml:"Logger"`
}

// AccountConfig portal account
type AccountConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// NetworkConfig local network settings
type NetworkConfig struct {
	Interface string `yaml:"interface" default:""`
}

// ServerConfig portal server
type ServerConfig struct {
	Address   string `yaml:"address"`
	Port      string `yaml:"port" default:"69"`
	Timeout   int    `yaml:"timeout" default:"0"`
	UserAgent string `yaml:"userAgent" default:"srun-client"`
}

// SessionConfig session identifier storage
type SessionConfig struct {
	UIDFile string `yaml:"uidfile" default:"~/.srun_uid"`
}

// LoggerConfig logger settings
type LoggerConfig struct {
	Level             string `yaml:"level" default:"info"`
	TimeFieldFormat   string `yaml:"timeFieldFormat" default:"2006-01-02T15:04:05.000000"`
	PrettyPrint       *bool  `yaml:"prettyPrint" default:"true"`
	DisableSampling   *bool  `yaml:"disableSampling" default:"true"`
	RedirectStdLogger *bool  `yaml:"redirectStdLogger" default:"true"`
	ErrorStack        *bool  `yaml:"errorStack" default:"false"`
	ShowCaller        *bool  `yaml:"showCaller" default:"false"`
	FileName          string `yaml:"fileName,omitempty" default:""`
}

func (c *ClientConfig) Validate() error {
	err := validation.Errors{
		"Account": validation.ValidateStruct(c.Account,
			validation.Field(&c.Account.Username, validation.Required),
			validation.Field(&c.Account.Password, validation.Required),
		),
		"Server": validation.ValidateStruct(c.Server,
			validation.Field(&c.Server.Address, validation.Required, is.Host),
			validation.Field(&c.Server.Port, validation.Required, is.Port),
			validation.Field(&c.Server.Timeout, validation.Min(0)),
		),
		"Session": validation.ValidateStruct(c.Session,
			validation.Field(&c.Session.UIDFile, validation.Required),
		),
	}.Filter()
	if err != nil {
		return errors.Wrap(ErrConfigurationMissing, err.Error())
	}
	return nil
}

// Credentials returns the account credentials
func (c *ClientConfig) Credentials() Credentials {
	return Credentials{
		Username: c.Account.Username,
		Password: c.Account.Password,
	}
}

// PortalServer returns the portal endpoint settings
func (c *ClientConfig) PortalServer() Server {
	return Server{
		Address: c.Server.Address,
		Port:    c.Server.Port,
	}
}

// UIDFile returns the session identifier location with a leading ~ expanded
func (c *ClientConfig) UIDFile() (string, error) {
	return ExpandHome(c.Session.UIDFile)
}

// ExpandHome replaces a leading "~" of path with the user home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
