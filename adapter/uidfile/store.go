// Package uidfile keeps the session identifier in a plain text file
package uidfile

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/forest33/srun/business/entity"
	"github.com/forest33/srun/pkg/logger"
)

const (
	fileMode = 0600
	dirMode  = 0700
)

type Store struct {
	log *logger.Logger
}

var _ entity.SessionStore = (*Store)(nil)

func New(log *logger.Logger) *Store {
	return &Store{
		log: log.Duplicate(log.With().Str("layer", "uid").Logger()),
	}
}

// Write replaces the content of location with id
func (s *Store) Write(id, location string) error {
	if err := os.MkdirAll(filepath.Dir(location), dirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", location)
	}

	f, err := os.OpenFile(location, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", location)
	}

	if _, err := f.WriteString(id + "\n"); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %s", location)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", location)
	}

	s.log.Debug().Str("file", location).Msg("session identifier saved")

	return nil
}

// Read returns the first line of location that is a session identifier
func (s *Store) Read(location string) (string, error) {
	f, err := os.Open(location)
	if errors.Is(err, fs.ErrNotExist) {
		return "", errors.Wrapf(entity.ErrNoIdentifierFound, "%s does not exist", location)
	} else if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", location)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if l := strings.TrimSpace(line); entity.IsSessionID(l) {
			return l, nil
		}
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return "", errors.Wrapf(err, "failed to read %s", location)
		}
	}

	return "", errors.Wrap(entity.ErrNoIdentifierFound, location)
}
