// Package ifaddr discovers link-layer addresses of the host network interfaces
// by walking the interface list provided by the operating system.
package ifaddr

import (
	"errors"
	"io"
	"net"
	"sort"

	"github.com/forest33/srun/business/entity"
	"github.com/forest33/srun/pkg/logger"
)

// maxRecords bounds the walk over the OS list
const maxRecords = 4096

var (
	ErrUnsupportedPlatform = errors.New("interface enumeration is not supported on this platform")
	ErrMalformedRecord     = errors.New("malformed interface record")
	ErrTooManyRecords      = errors.New("too many interface records")
)

// record one decoded entry of the OS interface list
type record struct {
	name   string
	index  int
	flags  uint32
	family int
	// addr holds exactly the number of address bytes declared by the record, empty without address
	addr []byte
	// size number of bytes the record occupies, the next record starts right after it
	size int
	// done marks the end of the list
	done bool
	// skip marks records that do not describe an interface
	skip bool
}

// layout decodes the OS specific binary records
type layout interface {
	decode(b []byte) (record, error)
	linkFamily() int
}

// ribList an acquired OS interface list, must be released
type ribList interface {
	// next returns the next chunk of raw records, io.EOF after the last one
	next() ([]byte, error)
	release() error
}

type source interface {
	layout
	acquire() (ribList, error)
}

// Enumerator lists link-layer addresses per interface
type Enumerator struct {
	log *logger.Logger
	src source
}

var _ entity.InterfaceEnumerator = (*Enumerator)(nil)

func New(log *logger.Logger) *Enumerator {
	return &Enumerator{
		log: log.Duplicate(log.With().Str("layer", "ifaddr").Logger()),
		src: newSource(),
	}
}

// Enumerate returns link-layer addresses grouped by interface name in enumeration order.
// Interfaces without a link-layer address map to an empty slice.
// Any failure is logged at debug level and results in an empty map.
func (e *Enumerator) Enumerate() map[string][]string {
	addrs, err := e.walk()
	if err != nil {
		e.log.Debug().Err(err).Msg("failed to enumerate interfaces")
		return map[string][]string{}
	}
	return addrs
}

// Names returns the sorted names of all interfaces
func Names(addrs map[string][]string) []string {
	names := make([]string, 0, len(addrs))
	for name := range addrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Enumerator) walk() (map[string][]string, error) {
	list, err := e.src.acquire()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := list.release(); err != nil {
			e.log.Debug().Err(err).Msg("failed to release interface list")
		}
	}()

	var (
		addrs = make(map[string][]string)
		count int
	)

	for {
		chunk, err := list.next()
		if errors.Is(err, io.EOF) {
			return addrs, nil
		} else if err != nil {
			return nil, err
		}

		for len(chunk) > 0 {
			if count++; count > maxRecords {
				return nil, ErrTooManyRecords
			}

			rec, err := e.src.decode(chunk)
			if err != nil {
				return nil, err
			}
			if rec.size <= 0 || rec.size > len(chunk) {
				return nil, ErrMalformedRecord
			}
			chunk = chunk[rec.size:]

			if rec.done {
				return addrs, nil
			}
			if rec.skip {
				continue
			}

			if _, ok := addrs[rec.name]; !ok {
				addrs[rec.name] = []string{}
			}
			if len(rec.addr) == 0 || rec.family != e.src.linkFamily() {
				continue
			}

			addrs[rec.name] = append(addrs[rec.name], net.HardwareAddr(rec.addr).String())

			e.log.Debug().
				Str("if", rec.name).
				Int("index", rec.index).
				Uint32("flags", rec.flags).
				Int("length", len(rec.addr)).
				Msg("link-layer address")
		}
	}
}
