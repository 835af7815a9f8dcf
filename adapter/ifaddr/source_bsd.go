//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package ifaddr

import (
	"encoding/binary"
	"io"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/net/route"
)

// routeSource reads the NET_RT_IFLIST routing information base one message at a time.
// Link-layer addresses are sockaddr_dl records reported with the AF_LINK family.
type routeSource struct{}

type ribBuffer struct {
	buf      []byte
	released bool
}

func newSource() source {
	return routeSource{}
}

func (routeSource) linkFamily() int {
	return syscall.AF_LINK
}

func (routeSource) acquire() (ribList, error) {
	b, err := route.FetchRIB(syscall.AF_UNSPEC, route.RIBTypeInterface, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch interface list")
	}
	return &ribBuffer{buf: b}, nil
}

func (routeSource) decode(b []byte) (record, error) {
	if len(b) < 4 {
		return record{}, ErrMalformedRecord
	}

	size := int(binary.NativeEndian.Uint16(b[0:2]))
	if size < 4 || size > len(b) {
		return record{}, ErrMalformedRecord
	}

	rec := record{size: size}

	msgs, err := route.ParseRIB(route.RIBTypeInterface, b[:size])
	if err != nil {
		return record{}, errors.Wrap(ErrMalformedRecord, err.Error())
	}
	if len(msgs) == 0 {
		rec.skip = true
		return rec, nil
	}

	m, ok := msgs[0].(*route.InterfaceMessage)
	if !ok {
		// address messages follow their interface message and carry no link-layer address
		rec.skip = true
		return rec, nil
	}

	rec.name = m.Name
	rec.index = m.Index
	rec.flags = uint32(m.Flags)

	for _, a := range m.Addrs {
		if a == nil {
			continue
		}
		rec.family = a.Family()
		if la, ok := a.(*route.LinkAddr); ok {
			rec.addr = la.Addr
			if rec.name == "" {
				rec.name = la.Name
			}
		}
		break
	}

	if rec.name == "" {
		return record{}, errors.Wrapf(ErrMalformedRecord, "interface %d has no name", rec.index)
	}

	return rec, nil
}

func (r *ribBuffer) next() ([]byte, error) {
	if r.released || r.buf == nil {
		return nil, io.EOF
	}
	b := r.buf
	r.buf = nil
	return b, nil
}

func (r *ribBuffer) release() error {
	r.released = true
	r.buf = nil
	return nil
}
