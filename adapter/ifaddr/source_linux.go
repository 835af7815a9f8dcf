//go:build linux

package ifaddr

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const recvBufferSize = 1 << 16

// netlinkSource reads RTM_NEWLINK messages of an rtnetlink link dump.
// IFLA_ADDRESS carries the link-layer address, reported with the AF_PACKET family.
type netlinkSource struct {
	seq uint32
}

type netlinkList struct {
	fd   int
	buf  []byte
	done bool
}

func newSource() source {
	return &netlinkSource{}
}

func (s *netlinkSource) linkFamily() int {
	return unix.AF_PACKET
}

func (s *netlinkSource) acquire() (ribList, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_ROUTE)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}

	l := &netlinkList{
		fd:  fd,
		buf: make([]byte, recvBufferSize),
	}

	sa := &unix.SockaddrNetlink{Family: unix.AF_NETLINK}
	if err := unix.Bind(fd, sa); err != nil {
		_ = l.release()
		return nil, os.NewSyscallError("bind", err)
	}

	s.seq++
	if err := unix.Sendto(fd, linkDumpRequest(s.seq), 0, sa); err != nil {
		_ = l.release()
		return nil, os.NewSyscallError("sendto", err)
	}

	return l, nil
}

func (s *netlinkSource) decode(b []byte) (record, error) {
	if len(b) < unix.NLMSG_HDRLEN {
		return record{}, ErrMalformedRecord
	}

	var (
		msgLen = int(binary.NativeEndian.Uint32(b[0:4]))
		typ    = binary.NativeEndian.Uint16(b[4:6])
		seq    = binary.NativeEndian.Uint32(b[8:12])
	)
	if msgLen < unix.NLMSG_HDRLEN || msgLen > len(b) {
		return record{}, ErrMalformedRecord
	}

	rec := record{size: min(nlmAlign(msgLen), len(b))}

	if seq != s.seq {
		rec.skip = true
		return rec, nil
	}

	switch typ {
	case unix.NLMSG_DONE:
		rec.done = true
		return rec, nil
	case unix.NLMSG_ERROR:
		if msgLen < unix.NLMSG_HDRLEN+4 {
			return record{}, ErrMalformedRecord
		}
		errno := -int32(binary.NativeEndian.Uint32(b[unix.NLMSG_HDRLEN:]))
		if errno == 0 {
			rec.skip = true
			return rec, nil
		}
		return record{}, os.NewSyscallError("netlink", unix.Errno(errno))
	case unix.RTM_NEWLINK:
	default:
		rec.skip = true
		return rec, nil
	}

	body := b[unix.NLMSG_HDRLEN:msgLen]
	if len(body) < unix.SizeofIfInfomsg {
		return record{}, ErrMalformedRecord
	}
	rec.index = int(int32(binary.NativeEndian.Uint32(body[4:8])))
	rec.flags = binary.NativeEndian.Uint32(body[8:12])

	attrs := body[unix.SizeofIfInfomsg:]
	for len(attrs) >= unix.SizeofRtAttr {
		attrLen := int(binary.NativeEndian.Uint16(attrs[0:2]))
		attrType := binary.NativeEndian.Uint16(attrs[2:4])
		if attrLen < unix.SizeofRtAttr || attrLen > len(attrs) {
			return record{}, errors.Wrapf(ErrMalformedRecord, "attribute %d of interface %d", attrType, rec.index)
		}

		data := attrs[unix.SizeofRtAttr:attrLen]
		switch attrType {
		case unix.IFLA_IFNAME:
			if i := bytes.IndexByte(data, 0); i != -1 {
				data = data[:i]
			}
			rec.name = string(data)
		case unix.IFLA_ADDRESS:
			rec.family = unix.AF_PACKET
			rec.addr = append([]byte(nil), data...)
		}

		attrs = attrs[min(rtaAlign(attrLen), len(attrs)):]
	}

	if rec.name == "" {
		return record{}, errors.Wrapf(ErrMalformedRecord, "interface %d has no name", rec.index)
	}

	return rec, nil
}

func (l *netlinkList) next() ([]byte, error) {
	for {
		n, _, err := unix.Recvfrom(l.fd, l.buf, 0)
		if err == unix.EINTR {
			continue
		} else if err != nil {
			return nil, os.NewSyscallError("recvfrom", err)
		}
		if n == 0 {
			return nil, io.EOF
		}
		return l.buf[:n], nil
	}
}

func (l *netlinkList) release() error {
	if l.done {
		return nil
	}
	l.done = true
	l.buf = nil
	return os.NewSyscallError("close", unix.Close(l.fd))
}

func linkDumpRequest(seq uint32) []byte {
	b := make([]byte, unix.NLMSG_HDRLEN+unix.SizeofRtGenmsg)
	binary.NativeEndian.PutUint32(b[0:4], uint32(len(b)))
	binary.NativeEndian.PutUint16(b[4:6], unix.RTM_GETLINK)
	binary.NativeEndian.PutUint16(b[6:8], unix.NLM_F_REQUEST|unix.NLM_F_DUMP)
	binary.NativeEndian.PutUint32(b[8:12], seq)
	b[unix.NLMSG_HDRLEN] = unix.AF_UNSPEC
	return b
}

func nlmAlign(n int) int {
	return (n + unix.NLMSG_ALIGNTO - 1) &^ (unix.NLMSG_ALIGNTO - 1)
}

func rtaAlign(n int) int {
	return (n + unix.RTA_ALIGNTO - 1) &^ (unix.RTA_ALIGNTO - 1)
}
