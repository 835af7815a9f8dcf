//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package ifaddr

type unsupportedSource struct{}

func newSource() source {
	return unsupportedSource{}
}

func (unsupportedSource) linkFamily() int {
	return -1
}

func (unsupportedSource) acquire() (ribList, error) {
	return nil, ErrUnsupportedPlatform
}

func (unsupportedSource) decode([]byte) (record, error) {
	return record{}, ErrUnsupportedPlatform
}
