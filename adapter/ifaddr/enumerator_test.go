package ifaddr

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/forest33/srun/pkg/logger"
)

const (
	fakeLinkFamily = 18
	fakeInetFamily = 2
)

// fakeSource serves pre-decoded records, one byte per record
type fakeSource struct {
	records  []record
	chunks   int
	err      error
	released int
}

type fakeList struct {
	src  *fakeSource
	sent int
}

func (s *fakeSource) linkFamily() int {
	return fakeLinkFamily
}

func (s *fakeSource) acquire() (ribList, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &fakeList{src: s}, nil
}

func (s *fakeSource) decode(b []byte) (record, error) {
	idx := int(b[0])
	if idx >= len(s.records) {
		return record{}, ErrMalformedRecord
	}
	rec := s.records[idx]
	if rec.size == 0 {
		rec.size = 1
	}
	return rec, nil
}

func (l *fakeList) next() ([]byte, error) {
	chunks := l.src.chunks
	if chunks == 0 {
		chunks = 1
	}
	if l.sent >= chunks {
		return nil, io.EOF
	}
	var chunk []byte
	for i := range l.src.records {
		if i%chunks == l.sent {
			chunk = append(chunk, byte(i))
		}
	}
	l.sent++
	return chunk, nil
}

func (l *fakeList) release() error {
	l.src.released++
	return nil
}

func newTestEnumerator(src source) *Enumerator {
	log := logger.NewDefault()
	return &Enumerator{log: log, src: src}
}

func TestEnumerate(t *testing.T) {
	src := &fakeSource{
		records: []record{
			{name: "lo", family: fakeLinkFamily, addr: []byte{0, 0, 0, 0, 0, 0}},
			{name: "eth0", family: fakeLinkFamily, addr: []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}},
			{name: "eth0", family: fakeInetFamily, addr: []byte{192, 168, 1, 2}},
			{name: "tun0"},
			{skip: true},
			{name: "eth0", family: fakeLinkFamily, addr: []byte{0x02, 0x42, 0xAC, 0x11, 0x00, 0x02}},
			{name: "ipip0", family: fakeLinkFamily, addr: []byte{10, 0, 0, 1}},
			{name: "wg0", family: fakeLinkFamily, addr: []byte{}},
			{done: true},
			{name: "after-done", family: fakeLinkFamily, addr: []byte{1, 2, 3, 4, 5, 6}},
		},
	}

	got := newTestEnumerator(src).Enumerate()
	want := map[string][]string{
		"lo":    {"00:00:00:00:00:00"},
		"eth0":  {"aa:bb:cc:dd:ee:ff", "02:42:ac:11:00:02"},
		"tun0":  {},
		"ipip0": {"0a:00:00:01"},
		"wg0":   {},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if src.released != 1 {
		t.Errorf("list released %d times", src.released)
	}
}

func TestEnumerateChunks(t *testing.T) {
	src := &fakeSource{
		chunks: 3,
		records: []record{
			{name: "eth0", family: fakeLinkFamily, addr: []byte{1, 2, 3, 4, 5, 6}},
			{name: "eth1", family: fakeLinkFamily, addr: []byte{6, 5, 4, 3, 2, 1}},
			{name: "eth2"},
		},
	}

	got := newTestEnumerator(src).Enumerate()
	want := map[string][]string{
		"eth0": {"01:02:03:04:05:06"},
		"eth1": {"06:05:04:03:02:01"},
		"eth2": {},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestEnumerateFailures(t *testing.T) {
	tests := []struct {
		name     string
		src      *fakeSource
		released int
	}{
		{
			name:     "acquire",
			src:      &fakeSource{err: ErrUnsupportedPlatform},
			released: 0,
		},
		{
			name: "malformed",
			src: &fakeSource{records: []record{
				{name: "eth0", family: fakeLinkFamily, addr: []byte{1, 2, 3, 4, 5, 6}},
				{name: "eth1", size: 100},
			}},
			released: 1,
		},
		{
			name:     "circular",
			src:      &fakeSource{records: make([]record, maxRecords+1)},
			released: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range tt.src.records {
				if tt.src.records[i].name == "" && tt.src.records[i].size == 0 {
					tt.src.records[i].skip = true
				}
			}

			got := newTestEnumerator(tt.src).Enumerate()
			if got == nil || len(got) != 0 {
				t.Errorf("expected empty map, got %v", got)
			}
			if tt.src.released != tt.released {
				t.Errorf("list released %d times, expected %d", tt.src.released, tt.released)
			}
		})
	}
}

func TestWalkTooManyRecords(t *testing.T) {
	src := &fakeSource{records: make([]record, 300)}
	for i := range src.records {
		src.records[i].skip = true
	}
	// every chunk repeats the same records, the list never ends
	src.chunks = 1
	e := newTestEnumerator(&endlessSource{fakeSource: src})

	_, err := e.walk()
	if !errors.Is(err, ErrTooManyRecords) {
		t.Fatalf("expected %v, got %v", ErrTooManyRecords, err)
	}
	if src.released != 1 {
		t.Errorf("list released %d times", src.released)
	}
}

func TestNames(t *testing.T) {
	names := Names(map[string][]string{"wlan0": nil, "eth0": nil, "lo": nil})
	if !reflect.DeepEqual(names, []string{"eth0", "lo", "wlan0"}) {
		t.Errorf("wrong order %v", names)
	}
}

type endlessSource struct {
	*fakeSource
}

type endlessList struct {
	*fakeList
}

func (s *endlessSource) acquire() (ribList, error) {
	l, err := s.fakeSource.acquire()
	if err != nil {
		return nil, err
	}
	return &endlessList{fakeList: l.(*fakeList)}, nil
}

func (l *endlessList) next() ([]byte, error) {
	l.sent = 0
	return l.fakeList.next()
}
