package checkpoint

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	corelog "github.com/wasmabi/serializer/internal/core/infrastructure/log"
	logiface "github.com/wasmabi/serializer/pkg/interfaces/infrastructure/log"
)

func newTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	logger, err := corelog.New(logiface.ErrorLevel)
	require.NoError(t, err)

	dir, err := os.MkdirTemp("", "checkpoint-store-")
	require.NoError(t, err)

	s := New(logger)
	require.True(t, s.Init(dir), "Init(%s) failed", dir)

	return s, func() {
		s.Close()
		os.RemoveAll(dir)
	}
}

func TestStoreWriteReadExists(t *testing.T) {
	s, cleanup := newTestStore(t)
	defer cleanup()

	require.False(t, s.Exists(1), "height 1 should not exist before any write")
	require.True(t, s.Write(1, []byte("checkpoint-one")))
	require.True(t, s.Exists(1))

	got, ok := s.Read(1)
	require.True(t, ok)
	require.Equal(t, "checkpoint-one", string(got))
}

func TestStoreReadMiss(t *testing.T) {
	s, cleanup := newTestStore(t)
	defer cleanup()

	_, ok := s.Read(42)
	require.False(t, ok, "Read(42) should miss on an empty store")
}

func TestStoreWriteOverwrites(t *testing.T) {
	s, cleanup := newTestStore(t)
	defer cleanup()

	s.Write(5, []byte("first"))
	s.Write(5, []byte("second"))

	got, ok := s.Read(5)
	require.True(t, ok)
	require.Equal(t, "second", string(got))
}

func TestStoreLoadAll(t *testing.T) {
	s, cleanup := newTestStore(t)
	defer cleanup()

	records := map[uint64]string{1: "a", 2: "b", 100: "c"}
	for height, record := range records {
		require.True(t, s.Write(height, []byte(record)), "Write(%d) failed", height)
	}

	all, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, len(records))

	for height, want := range records {
		got, ok := all[height]
		require.True(t, ok, "LoadAll missing height %d", height)
		require.Equal(t, want, string(got))
	}
}

func TestCheckpointKeyEncodesHeightBigEndian(t *testing.T) {
	k := checkpointKey(0x0102030405060708)
	require.Equal(t, byte(keyPrefix), k[0])
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, k[1:])
}
