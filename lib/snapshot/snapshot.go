// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot implements the binary backup format for the flat
// text stores.
//
// A snapshot carries the raw store lines rather than decoded records,
// so backup and restore preserve the files byte-for-byte, including
// legacy rows that have not yet been rewritten in canonical form.
//
// On disk a snapshot is:
//
//	offset  size  field
//	0       8     magic "ANTRSNP1"
//	8       32    BLAKE3 keyed digest of the compressed payload
//	40      ...   zstd-compressed deterministic-CBOR payload
//
// The payload is encoded with Core Deterministic Encoding, so the same
// store contents always produce the same digest. Restore refuses a
// snapshot whose digest does not match its payload.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/klinikmitra/antrian/lib/codec"
)

var magic = [8]byte{'A', 'N', 'T', 'R', 'S', 'N', 'P', '1'}

// digestKey is the 32-byte key for BLAKE3 keyed hashing. Keying the
// digest separates snapshot digests from any other BLAKE3 use of the
// same bytes. The value is the ASCII domain name zero-padded to 32
// bytes, readable in hex dumps.
var digestKey = [32]byte{
	'a', 'n', 't', 'r', 'i', 'a', 'n', '.', 's', 'n', 'a', 'p', 's', 'h', 'o', 't',
}

// ErrBadMagic is returned when the input does not start with the
// snapshot magic bytes.
var ErrBadMagic = errors.New("not a snapshot file")

// ErrDigestMismatch is returned when the payload digest recorded in
// the header does not match the payload. The snapshot is corrupt or
// was tampered with; nothing is restored.
var ErrDigestMismatch = errors.New("snapshot digest mismatch")

// Snapshot is the full persisted state of the tracker: the raw lines
// of both stores and the capture time.
type Snapshot struct {
	CreatedAt time.Time
	Users     []string
	Tickets   []string
}

// payload is the CBOR wire form. The version field leaves room to
// evolve the payload without changing the magic.
type payload struct {
	Version   int       `cbor:"version"`
	CreatedAt time.Time `cbor:"created_at"`
	Users     []string  `cbor:"users"`
	Tickets   []string  `cbor:"tickets"`
}

const payloadVersion = 1

// zstdEncoder and zstdDecoder are reused across calls; both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("snapshot: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("snapshot: zstd decoder initialization failed: " + err.Error())
	}
}

func digest(data []byte) [32]byte {
	hasher, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		panic("snapshot: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var sum [32]byte
	copy(sum[:], hasher.Sum(nil))
	return sum
}

// Write encodes snap and writes the complete snapshot to w.
func Write(w io.Writer, snap Snapshot) error {
	encoded, err := codec.Marshal(payload{
		Version:   payloadVersion,
		CreatedAt: snap.CreatedAt,
		Users:     snap.Users,
		Tickets:   snap.Tickets,
	})
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	compressed := zstdEncoder.EncodeAll(encoded, nil)
	sum := digest(compressed)

	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if _, err := w.Write(sum[:]); err != nil {
		return err
	}
	if _, err := w.Write(compressed); err != nil {
		return err
	}
	return nil
}

// Read reads and verifies a complete snapshot from r. A digest that
// does not match the payload returns ErrDigestMismatch.
func Read(r io.Reader) (Snapshot, error) {
	var header [40]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Snapshot{}, ErrBadMagic
		}
		return Snapshot{}, err
	}
	if !bytes.Equal(header[:8], magic[:]) {
		return Snapshot{}, ErrBadMagic
	}

	compressed, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, err
	}

	sum := digest(compressed)
	if !bytes.Equal(sum[:], header[8:40]) {
		return Snapshot{}, ErrDigestMismatch
	}

	encoded, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decompressing snapshot: %w", err)
	}

	var p payload
	if err := codec.Unmarshal(encoded, &p); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if p.Version != payloadVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d", p.Version)
	}

	return Snapshot{
		CreatedAt: p.CreatedAt,
		Users:     p.Users,
		Tickets:   p.Tickets,
	}, nil
}

// WriteFile writes a snapshot to path atomically: the bytes land in a
// temporary file in the same directory, then rename into place.
func WriteFile(path string, snap Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := Write(tmp, snap); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming snapshot into place: %w", err)
	}
	success = true
	return nil
}

// ReadFile reads and verifies a snapshot from path.
func ReadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	return Read(f)
}
