package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"crawler-server/internal/domain"
)

// ErrBadReplay - файл не является записью партии или повреждён.
var ErrBadReplay = errors.New("bad replay file")

func (s *ReplayService) Load(path string) (*ReplaySession, error) {
	return LoadFile(path)
}

// LoadFile читает запись партии с диска.
func LoadFile(path string) (*ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSession(f)
}

// ReadSession разбирает бинарную запись партии.
func ReadSession(r io.Reader) (*ReplaySession, error) {
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %w", ErrBadReplay, err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: invalid magic", ErrBadReplay)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)", ErrBadReplay, header.Version, Version1)
	}
	if header.ActionCount < 0 {
		return nil, fmt.Errorf("%w: negative action count", ErrBadReplay)
	}

	session := &ReplaySession{
		Seed:       header.Seed,
		Timestamp:  header.Timestamp,
		FinalDepth: int(header.FinalDepth),
		Actions:    make([]ReplayAction, 0, header.ActionCount),
	}

	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("%w: action %d: %w", ErrBadReplay, i, err)
		}

		act := ReplayAction{
			Turn:   int(ah.Turn),
			Action: domain.ActionType(ah.ActionType),
		}

		if ah.AdminLen > 0 {
			buf := make([]byte, ah.AdminLen)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("%w: action %d: %w", ErrBadReplay, i, err)
			}
			act.Admin = string(buf)
		}
		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("%w: action %d: %w", ErrBadReplay, i, err)
			}
		}

		session.Actions = append(session.Actions, act)
	}

	return session, nil
}
