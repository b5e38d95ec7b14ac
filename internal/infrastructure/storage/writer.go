package storage

import (
	"encoding/binary"
	"errors"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"crawler-server/internal/domain"
)

const (
	MagicHeader string = `CRRP` // 4 байта
	Version1    uint32 = 1

	// Пределы полей ActionHeader
	MaxAdminNameLen = 255
	MaxPayloadLen   = 65535
)

// ErrActionTooLong - команда не помещается в заголовок записи.
var ErrActionTooLong = errors.New("replay action too long")

// ReplayFileHeader - точное представление заголовка файла.
// binary.Write пишет его целиком: внутри только массивы и числа.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	FinalDepth  int32   // 4 байта
	ActionCount int32   // 4 байта
}

// ActionHeader - заголовок каждой записи команды.
// AdminLen > 0: за заголовком идёт имя админ-команды.
type ActionHeader struct {
	Turn       int32  // 4
	ActionType uint8  // 1
	AdminLen   uint8  // 1
	PayloadLen uint16 // 2
}

// ReplayAction - одна принятая движком команда.
type ReplayAction struct {
	Turn    int
	Action  domain.ActionType
	Admin   string
	Payload json.RawMessage
}

// ReplaySession - сид партии и все команды игрока по порядку.
type ReplaySession struct {
	Seed       int64
	Timestamp  int64
	FinalDepth int
	Actions    []ReplayAction
}

// Record добавляет команду в запись. Слишком длинная команда не добавляется.
func (s *ReplaySession) Record(turn int, cmd domain.Command) error {
	return s.add(ReplayAction{Turn: turn, Action: cmd.Action, Payload: cmd.Payload})
}

// RecordAdmin добавляет админ-команду в запись.
func (s *ReplaySession) RecordAdmin(turn int, name string, payload json.RawMessage) error {
	return s.add(ReplayAction{Turn: turn, Admin: name, Payload: payload})
}

func (s *ReplaySession) add(act ReplayAction) error {
	if err := CheckAction(act); err != nil {
		return err
	}
	s.Actions = append(s.Actions, act)
	return nil
}

// CheckAction проверяет, что команда помещается в бинарный формат.
func CheckAction(act ReplayAction) error {
	if len(act.Admin) > MaxAdminNameLen {
		return fmt.Errorf("%w: admin name %d bytes", ErrActionTooLong, len(act.Admin))
	}
	if len(act.Payload) > MaxPayloadLen {
		return fmt.Errorf("%w: payload %d bytes", ErrActionTooLong, len(act.Payload))
	}
	return nil
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет сессию во временный файл и переименовывает его.
// При ошибке в каталоге не остаётся недописанного файла.
func (s *ReplayService) Save(session *ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%d_d%d_%d.crrp", session.Seed, session.FinalDepth, session.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.CreateTemp(s.SaveDir, "replay-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create replay file: %w", err)
	}

	if err := WriteSession(f, session); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write replay %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close replay %s: %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("rename replay %s: %w", path, err)
	}
	return path, nil
}

// WriteSession сериализует сессию в бинарный формат.
func WriteSession(w io.Writer, s *ReplaySession) error {
	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		FinalDepth:  int32(s.FinalDepth),
		ActionCount: int32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, act := range s.Actions {
		if err := CheckAction(act); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
		admin := []byte(act.Admin)
		payloadLen := len(act.Payload)

		actHeader := ActionHeader{
			Turn:       int32(act.Turn),
			ActionType: uint8(act.Action),
			AdminLen:   uint8(len(admin)),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}

		if _, err := w.Write(admin); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
