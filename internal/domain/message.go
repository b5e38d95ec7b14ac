package domain

// MessageType - категория записи в журнале.
type MessageType string

const (
	MsgInfo   MessageType = "INFO"
	MsgCombat MessageType = "COMBAT"
	MsgSystem MessageType = "SYSTEM"
	MsgDeath  MessageType = "DEATH"
)

// Message - запись журнала игры.
type Message struct {
	Seq   int         `json:"seq"`
	Text  string      `json:"text"`
	Type  MessageType `json:"type"`
	Color uint32      `json:"color"`
}

// MessageLog хранит последние Capacity сообщений.
type MessageLog struct {
	Capacity int
	messages []Message
	total    int
}

func NewMessageLog(capacity int) *MessageLog {
	return &MessageLog{Capacity: capacity}
}

// Add добавляет сообщение, вытесняя самое старое при переполнении.
func (l *MessageLog) Add(text string, msgType MessageType, color uint32) {
	l.total++
	l.messages = append(l.messages, Message{Seq: l.total, Text: text, Type: msgType, Color: color})
	if l.Capacity > 0 && len(l.messages) > l.Capacity {
		l.messages = l.messages[len(l.messages)-l.Capacity:]
	}
}

// Messages возвращает копию хранимых сообщений.
func (l *MessageLog) Messages() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Since возвращает сообщения с порядковым номером больше seq.
func (l *MessageLog) Since(seq int) []Message {
	var out []Message
	for _, m := range l.messages {
		if m.Seq > seq {
			out = append(out, m)
		}
	}
	return out
}

// Total - сколько сообщений было добавлено за всё время.
func (l *MessageLog) Total() int {
	return l.total
}
