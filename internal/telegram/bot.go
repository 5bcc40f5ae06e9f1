package telegram

import (
	"errors"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"reshareshing/internal/record"
)

// ErrChatSend wraps every failure to deliver the summary message.
var ErrChatSend = errors.New("chat send failed")

// Sink posts messages into a fixed chat and forum thread.
type Sink struct {
	api      requester
	chatID   string
	threadID string
}

func NewSink(api requester, chatID, threadID string) *Sink {
	return &Sink{api: api, chatID: chatID, threadID: threadID}
}

// Send delivers text with the given parse mode (tgbotapi.ModeMarkdown or
// tgbotapi.ModeHTML). The thread id must be an integer.
func (s *Sink) Send(text, parseMode string) error {
	thread, err := strconv.Atoi(strings.TrimSpace(s.threadID))
	if err != nil {
		return fmt.Errorf("%w: invalid thread id %q", ErrChatSend, s.threadID)
	}

	params := tgbotapi.Params{
		"chat_id": s.chatID,
		"text":    text,
	}
	params.AddNonZero("message_thread_id", thread)
	params.AddNonEmpty("parse_mode", parseMode)

	if _, err := s.api.MakeRequest("sendMessage", params); err != nil {
		return fmt.Errorf("%w: %w", ErrChatSend, err)
	}
	log.Printf("summary sent to chat %s thread %d", s.chatID, thread)
	return nil
}

// Summary formats rec as a bulleted message for the given parse mode.
// Values are escaped in HTML mode; Markdown keeps them verbatim.
func Summary(rec record.Record, parseMode string) string {
	var b strings.Builder
	if parseMode == tgbotapi.ModeHTML {
		b.WriteString("📋 <b>Ringkasan Data Reshareshing</b>\n\n")
	} else {
		b.WriteString("📋 **Ringkasan Data Reshareshing**\n\n")
	}
	for i, v := range rec.Values {
		if i > 0 {
			b.WriteString("\n")
		}
		if parseMode == tgbotapi.ModeHTML {
			fmt.Fprintf(&b, "• <b>%s</b>: %s", rec.Labels[i], html.EscapeString(v))
		} else {
			fmt.Fprintf(&b, "• **%s**: %s", rec.Labels[i], v)
		}
	}
	return b.String()
}
