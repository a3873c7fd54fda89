package notifier

import (
	"context"
	"log"

	"BoomDoomRadar/internal/model"
)

// LogNotifier writes notices to the process log. It is used when Telegram
// is not configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (LogNotifier) Notify(_ context.Context, n model.Notice) error {
	prefix := "[INFO]"
	switch n.Level {
	case model.NoticeWarn:
		prefix = "[WARN]"
	case model.NoticeError:
		prefix = "[ERROR]"
	}
	if n.HTML {
		log.Printf("%s %s\n%s", prefix, n.Title, StripTags(n.Text))
		return nil
	}
	log.Printf("%s %s: %s", prefix, n.Title, n.Text)
	return nil
}
