package model

// NoticeLevel is the severity of a user-facing notice.
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeWarn  NoticeLevel = "warn"
	NoticeError NoticeLevel = "error"
)

// Notice is a message meant for the end user. Text is plain unless HTML is
// set, in which case it already carries Telegram HTML markup.
type Notice struct {
	Level NoticeLevel
	Title string
	Text  string
	HTML  bool
}
