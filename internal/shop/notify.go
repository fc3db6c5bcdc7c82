package shop

import "go.uber.org/zap"

const (
	NoticeSuccess = "success"
	NoticeInfo    = "info"
)

// Notice is a user-visible toast. Mutations that emit one also return it so
// the HTTP layer can echo it to the client.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func success(msg string) Notice { return Notice{Level: NoticeSuccess, Message: msg} }
func info(msg string) Notice    { return Notice{Level: NoticeInfo, Message: msg} }

// Notifier is the sink for notices. The store calls it on every mutation the
// contract says is user-visible; rendering is someone else's job.
type Notifier interface {
	Notify(n Notice)
}

type NopNotifier struct{}

func (NopNotifier) Notify(Notice) {}

// LogNotifier writes notices to the service log.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) Notify(notice Notice) {
	n.Log.Info("notice",
		zap.String("level", notice.Level),
		zap.String("message", notice.Message),
	)
}
