package notification

import (
	"context"

	"go.uber.org/zap"
)

// Provisioned carries what a new employee needs for their first sign-in.
type Provisioned struct {
	Email             string
	Name              string
	LoginID           string
	TemporaryPassword string
}

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	ProfileProvisioned(ctx context.Context, p Provisioned) error
}

// LogNotifier records provisioning notices in the log instead of sending mail.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger ...*zap.Logger) *LogNotifier {
	l := zap.L().Named("notification")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification")
	}
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) ProfileProvisioned(ctx context.Context, p Provisioned) error {
	n.logger.Info("profile provisioned notice",
		zap.String("email", p.Email),
		zap.String("name", p.Name),
		zap.String("login_id", p.LoginID),
		zap.Bool("temporary_password_issued", p.TemporaryPassword != ""),
	)
	return nil
}
