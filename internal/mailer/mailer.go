package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/prokvartiru/review-backend/internal/config"
	"github.com/prokvartiru/review-backend/internal/logger"
	"github.com/prokvartiru/review-backend/internal/validation"
)

// Длина превью текста комментария в письме.
const previewLength = 100

// Mailer отправляет почтовые уведомления через SMTP.
// Без настроенного SMTP_HOST все отправки превращаются в no-op.
type Mailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
	enabled     bool
}

// New создаёт отправителя писем из конфигурации.
func New(cfg *config.Config) *Mailer {
	m := &Mailer{
		from:        cfg.EmailFrom,
		frontendURL: cfg.FrontendURL,
		enabled:     cfg.EmailEnabled(),
	}
	if m.enabled {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	} else {
		logger.Log.Warn("mailer: SMTP не настроен, письма отправляться не будут")
	}
	return m
}

// SendCommentNotification уведомляет автора отзыва о новом комментарии.
// reviewKind - сегмент ссылки: property или tenant.
func (m *Mailer) SendCommentNotification(to, authorName, commenterName, commentText, reviewKind, reviewID string) error {
	preview := validation.Truncate(commentText, previewLength)
	link := fmt.Sprintf("%s/%s/%s", m.frontendURL, reviewKind, reviewID)

	subject := fmt.Sprintf("%s оставил комментарий к вашему отзыву", commenterName)
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\n%s прокомментировал ваш отзыв:\n\n«%s»\n\nПосмотреть обсуждение: %s\n\nОтключить уведомления можно в настройках профиля.",
		authorName, commenterName, preview, link,
	)
	return m.send(to, subject, body)
}

// SendVerificationCode отправляет код подтверждения email.
func (m *Mailer) SendVerificationCode(to, name, code string) error {
	subject := "Подтверждение email"
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\nВаш код подтверждения: %s\n\nКод действует 15 минут. Если вы не регистрировались, просто проигнорируйте это письмо.",
		name, code,
	)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.enabled {
		logger.Log.WithField("to", to).Debug("mailer: отправка пропущена, SMTP не настроен")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: не удалось отправить письмо: %w", err)
	}
	return nil
}
