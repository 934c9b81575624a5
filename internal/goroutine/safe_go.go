package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/prokvartiru/review-backend/internal/logger"
)

// SafeGo запускает fn в горутине, перехватывая панику. Используется для
// фоновых побочных эффектов вроде отправки писем: паника в них не должна
// ронять процесс и теряться мимо общего логгера.
func SafeGo(fn func()) {
	go func() {
		defer logPanic()
		fn()
	}()
}

// SafeGoWithContext - вариант SafeGo для функций, принимающих контекст.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer logPanic()
		fn(ctx)
	}()
}

func logPanic() {
	if r := recover(); r != nil {
		logger.Log.WithField("stack", string(debug.Stack())).
			Errorf("goroutine: перехвачена паника: %v", r)
	}
}
