package worker

import (
	"context"
)

// Worker - фоновый процесс, управляемый WorkerManager
type Worker interface {
	// Start блокируется до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру завершиться; повторный вызов безопасен
	Stop() error

	Name() string
}

// State - состояние воркера в менеджере
type State string

const (
	StateRegistered State = "registered"
	StateRunning    State = "running"
	StateStopped    State = "stopped"
	// StateFailed - Start вернул ошибку, отличную от отмены контекста
	StateFailed State = "failed"
)
