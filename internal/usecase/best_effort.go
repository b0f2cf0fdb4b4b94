package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultSideTaskTimeout = 15 * time.Second

// BestEffort roda tarefas secundárias fora do caminho da requisição.
// Falha é logada e contada, nunca devolvida ao chamador.
type BestEffort struct {
	Timeout   time.Duration
	Log       logrus.FieldLogger
	OnFailure func(task string)

	wg sync.WaitGroup
}

func NewBestEffort(timeout time.Duration, log logrus.FieldLogger) *BestEffort {
	if timeout <= 0 {
		timeout = defaultSideTaskTimeout
	}
	return &BestEffort{Timeout: timeout, Log: log}
}

// Go dispara a tarefa com contexto próprio: o cancelamento da requisição
// não derruba o espelhamento.
func (b *BestEffort) Go(name string, task func(ctx context.Context) error) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.fail(name, b.Log.WithField("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
		defer cancel()

		start := time.Now()
		if err := task(ctx); err != nil {
			b.fail(name, b.Log.WithError(err))
			return
		}
		b.Log.WithFields(logrus.Fields{"task": name, "elapsed": time.Since(start).String()}).Debug("side task done")
	}()
}

// Wait espera as tarefas em andamento. Chamado no shutdown.
func (b *BestEffort) Wait() {
	b.wg.Wait()
}

func (b *BestEffort) fail(name string, entry *logrus.Entry) {
	entry.WithField("task", name).Warn("side task failed")
	if b.OnFailure != nil {
		b.OnFailure(name)
	}
}
