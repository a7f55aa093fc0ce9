package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/interfaces"
)

// ReconcileWorker periyodik mutabakat çalıştırıcısı.
// Interval 0 ise worker kapalıdır; mutabakat sadece admin endpoint'inden
// elle tetiklenir.
type ReconcileWorker struct {
	service  interfaces.ReconcileServiceInterface
	interval time.Duration
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewReconcileWorker yeni worker oluşturur
func NewReconcileWorker(service interfaces.ReconcileServiceInterface, interval time.Duration) *ReconcileWorker {
	return &ReconcileWorker{
		service:  service,
		interval: interval,
	}
}

// Start worker'ı başlatır
func (w *ReconcileWorker) Start() {
	if w.interval <= 0 {
		log.Info().Msg("Mutabakat worker'ı kapalı (interval 0)")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.wg.Add(1)
	go w.run(ctx)

	log.Info().
		Dur("interval", w.interval).
		Msg("🔄 Mutabakat worker'ı başlatıldı")
}

// Stop worker'ı durdurur ve devam eden turun bitmesini bekler
func (w *ReconcileWorker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
	log.Info().Msg("⏹️ Mutabakat worker'ı durduruldu")
}

// run ticker loop'u
func (w *ReconcileWorker) run(ctx context.Context) {
	defer w.wg.Done()

	// Panic recovery: tek bozuk tur servisi düşürmemeli
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("recover", r).
				Msg("🚨 Mutabakat worker'ı panikledi ama toparlandı")
		}
	}()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce tek mutabakat turu; hata loglanır, bir sonraki tur beklenir
func (w *ReconcileWorker) runOnce(ctx context.Context) {
	result, err := w.service.ReconcileBankTopups(ctx)
	if err != nil {
		// Feed kesintisi olabilir; talepler pending kalır, tur atlanır
		log.Warn().Err(err).Msg("Mutabakat turu başarısız")
		return
	}

	log.Debug().
		Int("processed", result.ProcessedCount).
		Int("approved", result.ApprovedCount).
		Msg("Mutabakat turu tamamlandı")
}
