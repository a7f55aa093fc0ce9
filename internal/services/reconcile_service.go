package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/metrics"
	"github.com/onerilhan/go-store-api/internal/models"
)

// ReconcileService pending yükleme taleplerini banka feed'iyle eşleştirir.
// Feed ulaşılamazsa hiçbir taleple oynamaz: dış servis kesintisi asla
// bir talebi denied'a çeviremez, talepler pending kalır.
type ReconcileService struct {
	topupRepo    interfaces.TopupRepositoryInterface
	topupService *TopupService
	bankClient   interfaces.BankFeedClientInterface
}

// NewReconcileService yeni service oluşturur
func NewReconcileService(topupRepo interfaces.TopupRepositoryInterface, topupService *TopupService, bankClient interfaces.BankFeedClientInterface) *ReconcileService {
	return &ReconcileService{
		topupRepo:    topupRepo,
		topupService: topupService,
		bankClient:   bankClient,
	}
}

// ReconcileBankTopups feed'i bir kez çekip tüm pending talepleri eşleştirir.
// Tek talebin hatası diğerlerini durdurmaz; her item kendi sonucunu taşır.
// İkinci çalıştırma no-op'tur: onaylanan talepler pending listesinden düşer
// ve bank_transaction_id unique constraint'i havaleyi sahiplenmiştir.
func (s *ReconcileService) ReconcileBankTopups(ctx context.Context) (*models.ReconcileResult, error) {
	feed, err := s.bankClient.FetchTransactions(ctx)
	if err != nil {
		// Feed yoksa eşleşme de yok; karar verilmez
		return nil, err
	}

	pending, err := s.topupRepo.GetPendingWithCode()
	if err != nil {
		return nil, fmt.Errorf("pending talepler alınamadı: %w", err)
	}

	result := &models.ReconcileResult{
		Items: make([]models.ReconcileItemResult, 0, len(pending)),
	}

	for _, topup := range pending {
		item := s.reconcileOne(feed, topup)
		result.Items = append(result.Items, item)
		result.ProcessedCount++
		if item.Result == models.ReconcileResultApproved {
			result.ApprovedCount++
		}
		metrics.ReconcileMatchesTotal.WithLabelValues(item.Result).Inc()
	}

	log.Info().
		Int("processed", result.ProcessedCount).
		Int("approved", result.ApprovedCount).
		Msg("Banka mutabakatı tamamlandı")

	return result, nil
}

// reconcileOne tek pending talebi feed'e karşı değerlendirir
func (s *ReconcileService) reconcileOne(feed []models.BankTransaction, topup *models.TopupRequest) models.ReconcileItemResult {
	item := models.ReconcileItemResult{
		TopupID:   topup.ID,
		TopupCode: topup.TopupCode,
	}

	candidates := findCandidates(feed, topup)

	switch len(candidates) {
	case 0:
		item.Result = models.ReconcileResultNoMatch
		return item

	case 1:
		bankTx := candidates[0]
		_, err := s.topupService.ApproveMatched(topup.ID, bankTx, "reconcile")
		if err != nil {
			if errors.Is(err, ErrBankTransactionClaimed) {
				item.Result = models.ReconcileResultClaimed
				item.BankTransactionID = bankTx.TransactionID
				return item
			}

			// Karar verilmiş bir talep paralel bir approve ile yarışmış olabilir
			var processedErr *apperrors.AlreadyProcessedError
			if errors.As(err, &processedErr) {
				item.Result = models.ReconcileResultFailed
				item.Error = err.Error()
				return item
			}

			log.Error().
				Err(err).
				Int("topup_id", topup.ID).
				Msg("Mutabakat onayı başarısız")
			item.Result = models.ReconcileResultFailed
			item.Error = err.Error()
			return item
		}

		item.Result = models.ReconcileResultApproved
		item.BankTransactionID = bankTx.TransactionID
		return item

	default:
		// Kod birden fazla harekette görünüyor: otomatik onay yapılmaz,
		// talep manuel inceleme için pending bırakılır
		log.Warn().
			Int("topup_id", topup.ID).
			Str("topup_code", topup.TopupCode).
			Int("candidate_count", len(candidates)).
			Msg("Belirsiz mutabakat eşleşmesi, manuel inceleme gerekiyor")
		item.Result = models.ReconcileResultAmbiguous
		return item
	}
}
