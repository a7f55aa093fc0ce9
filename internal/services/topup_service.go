package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/db"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/metrics"
	"github.com/onerilhan/go-store-api/internal/models"
)

// ErrBankTransactionClaimed banka hareketi başka bir talebe kredilenmiş.
// Tek havale iki talebi kredilendiremez.
var ErrBankTransactionClaimed = errors.New("banka hareketi başka bir taleple eşleşmiş")

// TopupService yükleme talebi yaşam döngüsü.
// Status geçişleri tek yönlüdür (pending -> approved|denied) ve guard
// status yazımıyla aynı transaction'da kontrol edilir: retry edilen bir
// approve çağrısı krediyi tekrar uygulamaz, AlreadyProcessed alır.
type TopupService struct {
	topupRepo  interfaces.TopupRepositoryInterface
	bankClient interfaces.BankFeedClientInterface
	database   *sql.DB
	maxAmount  int64
}

// NewTopupService yeni service oluşturur
func NewTopupService(topupRepo interfaces.TopupRepositoryInterface, bankClient interfaces.BankFeedClientInterface, database *sql.DB, maxAmount int64) *TopupService {
	return &TopupService{
		topupRepo:  topupRepo,
		bankClient: bankClient,
		database:   database,
		maxAmount:  maxAmount,
	}
}

// CreateTopup yeni pending talep ve topup kodu oluşturur.
// Kod kullanıcının havale açıklamasına yazacağı benzersiz referanstır.
func (s *TopupService) CreateTopup(userID int, req *models.CreateTopupRequest) (*models.TopupRequest, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("tutar sıfırdan büyük olmalıdır")
	}
	if req.Amount > s.maxAmount {
		return nil, fmt.Errorf("maksimum yükleme tutarı: %d", s.maxAmount)
	}

	method := req.Method
	if method == "" {
		method = "bank_transfer"
	}

	topup := &models.TopupRequest{
		UserID:    userID,
		Amount:    req.Amount,
		Method:    method,
		TopupCode: generateTopupCode(),
	}

	created, err := s.topupRepo.Create(topup)
	if err != nil {
		return nil, fmt.Errorf("yükleme talebi oluşturulamadı: %w", err)
	}

	log.Info().
		Int("user_id", userID).
		Int("topup_id", created.ID).
		Int64("amount", created.Amount).
		Str("topup_code", created.TopupCode).
		Msg("Yükleme talebi oluşturuldu")

	return created, nil
}

// GetUserTopups kullanıcının taleplerini listeler
func (s *TopupService) GetUserTopups(userID int, limit, offset int) ([]*models.TopupRequest, error) {
	topups, err := s.topupRepo.GetByUserID(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("yükleme talepleri alınamadı: %w", err)
	}
	return topups, nil
}

// Decide admin kararını uygular. Rol kontrolü route middleware'indedir;
// buraya gelen adminID admin rolünü taşır.
func (s *TopupService) Decide(adminID int, topupID int, action, note, clientIP string) (*models.TopupDecisionResponse, error) {
	switch action {
	case models.TopupActionApprove:
		resp, err := s.approve(topupID, &adminID, note, nil, clientIP, "admin")
		if err != nil {
			return nil, err
		}
		metrics.TopupDecisionsTotal.WithLabelValues("approve", "admin").Inc()
		return resp, nil

	case models.TopupActionDeny:
		resp, err := s.deny(topupID, adminID, note, clientIP)
		if err != nil {
			return nil, err
		}
		metrics.TopupDecisionsTotal.WithLabelValues("deny", "admin").Inc()
		return resp, nil

	default:
		return nil, fmt.Errorf("geçersiz karar: %q. Geçerli kararlar: approve, deny", action)
	}
}

// ApproveMatched mutabakat eşleşmesini sistem adına onaylar.
// Admin onayı ile aynı transaction'dan geçer; admin notu eşleşen banka
// hareketinin id'si ve tutarıyla işaretlenir.
func (s *TopupService) ApproveMatched(topupID int, bankTx models.BankTransaction, source string) (*models.TopupDecisionResponse, error) {
	note := fmt.Sprintf("Otomatik eşleşme: banka hareketi %s, tutar %d", bankTx.TransactionID, bankTx.Amount)

	resp, err := s.approve(topupID, nil, note, &bankTx, "", source)
	if err != nil {
		return nil, err
	}

	metrics.TopupDecisionsTotal.WithLabelValues("approve", source).Inc()
	return resp, nil
}

// VerifyOwnTopup kullanıcının kendi talebini feed'e karşı doğrular.
// Feed eventually consistent: eşleşme yoksa hata değil "henüz bulunamadı"
// döner, talep pending kalır.
func (s *TopupService) VerifyOwnTopup(ctx context.Context, userID, topupID int) (*models.VerifyTopupResponse, error) {
	topup, err := s.topupRepo.GetByID(topupID)
	if err != nil {
		return nil, err
	}

	// Sadece kendi talebi; başkasının talebinin varlığı da sızdırılmaz
	if topup.UserID != userID {
		return nil, &apperrors.NotFoundError{Entity: "yükleme talebi", ID: topupID}
	}

	if topup.Status != models.TopupStatusPending {
		return nil, &apperrors.AlreadyProcessedError{
			Entity:        "yükleme talebi",
			ID:            topupID,
			CurrentStatus: topup.Status,
		}
	}

	feed, err := s.bankClient.FetchTransactions(ctx)
	if err != nil {
		return nil, err
	}

	candidates := findCandidates(feed, topup)

	switch len(candidates) {
	case 0:
		return &models.VerifyTopupResponse{
			Verified: false,
			Message:  "Havale henüz banka kayıtlarında görünmüyor, lütfen daha sonra tekrar deneyin.",
		}, nil

	case 1:
		resp, err := s.approve(topupID, nil, fmt.Sprintf("Kullanıcı doğrulaması: banka hareketi %s, tutar %d", candidates[0].TransactionID, candidates[0].Amount), &candidates[0], "", "self-verify")
		if err != nil {
			if errors.Is(err, ErrBankTransactionClaimed) {
				return &models.VerifyTopupResponse{
					Verified: false,
					Message:  "Eşleşen havale başka bir talep için kullanılmış. Lütfen destek ile iletişime geçin.",
				}, nil
			}
			return nil, err
		}
		metrics.TopupDecisionsTotal.WithLabelValues("approve", "self-verify").Inc()
		return &models.VerifyTopupResponse{
			Verified:      true,
			BalanceBefore: resp.BalanceBefore,
			BalanceAfter:  resp.BalanceAfter,
		}, nil

	default:
		// Birden fazla hareket aynı kodu taşıyor: otomatik onay yok
		log.Warn().
			Int("topup_id", topupID).
			Int("candidate_count", len(candidates)).
			Msg("Belirsiz havale eşleşmesi, manuel inceleme gerekiyor")
		return &models.VerifyTopupResponse{
			Verified: false,
			Message:  "Birden fazla banka hareketi eşleşti; talep manuel incelemeye bırakıldı.",
		}, nil
	}
}

// approve krediyi uygular: guard + cüzdan kilidi + ledger append + bakiye
// güncellemesi + status geçişi + audit kaydı tek transaction'da.
func (s *TopupService) approve(topupID int, adminID *int, note string, bankTx *models.BankTransaction, clientIP, source string) (*models.TopupDecisionResponse, error) {
	var result *models.TopupDecisionResponse

	err := db.WithTransaction(s.database, func(tx *sql.Tx) error {
		txRepo := db.NewTxRepository(tx)

		// Talebi kilitle ve idempotency guard'ı aynı transaction'da uygula
		var topupUserID int
		var amount int64
		var status string
		err := txRepo.QueryRow(`
			SELECT user_id, amount, status FROM topup_requests WHERE id = $1 FOR UPDATE
		`, topupID).Scan(&topupUserID, &amount, &status)

		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "yükleme talebi", ID: topupID}
		}
		if err != nil {
			return fmt.Errorf("yükleme talebi sorgusu hatası: %w", err)
		}

		if status != models.TopupStatusPending {
			return &apperrors.AlreadyProcessedError{
				Entity:        "yükleme talebi",
				ID:            topupID,
				CurrentStatus: status,
			}
		}

		// Aynı banka hareketi ikinci bir talebi kredilendiremez
		var bankTxID *string
		if bankTx != nil {
			var claimed bool
			err = txRepo.QueryRow(`
				SELECT EXISTS(SELECT 1 FROM topup_requests WHERE bank_transaction_id = $1)
			`, bankTx.TransactionID).Scan(&claimed)
			if err != nil {
				return fmt.Errorf("banka hareketi kontrolü hatası: %w", err)
			}
			if claimed {
				return ErrBankTransactionClaimed
			}
			bankTxID = &bankTx.TransactionID
		}

		// Cüzdanı oku ve satırı kilitle
		var balanceBefore int64
		err = txRepo.QueryRow(`
			SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE
		`, topupUserID).Scan(&balanceBefore)

		if err == sql.ErrNoRows {
			// Kayıtlı kullanıcıda olmamalı; veri tutarsızlığına işaret eder
			return &apperrors.WalletNotFoundError{UserID: topupUserID}
		}
		if err != nil {
			return fmt.Errorf("cüzdan sorgusu hatası: %w", err)
		}

		balanceAfter := balanceBefore + amount

		// Ledger kaydını ekle (credit)
		_, err = txRepo.Exec(`
			INSERT INTO wallet_transactions (user_id, type, amount, balance_before, balance_after, ref_type, ref_id, note)
			VALUES ($1, 'credit', $2, $3, $4, 'topup', $5, $6)
		`, topupUserID, amount, balanceBefore, balanceAfter, topupID, fmt.Sprintf("Bakiye yükleme #%d", topupID))
		if err != nil {
			return fmt.Errorf("ledger kaydı oluşturulamadı: %w", err)
		}

		// Bakiyeyi güncelle (sadece ledger append'i ile birlikte)
		_, err = txRepo.Exec(`
			UPDATE wallets SET balance = $1, updated_at = NOW() WHERE user_id = $2
		`, balanceAfter, topupUserID)
		if err != nil {
			return fmt.Errorf("bakiye güncellenemedi: %w", err)
		}

		// Status geçişi + karar metadata'sı
		_, err = txRepo.Exec(`
			UPDATE topup_requests
			SET status = 'approved', admin_id = $1, admin_note = $2, bank_transaction_id = $3, decided_at = NOW()
			WHERE id = $4
		`, adminID, note, bankTxID, topupID)
		if err != nil {
			// EXISTS kontrolünü aynı anda geçen iki talep unique constraint'te
			// yarışır; kaybeden de claimed muamelesi görür
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return ErrBankTransactionClaimed
			}
			return fmt.Errorf("yükleme talebi güncellenemedi: %w", err)
		}

		// Audit kaydı: bakiye öncesi/sonrası ile birlikte, aynı transaction'da
		if err := insertTopupAudit(txRepo, topupID, models.AuditActionApproveTopup, adminID, clientIP, map[string]interface{}{
			"status":  models.TopupStatusPending,
			"balance": balanceBefore,
		}, map[string]interface{}{
			"status":              models.TopupStatusApproved,
			"balance":             balanceAfter,
			"amount":              amount,
			"bank_transaction_id": bankTxID,
			"source":              source,
		}); err != nil {
			return err
		}

		result = &models.TopupDecisionResponse{
			TopupID:       topupID,
			Status:        models.TopupStatusApproved,
			BalanceBefore: &balanceBefore,
			BalanceAfter:  &balanceAfter,
		}

		return nil // SUCCESS - transaction commit edilecek
	})

	if err != nil {
		return nil, err
	}

	log.Info().
		Int("topup_id", topupID).
		Str("source", source).
		Int64("balance_after", *result.BalanceAfter).
		Msg("Yükleme talebi onaylandı")

	return result, nil
}

// deny talebi kapatır; ledger etkisi yoktur
func (s *TopupService) deny(topupID int, adminID int, note, clientIP string) (*models.TopupDecisionResponse, error) {
	var result *models.TopupDecisionResponse

	err := db.WithTransaction(s.database, func(tx *sql.Tx) error {
		txRepo := db.NewTxRepository(tx)

		var status string
		err := txRepo.QueryRow(`
			SELECT status FROM topup_requests WHERE id = $1 FOR UPDATE
		`, topupID).Scan(&status)

		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "yükleme talebi", ID: topupID}
		}
		if err != nil {
			return fmt.Errorf("yükleme talebi sorgusu hatası: %w", err)
		}

		if status != models.TopupStatusPending {
			return &apperrors.AlreadyProcessedError{
				Entity:        "yükleme talebi",
				ID:            topupID,
				CurrentStatus: status,
			}
		}

		_, err = txRepo.Exec(`
			UPDATE topup_requests
			SET status = 'denied', admin_id = $1, admin_note = $2, decided_at = NOW()
			WHERE id = $3
		`, adminID, note, topupID)
		if err != nil {
			return fmt.Errorf("yükleme talebi güncellenemedi: %w", err)
		}

		if err := insertTopupAudit(txRepo, topupID, models.AuditActionDenyTopup, &adminID, clientIP, map[string]interface{}{
			"status": models.TopupStatusPending,
		}, map[string]interface{}{
			"status": models.TopupStatusDenied,
			"note":   note,
		}); err != nil {
			return err
		}

		result = &models.TopupDecisionResponse{
			TopupID: topupID,
			Status:  models.TopupStatusDenied,
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Info().Int("topup_id", topupID).Int("admin_id", adminID).Msg("Yükleme talebi reddedildi")

	return result, nil
}

// insertTopupAudit ayrıcalıklı durum geçişinin audit kaydını yazar
func insertTopupAudit(txRepo *db.TxRepository, topupID int, action string, adminID *int, clientIP string, oldData, newData map[string]interface{}) error {
	oldJSON, err := json.Marshal(oldData)
	if err != nil {
		return fmt.Errorf("audit old_data oluşturulamadı: %w", err)
	}
	newJSON, err := json.Marshal(newData)
	if err != nil {
		return fmt.Errorf("audit new_data oluşturulamadı: %w", err)
	}

	_, err = txRepo.Exec(`
		INSERT INTO audit_logs (entity_type, entity_id, action, admin_id, old_data, new_data, details, ip_address)
		VALUES ('topup_request', $1, $2, $3, $4, $5, '', $6)
	`, topupID, action, adminID, oldJSON, newJSON, clientIP)
	if err != nil {
		return fmt.Errorf("audit log oluşturulamadı: %w", err)
	}

	return nil
}

// generateTopupCode havale açıklaması için benzersiz, insan girebilir kod üretir
func generateTopupCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "TOPUP" + raw[:8]
}
