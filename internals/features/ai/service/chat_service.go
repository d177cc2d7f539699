// file: internals/features/ai/service/chat_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"tjsl_backend/internals/features/ai/model"
	"tjsl_backend/internals/features/ai/provider"
	"tjsl_backend/internals/helpers/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MsgNotConfigured = "Maaf, AI Insight belum dikonfigurasi. Silakan hubungi admin untuk mengatur prompt dan API key."
	MsgFallback      = "Maaf, terjadi kesalahan saat menghubungi layanan AI. Silakan coba lagi nanti."

	maxErrorMessageLen = 500
)

// ProgramSnapshot = ringkasan program yang disisipkan ke {context}.
type ProgramSnapshot struct {
	ProgramID        uuid.UUID  `json:"program_id"`
	Title            string     `json:"program_title"`
	Pillar           string     `json:"program_pillar"`
	Region           string     `json:"program_region"`
	Status           string     `json:"program_status"`
	FinalBudget      float64    `json:"program_final_budget"`
	StartDate        time.Time  `json:"program_final_start_date"`
	EndDate          time.Time  `json:"program_final_end_date"`
	BeneficiaryCount int        `json:"program_beneficiary_count"`
	ReportCount      int64      `json:"report_count"`
	LastReportAt     *time.Time `json:"last_report_at,omitempty"`
}

type UsageFilter struct {
	From     *time.Time
	To       *time.Time
	Provider string
}

type Store interface {
	// FindActivePrompt: kategori GENERAL diutamakan, selain itu prompt aktif terbaru.
	// gorm.ErrRecordNotFound bila tidak ada prompt aktif.
	FindActivePrompt(ctx context.Context) (*model.PromptModel, error)
	FindAPIKey(ctx context.Context, id uuid.UUID) (*model.APIKeyModel, error)
	FindNewestActiveKey(ctx context.Context, providerName string) (*model.APIKeyModel, error)
	CreateUsageLog(ctx context.Context, row *model.UsageLogModel) error
	ProgramSnapshots(ctx context.Context) ([]ProgramSnapshot, error)
	UsageCounts(ctx context.Context, f UsageFilter) (success, failed int64, avgLatencyMs float64, err error)
}

type Decrypter interface {
	Decrypt(ciphertext string) (string, error)
}

type StreamerFactory func(providerName string) (provider.Streamer, error)

type ChatService struct {
	store     Store
	cipher    Decrypter
	streamers StreamerFactory
	now       func() time.Time
}

func NewChatService(store Store, cipher Decrypter, streamers StreamerFactory) *ChatService {
	return &ChatService{store: store, cipher: cipher, streamers: streamers, now: time.Now}
}

// Chat selalu menulis jawaban lewat emit. Error yang dikembalikan hanya error dari emit
// (klien putus); kegagalan provider dilipat menjadi MsgFallback + usage log ERROR.
func (s *ChatService) Chat(ctx context.Context, userID uuid.UUID, history []provider.Message, emit func(string) error) error {
	prompt, err := s.store.FindActivePrompt(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.ObserveAIRequest("", "NOT_CONFIGURED", 0)
		return emit(MsgNotConfigured)
	}
	if err != nil {
		log.Printf("[ERROR] ai chat: load prompt: %v", err)
		return emit(MsgFallback)
	}

	var (
		out       strings.Builder
		clientErr error
	)
	forward := func(chunk string) error {
		if err := emit(chunk); err != nil {
			clientErr = err
			return err
		}
		out.WriteString(chunk)
		return nil
	}

	usage := &model.UsageLogModel{
		UsageLogPromptID: &prompt.PromptID,
		UsageLogUserID:   userID,
		UsageLogProvider: prompt.PromptProvider,
		UsageLogModel:    prompt.PromptModel,
	}

	start := s.now()
	input, err := s.run(ctx, prompt, history, usage, forward)
	latency := s.now().Sub(start)

	usage.UsageLogLatencyMs = latency.Milliseconds()
	usage.UsageLogInputTokens = EstimateTokens(input)
	usage.UsageLogOutputTokens = EstimateTokens(out.String())
	usage.UsageLogStatus = model.UsageStatusSuccess
	if err != nil {
		usage.UsageLogStatus = model.UsageStatusError
		usage.UsageLogErrorMessage = truncate(err.Error(), maxErrorMessageLen)
		log.Printf("[ERROR] ai chat provider=%s model=%s: %v", prompt.PromptProvider, prompt.PromptModel, err)
		if clientErr == nil {
			msg := MsgFallback
			if out.Len() > 0 {
				msg = "\n\n" + msg
			}
			clientErr = emit(msg)
		}
	}
	metrics.ObserveAIRequest(prompt.PromptProvider, usage.UsageLogStatus, latency)

	// usage tetap dicatat walau context stream sudah habis
	if lerr := s.store.CreateUsageLog(context.WithoutCancel(ctx), usage); lerr != nil {
		log.Printf("[ERROR] ai chat: simpan usage log: %v", lerr)
	}
	return clientErr
}

func (s *ChatService) run(ctx context.Context, prompt *model.PromptModel, history []provider.Message, usage *model.UsageLogModel, emit func(string) error) (string, error) {
	snaps, err := s.store.ProgramSnapshots(ctx)
	if err != nil {
		return "", fmt.Errorf("program context: %w", err)
	}
	if snaps == nil {
		snaps = []ProgramSnapshot{}
	}
	contextJSON, err := json.Marshal(snaps)
	if err != nil {
		return "", fmt.Errorf("program context: %w", err)
	}
	msgs := BuildMessages(*prompt, string(contextJSON), history)
	input := joinContents(msgs)

	key, err := s.resolveKey(ctx, prompt)
	if err != nil {
		return input, err
	}
	usage.UsageLogAPIKeyID = &key.APIKeyID

	if s.cipher == nil {
		return input, errors.New("ai chat: cipher belum dikonfigurasi")
	}
	plain, err := s.cipher.Decrypt(key.APIKeyEncryptedKey)
	if err != nil {
		return input, fmt.Errorf("decrypt api key: %w", err)
	}

	streamer, err := s.streamers(prompt.PromptProvider)
	if err != nil {
		return input, err
	}
	return input, streamer.Stream(ctx, provider.Request{
		Model:       prompt.PromptModel,
		APIKey:      plain,
		Messages:    msgs,
		Temperature: prompt.PromptTemperature,
		MaxTokens:   prompt.PromptMaxTokens,
	}, emit)
}

func (s *ChatService) resolveKey(ctx context.Context, prompt *model.PromptModel) (*model.APIKeyModel, error) {
	if prompt.PromptAPIKeyID != nil {
		key, err := s.store.FindAPIKey(ctx, *prompt.PromptAPIKeyID)
		if err != nil {
			return nil, fmt.Errorf("api key prompt: %w", err)
		}
		if !key.APIKeyIsActive {
			return nil, fmt.Errorf("api key %s nonaktif", key.APIKeyID)
		}
		if key.APIKeyProvider != prompt.PromptProvider {
			return nil, fmt.Errorf("api key %s untuk %s, prompt memakai %s", key.APIKeyID, key.APIKeyProvider, prompt.PromptProvider)
		}
		return key, nil
	}
	key, err := s.store.FindNewestActiveKey(ctx, prompt.PromptProvider)
	if err != nil {
		return nil, fmt.Errorf("api key aktif %s: %w", prompt.PromptProvider, err)
	}
	return key, nil
}

// BuildMessages mengganti giliran user terakhir dengan template yang sudah diisi;
// giliran sebelumnya diteruskan sebagai riwayat.
func BuildMessages(prompt model.PromptModel, contextJSON string, history []provider.Message) []provider.Message {
	last := -1
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == provider.RoleUser {
			last = i
			break
		}
	}
	userMessage := ""
	if last >= 0 {
		userMessage = history[last].Content
	}
	filled := provider.Message{Role: provider.RoleUser, Content: prompt.Fill(contextJSON, userMessage)}

	out := make([]provider.Message, 0, len(history)+1)
	if last < 0 {
		out = append(out, history...)
		return append(out, filled)
	}
	out = append(out, history[:last]...)
	out = append(out, filled)
	return append(out, history[last+1:]...)
}

// EstimateTokens ≈ ceil(karakter / 4).
func EstimateTokens(s string) int {
	return (utf8.RuneCountInString(s) + 3) / 4
}

func joinContents(msgs []provider.Message) string {
	var sb strings.Builder
	for _, m := range msgs {
		sb.WriteString(m.Content)
	}
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

/* ===================== STATS ===================== */

func (s *ChatService) Stats(ctx context.Context, f UsageFilter) (model.UsageStats, error) {
	success, failed, avg, err := s.store.UsageCounts(ctx, f)
	if err != nil {
		return model.UsageStats{}, err
	}
	return model.NewUsageStats(success, failed, avg), nil
}
