package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tjsl_backend/internals/features/ai/model"
	"tjsl_backend/internals/features/ai/provider"
	"tjsl_backend/internals/helpers/secret"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

type fakeStore struct {
	prompt    *model.PromptModel
	promptErr error
	keys      []model.APIKeyModel
	snapshots []ProgramSnapshot
	usage     []model.UsageLogModel
}

func (f *fakeStore) FindActivePrompt(context.Context) (*model.PromptModel, error) {
	if f.promptErr != nil {
		return nil, f.promptErr
	}
	if f.prompt == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.prompt, nil
}

func (f *fakeStore) FindAPIKey(_ context.Context, id uuid.UUID) (*model.APIKeyModel, error) {
	for i := range f.keys {
		if f.keys[i].APIKeyID == id {
			return &f.keys[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// keys diurutkan dari yang terbaru
func (f *fakeStore) FindNewestActiveKey(_ context.Context, p string) (*model.APIKeyModel, error) {
	for i := range f.keys {
		if f.keys[i].APIKeyProvider == p && f.keys[i].APIKeyIsActive {
			return &f.keys[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) CreateUsageLog(_ context.Context, row *model.UsageLogModel) error {
	f.usage = append(f.usage, *row)
	return nil
}

func (f *fakeStore) ProgramSnapshots(context.Context) ([]ProgramSnapshot, error) {
	return f.snapshots, nil
}

func (f *fakeStore) UsageCounts(context.Context, UsageFilter) (int64, int64, float64, error) {
	var ok, bad int64
	var total int64
	for _, u := range f.usage {
		if u.UsageLogStatus == model.UsageStatusSuccess {
			ok++
		} else {
			bad++
		}
		total += u.UsageLogLatencyMs
	}
	if ok+bad == 0 {
		return 0, 0, 0, nil
	}
	return ok, bad, float64(total) / float64(ok+bad), nil
}

type fakeStreamer struct {
	calls  int
	got    provider.Request
	chunks []string
	err    error
}

func (f *fakeStreamer) Stream(_ context.Context, req provider.Request, emit func(string) error) error {
	f.calls++
	f.got = req
	for _, c := range f.chunks {
		if err := emit(c); err != nil {
			return err
		}
	}
	return f.err
}

func newCipher(t *testing.T) *secret.Cipher {
	t.Helper()
	c, err := secret.NewCipher(testKey)
	require.NoError(t, err)
	return c
}

func newKey(t *testing.T, c *secret.Cipher, providerName, plain string) model.APIKeyModel {
	t.Helper()
	enc, err := c.Encrypt(plain)
	require.NoError(t, err)
	return model.APIKeyModel{
		APIKeyID:           uuid.New(),
		APIKeyProvider:     providerName,
		APIKeyEncryptedKey: enc,
		APIKeyIsActive:     true,
	}
}

type harness struct {
	svc      *ChatService
	store    *fakeStore
	streamer *fakeStreamer
}

func newHarness(t *testing.T, store *fakeStore, st *fakeStreamer) *harness {
	t.Helper()
	svc := NewChatService(store, newCipher(t), func(string) (provider.Streamer, error) { return st, nil })
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick-1) * 250 * time.Millisecond)
	}
	return &harness{svc: svc, store: store, streamer: st}
}

func (h *harness) chat(t *testing.T, msgs ...provider.Message) string {
	t.Helper()
	var sb strings.Builder
	err := h.svc.Chat(context.Background(), uuid.New(), msgs, func(s string) error {
		sb.WriteString(s)
		return nil
	})
	require.NoError(t, err)
	return sb.String()
}

func generalPrompt() *model.PromptModel {
	return &model.PromptModel{
		PromptID:       uuid.New(),
		PromptCategory: model.PromptCategoryGeneral,
		PromptTemplate: "Data program: {context}\nPertanyaan: {userMessage}",
		PromptProvider: model.ProviderOpenAI,
		PromptModel:    "gpt-4o-mini",
		PromptIsActive: true,
	}
}

func TestChat_NotConfigured(t *testing.T) {
	h := newHarness(t, &fakeStore{}, &fakeStreamer{chunks: []string{"tidak boleh"}})

	out := h.chat(t, provider.Message{Role: provider.RoleUser, Content: "halo"})
	assert.Equal(t, MsgNotConfigured, out)
	assert.Zero(t, h.streamer.calls)
	assert.Empty(t, h.store.usage)
}

func TestChat_Success(t *testing.T) {
	c := newCipher(t)
	store := &fakeStore{
		prompt:    generalPrompt(),
		keys:      []model.APIKeyModel{newKey(t, c, model.ProviderOpenAI, "sk-live-abc")},
		snapshots: []ProgramSnapshot{{ProgramID: uuid.New(), Title: "Bank Sampah Desa", Status: "BERJALAN"}},
	}
	h := newHarness(t, store, &fakeStreamer{chunks: []string{"Ada ", "satu program."}})

	out := h.chat(t,
		provider.Message{Role: provider.RoleUser, Content: "hai"},
		provider.Message{Role: provider.RoleAssistant, Content: "halo, ada yang bisa dibantu?"},
		provider.Message{Role: provider.RoleUser, Content: "berapa program berjalan?"},
	)
	assert.Equal(t, "Ada satu program.", out)

	req := h.streamer.got
	assert.Equal(t, "sk-live-abc", req.APIKey)
	assert.Equal(t, "gpt-4o-mini", req.Model)
	require.Len(t, req.Messages, 3)
	assert.Equal(t, "hai", req.Messages[0].Content)
	assert.Contains(t, req.Messages[2].Content, "Bank Sampah Desa")
	assert.Contains(t, req.Messages[2].Content, "Pertanyaan: berapa program berjalan?")

	require.Len(t, store.usage, 1)
	u := store.usage[0]
	assert.Equal(t, model.UsageStatusSuccess, u.UsageLogStatus)
	assert.Equal(t, int64(250), u.UsageLogLatencyMs)
	assert.Equal(t, EstimateTokens("Ada satu program."), u.UsageLogOutputTokens)
	assert.Equal(t, EstimateTokens(joinContents(req.Messages)), u.UsageLogInputTokens)
	assert.Equal(t, store.keys[0].APIKeyID, *u.UsageLogAPIKeyID)
	assert.Equal(t, store.prompt.PromptID, *u.UsageLogPromptID)
}

func TestChat_ProviderFailureAfterPartialOutput(t *testing.T) {
	c := newCipher(t)
	store := &fakeStore{prompt: generalPrompt(), keys: []model.APIKeyModel{newKey(t, c, model.ProviderOpenAI, "sk")}}
	h := newHarness(t, store, &fakeStreamer{chunks: []string{"Sebagian"}, err: errors.New("stream putus")})

	out := h.chat(t, provider.Message{Role: provider.RoleUser, Content: "ringkas"})
	assert.Equal(t, "Sebagian\n\n"+MsgFallback, out)
	require.Len(t, store.usage, 1)
	assert.Equal(t, model.UsageStatusError, store.usage[0].UsageLogStatus)
	assert.Contains(t, store.usage[0].UsageLogErrorMessage, "stream putus")
}

func TestChat_FailuresBeforeProviderCall(t *testing.T) {
	c := newCipher(t)
	other, err := secret.NewCipher(strings.Repeat("ab", 32))
	require.NoError(t, err)

	inactive := newKey(t, c, model.ProviderOpenAI, "sk")
	inactive.APIKeyIsActive = false

	cases := map[string]*fakeStore{
		"no active key":       {prompt: generalPrompt()},
		"wrong provider key":  {prompt: generalPrompt(), keys: []model.APIKeyModel{newKey(t, c, model.ProviderGemini, "g")}},
		"undecryptable key":   {prompt: generalPrompt(), keys: []model.APIKeyModel{newKey(t, other, model.ProviderOpenAI, "sk")}},
		"bound key inactive":  {prompt: withKey(generalPrompt(), inactive.APIKeyID), keys: []model.APIKeyModel{inactive}},
		"bound key not found": {prompt: withKey(generalPrompt(), uuid.New())},
	}
	for name, store := range cases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, store, &fakeStreamer{chunks: []string{"x"}})
			out := h.chat(t, provider.Message{Role: provider.RoleUser, Content: "halo"})
			assert.Equal(t, MsgFallback, out)
			assert.Zero(t, h.streamer.calls)
			require.Len(t, store.usage, 1)
			assert.Equal(t, model.UsageStatusError, store.usage[0].UsageLogStatus)
		})
	}
}

func withKey(p *model.PromptModel, id uuid.UUID) *model.PromptModel {
	p.PromptAPIKeyID = &id
	return p
}

func TestChat_ExplicitKeyWins(t *testing.T) {
	c := newCipher(t)
	newest := newKey(t, c, model.ProviderOpenAI, "sk-newest")
	bound := newKey(t, c, model.ProviderOpenAI, "sk-bound")
	store := &fakeStore{prompt: withKey(generalPrompt(), bound.APIKeyID), keys: []model.APIKeyModel{newest, bound}}
	h := newHarness(t, store, &fakeStreamer{chunks: []string{"ok"}})

	h.chat(t, provider.Message{Role: provider.RoleUser, Content: "halo"})
	assert.Equal(t, "sk-bound", h.streamer.got.APIKey)
}

func TestChat_PromptLookupError(t *testing.T) {
	h := newHarness(t, &fakeStore{promptErr: errors.New("db down")}, &fakeStreamer{})
	out := h.chat(t, provider.Message{Role: provider.RoleUser, Content: "halo"})
	assert.Equal(t, MsgFallback, out)
	assert.Zero(t, h.streamer.calls)
}

func TestChat_ClientGone(t *testing.T) {
	c := newCipher(t)
	store := &fakeStore{prompt: generalPrompt(), keys: []model.APIKeyModel{newKey(t, c, model.ProviderOpenAI, "sk")}}
	h := newHarness(t, store, &fakeStreamer{chunks: []string{"a", "b"}})

	gone := errors.New("broken pipe")
	err := h.svc.Chat(context.Background(), uuid.New(), []provider.Message{{Role: provider.RoleUser, Content: "halo"}}, func(string) error {
		return gone
	})
	assert.ErrorIs(t, err, gone)
	require.Len(t, store.usage, 1)
	assert.Equal(t, model.UsageStatusError, store.usage[0].UsageLogStatus)
}

func TestBuildMessages(t *testing.T) {
	p := model.PromptModel{PromptTemplate: "[{context}] {userMessage}"}

	got := BuildMessages(p, "[]", []provider.Message{
		{Role: provider.RoleUser, Content: "satu"},
		{Role: provider.RoleAssistant, Content: "dua"},
		{Role: provider.RoleUser, Content: "tiga"},
	})
	require.Len(t, got, 3)
	assert.Equal(t, "[[]] tiga", got[2].Content)
	assert.Equal(t, provider.RoleUser, got[2].Role)

	got = BuildMessages(p, "[]", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "[[]] ", got[0].Content)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 1, EstimateTokens("ééé"))
}

func TestStats(t *testing.T) {
	store := &fakeStore{usage: []model.UsageLogModel{
		{UsageLogStatus: model.UsageStatusSuccess, UsageLogLatencyMs: 100},
		{UsageLogStatus: model.UsageStatusSuccess, UsageLogLatencyMs: 300},
		{UsageLogStatus: model.UsageStatusError, UsageLogLatencyMs: 200},
		{UsageLogStatus: model.UsageStatusSuccess, UsageLogLatencyMs: 200},
	}}
	svc := NewChatService(store, nil, nil)

	st, err := svc.Stats(context.Background(), UsageFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), st.Total)
	assert.Equal(t, int64(3), st.Success)
	assert.Equal(t, int64(1), st.Error)
	assert.InDelta(t, 0.75, st.SuccessRate, 1e-9)
	assert.InDelta(t, 200, st.AvgLatencyMs, 1e-9)

	empty, err := NewChatService(&fakeStore{}, nil, nil).Stats(context.Background(), UsageFilter{})
	require.NoError(t, err)
	assert.Zero(t, empty.SuccessRate)
}
