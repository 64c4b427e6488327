package interactionService

import (
	"LulaiPlatform/internal/api/interaction"
	chatbotRepository "LulaiPlatform/internal/api/chatbot/repository"
	interactionRepository "LulaiPlatform/internal/api/interaction/repository"
	"LulaiPlatform/internal/entity"
	"LulaiPlatform/pkg/redis"
	"LulaiPlatform/pkg/utils"
	"errors"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type stubConversationStore struct {
	conversations map[string]entity.Conversation
	messages      map[string]entity.ConversationMessage
	feedback      []entity.MessageFeedback
	botMessages   int
	quotaErr      error
}

func newStubConversationStore() *stubConversationStore {
	return &stubConversationStore{
		conversations: map[string]entity.Conversation{},
		messages:      map[string]entity.ConversationMessage{},
	}
}

func (s *stubConversationStore) CreateConversation(_ context.Context, conversation entity.Conversation) error {
	s.conversations[conversation.ID] = conversation
	return nil
}

func (s *stubConversationStore) GetConversationByID(_ context.Context, id string) (entity.Conversation, error) {
	conversation, ok := s.conversations[id]
	if !ok {
		return entity.Conversation{}, interaction.ErrConversationNotFound
	}
	return conversation, nil
}

func (s *stubConversationStore) TouchConversation(_ context.Context, id string) error {
	conversation, ok := s.conversations[id]
	if !ok {
		return interaction.ErrConversationNotFound
	}
	conversation.UpdatedAt = time.Now()
	s.conversations[id] = conversation
	return nil
}

func (s *stubConversationStore) CreateMessage(_ context.Context, message entity.ConversationMessage) error {
	s.messages[message.ID] = message
	return nil
}

func (s *stubConversationStore) GetMessageByID(_ context.Context, id string) (entity.ConversationMessage, error) {
	message, ok := s.messages[id]
	if !ok {
		return entity.ConversationMessage{}, interaction.ErrMessageNotFound
	}
	return message, nil
}

func (s *stubConversationStore) CreateFeedback(_ context.Context, feedback entity.MessageFeedback) error {
	s.feedback = append(s.feedback, feedback)
	return nil
}

func (s *stubConversationStore) CountBotMessagesForUserInMonth(_ context.Context, _ string) (int, error) {
	if s.quotaErr != nil {
		return 0, s.quotaErr
	}
	return s.botMessages, nil
}

type stubInteractionRepo struct {
	store *stubConversationStore
}

func (r *stubInteractionRepo) NewClient(_ bool) (interactionRepository.Client, error) {
	return interactionRepository.Client{
		Conversations: r.store,
		Commit:        func() error { return nil },
		Rollback:      func() error { return nil },
	}, nil
}

type stubChatbotStore struct {
	bots      map[string]entity.Chatbot
	rules     []entity.TriggerRule
	listCalls int
}

func (s *stubChatbotStore) CreateChatbot(_ context.Context, _ entity.Chatbot) error { return nil }
func (s *stubChatbotStore) GetChatbotByID(_ context.Context, _ string) (entity.Chatbot, error) {
	return entity.Chatbot{}, errors.New("not implemented")
}

func (s *stubChatbotStore) GetChatbotByAPIKey(_ context.Context, apiKey string) (entity.Chatbot, error) {
	bot, ok := s.bots[apiKey]
	if !ok {
		return entity.Chatbot{}, errors.New("sql: no rows in result set")
	}
	return bot, nil
}

func (s *stubChatbotStore) ListChatbotsByUser(_ context.Context, _ string) ([]entity.Chatbot, error) {
	return nil, nil
}
func (s *stubChatbotStore) CountChatbotsByUser(_ context.Context, _ string) (int, error) {
	return 0, nil
}
func (s *stubChatbotStore) UpdateChatbot(_ context.Context, _ entity.Chatbot) error    { return nil }
func (s *stubChatbotStore) UpdateAPIKey(_ context.Context, _ string, _ string) error   { return nil }
func (s *stubChatbotStore) UpdateAvatar(_ context.Context, _ string, _ string) error   { return nil }
func (s *stubChatbotStore) DeleteChatbot(_ context.Context, _ string) error            { return nil }
func (s *stubChatbotStore) CreateRule(_ context.Context, _ entity.TriggerRule) error   { return nil }
func (s *stubChatbotStore) GetRuleByID(_ context.Context, _ string) (entity.TriggerRule, error) {
	return entity.TriggerRule{}, errors.New("not implemented")
}

func (s *stubChatbotStore) ListRulesByChatbot(_ context.Context, _ string) ([]entity.TriggerRule, error) {
	s.listCalls++
	return s.rules, nil
}

func (s *stubChatbotStore) NextPosition(_ context.Context, _ string) (int, error) { return 1, nil }
func (s *stubChatbotStore) UpdateRule(_ context.Context, _ entity.TriggerRule) error {
	return nil
}
func (s *stubChatbotStore) SetRulePosition(_ context.Context, _ string, _ int) error    { return nil }
func (s *stubChatbotStore) MarkAIEnhanced(_ context.Context, _ string, _ string) error  { return nil }
func (s *stubChatbotStore) DeleteRule(_ context.Context, _ string) error                { return nil }

type stubChatbotRepo struct {
	store *stubChatbotStore
}

func (r *stubChatbotRepo) NewClient(_ bool) (chatbotRepository.Client, error) {
	return chatbotRepository.Client{
		Chatbots: r.store,
		Rules:    r.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type stubRedis struct {
	rules map[string][]redis.CachedRule
}

func newStubRedis() *stubRedis {
	return &stubRedis{rules: map[string][]redis.CachedRule{}}
}

func (s *stubRedis) SetOTP(_ context.Context, _ string, _ string, _ time.Duration) error { return nil }
func (s *stubRedis) GetOTP(_ context.Context, _ string) (string, error)                  { return "", nil }
func (s *stubRedis) DeleteOTP(_ context.Context, _ string) error                         { return nil }

func (s *stubRedis) SetChatbotRules(_ context.Context, chatbotID string, rules []redis.CachedRule) error {
	s.rules[chatbotID] = rules
	return nil
}

func (s *stubRedis) GetChatbotRules(_ context.Context, chatbotID string) ([]redis.CachedRule, error) {
	return s.rules[chatbotID], nil
}

func (s *stubRedis) InvalidateChatbotRules(_ context.Context, chatbotID string) error {
	delete(s.rules, chatbotID)
	return nil
}

type stubFallback struct {
	response string
	err      error
}

func (s *stubFallback) Generate(_ context.Context, _ string, _ string, _ string) (string, error) {
	return s.response, s.err
}

type stubTTS struct {
	configured bool
	audio      []byte
	err        error
}

func (s *stubTTS) GenerateAudio(_ string, _ string) ([]byte, error) { return s.audio, s.err }
func (s *stubTTS) IsConfigured() bool                               { return s.configured }

type stubTranscriber struct {
	transcript string
	err        error
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ io.Reader, _ string) (string, error) {
	return s.transcript, s.err
}

type stubS3 struct {
	uploads int
	url     string
}

func (s *stubS3) UploadFile(_ *multipart.FileHeader) (string, error) { return s.url, nil }
func (s *stubS3) UploadBytes(_ []byte, _ string, _ string) (string, error) {
	s.uploads++
	return s.url, nil
}
func (s *stubS3) PresignUrl(fileName string) (string, error) { return fileName, nil }
func (s *stubS3) DeleteFile(_ string) error                  { return nil }

type stubPlans struct {
	plan entity.Plan
	err  error
}

func (s *stubPlans) ActivePlan(_ context.Context, _ string) (entity.Plan, error) {
	return s.plan, s.err
}

type serviceFixture struct {
	service      IInteractionService
	conversation *stubConversationStore
	chatbots     *stubChatbotStore
	redis        *stubRedis
	tts          *stubTTS
	s3           *stubS3
	plans        *stubPlans
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	conversationStore := newStubConversationStore()
	chatbotStore := &stubChatbotStore{
		bots: map[string]entity.Chatbot{
			"key-1": {
				ID:       "bot-1",
				UserID:   "user-1",
				Name:     "Support Bot",
				Industry: "ecommerce",
				APIKey:   "key-1",
			},
		},
		rules: []entity.TriggerRule{
			{ID: "rule-1", ChatbotID: "bot-1", Trigger: "shipping cost", Response: "Shipping is free over $50."},
		},
	}

	redisStub := newStubRedis()
	tts := &stubTTS{}
	s3Stub := &stubS3{url: "https://cdn.example.com/audio.mp3"}
	plans := &stubPlans{plan: entity.Plan{ID: "plan-free", Name: "free", MessageQuota: 100}}

	svc := New(
		logger,
		&stubInteractionRepo{store: conversationStore},
		&stubChatbotRepo{store: chatbotStore},
		redisStub,
		&stubFallback{response: "Happy to help with anything else."},
		tts,
		&stubTranscriber{transcript: "what is the shipping cost"},
		s3Stub,
		utils.New(),
		plans,
	)

	return &serviceFixture{
		service:      svc,
		conversation: conversationStore,
		chatbots:     chatbotStore,
		redis:        redisStub,
		tts:          tts,
		s3:           s3Stub,
		plans:        plans,
	}
}

func countMessages(store *stubConversationStore, sender string) int {
	n := 0
	for _, message := range store.messages {
		if message.Sender == sender {
			n++
		}
	}
	return n
}

func TestInteractInvalidAPIKey(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Interact(context.Background(), "no-such-key", interaction.InteractRequest{Message: "hi"})
	if !errors.Is(err, interaction.ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}

	_, err = f.service.Interact(context.Background(), "", interaction.InteractRequest{Message: "hi"})
	if !errors.Is(err, interaction.ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey for empty key, got %v", err)
	}
}

func TestInteractMatchedRule(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{
		Message:   "how much is the shipping cost?",
		VisitorID: "visitor-1",
	})
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}

	if !resp.Matched {
		t.Fatal("expected a rule match")
	}
	if resp.Response != "Shipping is free over $50." {
		t.Fatalf("unexpected response %q", resp.Response)
	}
	if resp.ResponseID != "rule-1" {
		t.Fatalf("expected response_id rule-1, got %q", resp.ResponseID)
	}
	if resp.ConversationID == "" {
		t.Fatal("expected a conversation to be created")
	}
	if resp.MessageID == "" {
		t.Fatal("expected the bot message id to be returned")
	}

	if _, ok := f.conversation.conversations[resp.ConversationID]; !ok {
		t.Fatal("conversation was not persisted")
	}
	if got := countMessages(f.conversation, entity.MessageSenderUser); got != 1 {
		t.Fatalf("expected 1 user message, got %d", got)
	}
	if got := countMessages(f.conversation, entity.MessageSenderBot); got != 1 {
		t.Fatalf("expected 1 bot message, got %d", got)
	}

	botMessage := f.conversation.messages[resp.MessageID]
	if !botMessage.Matched {
		t.Fatal("bot message should record the match")
	}
	if !botMessage.ResponseTimeMs.Valid {
		t.Fatal("bot message should record response time")
	}
}

func TestInteractBotMessageTimestampedAfterUser(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{
		Message:   "how much is the shipping cost?",
		VisitorID: "visitor-1",
	})
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}

	botMessage := f.conversation.messages[resp.MessageID]
	var userMessage entity.ConversationMessage
	for _, message := range f.conversation.messages {
		if message.Sender == entity.MessageSenderUser {
			userMessage = message
		}
	}

	// Transcripts sort by created_at, so the pair must never tie.
	if !botMessage.CreatedAt.After(userMessage.CreatedAt) {
		t.Fatalf("bot message at %v not after user message at %v", botMessage.CreatedAt, userMessage.CreatedAt)
	}
}

func TestInteractFallback(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{
		Message: "tell me a story about space travel",
	})
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}

	if resp.Matched {
		t.Fatal("expected no rule match")
	}
	if !resp.IsGeneralAI {
		t.Fatal("fallback replies should be flagged as general AI")
	}
	if resp.Response != "Happy to help with anything else." {
		t.Fatalf("unexpected fallback response %q", resp.Response)
	}
}

func TestInteractReusesConversation(t *testing.T) {
	f := newServiceFixture(t)

	first, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{Message: "shipping cost?"})
	if err != nil {
		t.Fatalf("first Interact: %v", err)
	}

	second, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{
		Message:        "shipping cost again?",
		ConversationID: first.ConversationID,
	})
	if err != nil {
		t.Fatalf("second Interact: %v", err)
	}

	if second.ConversationID != first.ConversationID {
		t.Fatalf("expected conversation %s to be reused, got %s", first.ConversationID, second.ConversationID)
	}
	if len(f.conversation.conversations) != 1 {
		t.Fatalf("expected a single conversation, got %d", len(f.conversation.conversations))
	}
}

func TestInteractUnknownConversation(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{
		Message:        "hello",
		ConversationID: "missing",
	})
	if !errors.Is(err, interaction.ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestInteractOverQuota(t *testing.T) {
	f := newServiceFixture(t)
	f.plans.plan.MessageQuota = 10
	f.conversation.botMessages = 10

	resp, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{Message: "shipping cost?"})
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}

	if resp.Matched {
		t.Fatal("over-quota reply should not be a rule match")
	}
	if resp.Response != overQuotaMessage {
		t.Fatalf("expected the over-quota message, got %q", resp.Response)
	}
	if got := countMessages(f.conversation, entity.MessageSenderBot); got != 1 {
		t.Fatalf("over-quota turn should still be logged, got %d bot messages", got)
	}
}

func TestInteractQuotaCheckFailureAllowsMessage(t *testing.T) {
	f := newServiceFixture(t)
	f.conversation.quotaErr = errors.New("db down")

	resp, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{Message: "shipping cost?"})
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}
	if !resp.Matched {
		t.Fatal("the message should still be answered when the quota check fails")
	}
}

func TestInteractPopulatesRuleCache(t *testing.T) {
	f := newServiceFixture(t)

	if _, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{Message: "shipping cost?"}); err != nil {
		t.Fatalf("first Interact: %v", err)
	}
	if _, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{Message: "shipping cost?"}); err != nil {
		t.Fatalf("second Interact: %v", err)
	}

	if f.chatbots.listCalls != 1 {
		t.Fatalf("expected a single database rule load, got %d", f.chatbots.listCalls)
	}
	if len(f.redis.rules["bot-1"]) != 1 {
		t.Fatal("expected the rules to be cached")
	}
}

func TestInteractVoiceGeneratesAudio(t *testing.T) {
	f := newServiceFixture(t)
	f.tts.configured = true
	f.tts.audio = []byte("mp3-bytes")

	resp, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{
		Message: "shipping cost?",
		Voice:   true,
	})
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}

	if resp.AudioURL != f.s3.url {
		t.Fatalf("expected audio url %q, got %q", f.s3.url, resp.AudioURL)
	}
	if f.s3.uploads != 1 {
		t.Fatalf("expected one audio upload, got %d", f.s3.uploads)
	}

	botMessage := f.conversation.messages[resp.MessageID]
	if !botMessage.AudioURL.Valid || botMessage.AudioURL.String != f.s3.url {
		t.Fatal("bot message should persist the audio url")
	}
}

func TestInteractVoiceTTSFailureFallsBackToText(t *testing.T) {
	f := newServiceFixture(t)
	f.tts.configured = true
	f.tts.err = errors.New("tts unavailable")

	resp, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{
		Message: "shipping cost?",
		Voice:   true,
	})
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}
	if resp.AudioURL != "" {
		t.Fatal("expected no audio url when TTS fails")
	}
	if resp.Response == "" {
		t.Fatal("expected the text reply to survive a TTS failure")
	}
}

func TestWidgetConfig(t *testing.T) {
	f := newServiceFixture(t)
	f.chatbots.bots["key-1"] = entity.Chatbot{
		ID:             "bot-1",
		UserID:         "user-1",
		Name:           "Support Bot",
		APIKey:         "key-1",
		WidgetGreeting: "Hi there!",
		WidgetTheme:    "dark",
		VoiceID:        "voice-1",
	}
	f.tts.configured = true

	config, err := f.service.WidgetConfig(context.Background(), "key-1")
	if err != nil {
		t.Fatalf("WidgetConfig: %v", err)
	}

	if config.ChatbotName != "Support Bot" || config.Greeting != "Hi there!" || config.Theme != "dark" {
		t.Fatalf("unexpected config %+v", config)
	}
	if !config.VoiceEnabled {
		t.Fatal("expected voice to be enabled")
	}
}

func TestSubmitFeedback(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := f.service.Interact(context.Background(), "key-1", interaction.InteractRequest{Message: "shipping cost?"})
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}

	err = f.service.SubmitFeedback(context.Background(), "key-1", interaction.FeedbackRequest{
		MessageID: resp.MessageID,
		Rating:    4,
		Comment:   "helpful",
	})
	if err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}

	if len(f.conversation.feedback) != 1 {
		t.Fatalf("expected 1 feedback row, got %d", len(f.conversation.feedback))
	}
	if f.conversation.feedback[0].Rating != 4 {
		t.Fatalf("unexpected rating %d", f.conversation.feedback[0].Rating)
	}
	if !f.conversation.feedback[0].Comment.Valid {
		t.Fatal("expected the comment to be stored")
	}
}

func TestSubmitFeedbackUnknownMessage(t *testing.T) {
	f := newServiceFixture(t)

	err := f.service.SubmitFeedback(context.Background(), "key-1", interaction.FeedbackRequest{
		MessageID: "missing",
		Rating:    5,
	})
	if !errors.Is(err, interaction.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}
