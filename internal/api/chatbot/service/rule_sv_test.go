package chatbotService

import (
	"LulaiPlatform/internal/api/chatbot"
	chatbotRepository "LulaiPlatform/internal/api/chatbot/repository"
	"LulaiPlatform/internal/entity"
	"LulaiPlatform/pkg/redis"
	"LulaiPlatform/pkg/utils"
	"errors"
	"mime/multipart"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type stubChatbotData struct {
	bots  map[string]entity.Chatbot
	rules map[string]entity.TriggerRule
}

func newStubChatbotData() *stubChatbotData {
	return &stubChatbotData{
		bots:  map[string]entity.Chatbot{},
		rules: map[string]entity.TriggerRule{},
	}
}

func (s *stubChatbotData) CreateChatbot(_ context.Context, bot entity.Chatbot) error {
	s.bots[bot.ID] = bot
	return nil
}

func (s *stubChatbotData) GetChatbotByID(_ context.Context, id string) (entity.Chatbot, error) {
	bot, ok := s.bots[id]
	if !ok {
		return entity.Chatbot{}, chatbot.ErrChatbotNotFound
	}
	return bot, nil
}

func (s *stubChatbotData) GetChatbotByAPIKey(_ context.Context, apiKey string) (entity.Chatbot, error) {
	for _, bot := range s.bots {
		if bot.APIKey == apiKey {
			return bot, nil
		}
	}
	return entity.Chatbot{}, chatbot.ErrChatbotNotFound
}

func (s *stubChatbotData) ListChatbotsByUser(_ context.Context, userID string) ([]entity.Chatbot, error) {
	var out []entity.Chatbot
	for _, bot := range s.bots {
		if bot.UserID == userID {
			out = append(out, bot)
		}
	}
	return out, nil
}

func (s *stubChatbotData) CountChatbotsByUser(_ context.Context, userID string) (int, error) {
	count := 0
	for _, bot := range s.bots {
		if bot.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *stubChatbotData) UpdateChatbot(_ context.Context, bot entity.Chatbot) error {
	if _, ok := s.bots[bot.ID]; !ok {
		return chatbot.ErrChatbotNotFound
	}
	s.bots[bot.ID] = bot
	return nil
}

func (s *stubChatbotData) UpdateAPIKey(_ context.Context, id string, apiKey string) error {
	bot, ok := s.bots[id]
	if !ok {
		return chatbot.ErrChatbotNotFound
	}
	bot.APIKey = apiKey
	s.bots[id] = bot
	return nil
}

func (s *stubChatbotData) UpdateAvatar(_ context.Context, id string, avatarURL string) error {
	bot, ok := s.bots[id]
	if !ok {
		return chatbot.ErrChatbotNotFound
	}
	bot.AvatarURL = avatarURL
	s.bots[id] = bot
	return nil
}

func (s *stubChatbotData) DeleteChatbot(_ context.Context, id string) error {
	delete(s.bots, id)
	return nil
}

func (s *stubChatbotData) CreateRule(_ context.Context, rule entity.TriggerRule) error {
	s.rules[rule.ID] = rule
	return nil
}

func (s *stubChatbotData) GetRuleByID(_ context.Context, id string) (entity.TriggerRule, error) {
	rule, ok := s.rules[id]
	if !ok {
		return entity.TriggerRule{}, chatbot.ErrRuleNotFound
	}
	return rule, nil
}

func (s *stubChatbotData) ListRulesByChatbot(_ context.Context, chatbotID string) ([]entity.TriggerRule, error) {
	var out []entity.TriggerRule
	for _, rule := range s.rules {
		if rule.ChatbotID == chatbotID {
			out = append(out, rule)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *stubChatbotData) NextPosition(_ context.Context, chatbotID string) (int, error) {
	next := 1
	for _, rule := range s.rules {
		if rule.ChatbotID == chatbotID && rule.Position >= next {
			next = rule.Position + 1
		}
	}
	return next, nil
}

func (s *stubChatbotData) UpdateRule(_ context.Context, rule entity.TriggerRule) error {
	if _, ok := s.rules[rule.ID]; !ok {
		return chatbot.ErrRuleNotFound
	}
	s.rules[rule.ID] = rule
	return nil
}

func (s *stubChatbotData) SetRulePosition(_ context.Context, id string, position int) error {
	rule, ok := s.rules[id]
	if !ok {
		return chatbot.ErrRuleNotFound
	}
	rule.Position = position
	s.rules[id] = rule
	return nil
}

func (s *stubChatbotData) MarkAIEnhanced(_ context.Context, id string, response string) error {
	rule, ok := s.rules[id]
	if !ok {
		return chatbot.ErrRuleNotFound
	}
	rule.Response = response
	rule.IsAIEnhanced = true
	s.rules[id] = rule
	return nil
}

func (s *stubChatbotData) DeleteRule(_ context.Context, id string) error {
	delete(s.rules, id)
	return nil
}

func (s *stubChatbotData) ListTemplates(_ context.Context) ([]entity.IndustryTemplate, []int, error) {
	return nil, nil, nil
}

func (s *stubChatbotData) GetTemplateByID(_ context.Context, _ string) (entity.IndustryTemplate, error) {
	return entity.IndustryTemplate{}, chatbot.ErrTemplateNotFound
}

func (s *stubChatbotData) ListTemplateRules(_ context.Context, _ string) ([]entity.TemplateRule, error) {
	return nil, nil
}

type stubChatbotDataRepo struct {
	data *stubChatbotData
}

func (r *stubChatbotDataRepo) NewClient(_ bool) (chatbotRepository.Client, error) {
	return chatbotRepository.Client{
		Chatbots: r.data,
		Rules:    r.data,
		Templates: r.data,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type stubRuleCache struct {
	invalidated []string
}

func (s *stubRuleCache) SetOTP(_ context.Context, _ string, _ string, _ time.Duration) error {
	return nil
}

func (s *stubRuleCache) GetOTP(_ context.Context, _ string) (string, error) { return "", nil }

func (s *stubRuleCache) DeleteOTP(_ context.Context, _ string) error { return nil }

func (s *stubRuleCache) SetChatbotRules(_ context.Context, _ string, _ []redis.CachedRule) error {
	return nil
}

func (s *stubRuleCache) GetChatbotRules(_ context.Context, _ string) ([]redis.CachedRule, error) {
	return nil, nil
}

func (s *stubRuleCache) InvalidateChatbotRules(_ context.Context, chatbotID string) error {
	s.invalidated = append(s.invalidated, chatbotID)
	return nil
}

type stubUploader struct{}

func (s *stubUploader) UploadFile(_ *multipart.FileHeader) (string, error) {
	return "https://bucket.s3.test/object", nil
}

func (s *stubUploader) UploadBytes(_ []byte, fileName string, _ string) (string, error) {
	return "https://bucket.s3.test/" + fileName, nil
}

func (s *stubUploader) PresignUrl(fileName string) (string, error) { return fileName, nil }

func (s *stubUploader) DeleteFile(_ string) error { return nil }

type stubEnhancer struct{}

func (s *stubEnhancer) Generate(_ context.Context, _ string, _ string, _ string) (string, error) {
	return "generated", nil
}

func (s *stubEnhancer) EnhanceResponse(_ context.Context, _ string, response string, _ string) (string, error) {
	return response + " (polished)", nil
}

type stubPlanProvider struct{}

func (s *stubPlanProvider) ActivePlan(_ context.Context, _ string) (entity.Plan, error) {
	return entity.Plan{ID: "plan-free", Name: "free", ChatbotQuota: 5, MessageQuota: 100}, nil
}

type ruleFixture struct {
	service IChatbotService
	data    *stubChatbotData
	cache   *stubRuleCache
}

func newRuleFixture() *ruleFixture {
	data := newStubChatbotData()
	data.bots["bot-1"] = entity.Chatbot{ID: "bot-1", UserID: "user-1", Name: "Support"}
	data.rules["r1"] = entity.TriggerRule{ID: "r1", ChatbotID: "bot-1", Trigger: "shipping", Response: "Free over $50.", Position: 1}
	data.rules["r2"] = entity.TriggerRule{ID: "r2", ChatbotID: "bot-1", Trigger: "returns", Response: "30 days.", Position: 2}

	cache := &stubRuleCache{}
	service := New(
		logrus.New(),
		&stubChatbotDataRepo{data: data},
		utils.New(),
		cache,
		&stubUploader{},
		&stubEnhancer{},
		&stubPlanProvider{},
	)

	return &ruleFixture{service: service, data: data, cache: cache}
}

func TestReorderRulesAppliesPositions(t *testing.T) {
	f := newRuleFixture()

	err := f.service.ReorderRules(context.Background(), "user-1", "bot-1", chatbot.ReorderRulesRequest{
		RuleIDs: []string{"r2", "r1"},
	})
	if err != nil {
		t.Fatalf("ReorderRules: %v", err)
	}

	if got := f.data.rules["r2"].Position; got != 1 {
		t.Fatalf("r2 position = %d, want 1", got)
	}
	if got := f.data.rules["r1"].Position; got != 2 {
		t.Fatalf("r1 position = %d, want 2", got)
	}
	if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != "bot-1" {
		t.Fatalf("invalidated = %v, want [bot-1]", f.cache.invalidated)
	}
}

func TestReorderRulesRejectsDuplicateIDs(t *testing.T) {
	f := newRuleFixture()

	err := f.service.ReorderRules(context.Background(), "user-1", "bot-1", chatbot.ReorderRulesRequest{
		RuleIDs: []string{"r1", "r1"},
	})
	if !errors.Is(err, chatbot.ErrInvalidRuleOrder) {
		t.Fatalf("err = %v, want ErrInvalidRuleOrder", err)
	}

	// Every rule keeps a distinct position.
	if f.data.rules["r1"].Position == f.data.rules["r2"].Position {
		t.Fatalf("rules share position %d", f.data.rules["r1"].Position)
	}
}

func TestReorderRulesRejectsUnknownID(t *testing.T) {
	f := newRuleFixture()

	err := f.service.ReorderRules(context.Background(), "user-1", "bot-1", chatbot.ReorderRulesRequest{
		RuleIDs: []string{"r1", "missing"},
	})
	if !errors.Is(err, chatbot.ErrInvalidRuleOrder) {
		t.Fatalf("err = %v, want ErrInvalidRuleOrder", err)
	}
}

func TestReorderRulesRejectsWrongCount(t *testing.T) {
	f := newRuleFixture()

	err := f.service.ReorderRules(context.Background(), "user-1", "bot-1", chatbot.ReorderRulesRequest{
		RuleIDs: []string{"r1"},
	})
	if !errors.Is(err, chatbot.ErrInvalidRuleOrder) {
		t.Fatalf("err = %v, want ErrInvalidRuleOrder", err)
	}
}

func TestReorderRulesForeignChatbot(t *testing.T) {
	f := newRuleFixture()

	err := f.service.ReorderRules(context.Background(), "user-2", "bot-1", chatbot.ReorderRulesRequest{
		RuleIDs: []string{"r1", "r2"},
	})
	if !errors.Is(err, chatbot.ErrChatbotNotOwned) {
		t.Fatalf("err = %v, want ErrChatbotNotOwned", err)
	}
}
