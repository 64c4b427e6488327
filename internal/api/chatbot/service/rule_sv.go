package chatbotService

import (
	"LulaiPlatform/internal/api/chatbot"
	chatbotRepository "LulaiPlatform/internal/api/chatbot/repository"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *chatbotServiceImpl) CreateRule(ctx context.Context, userID string, chatbotID string, req chatbot.CreateRuleRequest) (chatbot.RuleResponse, error) {
	_, repo, err := s.ownedChatbot(ctx, userID, chatbotID)
	if err != nil {
		return chatbot.RuleResponse{}, err
	}

	ruleID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return chatbot.RuleResponse{}, err
	}

	position, err := repo.Rules.NextPosition(ctx, chatbotID)
	if err != nil {
		return chatbot.RuleResponse{}, err
	}

	now := time.Now()
	rule := entity.TriggerRule{
		ID:        ruleID,
		ChatbotID: chatbotID,
		Trigger:   req.Trigger,
		Response:  req.Response,
		IsAI:      req.IsAI,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Rules.CreateRule(ctx, rule); err != nil {
		return chatbot.RuleResponse{}, err
	}

	s.invalidateRuleCache(ctx, chatbotID)

	return makeRuleResponse(rule), nil
}

func (s *chatbotServiceImpl) ListRules(ctx context.Context, userID string, chatbotID string) (chatbot.RuleListResponse, error) {
	_, repo, err := s.ownedChatbot(ctx, userID, chatbotID)
	if err != nil {
		return chatbot.RuleListResponse{}, err
	}

	rules, err := repo.Rules.ListRulesByChatbot(ctx, chatbotID)
	if err != nil {
		return chatbot.RuleListResponse{}, err
	}

	resp := chatbot.RuleListResponse{
		Rules: make([]chatbot.RuleResponse, 0, len(rules)),
	}
	for _, rule := range rules {
		resp.Rules = append(resp.Rules, makeRuleResponse(rule))
	}

	return resp, nil
}

func (s *chatbotServiceImpl) UpdateRule(ctx context.Context, userID string, chatbotID string, ruleID string, req chatbot.UpdateRuleRequest) error {
	_, repo, err := s.ownedChatbot(ctx, userID, chatbotID)
	if err != nil {
		return err
	}

	rule, err := repo.Rules.GetRuleByID(ctx, ruleID)
	if err != nil {
		return err
	}
	if rule.ChatbotID != chatbotID {
		return chatbot.ErrRuleNotFound
	}

	isAI := rule.IsAI
	if req.IsAI != nil {
		isAI = *req.IsAI
	}

	// Blank trigger or response means keep the stored value; the update
	// query only overwrites non-empty fields. Neither can be cleared to
	// empty, and a rule with an empty trigger would never match anyway.
	if err := repo.Rules.UpdateRule(ctx, entity.TriggerRule{
		ID:       ruleID,
		Trigger:  req.Trigger,
		Response: req.Response,
		IsAI:     isAI,
	}); err != nil {
		return err
	}

	s.invalidateRuleCache(ctx, chatbotID)

	return nil
}

func (s *chatbotServiceImpl) ReorderRules(ctx context.Context, userID string, chatbotID string, req chatbot.ReorderRulesRequest) error {
	_, _, err := s.ownedChatbot(ctx, userID, chatbotID)
	if err != nil {
		return err
	}

	repo, err := s.chatbotRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	rules, err := repo.Rules.ListRulesByChatbot(ctx, chatbotID)
	if err != nil {
		return err
	}

	if len(rules) != len(req.RuleIDs) {
		return chatbot.ErrInvalidRuleOrder
	}

	known := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		known[rule.ID] = struct{}{}
	}

	for i, ruleID := range req.RuleIDs {
		if _, ok := known[ruleID]; !ok {
			// Unknown or duplicated id; either way the request does not
			// cover every rule exactly once.
			return chatbot.ErrInvalidRuleOrder
		}
		delete(known, ruleID)
		if err := repo.Rules.SetRulePosition(ctx, ruleID, i+1); err != nil {
			return err
		}
	}

	if err := repo.Commit(); err != nil {
		return err
	}

	s.invalidateRuleCache(ctx, chatbotID)

	return nil
}

func (s *chatbotServiceImpl) DeleteRule(ctx context.Context, userID string, chatbotID string, ruleID string) error {
	_, repo, err := s.ownedChatbot(ctx, userID, chatbotID)
	if err != nil {
		return err
	}

	rule, err := repo.Rules.GetRuleByID(ctx, ruleID)
	if err != nil {
		return err
	}
	if rule.ChatbotID != chatbotID {
		return chatbot.ErrRuleNotFound
	}

	if err := repo.Rules.DeleteRule(ctx, ruleID); err != nil {
		return err
	}

	s.invalidateRuleCache(ctx, chatbotID)

	return nil
}

// EnhanceRuleResponse rewrites an authored response with the chat model
// and persists the improved text.
func (s *chatbotServiceImpl) EnhanceRuleResponse(ctx context.Context, userID string, chatbotID string, ruleID string) (chatbot.RuleResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	bot, repo, err := s.ownedChatbot(ctx, userID, chatbotID)
	if err != nil {
		return chatbot.RuleResponse{}, err
	}

	rule, err := repo.Rules.GetRuleByID(ctx, ruleID)
	if err != nil {
		return chatbot.RuleResponse{}, err
	}
	if rule.ChatbotID != chatbotID {
		return chatbot.RuleResponse{}, chatbot.ErrRuleNotFound
	}

	enhanced, err := s.chatGPT.EnhanceResponse(ctx, rule.Trigger, rule.Response, bot.Industry)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"rule_id":    ruleID,
			"error":      err.Error(),
		}).Error("Response enhancement failed")
		return chatbot.RuleResponse{}, chatbot.ErrEnhanceFailed
	}

	if err := repo.Rules.MarkAIEnhanced(ctx, ruleID, enhanced); err != nil {
		return chatbot.RuleResponse{}, err
	}

	s.invalidateRuleCache(ctx, chatbotID)

	rule.Response = enhanced
	rule.IsAIEnhanced = true

	return makeRuleResponse(rule), nil
}

func (s *chatbotServiceImpl) copyTemplateRules(ctx context.Context, repo chatbotRepository.Client, templateID string, chatbotID string) error {
	if _, err := repo.Templates.GetTemplateByID(ctx, templateID); err != nil {
		return err
	}

	templateRules, err := repo.Templates.ListTemplateRules(ctx, templateID)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, tplRule := range templateRules {
		ruleID, err := s.utils.NewULIDFromTimestamp(now)
		if err != nil {
			return err
		}

		rule := entity.TriggerRule{
			ID:        ruleID,
			ChatbotID: chatbotID,
			Trigger:   tplRule.Trigger,
			Response:  tplRule.Response,
			Position:  tplRule.Position,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := repo.Rules.CreateRule(ctx, rule); err != nil {
			return err
		}
	}

	return nil
}

func (s *chatbotServiceImpl) ownedChatbot(ctx context.Context, userID string, chatbotID string) (entity.Chatbot, chatbotRepository.Client, error) {
	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		return entity.Chatbot{}, chatbotRepository.Client{}, err
	}

	bot, err := repo.Chatbots.GetChatbotByID(ctx, chatbotID)
	if err != nil {
		return entity.Chatbot{}, chatbotRepository.Client{}, err
	}

	if bot.UserID != userID {
		return entity.Chatbot{}, chatbotRepository.Client{}, chatbot.ErrChatbotNotOwned
	}

	return bot, repo, nil
}

func (s *chatbotServiceImpl) invalidateRuleCache(ctx context.Context, chatbotID string) {
	if err := s.redisServer.InvalidateChatbotRules(ctx, chatbotID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"chatbot_id": chatbotID,
			"error":      err.Error(),
		}).Warn("Failed to invalidate rule cache")
	}
}

func makeChatbotResponse(bot entity.Chatbot) chatbot.ChatbotResponse {
	return chatbot.ChatbotResponse{
		ID:             bot.ID,
		Name:           bot.Name,
		Description:    bot.Description,
		Industry:       bot.Industry,
		APIKey:         bot.APIKey,
		AvatarURL:      bot.AvatarURL,
		WidgetTheme:    bot.WidgetTheme,
		WidgetGreeting: bot.WidgetGreeting,
		VoiceID:        bot.VoiceID,
		CreatedAt:      bot.CreatedAt,
		UpdatedAt:      bot.UpdatedAt,
	}
}

func makeRuleResponse(rule entity.TriggerRule) chatbot.RuleResponse {
	return chatbot.RuleResponse{
		ID:           rule.ID,
		Trigger:      rule.Trigger,
		Response:     rule.Response,
		IsAI:         rule.IsAI,
		IsAIEnhanced: rule.IsAIEnhanced,
		Position:     rule.Position,
		CreatedAt:    rule.CreatedAt,
		UpdatedAt:    rule.UpdatedAt,
	}
}
