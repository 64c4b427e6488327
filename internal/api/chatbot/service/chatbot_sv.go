package chatbotService

import (
	"LulaiPlatform/internal/api/chatbot"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *chatbotServiceImpl) CreateChatbot(ctx context.Context, userID string, req chatbot.CreateChatbotRequest) (chatbot.ChatbotResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatbotRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return chatbot.ChatbotResponse{}, err
	}
	defer repo.Rollback()

	current, err := repo.Chatbots.CountChatbotsByUser(ctx, userID)
	if err != nil {
		return chatbot.ChatbotResponse{}, err
	}

	plan, err := s.plans.ActivePlan(ctx, userID)
	if err != nil {
		return chatbot.ChatbotResponse{}, err
	}

	if current >= plan.ChatbotQuota {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"plan":       plan.Name,
		}).Warn("Chatbot quota exceeded")
		return chatbot.ChatbotResponse{}, chatbot.ErrChatbotQuotaExceeded
	}

	botID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return chatbot.ChatbotResponse{}, err
	}

	apiKey, err := s.utils.NewWidgetAPIKey()
	if err != nil {
		return chatbot.ChatbotResponse{}, err
	}

	now := time.Now()
	bot := entity.Chatbot{
		ID:             botID,
		UserID:         userID,
		Name:           req.Name,
		Description:    req.Description,
		Industry:       req.Industry,
		APIKey:         apiKey,
		WidgetTheme:    req.WidgetTheme,
		WidgetGreeting: req.WidgetGreeting,
		VoiceID:        req.VoiceID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := repo.Chatbots.CreateChatbot(ctx, bot); err != nil {
		return chatbot.ChatbotResponse{}, err
	}

	if req.TemplateID != "" {
		if err := s.copyTemplateRules(ctx, repo, req.TemplateID, botID); err != nil {
			return chatbot.ChatbotResponse{}, err
		}
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return chatbot.ChatbotResponse{}, err
	}

	return makeChatbotResponse(bot), nil
}

func (s *chatbotServiceImpl) ListChatbots(ctx context.Context, userID string) (chatbot.ChatbotListResponse, error) {
	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		return chatbot.ChatbotListResponse{}, err
	}

	bots, err := repo.Chatbots.ListChatbotsByUser(ctx, userID)
	if err != nil {
		return chatbot.ChatbotListResponse{}, err
	}

	resp := chatbot.ChatbotListResponse{
		Chatbots: make([]chatbot.ChatbotResponse, 0, len(bots)),
		Total:    len(bots),
	}
	for _, bot := range bots {
		resp.Chatbots = append(resp.Chatbots, makeChatbotResponse(bot))
	}

	return resp, nil
}

func (s *chatbotServiceImpl) GetChatbot(ctx context.Context, userID string, chatbotID string) (chatbot.ChatbotResponse, error) {
	bot, _, err := s.ownedChatbot(ctx, userID, chatbotID)
	if err != nil {
		return chatbot.ChatbotResponse{}, err
	}

	return makeChatbotResponse(bot), nil
}

func (s *chatbotServiceImpl) UpdateChatbot(ctx context.Context, userID string, chatbotID string, req chatbot.UpdateChatbotRequest) error {
	_, repo, err := s.ownedChatbot(ctx, userID, chatbotID)
	if err != nil {
		return err
	}

	return repo.Chatbots.UpdateChatbot(ctx, entity.Chatbot{
		ID:             chatbotID,
		Name:           req.Name,
		Description:    req.Description,
		Industry:       req.Industry,
		WidgetTheme:    req.WidgetTheme,
		WidgetGreeting: req.WidgetGreeting,
		VoiceID:        req.VoiceID,
	})
}

func (s *chatbotServiceImpl) DeleteChatbot(ctx context.Context, userID string, chatbotID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	_, repo, err := s.ownedChatbot(ctx, userID, chatbotID)
	if err != nil {
		return err
	}

	if err := repo.Chatbots.DeleteChatbot(ctx, chatbotID); err != nil {
		return err
	}

	if err := s.redisServer.InvalidateChatbotRules(ctx, chatbotID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"chatbot_id": chatbotID,
			"error":      err.Error(),
		}).Warn("Failed to invalidate rule cache")
	}

	return nil
}

func (s *chatbotServiceImpl) RegenerateAPIKey(ctx context.Context, userID string, chatbotID string) (chatbot.APIKeyResponse, error) {
	_, repo, err := s.ownedChatbot(ctx, userID, chatbotID)
	if err != nil {
		return chatbot.APIKeyResponse{}, err
	}

	apiKey, err := s.utils.NewWidgetAPIKey()
	if err != nil {
		return chatbot.APIKeyResponse{}, err
	}

	if err := repo.Chatbots.UpdateAPIKey(ctx, chatbotID, apiKey); err != nil {
		return chatbot.APIKeyResponse{}, err
	}

	return chatbot.APIKeyResponse{APIKey: apiKey}, nil
}

func (s *chatbotServiceImpl) UploadAvatar(ctx context.Context, userID string, chatbotID string, avatar *multipart.FileHeader) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	_, repo, err := s.ownedChatbot(ctx, userID, chatbotID)
	if err != nil {
		return "", err
	}

	if err := s.utils.ValidateImageFile(avatar); err != nil {
		return "", chatbot.ErrInvalidFileType
	}

	avatarURL, err := s.s3Client.UploadFile(avatar)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload chatbot avatar")
		return "", chatbot.ErrFailedToUpload
	}

	if err := repo.Chatbots.UpdateAvatar(ctx, chatbotID, avatarURL); err != nil {
		return "", err
	}

	return avatarURL, nil
}

func (s *chatbotServiceImpl) ListTemplates(ctx context.Context) (chatbot.TemplateListResponse, error) {
	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		return chatbot.TemplateListResponse{}, err
	}

	templates, counts, err := repo.Templates.ListTemplates(ctx)
	if err != nil {
		return chatbot.TemplateListResponse{}, err
	}

	resp := chatbot.TemplateListResponse{
		Templates: make([]chatbot.TemplateResponse, 0, len(templates)),
	}
	for i, tpl := range templates {
		resp.Templates = append(resp.Templates, chatbot.TemplateResponse{
			ID:          tpl.ID,
			Industry:    tpl.Industry,
			Name:        tpl.Name,
			Description: tpl.Description,
			RuleCount:   counts[i],
		})
	}

	return resp, nil
}
