package handlerUtil

import (
	"LulaiPlatform/internal/api/analytics"
	"LulaiPlatform/internal/api/auth"
	"LulaiPlatform/internal/api/chatbot"
	"LulaiPlatform/internal/api/interaction"
	"LulaiPlatform/internal/api/store"
	"LulaiPlatform/internal/api/subscription"
	"LulaiPlatform/pkg/log"
	"LulaiPlatform/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	// Auth domain errors
	if errors.Is(err, auth.ErrUserNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "User not found", "USER_NOT_FOUND")
	}

	if errors.Is(err, auth.ErrEmailAlreadyExists) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusConflict, "Email already in use", "EMAIL_ALREADY_EXISTS")
	}

	if errors.Is(err, auth.ErrInvalidEmailOrPassword) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Invalid email or password", "INVALID_CREDENTIALS")
	}

	if errors.Is(err, auth.ErrUserNotVerified) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusForbidden, "Email is not verified", "EMAIL_NOT_VERIFIED")
	}

	if errors.Is(err, auth.ErrInvalidOTP) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Invalid or expired OTP", "INVALID_OTP")
	}

	if errors.Is(err, auth.ErrAdminNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "Admin not found", "ADMIN_NOT_FOUND")
	}

	if errors.Is(err, auth.ErrInvalidInviteToken) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Invalid or expired invite token", "INVALID_INVITE_TOKEN")
	}

	if errors.Is(err, auth.ErrAdminAlreadyActive) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusConflict, "Admin account already active", "ADMIN_ALREADY_ACTIVE")
	}

	if errors.Is(err, auth.ErrOAuthExchangeFailed) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadGateway, "Failed to sign in with Google", "OAUTH_EXCHANGE_FAILED")
	}

	if errors.Is(err, auth.ErrInvalidFileType) || errors.Is(err, chatbot.ErrInvalidFileType) || errors.Is(err, store.ErrInvalidFileType) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Invalid file type. Only images are allowed.", "INVALID_FILE_TYPE")
	}

	if errors.Is(err, auth.ErrFailedToUpload) || errors.Is(err, chatbot.ErrFailedToUpload) || errors.Is(err, store.ErrFailedToUpload) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusInternalServerError, "Failed to upload file", "UPLOAD_FAILED")
	}

	// Chatbot domain errors
	if errors.Is(err, chatbot.ErrChatbotNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "Chatbot not found", "CHATBOT_NOT_FOUND")
	}

	if errors.Is(err, chatbot.ErrChatbotNotOwned) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusForbidden, "Chatbot does not belong to user", "CHATBOT_NOT_OWNED")
	}

	if errors.Is(err, chatbot.ErrRuleNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "Trigger rule not found", "RULE_NOT_FOUND")
	}

	if errors.Is(err, chatbot.ErrTemplateNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "Industry template not found", "TEMPLATE_NOT_FOUND")
	}

	if errors.Is(err, chatbot.ErrChatbotQuotaExceeded) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusForbidden, "Chatbot quota exceeded for current plan", "CHATBOT_QUOTA_EXCEEDED")
	}

	if errors.Is(err, chatbot.ErrInvalidRuleOrder) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Rule order does not match chatbot rules", "INVALID_RULE_ORDER")
	}

	if errors.Is(err, chatbot.ErrEnhanceFailed) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadGateway, "Failed to enhance response", "ENHANCE_FAILED")
	}

	// Widget interaction domain errors
	if errors.Is(err, interaction.ErrInvalidAPIKey) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusUnauthorized, "Invalid widget API key", "INVALID_API_KEY")
	}

	if errors.Is(err, interaction.ErrConversationNotFound) || errors.Is(err, analytics.ErrConversationNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "Conversation not found", "CONVERSATION_NOT_FOUND")
	}

	if errors.Is(err, interaction.ErrMessageNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "Message not found", "MESSAGE_NOT_FOUND")
	}

	if errors.Is(err, interaction.ErrInvalidAudioFile) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Invalid audio file type", "INVALID_AUDIO_FILE")
	}

	if errors.Is(err, interaction.ErrTranscriptionFailed) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadGateway, "Failed to transcribe audio", "TRANSCRIPTION_FAILED")
	}

	// Analytics domain errors
	if errors.Is(err, analytics.ErrChatbotNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "Chatbot not found", "CHATBOT_NOT_FOUND")
	}

	if errors.Is(err, analytics.ErrInvalidDateRange) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Invalid date range", "INVALID_DATE_RANGE")
	}

	// Billing domain errors
	if errors.Is(err, subscription.ErrPlanNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "Plan not found", "PLAN_NOT_FOUND")
	}

	if errors.Is(err, subscription.ErrSubscriptionNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "No active subscription", "SUBSCRIPTION_NOT_FOUND")
	}

	if errors.Is(err, subscription.ErrPlanNotPurchasable) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Plan cannot be purchased", "PLAN_NOT_PURCHASABLE")
	}

	if errors.Is(err, subscription.ErrCheckoutFailed) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadGateway, "Failed to create checkout session", "CHECKOUT_FAILED")
	}

	if errors.Is(err, subscription.ErrInvalidWebhookPayload) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Invalid webhook payload", "INVALID_WEBHOOK_PAYLOAD")
	}

	// Storefront domain errors
	if errors.Is(err, store.ErrProductNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "Product not found", "PRODUCT_NOT_FOUND")
	}

	if errors.Is(err, store.ErrMissingSession) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Missing X-Session-ID header", "MISSING_SESSION")
	}

	if errors.Is(err, store.ErrProductInactive) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Product is not available", "PRODUCT_INACTIVE")
	}

	if errors.Is(err, store.ErrInsufficientStock) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusConflict, "Insufficient stock", "INSUFFICIENT_STOCK")
	}

	if errors.Is(err, store.ErrCartItemNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "Cart item not found", "CART_ITEM_NOT_FOUND")
	}

	if errors.Is(err, store.ErrCartEmpty) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadRequest, "Cart is empty", "CART_EMPTY")
	}

	if errors.Is(err, store.ErrOrderNotFound) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusNotFound, "Order not found", "ORDER_NOT_FOUND")
	}

	if errors.Is(err, store.ErrPaymentFailed) {
		return h.warn(c, requestID, err, path, operation, fiber.StatusBadGateway, "Failed to create payment", "PAYMENT_FAILED")
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) warn(c *fiber.Ctx, requestID string, err error, path string, operation string, status int, message string, code string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Warn(message)

	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
