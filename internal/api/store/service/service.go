package storeService

import (
	storeRepository "LulaiPlatform/internal/api/store/repository"
	"LulaiPlatform/internal/api/store"
	"LulaiPlatform/pkg/gemini"
	"LulaiPlatform/pkg/s3"
	"LulaiPlatform/pkg/smtp"
	stripePkg "LulaiPlatform/pkg/stripe"
	"LulaiPlatform/pkg/utils"
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ConversionRecorder marks the widget conversation that led to a purchase.
type ConversionRecorder interface {
	MarkConversion(ctx context.Context, conversationID string, value float64) error
}

type IStoreService interface {
	CreateProduct(ctx context.Context, req store.CreateProductRequest) (store.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID string, req store.UpdateProductRequest) (store.ProductResponse, error)
	DeleteProduct(ctx context.Context, productID string) error
	UploadProductImage(ctx context.Context, productID string, file *multipart.FileHeader) (store.ProductResponse, error)
	ListProducts(ctx context.Context, includeInactive bool) ([]store.ProductResponse, error)
	GetProduct(ctx context.Context, productID string) (store.ProductResponse, error)

	GetCart(ctx context.Context, sessionID string) (store.CartResponse, error)
	AddCartItem(ctx context.Context, sessionID string, req store.AddCartItemRequest) (store.CartResponse, error)
	UpdateCartItem(ctx context.Context, sessionID string, itemID string, req store.UpdateCartItemRequest) (store.CartResponse, error)
	RemoveCartItem(ctx context.Context, sessionID string, itemID string) (store.CartResponse, error)
	ClearCart(ctx context.Context, sessionID string) error

	Checkout(ctx context.Context, sessionID string, req store.CheckoutRequest) (store.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	ListOrders(ctx context.Context, sessionID string) ([]store.OrderResponse, error)
	GetOrder(ctx context.Context, sessionID string, orderID string) (store.OrderResponse, error)
}

type storeServiceImpl struct {
	log          *logrus.Logger
	storeRepo    storeRepository.Repository
	stripeClient stripePkg.IStripe
	s3Client     s3.ItfS3
	geminiClient gemini.IGemini
	smtpMailer   smtp.ItfSmtp
	utils        utils.IUtils
	conversions  ConversionRecorder
}

func New(
	log *logrus.Logger,
	storeRepo storeRepository.Repository,
	stripeClient stripePkg.IStripe,
	s3Client s3.ItfS3,
	geminiClient gemini.IGemini,
	smtpMailer smtp.ItfSmtp,
	utils utils.IUtils,
	conversions ConversionRecorder,
) IStoreService {
	return &storeServiceImpl{
		log:          log,
		storeRepo:    storeRepo,
		stripeClient: stripeClient,
		s3Client:     s3Client,
		geminiClient: geminiClient,
		smtpMailer:   smtpMailer,
		utils:        utils,
		conversions:  conversions,
	}
}
