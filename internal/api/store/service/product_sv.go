package storeService

import (
	"LulaiPlatform/internal/api/store"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *storeServiceImpl) CreateProduct(ctx context.Context, req store.CreateProductRequest) (store.ProductResponse, error) {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return store.ProductResponse{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return store.ProductResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	product := entity.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.Products.CreateProduct(ctx, product); err != nil {
		return store.ProductResponse{}, err
	}

	return makeProductResponse(product), nil
}

func (s *storeServiceImpl) UpdateProduct(ctx context.Context, productID string, req store.UpdateProductRequest) (store.ProductResponse, error) {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return store.ProductResponse{}, err
	}

	product, err := repo.Products.GetProductByID(ctx, productID)
	if err != nil {
		return store.ProductResponse{}, err
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	updated := entity.Product{
		ID:          productID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       product.Stock,
		IsActive:    product.IsActive,
	}

	if err := repo.Products.UpdateProduct(ctx, updated); err != nil {
		return store.ProductResponse{}, err
	}

	product, err = repo.Products.GetProductByID(ctx, productID)
	if err != nil {
		return store.ProductResponse{}, err
	}

	return makeProductResponse(product), nil
}

func (s *storeServiceImpl) DeleteProduct(ctx context.Context, productID string) error {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Products.DeleteProduct(ctx, productID)
}

// UploadProductImage stores the image in S3 and asks Gemini for an
// accessibility alt text. A Gemini failure keeps the upload, the alt text
// just stays empty.
func (s *storeServiceImpl) UploadProductImage(ctx context.Context, productID string, file *multipart.FileHeader) (store.ProductResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return store.ProductResponse{}, err
	}

	product, err := repo.Products.GetProductByID(ctx, productID)
	if err != nil {
		return store.ProductResponse{}, err
	}

	if err := s.utils.ValidateImageFile(file); err != nil {
		return store.ProductResponse{}, store.ErrInvalidFileType
	}

	imageURL, err := s.s3Client.UploadFile(file)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload product image")
		return store.ProductResponse{}, store.ErrFailedToUpload
	}

	altText := s.describeImage(ctx, file, product.Name)

	if err := repo.Products.UpdateProductImage(ctx, productID, imageURL, altText); err != nil {
		return store.ProductResponse{}, err
	}

	product.ImageURL = imageURL
	product.ImageAltText = altText
	return makeProductResponse(product), nil
}

func (s *storeServiceImpl) describeImage(ctx context.Context, file *multipart.FileHeader, productName string) string {
	requestID := contextPkg.GetRequestID(ctx)

	src, err := file.Open()
	if err != nil {
		return ""
	}
	defer src.Close()

	base64Image, err := s.utils.ConvertFileToBase64(src)
	if err != nil {
		return ""
	}

	altText, err := s.geminiClient.DescribeProductImage(ctx, base64Image, productName)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Gemini alt text generation failed")
		return ""
	}

	return altText
}

func (s *storeServiceImpl) ListProducts(ctx context.Context, includeInactive bool) ([]store.ProductResponse, error) {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	products, err := repo.Products.ListProducts(ctx, !includeInactive)
	if err != nil {
		return nil, err
	}

	resp := make([]store.ProductResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, makeProductResponse(product))
	}

	return resp, nil
}

func (s *storeServiceImpl) GetProduct(ctx context.Context, productID string) (store.ProductResponse, error) {
	repo, err := s.storeRepo.NewClient(false)
	if err != nil {
		return store.ProductResponse{}, err
	}

	product, err := repo.Products.GetProductByID(ctx, productID)
	if err != nil {
		return store.ProductResponse{}, err
	}
	if !product.IsActive {
		return store.ProductResponse{}, store.ErrProductNotFound
	}

	return makeProductResponse(product), nil
}

func makeProductResponse(product entity.Product) store.ProductResponse {
	return store.ProductResponse{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		PriceCents:   product.PriceCents,
		ImageURL:     product.ImageURL,
		ImageAltText: product.ImageAltText,
		Stock:        product.Stock,
		IsActive:     product.IsActive,
		CreatedAt:    product.CreatedAt,
	}
}
