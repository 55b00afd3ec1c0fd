package service

import (
	"context"
	"mime/multipart"

	"github.com/jackc/pgx/v5"

	"github.com/night-assist/assist-service/internal/domain"
	"github.com/night-assist/assist-service/internal/repository"
	"github.com/night-assist/assist-service/internal/storage"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

var productPatchColumns = map[string]string{
	"name":  "name",
	"price": "price",
}

// ProductService handles the product catalog and its image uploads.
type ProductService struct {
	products repository.ProductRepository
	files    *storage.FileStore
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, files *storage.FileStore) *ProductService {
	return &ProductService{products: products, files: files}
}

// Create stores a product, persisting its image first when provided.
func (s *ProductService) Create(ctx context.Context, name string, price float64, image *multipart.FileHeader) (*domain.Product, error) {
	imagePath := ""
	if image != nil {
		path, err := s.files.Save(image)
		if err != nil {
			return nil, err
		}
		imagePath = path
	}

	product := &domain.Product{Name: name, Price: price, ImagePath: imagePath}
	if err := s.products.Create(ctx, product); err != nil {
		if imagePath != "" {
			_ = s.files.Remove(imagePath)
		}
		return nil, err
	}
	return product, nil
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

// Get returns one product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, err
	}
	return product, nil
}

// Patch applies field updates against the patchable column allow-list.
func (s *ProductService) Patch(ctx context.Context, id string, updates []FieldUpdate) (int64, error) {
	fields := make(map[string]any, len(updates))
	for _, update := range updates {
		column, ok := productPatchColumns[update.PropName]
		if !ok {
			return 0, apperrors.NewValidationError("invalid propName", map[string]any{
				"propName": update.PropName,
			})
		}
		fields[column] = update.Value
	}
	return s.products.UpdateFields(ctx, id, fields)
}

// Delete removes a product together with its stored image.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil && err != pgx.ErrNoRows {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return err
	}
	if existing != nil {
		_ = s.files.Remove(existing.ImagePath)
	}
	return nil
}
