package commands

import (
	"context"
	"log/slog"

	"flea-market/internal/domain/product"
	reqdto "flea-market/internal/handler/dto/request"
	"flea-market/internal/infra"
	"flea-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errs.New("product not found")
	ErrProductValidation = errs.New("product validation error")
	ErrProductNotYours   = errs.New("product belongs to another seller")
	ErrProductSold       = errs.New("product already sold")
)

type ProductCommands interface {
	CreateProduct(ctx context.Context, ownerID uuid.UUID, req reqdto.CreateProductRequest, image *UploadedFile) (uuid.UUID, error)
	DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error
}

type productCommandsImpl struct {
	products ProductRepository
	blobs    BlobStore
}

func NewProductCommands(products ProductRepository, blobs BlobStore) ProductCommands {
	return &productCommandsImpl{
		products: products,
		blobs:    blobs,
	}
}

func (p *productCommandsImpl) CreateProduct(ctx context.Context, ownerID uuid.UUID, req reqdto.CreateProductRequest, image *UploadedFile) (uuid.UUID, error) {
	name, err := product.NewName(req.Name)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrProductValidation)
	}
	price, err := product.NewPrice(req.PriceCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrProductValidation)
	}

	var imageRef *string
	if image != nil && len(image.Content) > 0 {
		stored, saveErr := p.blobs.Save(image.Content, image.Name)
		if saveErr != nil {
			return uuid.Nil, errs.Wrap(saveErr, "failed to store product image")
		}
		imageRef = &stored
	}

	entity := product.NewProduct(name, price, imageRef, ownerID)
	if err := p.products.Create(ctx, entity); err != nil {
		if imageRef != nil {
			if delErr := p.blobs.Delete(*imageRef); delErr != nil {
				slog.Warn("failed to remove orphaned product image", "ref", *imageRef, "error", delErr.Error())
			}
		}
		return uuid.Nil, err
	}

	return entity.ID(), nil
}

// DeleteProduct removes an unsold listing owned by the caller. The stored
// image is deleted afterwards; a leftover blob on failure is harmless, a
// dangling reference is not, so the row goes first.
func (p *productCommandsImpl) DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error {
	entity, err := p.products.FindByID(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrProductNotFound)
		}
		return err
	}

	if !entity.IsOwnedBy(ownerID) {
		return ErrProductNotYours
	}
	if !entity.IsAvailable() {
		return ErrProductSold
	}

	deleted, err := p.products.Delete(ctx, productID, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		// Sold between the read and the delete.
		return ErrProductSold
	}

	if ref := entity.ImageRef(); ref != nil {
		if delErr := p.blobs.Delete(*ref); delErr != nil {
			slog.Warn("failed to delete product image", "ref", *ref, "error", delErr.Error())
		}
	}
	return nil
}
