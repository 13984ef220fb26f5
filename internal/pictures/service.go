package pictures

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ksemenov/catalog-backend/pkg/config"
	"github.com/ksemenov/catalog-backend/pkg/db/models"
	pkgerrors "github.com/ksemenov/catalog-backend/pkg/errors"
	"github.com/ksemenov/catalog-backend/pkg/logger"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// ProductStore is the slice of product persistence the picture pipeline needs.
type ProductStore interface {
	FindByID(context.Context, int64) (*models.Product, error)
	UpdatePicture(ctx context.Context, id int64, picture *string) error
}

// Service manages product images: conversion, the on-disk file, and the
// picture reference on the product row.
type Service interface {
	UploadPicture(ctx context.Context, id int64, data []byte, contentType string) (*models.Product, error)
	DeletePicture(ctx context.Context, id int64) (*models.Product, error)
	RemoveFileIfExists(id int64) error
}

type service struct {
	store      ProductStore
	codec      Codec
	root       string
	publicBase string
	logg       *logger.Logger
}

// NewService wires the picture pipeline to its product store, codec and
// filesystem layout.
func NewService(store ProductStore, codec Codec, static config.StaticConfig, logg *logger.Logger) Service {
	return &service{
		store:      store,
		codec:      codec,
		root:       static.Root,
		publicBase: static.PublicBase,
		logg:       logg,
	}
}

// filePath is where the converted image lives on disk; publicPath is how it is
// referenced in the product row and served over HTTP. Both are fully determined
// by the product ID, so a re-upload overwrites in place.
func (s *service) filePath(id int64) string {
	return filepath.Join(s.root, "images", fmt.Sprintf("%d.webp", id))
}

func (s *service) publicPath(id int64) string {
	return path.Join(s.publicBase, "images", fmt.Sprintf("%d.webp", id))
}

// UploadPicture converts the upload to webp, writes it under the static root
// and points the product row at it.
func (s *service) UploadPicture(ctx context.Context, id int64, data []byte, contentType string) (*models.Product, error) {
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, pkgerrors.New(pkgerrors.CodeUnsupportedMedia, "upload must be an image").
			WithDetails(map[string]string{"contentType": contentType})
	}

	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	encoded, err := s.codec.EncodeWebP(data)
	if err != nil {
		return nil, err
	}

	target := s.filePath(id)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "creating images directory")
	}

	hadPicture := product.Picture != nil
	if err := os.WriteFile(target, encoded, 0o644); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "writing image file")
	}

	public := s.publicPath(id)
	if err := s.store.UpdatePicture(ctx, id, &public); err != nil {
		// a fresh file can be rolled back; a replacement cannot, the old
		// content is already gone
		if !hadPicture {
			if rmErr := os.Remove(target); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				err = multierr.Append(err, rmErr)
			}
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating picture reference")
	}

	ctx = s.logg.WithProductID(ctx, id)
	s.logg.Info(ctx, "product picture stored")

	product.Picture = &public
	return product, nil
}

// DeletePicture removes the image file and clears the product's picture
// reference. A missing file leaves the row untouched.
func (s *service) DeletePicture(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := os.Remove(s.filePath(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product has no stored picture")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "removing image file")
	}

	if err := s.store.UpdatePicture(ctx, id, nil); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing picture reference")
	}

	ctx = s.logg.WithProductID(ctx, id)
	s.logg.Info(ctx, "product picture removed")

	product.Picture = nil
	return product, nil
}

// RemoveFileIfExists deletes the image file if present. Used when the product
// itself is being deleted.
func (s *service) RemoveFileIfExists(id int64) error {
	if err := os.Remove(s.filePath(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *service) findProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}
