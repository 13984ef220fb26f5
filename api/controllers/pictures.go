package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/ksemenov/catalog-backend/api/responses"
	"github.com/ksemenov/catalog-backend/api/validators"
	"github.com/ksemenov/catalog-backend/internal/pictures"
	"github.com/ksemenov/catalog-backend/pkg/config"
	pkgerrors "github.com/ksemenov/catalog-backend/pkg/errors"
	"github.com/ksemenov/catalog-backend/pkg/logger"
)

const pictureFormField = "picture"

// UploadPicture handles PATCH /products/picture/update/{id}. The multipart
// field "picture" carries the image; anything over the configured cap is
// rejected before it is buffered.
func UploadPicture(svc pictures.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pictures service unavailable"))
			return
		}

		id, err := validators.ParseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if limit := media.MaxUploadBytes(); limit > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}

		file, header, err := r.FormFile(pictureFormField)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "upload exceeds the size limit").
					WithDetails(map[string]any{"maxBytes": maxErr.Limit}))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "multipart field \"picture\" is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading upload"))
			return
		}

		product, err := svc.UploadPicture(r.Context(), id, data, header.Header.Get("Content-Type"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeletePicture handles PATCH /products/picture/delete/{id}.
func DeletePicture(svc pictures.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pictures service unavailable"))
			return
		}

		id, err := validators.ParseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.DeletePicture(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
