package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
)

// AssetHandler accepts uploads and lists the caller's asset references.
type AssetHandler struct {
	service ports.AssetService
}

func NewAssetHandler(service ports.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// Upload handles POST /api/upload.
//
// @Summary      Upload an image
// @Tags         assets
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file    true  "Image file (jpeg, png, gif or webp)"
// @Param        type  formData  string  true  "avatar, product-image or portfolio"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/upload [post]
func (h *AssetHandler) Upload(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return domain.NewValidationError("file", "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return domain.NewValidationError("file", "file could not be read")
	}
	defer f.Close()

	asset, err := h.service.Upload(c.Request().Context(), ports.UploadInput{
		OwnerID:  claims.AccountID,
		Purpose:  domain.AssetPurpose(c.FormValue("type")),
		Filename: fh.Filename,
		Size:     fh.Size,
		File:     f,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, uploadResponse{URL: asset.URL, Asset: asset})
}

// List handles GET /api/assets.
//
// @Summary      List my assets
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        purpose  query     string  false  "avatar, product-image or portfolio"
// @Success      200      {array}   domain.AssetRef
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /api/assets [get]
func (h *AssetHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	purpose := domain.AssetPurpose(c.QueryParam("purpose"))
	if purpose != "" && !purpose.Valid() {
		return domain.NewValidationError("purpose", "purpose must be one of avatar, product-image, portfolio")
	}

	assets, err := h.service.ListAssets(c.Request().Context(), claims.AccountID, purpose)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assets)
}
