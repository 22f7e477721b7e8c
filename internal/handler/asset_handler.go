package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/assetd/internal/pkg/errcode"
	"github.com/xxxsen/assetd/internal/pkg/response"
	"github.com/xxxsen/assetd/internal/service"
)

type AssetHandler struct {
	assets         *service.AssetService
	maxUploadBytes int64
}

type UploadResponse struct {
	ID   string `json:"id"`
	ETag string `json:"etag"`
}

func NewAssetHandler(assets *service.AssetService, maxUploadBytes int64) *AssetHandler {
	return &AssetHandler{assets: assets, maxUploadBytes: maxUploadBytes}
}

func (h *AssetHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalidFile, "file is required")
		return
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalidFile, "file exceeds "+formatUploadLimit(h.maxUploadBytes))
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()
	content, err := io.ReadAll(opened)
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalidFile, "failed to read file")
		return
	}
	asset, err := h.assets.Upload(c.Request.Context(), content, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, UploadResponse{ID: asset.ID, ETag: asset.ETag})
}

func (h *AssetHandler) Publish(c *gin.Context) {
	version, err := h.assets.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"version_id": version.ID})
}

func (h *AssetHandler) GenerateToken(c *gin.Context) {
	accessToken, err := h.assets.IssueToken(c.Request.Context(), c.Param("id"), 0)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      accessToken.Token,
		"expires_at": accessToken.ExpiresAt,
	})
}

func (h *AssetHandler) ListVersions(c *gin.Context) {
	versions, err := h.assets.ListVersions(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, versions)
}

func formatUploadLimit(bytes int64) string {
	const mb = 1024 * 1024
	value := bytes / mb
	if value <= 0 {
		value = 1
	}
	return strconv.FormatInt(value, 10) + "MB"
}
