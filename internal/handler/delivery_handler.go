package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/assetd/internal/service"
)

type DeliveryHandler struct {
	delivery *service.DeliveryService
}

func NewDeliveryHandler(delivery *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{delivery: delivery}
}

// Download serves the mutable live representation. HEAD returns headers only
// and never touches the object store; a matching If-None-Match on GET
// short-circuits to 304 before the body fetch.
func (h *DeliveryHandler) Download(c *gin.Context) {
	d, err := h.delivery.Mutable(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	writeCacheHeaders(c, d)
	if c.Request.Method == http.MethodHead {
		headersOnly(c, d)
		return
	}
	if match := c.GetHeader("If-None-Match"); match != "" && etagMatch(match, d.ETag) {
		c.Status(http.StatusNotModified)
		return
	}
	h.serveBody(c, d)
}

// PublicVersion serves a published snapshot under immutable cache headers.
func (h *DeliveryHandler) PublicVersion(c *gin.Context) {
	d, err := h.delivery.Version(c.Request.Context(), c.Param("version_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	writeCacheHeaders(c, d)
	if c.Request.Method == http.MethodHead {
		headersOnly(c, d)
		return
	}
	h.serveBody(c, d)
}

// Private serves token-gated content. No conditional handling: the token is
// the only access control and must be re-validated on every request.
func (h *DeliveryHandler) Private(c *gin.Context) {
	d, err := h.delivery.Private(c.Request.Context(), c.Param("token"))
	if err != nil {
		handleError(c, err)
		return
	}
	writeCacheHeaders(c, d)
	h.serveBody(c, d)
}

func (h *DeliveryHandler) serveBody(c *gin.Context, d *service.Delivery) {
	body, err := h.delivery.Fetch(c.Request.Context(), d)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, d.ContentType, body)
}

func writeCacheHeaders(c *gin.Context, d *service.Delivery) {
	c.Header("Cache-Control", d.CacheControl)
	if d.ETag != "" {
		c.Header("ETag", d.ETag)
	}
	if d.LastModified != "" {
		c.Header("Last-Modified", d.LastModified)
	}
}

func headersOnly(c *gin.Context, d *service.Delivery) {
	if d.ContentType != "" {
		c.Header("Content-Type", d.ContentType)
	}
	if d.SizeBytes > 0 {
		c.Header("Content-Length", strconv.FormatInt(d.SizeBytes, 10))
	}
	c.Status(http.StatusOK)
}
