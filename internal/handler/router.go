package handler

import (
	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/assetd/internal/pkg/errors"
)

type RouterDeps struct {
	Assets   *AssetHandler
	Delivery *DeliveryHandler
}

// gin's tree panics when a static segment (upload, public, private) shares a
// position with the :id wildcard, so the second level under /assets is
// dispatched by hand.
func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	assets := api.Group("/assets")

	assets.POST("/:id", func(c *gin.Context) {
		if c.Param("id") == "upload" {
			deps.Assets.Upload(c)
			return
		}
		handleError(c, appErr.ErrNotFound)
	})

	assets.POST("/:id/:op", func(c *gin.Context) {
		switch c.Param("op") {
		case "publish":
			deps.Assets.Publish(c)
		case "generate-token":
			deps.Assets.GenerateToken(c)
		default:
			handleError(c, appErr.ErrNotFound)
		}
	})

	assets.GET("/:id/:op", func(c *gin.Context) {
		switch {
		case c.Param("id") == "public":
			setParam(c, "version_id", c.Param("op"))
			deps.Delivery.PublicVersion(c)
		case c.Param("id") == "private":
			setParam(c, "token", c.Param("op"))
			deps.Delivery.Private(c)
		case c.Param("op") == "download":
			deps.Delivery.Download(c)
		case c.Param("op") == "versions":
			deps.Assets.ListVersions(c)
		default:
			handleError(c, appErr.ErrNotFound)
		}
	})

	assets.HEAD("/:id/:op", func(c *gin.Context) {
		switch {
		case c.Param("id") == "public":
			setParam(c, "version_id", c.Param("op"))
			deps.Delivery.PublicVersion(c)
		case c.Param("op") == "download":
			deps.Delivery.Download(c)
		default:
			handleError(c, appErr.ErrNotFound)
		}
	})
}

func setParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}
