package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"babilonia.local/gee"
	"babilonia.local/internal/catalog"
)

func NewListHandler(svc *catalog.Service) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		category := ctx.Query("category")

		products, cached, err := svc.List(ctx.Req.Context(), category)
		if err != nil {
			if errors.Is(err, catalog.ErrInvalidCategory) {
				ctx.AbortWithError(http.StatusBadRequest, err.Error())
				return
			}
			ctx.AbortWithError(http.StatusInternalServerError, err.Error())
			return
		}

		resp := gee.H{
			"success":  true,
			"count":    len(products),
			"products": products,
			"cached":   cached,
		}
		if category != "" {
			resp["category"] = category
		}
		ctx.JSON(http.StatusOK, resp)
	}
}

func NewGetHandler(svc *catalog.Service) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		id := ctx.Param("id")

		product, err := svc.Get(ctx.Req.Context(), id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				ctx.AbortWithError(http.StatusNotFound, "product not found")
				return
			}
			ctx.AbortWithError(http.StatusInternalServerError, err.Error())
			return
		}

		ctx.JSON(http.StatusOK, gee.H{
			"success": true,
			"product": product,
		})
	}
}

func NewDeleteByQueryHandler(svc *catalog.Service) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		publicID := ctx.Query("publicId")
		if publicID == "" {
			ctx.AbortWithError(http.StatusBadRequest, "publicId is required")
			return
		}
		deleteProduct(ctx, svc, publicID)
	}
}

// NewDeleteByPathHandler serves the legacy path form DELETE /products/<id>.
func NewDeleteByPathHandler(svc *catalog.Service) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		deleteProduct(ctx, svc, ctx.Param("id"))
	}
}

func deleteProduct(ctx *gee.Context, svc *catalog.Service, publicID string) {
	err := svc.Delete(ctx.Req.Context(), publicID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			ctx.AbortWithError(http.StatusNotFound, "product not found or already deleted")
			return
		}
		ctx.AbortWithError(http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, gee.H{
		"success": true,
		"message": "product deleted",
		"result":  gee.H{"result": "ok"},
	})
}

// maxUploadBytes bounds the multipart form kept in memory.
const maxUploadBytes = 32 << 20

func NewUploadHandler(svc *catalog.Service) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		if err := ctx.Req.ParseMultipartForm(maxUploadBytes); err != nil {
			ctx.AbortWithError(http.StatusBadRequest, "invalid multipart form")
			return
		}

		title := ctx.PostForm("title")
		if title == "" {
			ctx.AbortWithError(http.StatusBadRequest, "title is required")
			return
		}
		price, err := strconv.ParseFloat(ctx.PostForm("price"), 64)
		if err != nil || price < 0 {
			ctx.AbortWithError(http.StatusBadRequest, "price must be a non-negative number")
			return
		}
		category := ctx.PostForm("category")

		file, _, err := ctx.Req.FormFile("image")
		if err != nil {
			ctx.AbortWithError(http.StatusBadRequest, "image file is required")
			return
		}
		defer file.Close()

		product, err := svc.Upload(ctx.Req.Context(), catalog.UploadInput{
			Title:    title,
			Price:    price,
			Category: category,
			Image:    file,
		})
		if err != nil {
			ctx.AbortWithError(http.StatusInternalServerError, err.Error())
			return
		}

		ctx.JSON(http.StatusCreated, gee.H{
			"success": true,
			"product": product,
		})
	}
}

func NewCacheInvalidateHandler(svc *catalog.Service) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		svc.InvalidateCache(ctx.Req.Context())

		ctx.JSON(http.StatusOK, gee.H{
			"success":   true,
			"message":   "cache invalidated",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
