package storeapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/webserver"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/pkg/common"
)

func registerWishlistRoutes(priv *echo.Group) {
	priv.GET("/wishlist", getWishlist)
	priv.POST("/wishlist", addWishlistItem)
	priv.DELETE("/wishlist/:productId", removeWishlistItem)
}

func getWishlist(c echo.Context) error {
	var items []domain.WishlistItem
	err := GetDB(c).Where("customer_id = ?", webserver.CurrentCustomer(c).ID).
		Order("created_at DESC").Find(&items).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query wishlist", nil)
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductId)
	}
	var products []domain.Product
	if len(ids) > 0 {
		if err := GetDB(c).Where("id IN ?", ids).Find(&products).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
		}
	}
	return ok(c, map[string]interface{}{"items": items, "products": products})
}

type wishlistPayload struct {
	ProductId int64 `json:"product_id,string"`
}

func addWishlistItem(c echo.Context) error {
	var payload wishlistPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse payload", nil)
	}

	var count int64
	GetDB(c).Model(&domain.Product{}).
		Where("id = ? AND status = ?", payload.ProductId, common.ENABLED).Count(&count)
	if count == 0 {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}

	cid := webserver.CurrentCustomer(c).ID
	GetDB(c).Model(&domain.WishlistItem{}).
		Where("customer_id = ? AND product_id = ?", cid, payload.ProductId).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "ALREADY_WISHLISTED", "Product is already on the wishlist", nil)
	}

	item := domain.WishlistItem{
		ID:         common.UUIDint64(),
		CustomerId: cid,
		ProductId:  payload.ProductId,
		CreatedAt:  time.Now(),
	}
	if err := GetDB(c).Create(&item).Error; err != nil {
		// The unique index backstops a racing duplicate insert; anything
		// else is a real store failure.
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "SQLSTATE 23505") {
			return fail(c, http.StatusConflict, "ALREADY_WISHLISTED", "Product is already on the wishlist", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add wishlist item", nil)
	}
	return ok(c, item)
}

func removeWishlistItem(c echo.Context) error {
	pid, err := parseIDParam(c, "productId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var item domain.WishlistItem
	err = GetDB(c).Where("customer_id = ? AND product_id = ?",
		webserver.CurrentCustomer(c).ID, pid).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_WISHLISTED", "Product is not on the wishlist", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query wishlist", nil)
	}

	if err := GetDB(c).Delete(&item).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove wishlist item", nil)
	}
	return ok(c, map[string]interface{}{"success": true})
}
