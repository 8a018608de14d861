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

func registerProductRoutes(pub *echo.Group, priv *echo.Group) {
	pub.GET("/products", listProducts)
	pub.GET("/products/:id", getProduct)
	pub.GET("/products/:id/reviews", listReviews)
	priv.POST("/products/:id/reviews", createReview)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Product{}).Where("status = ?", common.ENABLED)
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(flavor) LIKE ?", like, like)
	}
	if flavor := strings.TrimSpace(c.QueryParam("flavor")); flavor != "" {
		db = db.Where("flavor = ?", flavor)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	var rows []domain.Product
	if err := db.Order("name ASC, flavor ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": rows, "total": total, "page": page, "page_size": pageSize,
	})
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ? AND status = ?", id, common.ENABLED).
		First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}
	return ok(c, p)
}

func listReviews(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var rows []domain.ProductReview
	if err := GetDB(c).Where("product_id = ?", id).
		Order("created_at DESC").Limit(100).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query reviews", nil)
	}
	return ok(c, rows)
}

type reviewPayload struct {
	Rating int    `json:"rating"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func createReview(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload reviewPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse review", nil)
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		return fail(c, http.StatusBadRequest, "INVALID_RATING", "Rating must be between 1 and 5", nil)
	}

	var count int64
	GetDB(c).Model(&domain.Product{}).Where("id = ?", id).Count(&count)
	if count == 0 {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}

	review := domain.ProductReview{
		ID:         common.UUIDint64(),
		ProductId:  id,
		CustomerId: webserver.CurrentCustomer(c).ID,
		Rating:     payload.Rating,
		Title:      strings.TrimSpace(payload.Title),
		Body:       strings.TrimSpace(payload.Body),
		CreatedAt:  time.Now(),
	}
	if err := GetDB(c).Create(&review).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create review", nil)
	}
	return ok(c, review)
}
