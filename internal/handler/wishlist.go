package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/util"
)

// WishlistHandler covers planned purchases.
type WishlistHandler struct {
	Store store.WishlistStore
}

func NewWishlistHandler(s store.WishlistStore) *WishlistHandler {
	return &WishlistHandler{Store: s}
}

type wishlistReq struct {
	Name          string  `json:"name" binding:"required,max=128"`
	Category      string  `json:"category" binding:"required,max=64"`
	EstimatePrice float64 `json:"estimate_price"`
	FinalPrice    float64 `json:"final_price"`
	PurchaseDate  string  `json:"purchase_date"`
	URLLink       string  `json:"url_link" binding:"max=512"`
	URLPicture    string  `json:"url_picture" binding:"max=512"`
	Status        string  `json:"status" binding:"omitempty,oneof=not_purchased purchased"`
}

func (r *wishlistReq) toModel() (*models.WishlistItem, string) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, "Name is required"
	}
	if r.EstimatePrice < 0 || r.FinalPrice < 0 {
		return nil, "Price cannot be negative"
	}
	status := r.Status
	if status == "" {
		status = "not_purchased"
	}
	// A purchased item carries its purchase date; an unpurchased one
	// never does.
	if status == "purchased" {
		if r.PurchaseDate == "" {
			return nil, "Purchase date is required for purchased items"
		}
		if err := util.ValidateDate(r.PurchaseDate); err != nil {
			return nil, err.Error()
		}
	} else {
		r.PurchaseDate = ""
		r.FinalPrice = 0
	}
	return &models.WishlistItem{
		Name:          strings.TrimSpace(r.Name),
		Category:      r.Category,
		EstimatePrice: util.Round2(r.EstimatePrice),
		FinalPrice:    util.Round2(r.FinalPrice),
		PurchaseDate:  r.PurchaseDate,
		URLLink:       r.URLLink,
		URLPicture:    r.URLPicture,
		Status:        status,
	}, ""
}

// List returns items, optionally filtered by ?status=purchased.
func (h *WishlistHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status != "purchased" && status != "not_purchased" {
		status = ""
	}

	items, err := h.Store.List(c.Request.Context(), status)
	if err != nil {
		storeErr(c, err, "Failed to load wishlist")
		return
	}
	util.Success(c, util.Response{"wishlist": items})
}

func (h *WishlistHandler) Create(c *gin.Context) {
	var req wishlistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	w, msg := req.toModel()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	if err := h.Store.Create(c.Request.Context(), w); err != nil {
		storeErr(c, err, "Failed to save wishlist item")
		return
	}
	util.Success(c, util.Response{"item": w})
}

func (h *WishlistHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req wishlistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	w, msg := req.toModel()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}
	w.ID = id

	if err := h.Store.Update(c.Request.Context(), w); err != nil {
		storeErr(c, err, "Failed to save wishlist item")
		return
	}
	util.Success(c, util.Response{"item": w})
}

func (h *WishlistHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		storeErr(c, err, "Failed to delete wishlist item")
		return
	}
	util.Success(c, util.Response{"message": "Wishlist item deleted"})
}
