// cart.go

package main

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type upsertCartRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// upsertOutcome is a branch that commits: created, updated or removed a line.
type upsertOutcome struct {
	status  bool
	message string
	data    any
}

// upsertCart resolves the new state of the user's cart line for one product.
// Every branch runs inside a single transaction; validation failures roll
// back before anything is written.
func (s *server) upsertCart(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	var req upsertCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid JSON")
		return
	}
	if err := validateUUID("product_id", req.ProductID); err != nil {
		respondError(c, 400, err.Error())
		return
	}
	if err := validateQty(req.Qty); err != nil {
		respondError(c, 400, err.Error())
		return
	}

	var outcome upsertOutcome
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := getProductByFilter(tx, map[string]any{"product_id": req.ProductID, "is_deleted": false})
		if err != nil {
			return err
		}
		item, err := getCartItemByFilter(tx, map[string]any{"user_id": userID, "product_id": req.ProductID})
		if err != nil {
			return err
		}

		if product == nil {
			if item == nil {
				return badRequest("Product not found")
			}
			// Stale line for a product that no longer exists: drop it.
			if err := hardDeleteCartItems(tx, map[string]any{"cart_item_id": item.CartItemID}); err != nil {
				return err
			}
			outcome = upsertOutcome{status: false, message: "Product not available. Removed from cart."}
			return nil
		}

		if req.Qty > product.AvailableStock {
			return badRequest("Available Stock is only " + strconv.Itoa(product.AvailableStock))
		}

		if item != nil {
			if req.Qty <= 0 {
				if err := hardDeleteCartItems(tx, map[string]any{"cart_item_id": item.CartItemID}); err != nil {
					return err
				}
				outcome = upsertOutcome{status: false, message: "Product removed from cart."}
				return nil
			}
			if err := updateCartItem(tx, item.CartItemID, map[string]any{"qty": req.Qty}); err != nil {
				return err
			}
			item.Qty = req.Qty
			outcome = upsertOutcome{status: false, message: "Product quantity updated in cart.", data: item}
			return nil
		}

		if req.Qty <= 0 {
			return badRequest("Quantity must be atleast 1")
		}

		newItem := CartItem{
			CartItemID: uuid.NewString(),
			UserID:     userID,
			ProductID:  req.ProductID,
			Qty:        req.Qty,
		}
		if err := tx.Create(&newItem).Error; err != nil {
			return err
		}
		outcome = upsertOutcome{status: true, message: "Product added to cart", data: newItem}
		return nil
	})
	if err != nil {
		var reqErr *requestError
		if errors.As(err, &reqErr) {
			respondError(c, reqErr.code, reqErr.message)
			return
		}
		s.internalError(c, "Error while creating cart item", err, "user_id", userID)
		return
	}
	respond(c, 200, outcome.status, outcome.message, outcome.data)
}

func (s *server) getCartItem(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	cartItemID := c.Param("cart_item_id")
	if err := validateUUID("Cart Item ID", cartItemID); err != nil {
		respondError(c, 400, "Cart Item ID is invalid")
		return
	}
	item, err := getCartItemByFilter(s.db, map[string]any{"cart_item_id": cartItemID, "user_id": userID})
	if err != nil {
		s.internalError(c, "Error while fetching cart item", err, "user_id", userID)
		return
	}
	if item == nil {
		respondError(c, 400, "Cart Item not found")
		return
	}
	respondOK(c, "Cart Item Found", item)
}

func (s *server) getCartItems(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	lines, err := listCartForUser(s.db, userID)
	if err != nil {
		s.internalError(c, "Error while fetching all cart items", err, "user_id", userID)
		return
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	respondOK(c, "CartItems Fetched Successfully", gin.H{
		"total": total.StringFixed(2),
		"cart":  lines,
	})
}

func (s *server) deleteFromCart(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	cartItemID := c.Param("cart_item_id")
	if err := validateUUID("Cart Item ID", cartItemID); err != nil {
		respondError(c, 400, "Cart Item ID is invalid")
		return
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := getCartItemByFilter(tx, map[string]any{"cart_item_id": cartItemID, "user_id": userID})
		if err != nil {
			return err
		}
		if item == nil {
			return badRequest("Cart Item not found")
		}
		return hardDeleteCartItems(tx, map[string]any{"cart_item_id": cartItemID})
	})
	if err != nil {
		var reqErr *requestError
		if errors.As(err, &reqErr) {
			respondError(c, reqErr.code, reqErr.message)
			return
		}
		s.internalError(c, "Error while deleting cart item", err, "user_id", userID)
		return
	}
	respond(c, 200, false, "Product removed from cart.", nil)
}
