// cart_test.go

package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCartAddUpdateRemove(t *testing.T) {
	s := newTestServer(t)
	r := s.router()
	admin := createTestAdmin(t, s, "P@ssw0rd")
	user := createTestUser(t, s, "P@ssw0rd")
	token := userToken(t, s, user)
	cat := createTestCategory(t, s, admin)
	product := createTestProduct(t, s, admin, cat, "10.00", 5)

	// Add.
	w := doRequest(t, r, "POST", "/v1/user/cart", token, map[string]any{
		"product_id": product.ProductID, "qty": 2,
	})
	require.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Status)
	assert.Equal(t, "Product added to cart", resp.Message)

	// Update the same line.
	w = doRequest(t, r, "PUT", "/v1/user/cart", token, map[string]any{
		"product_id": product.ProductID, "qty": 4,
	})
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Product quantity updated in cart.", decodeEnvelope(t, w).Message)

	item, err := getCartItemByFilter(s.db, map[string]any{"user_id": user.UserID, "product_id": product.ProductID})
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 4, item.Qty)

	// Qty 0 on an existing line removes it.
	w = doRequest(t, r, "PUT", "/v1/user/cart", token, map[string]any{
		"product_id": product.ProductID, "qty": 0,
	})
	require.Equal(t, 200, w.Code)
	resp = decodeEnvelope(t, w)
	assert.False(t, resp.Status)
	assert.Equal(t, "Product removed from cart.", resp.Message)

	// Qty 0 again: the line is gone, so there is nothing to remove.
	w = doRequest(t, r, "PUT", "/v1/user/cart", token, map[string]any{
		"product_id": product.ProductID, "qty": 0,
	})
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "Quantity must be atleast 1", decodeEnvelope(t, w).Message)
}

func TestUpsertCartRejectsOverStock(t *testing.T) {
	s := newTestServer(t)
	r := s.router()
	admin := createTestAdmin(t, s, "P@ssw0rd")
	user := createTestUser(t, s, "P@ssw0rd")
	token := userToken(t, s, user)
	cat := createTestCategory(t, s, admin)
	product := createTestProduct(t, s, admin, cat, "10.00", 3)

	w := doRequest(t, r, "POST", "/v1/user/cart", token, map[string]any{
		"product_id": product.ProductID, "qty": 4,
	})
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "Available Stock is only 3", decodeEnvelope(t, w).Message)

	// Nothing was written.
	item, err := getCartItemByFilter(s.db, map[string]any{"user_id": user.UserID})
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestUpsertCartUnknownProduct(t *testing.T) {
	s := newTestServer(t)
	r := s.router()
	user := createTestUser(t, s, "P@ssw0rd")
	token := userToken(t, s, user)

	w := doRequest(t, r, "POST", "/v1/user/cart", token, map[string]any{
		"product_id": uuid.NewString(), "qty": 1,
	})
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "Product not found", decodeEnvelope(t, w).Message)
}

// A line whose product has since been disabled is dropped on the next touch.
func TestUpsertCartDropsStaleLine(t *testing.T) {
	s := newTestServer(t)
	r := s.router()
	admin := createTestAdmin(t, s, "P@ssw0rd")
	user := createTestUser(t, s, "P@ssw0rd")
	token := userToken(t, s, user)
	cat := createTestCategory(t, s, admin)
	product := createTestProduct(t, s, admin, cat, "10.00", 5)
	addCartItem(t, s, user, product, 2)

	require.NoError(t, updateProduct(s.db, product.ProductID, map[string]any{"is_deleted": true}))

	w := doRequest(t, r, "PUT", "/v1/user/cart", token, map[string]any{
		"product_id": product.ProductID, "qty": 3,
	})
	require.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Status)
	assert.Equal(t, "Product not available. Removed from cart.", resp.Message)

	item, err := getCartItemByFilter(s.db, map[string]any{"user_id": user.UserID})
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestGetCartItemsTotal(t *testing.T) {
	s := newTestServer(t)
	r := s.router()
	admin := createTestAdmin(t, s, "P@ssw0rd")
	user := createTestUser(t, s, "P@ssw0rd")
	token := userToken(t, s, user)
	cat := createTestCategory(t, s, admin)
	a := createTestProduct(t, s, admin, cat, "10.00", 10)
	b := createTestProduct(t, s, admin, cat, "5.50", 10)
	addCartItem(t, s, user, a, 2)
	addCartItem(t, s, user, b, 3)

	w := doRequest(t, r, "GET", "/v1/user/cart", token, nil)
	require.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "36.50", data["total"])
	cartLines, ok := data["cart"].([]any)
	require.True(t, ok)
	assert.Len(t, cartLines, 2)
}

func TestGetCartItemScopedToOwner(t *testing.T) {
	s := newTestServer(t)
	r := s.router()
	admin := createTestAdmin(t, s, "P@ssw0rd")
	owner := createTestUser(t, s, "P@ssw0rd")
	other := createTestUser(t, s, "P@ssw0rd")
	cat := createTestCategory(t, s, admin)
	product := createTestProduct(t, s, admin, cat, "10.00", 10)
	item := addCartItem(t, s, owner, product, 1)

	w := doRequest(t, r, "GET", "/v1/user/cart/"+item.CartItemID, userToken(t, s, other), nil)
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "Cart Item not found", decodeEnvelope(t, w).Message)

	w = doRequest(t, r, "GET", "/v1/user/cart/"+item.CartItemID, userToken(t, s, owner), nil)
	assert.Equal(t, 200, w.Code)
}

func TestDeleteFromCart(t *testing.T) {
	s := newTestServer(t)
	r := s.router()
	admin := createTestAdmin(t, s, "P@ssw0rd")
	user := createTestUser(t, s, "P@ssw0rd")
	token := userToken(t, s, user)
	cat := createTestCategory(t, s, admin)
	product := createTestProduct(t, s, admin, cat, "10.00", 10)
	item := addCartItem(t, s, user, product, 1)

	w := doRequest(t, r, "DELETE", "/v1/user/cart/"+item.CartItemID, token, nil)
	require.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Status)
	assert.Equal(t, "Product removed from cart.", resp.Message)

	w = doRequest(t, r, "DELETE", "/v1/user/cart/"+item.CartItemID, token, nil)
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "Cart Item not found", decodeEnvelope(t, w).Message)
}
