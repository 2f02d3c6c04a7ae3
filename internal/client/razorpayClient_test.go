package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderSendsIntentRequest(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotBody createOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(&GatewayOrder{
			ID:       "order_rzp123",
			Amount:   gotBody.Amount,
			Currency: gotBody.Currency,
			Receipt:  gotBody.Receipt,
			Status:   "created",
		})
	}))
	defer srv.Close()

	c := NewRazorpayClient(&config.Razorpay{
		BaseApiURL: srv.URL,
		KeyID:      "key_test",
		KeySecret:  "secret_test",
	})

	order, err := c.CreateOrder(context.Background(), 106000, "INR", "order-storage-id")
	require.NoError(t, err)

	assert.Equal(t, "/v1/orders", gotPath)
	assert.Equal(t, "key_test", gotUser)
	assert.Equal(t, "secret_test", gotPass)
	assert.Equal(t, int64(106000), gotBody.Amount)
	assert.Equal(t, "INR", gotBody.Currency)
	assert.Equal(t, "order-storage-id", gotBody.Receipt)
	assert.Equal(t, "order_rzp123", order.ID)
}

func TestFetchOrderParsesStatusAndReceipt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders/order_rzp123", r.URL.Path)
		json.NewEncoder(w).Encode(&GatewayOrder{
			ID:      "order_rzp123",
			Receipt: "order-storage-id",
			Status:  "paid",
		})
	}))
	defer srv.Close()

	c := NewRazorpayClient(&config.Razorpay{BaseApiURL: srv.URL})

	order, err := c.FetchOrder(context.Background(), "order_rzp123")
	require.NoError(t, err)
	assert.Equal(t, "paid", order.Status)
	assert.Equal(t, "order-storage-id", order.Receipt)
}

func TestGatewayErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"BAD_REQUEST"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewRazorpayClient(&config.Razorpay{BaseApiURL: srv.URL})

	_, err := c.FetchOrder(context.Background(), "order_rzp123")
	assert.ErrorContains(t, err, "gateway returned 400")
}
