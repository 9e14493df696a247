package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkwise/parking-engine/api"
	"github.com/parkwise/parking-engine/parking"
	"github.com/parkwise/parking-engine/parking/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	svc := parking.NewService(store.NewMemory(), parking.WithLogger(log))
	router := api.NewRouter(api.NewHandler(svc, log), []string{"*"})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createAccount(t *testing.T, ts *httptest.Server, path, username string) api.UserDTO {
	t.Helper()
	resp := postJSON(t, ts, path, api.CreateUserRequest{
		Username: username,
		Password: "s3cret",
		Email:    username + "@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[api.UserDTO](t, resp)
}

// =============================================================================
// HANDLER TESTS
// =============================================================================

func TestCreateUser_HTTP(t *testing.T) {
	ts := newTestServer(t)

	user := createAccount(t, ts, "/api/users", "alice")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "user", user.Role)
	assert.Equal(t, "0", user.Balance)

	resp := getJSON(t, ts, "/api/users/"+user.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[api.UserDTO](t, resp)
	assert.Equal(t, "alice", got.Username)
}

func TestCreateUser_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/users", api.CreateUserRequest{Username: "alice"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateAdmin_HTTP(t *testing.T) {
	ts := newTestServer(t)

	admin := createAccount(t, ts, "/api/admins", "root")
	assert.Equal(t, "admin", admin.Role)

	resp := getJSON(t, ts, "/api/admins")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	admins := decode[[]api.UserDTO](t, resp)
	require.Len(t, admins, 1)
	assert.Equal(t, admin.ID, admins[0].ID)
}

func TestListUsers_EmptyIs404(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{
		"/api/users", "/api/admins", "/api/spots", "/api/spots/available",
		"/api/reservations", "/api/payments", "/api/transactions",
	} {
		resp := getJSON(t, ts, path)
		resp.Body.Close()
		assert.Equalf(t, http.StatusNotFound, resp.StatusCode, "empty %s should be 404", path)
	}
}

func TestDepositAndWithdraw_HTTP(t *testing.T) {
	ts := newTestServer(t)
	user := createAccount(t, ts, "/api/users", "alice")

	resp := postJSON(t, ts, "/api/users/"+user.ID+"/deposits", api.FundsRequest{Amount: "1000"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := decode[api.MessageResponse](t, resp)
	assert.Equal(t, "Deposit successful", msg.Message)

	resp = postJSON(t, ts, "/api/users/"+user.ID+"/withdrawals", api.FundsRequest{Amount: "1000"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg = decode[api.MessageResponse](t, resp)
	assert.Equal(t, "Withdrawal successful. Fee applied: 10", msg.Message)

	resp = getJSON(t, ts, "/api/users/"+user.ID)
	got := decode[api.UserDTO](t, resp)
	assert.Equal(t, "10", got.Balance)

	resp = getJSON(t, ts, "/api/users/"+user.ID+"/transactions")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	txs := decode[[]api.TransactionDTO](t, resp)
	require.Len(t, txs, 2)
	assert.Equal(t, "0", txs[0].Fee)
	assert.Equal(t, "10", txs[1].Fee)
}

func TestWithdraw_InsufficientIs409(t *testing.T) {
	ts := newTestServer(t)
	user := createAccount(t, ts, "/api/users", "alice")

	resp := postJSON(t, ts, "/api/users/"+user.ID+"/withdrawals", api.FundsRequest{Amount: "50"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp := decode[api.ErrorResponse](t, resp)
	assert.Equal(t, "Insufficient balance", errResp.Error)
	assert.Equal(t, "insufficient_balance", errResp.Code)
}

func TestDeposit_UnknownUserIs404(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/users/ghost/deposits", api.FundsRequest{Amount: "10"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReservationAndPayment_HTTP(t *testing.T) {
	ts := newTestServer(t)

	admin := createAccount(t, ts, "/api/admins", "root")
	user := createAccount(t, ts, "/api/users", "alice")

	resp := postJSON(t, ts, "/api/spots", api.CreateSpotRequest{
		AdminID: admin.ID, Location: "Lot 4", PricePerHour: "10", NumberOfSpots: 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	spot := decode[api.SpotDTO](t, resp)
	assert.Equal(t, "available", spot.Status)

	resp = postJSON(t, ts, "/api/reservations", api.CreateReservationRequest{
		UserID: user.ID, SpotID: spot.ID, DurationHours: 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	reservation := decode[api.ReservationDTO](t, resp)
	assert.Equal(t, "20", reservation.AmountPayable)
	assert.Equal(t, "reserved", reservation.Status)

	resp = postJSON(t, ts, "/api/users/"+user.ID+"/deposits", api.FundsRequest{Amount: "30"})
	resp.Body.Close()

	// Mismatched amount is rejected before any balance movement.
	resp = postJSON(t, ts, "/api/payments", api.CreatePaymentRequest{ReservationID: reservation.ID, Amount: "15"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[api.ErrorResponse](t, resp)
	assert.Equal(t, "Amount does not match the amount payable", errResp.Error)

	resp = postJSON(t, ts, "/api/payments", api.CreatePaymentRequest{ReservationID: reservation.ID, Amount: "20"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	payment := decode[api.PaymentDTO](t, resp)
	assert.Equal(t, "completed", payment.Status)

	resp = getJSON(t, ts, "/api/users/"+user.ID)
	got := decode[api.UserDTO](t, resp)
	assert.Equal(t, "10", got.Balance)
}

func TestSpotSearch_HTTP(t *testing.T) {
	ts := newTestServer(t)
	admin := createAccount(t, ts, "/api/admins", "root")

	resp := postJSON(t, ts, "/api/spots", api.CreateSpotRequest{
		AdminID: admin.ID, Location: "Lot 9", PricePerHour: "7.5", NumberOfSpots: 2,
	})
	resp.Body.Close()

	resp = getJSON(t, ts, "/api/spots/search?location=Lot+9")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	spot := decode[api.SpotDTO](t, resp)
	assert.Equal(t, "Lot 9", spot.Location)
	assert.Equal(t, "7.5", spot.PricePerHour)

	resp = getJSON(t, ts, "/api/spots/search?location=Nowhere")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = getJSON(t, ts, "/api/spots/search")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChangeRole_HTTP(t *testing.T) {
	ts := newTestServer(t)
	user := createAccount(t, ts, "/api/users", "alice")

	resp := postJSON(t, ts, "/api/users/"+user.ID+"/role", api.ChangeRoleRequest{Role: "admin"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[api.UserDTO](t, resp)
	assert.Equal(t, "admin", got.Role)

	resp = postJSON(t, ts, "/api/users/"+user.ID+"/role", api.ChangeRoleRequest{Role: "superuser"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTransactionByTimestamp_HTTP(t *testing.T) {
	ts := newTestServer(t)
	user := createAccount(t, ts, "/api/users", "alice")

	resp := postJSON(t, ts, "/api/users/"+user.ID+"/deposits", api.FundsRequest{Amount: "10"})
	resp.Body.Close()

	resp = getJSON(t, ts, "/api/transactions")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	txs := decode[[]api.TransactionDTO](t, resp)
	require.Len(t, txs, 1)

	resp = getJSON(t, ts, fmt.Sprintf("/api/transactions/%d", txs[0].Timestamp))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tx := decode[api.TransactionDTO](t, resp)
	assert.Equal(t, txs[0].ID, tx.ID)

	resp = getJSON(t, ts, "/api/transactions/notanumber")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPasswordNeverSerialized(t *testing.T) {
	ts := newTestServer(t)
	user := createAccount(t, ts, "/api/users", "alice")

	resp := getJSON(t, ts, "/api/users/"+user.ID)
	defer resp.Body.Close()
	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "password_hash")
}
