package api

import (
	"encoding/json"
	"net/http"
)

// TransactionResult is the body returned by mutating endpoints.
type TransactionResult struct {
	StatusCode  int    `json:"status_code"`
	Transaction string `json:"transaction"`
}

// ErrorBody is the body returned for every failure.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// OKResponse writes data as JSON with status 200.
func OKResponse(w http.ResponseWriter, data any) {
	JSONResponse(w, http.StatusOK, data)
}

// JSONResponse writes data as JSON with the given status.
func JSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// TransactionResponse reports a successful mutation.
func TransactionResponse(w http.ResponseWriter, status int, transaction string) {
	JSONResponse(w, status, TransactionResult{
		StatusCode:  status,
		Transaction: transaction,
	})
}

// ErrorResponse renders err as {"detail": message} with the status of its kind.
func ErrorResponse(w http.ResponseWriter, err error) {
	apiErr := AsError(err)
	JSONResponse(w, apiErr.Kind.Status(), ErrorBody{Detail: apiErr.Message})
}
