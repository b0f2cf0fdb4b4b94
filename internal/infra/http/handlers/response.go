package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/usecase"
)

// Response é o envelope de todas as rotas da API.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

var statusByCode = map[string]int{
	usecase.CodeValidation:           http.StatusBadRequest,
	usecase.CodeMissingField:         http.StatusBadRequest,
	usecase.CodeInvalidVideoURL:      http.StatusBadRequest,
	usecase.CodeBadRequest:           http.StatusBadRequest,
	usecase.CodeNotFound:             http.StatusNotFound,
	usecase.CodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
	usecase.CodePayloadTooLarge:      http.StatusRequestEntityTooLarge,
	usecase.CodeAlreadySubscribed:    http.StatusConflict,
	usecase.CodeUnauthorized:         http.StatusUnauthorized,
	usecase.CodeStorageUnavailable:   http.StatusInternalServerError,
	usecase.CodeStorageWriteFailed:   http.StatusInternalServerError,
	usecase.CodeInternal:             http.StatusInternalServerError,
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: true, Message: msg})
}

// writeError traduz o erro do usecase em status + envelope. Só a mensagem
// vai para o cliente; a causa técnica fica no log.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status, body := errorResponse(log, err)
	writeJSON(w, status, body)
}

func errorResponse(log logrus.FieldLogger, err error) (int, Response) {
	status, ok := statusByCode[usecase.ErrorCode(err)]
	if !ok {
		status = http.StatusInternalServerError
	}

	var te *usecase.TechnicalError
	msg := err.Error()
	switch {
	case errors.As(err, &te):
		msg = te.Message
	case !usecase.IsDomainError(err):
		msg = "Internal server error"
	}

	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	return status, Response{Success: false, Error: msg}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
