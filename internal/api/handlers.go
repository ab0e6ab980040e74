/**
 * @description
 * This file contains the HTTP handlers for processing incoming card-lifecycle
 * webhooks. Each handler runs the same linear pipeline: parse and repair the
 * body, log the raw payload, resolve the card identifier where one is
 * required, normalize into the canonical event shape, forward to the cards
 * service, and map the outcome to an HTTP response.
 *
 * Key features:
 * - Single translation point: every relay error is converted to its HTTP
 *   status here and nowhere else.
 * - No retries: a downstream failure is surfaced immediately to the caller.
 *
 * @dependencies
 * - github.com/google/uuid: Request IDs for log correlation.
 * - The service's internal packages for domain models and the cards client.
 */
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/transfa/card-webhook-service/internal/domain"
	"github.com/transfa/card-webhook-service/pkg/cardsclient"
)

// WebhookHandler processes incoming card-lifecycle webhooks.
type WebhookHandler struct {
	cards *cardsclient.Client
}

// NewWebhookHandler creates a new handler for the webhook endpoints.
func NewWebhookHandler(cards *cardsclient.Client) *WebhookHandler {
	return &WebhookHandler{cards: cards}
}

// forwardedResponse is the success body returned to the webhook caller once
// the downstream cards service has accepted the event.
type forwardedResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	CardID          string `json:"cardId,omitempty"`
	ForwardedStatus int    `json:"forwarded_status"`
}

// errorResponse is the error body returned to the webhook caller.
type errorResponse struct {
	Detail string `json:"detail"`
}

// BankNewCard handles new card applications pushed by the bank.
func (h *WebhookHandler) BankNewCard(w http.ResponseWriter, r *http.Request) {
	requestID := requestID(r)

	data, err := h.readPayload(r, requestID, "bank new card")
	if err != nil {
		respondError(w, requestID, err)
		return
	}

	event, err := normalizeNewCard(data)
	if err != nil {
		respondError(w, requestID, err)
		return
	}

	result, err := h.cards.CreateCard(r.Context(), event)
	if err != nil {
		respondError(w, requestID, err)
		return
	}

	respondForwarded(w, requestID, event.CardID, "new card application forwarded", result)
}

// BankCardUpdate handles status updates pushed by the bank for existing
// cards. The bank always keys updates by cardId; there is no fallback.
func (h *WebhookHandler) BankCardUpdate(w http.ResponseWriter, r *http.Request) {
	h.handleStatusUpdate(w, r, "bank card update", false)
}

// ManufacturerUpdate handles production status updates from the card
// manufacturer, keyed by cardId or applicationId.
func (h *WebhookHandler) ManufacturerUpdate(w http.ResponseWriter, r *http.Request) {
	h.handleStatusUpdate(w, r, "manufacturer update", true)
}

// LogisticsUpdate handles delivery status updates from the logistics
// provider, keyed by cardId or applicationId.
func (h *WebhookHandler) LogisticsUpdate(w http.ResponseWriter, r *http.Request) {
	h.handleStatusUpdate(w, r, "logistics update", true)
}

// handleStatusUpdate is the shared pipeline for the three status-update
// routes. They differ only in their log label and whether applicationId may
// stand in for a missing cardId.
func (h *WebhookHandler) handleStatusUpdate(w http.ResponseWriter, r *http.Request, label string, allowApplicationID bool) {
	requestID := requestID(r)

	data, err := h.readPayload(r, requestID, label)
	if err != nil {
		respondError(w, requestID, err)
		return
	}

	cardID := resolveCardID(data, allowApplicationID)
	if cardID == "" {
		if allowApplicationID {
			respondError(w, requestID, fmt.Errorf("%w: payload has no cardId or applicationId", domain.ErrMissingIdentifier))
		} else {
			respondError(w, requestID, fmt.Errorf("%w: payload has no cardId", domain.ErrMissingIdentifier))
		}
		return
	}

	event := normalizeStatusUpdate(data)

	result, err := h.cards.UpdateCardStatus(r.Context(), cardID, event)
	if err != nil {
		respondError(w, requestID, err)
		return
	}

	respondForwarded(w, requestID, cardID, "card status update forwarded", result)
}

// readPayload reads, repairs and parses the request body, logging the raw
// payload the way the external parties sent it.
func (h *WebhookHandler) readPayload(r *http.Request, requestID, label string) (map[string]any, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read request body: %v", domain.ErrInvalidPayload, err)
	}

	log.Printf("[%s] Received %s webhook: %s", requestID, label, string(body))

	return repairAndParse(body)
}

// respondForwarded maps the downstream outcome to the caller's response. Any
// 2xx from the cards service is success; everything else is surfaced as a
// server error embedding the downstream status code.
func respondForwarded(w http.ResponseWriter, requestID, cardID, message string, result *cardsclient.ForwardResult) {
	if !result.Success() {
		log.Printf("[%s] Cards service rejected event with status %d: %s", requestID, result.StatusCode, string(result.Body))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Detail: fmt.Sprintf("Cards service error: %d", result.StatusCode),
		})
		return
	}

	log.Printf("[%s] Forwarded event for card %s, downstream status %d", requestID, cardID, result.StatusCode)
	writeJSON(w, http.StatusOK, forwardedResponse{
		Status:          "success",
		Message:         message,
		CardID:          cardID,
		ForwardedStatus: result.StatusCode,
	})
}

// respondError is the single place where relay errors become HTTP statuses.
func respondError(w http.ResponseWriter, requestID string, err error) {
	status := statusForError(err)
	detail := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, domain.ErrForward) {
		// Do not leak unanticipated internal failures to the caller.
		detail = "internal server error"
	}

	log.Printf("[%s] Webhook rejected with status %d: %v", requestID, status, err)
	writeJSON(w, status, errorResponse{Detail: detail})
}

// statusForError maps each error kind in the relay taxonomy to its HTTP
// status code.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidPayload),
		errors.Is(err, domain.ErrMissingRequiredField),
		errors.Is(err, domain.ErrMissingIdentifier):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// requestID returns the caller-supplied request ID, minting one when the
// header is absent so every log line for a request can be correlated.
func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
