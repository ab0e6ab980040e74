/**
 * @description
 * This file contains the payload repair and normalization logic for incoming
 * webhooks. External parties occasionally paste payloads through tools that
 * substitute typographic ("smart") quotes for straight ones, which breaks
 * strict JSON parsing, so the raw body is repaired before decoding.
 *
 * Normalization extracts the known fields for each canonical event shape and
 * silently drops everything else.
 */
package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/transfa/card-webhook-service/internal/domain"
)

// smartQuoteReplacer maps the four typographic quote code points
// (U+201C, U+201D, U+2018, U+2019) to their ASCII counterparts.
var smartQuoteReplacer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

// repairAndParse decodes a raw webhook body into a generic JSON object,
// repairing smart quotes first. Bodies that are not valid UTF-8 or still do
// not parse after repair are rejected as invalid payloads.
func repairAndParse(body []byte) (map[string]any, error) {
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid UTF-8", domain.ErrInvalidPayload)
	}

	repaired := smartQuoteReplacer.Replace(string(body))

	var data map[string]any
	if err := json.Unmarshal([]byte(repaired), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return data, nil
}

// stringField returns the named field when it is present as a non-empty
// string; any other type counts as absent.
func stringField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// normalizeNewCard extracts the canonical new-card fields from a parsed bank
// payload. All four required fields must be present and non-empty; the error
// names every missing field, not just the first.
func normalizeNewCard(data map[string]any) (domain.NewCardEvent, error) {
	event := domain.NewCardEvent{
		CardID:        stringField(data, "cardId"),
		CustomerID:    stringField(data, "customerId"),
		CustomerName:  stringField(data, "customerName"),
		MobileNumber:  stringField(data, "mobileNumber"),
		PANMasked:     stringField(data, "panMasked"),
		ApplicationID: stringField(data, "applicationId"),
		Priority:      stringField(data, "priority"),
		Address:       stringField(data, "address"),
	}
	if event.Priority == "" {
		event.Priority = domain.PriorityStandard
	}

	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"cardId", event.CardID},
		{"customerId", event.CustomerID},
		{"customerName", event.CustomerName},
		{"mobileNumber", event.MobileNumber},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.NewCardEvent{}, fmt.Errorf("%w: %s", domain.ErrMissingRequiredField, strings.Join(missing, ", "))
	}

	return event, nil
}

// normalizeStatusUpdate extracts the canonical status-update fields from a
// parsed payload. Every field is optional, so this never fails; fields absent
// from the input stay absent in the event.
func normalizeStatusUpdate(data map[string]any) domain.StatusUpdateEvent {
	return domain.StatusUpdateEvent{
		Status:        stringField(data, "status"),
		Source:        stringField(data, "source"),
		Location:      stringField(data, "location"),
		OperatorID:    stringField(data, "operatorId"),
		BatchID:       stringField(data, "batchId"),
		Message:       stringField(data, "message"),
		TrackingID:    stringField(data, "trackingId"),
		FailureReason: stringField(data, "failureReason"),
	}
}

// resolveCardID finds the card identifier a status update should be applied
// to. The manufacturer and logistics parties key some events by application
// ID instead of card ID, so those routes allow the fallback.
func resolveCardID(data map[string]any, allowApplicationID bool) string {
	if id := stringField(data, "cardId"); id != "" {
		return id
	}
	if allowApplicationID {
		return stringField(data, "applicationId")
	}
	return ""
}
