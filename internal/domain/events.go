/**
 * @description
 * This file defines the canonical event shapes forwarded to the downstream
 * cards service. Incoming webhook payloads from the bank, the card
 * manufacturer and the logistics provider are normalized into one of these
 * two structs before being sent on.
 *
 * @notes
 * - Both structs are transient value objects: they live for the duration of
 *   a single request and are never persisted.
 * - Optional fields carry `omitempty` so that fields absent from the
 *   incoming payload stay absent in the forwarded JSON.
 */
package domain

// PriorityStandard is the priority assigned to new card events when the
// bank's payload does not specify one.
const PriorityStandard = "STANDARD"

// NewCardEvent is the canonical shape for a new card application pushed by
// the bank. The first four fields are required; normalization rejects the
// event when any of them is missing or empty.
type NewCardEvent struct {
	CardID        string `json:"cardId"`
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	MobileNumber  string `json:"mobileNumber"`
	PANMasked     string `json:"panMasked,omitempty"`
	ApplicationID string `json:"applicationId,omitempty"`
	Priority      string `json:"priority"`
	Address       string `json:"address,omitempty"`
}

// StatusUpdateEvent is the canonical shape for a card status change reported
// by any of the three sources. Every field is optional.
type StatusUpdateEvent struct {
	Status        string `json:"status,omitempty"`
	Source        string `json:"source,omitempty"`
	Location      string `json:"location,omitempty"`
	OperatorID    string `json:"operatorId,omitempty"`
	BatchID       string `json:"batchId,omitempty"`
	Message       string `json:"message,omitempty"`
	TrackingID    string `json:"trackingId,omitempty"`
	FailureReason string `json:"failureReason,omitempty"`
}
