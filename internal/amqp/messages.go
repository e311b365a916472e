package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"gocardlessosm/internal/core"
)

// PayoutProcessedMessage announces a processed payout to downstream consumers.
// It carries the headline figures only; the full report stays with the sinks
// that archive it.
type PayoutProcessedMessage struct {
	ID           string     `json:"id"`
	Filename     string     `json:"filename"`
	Date         core.Date  `json:"date"`
	GrossAmount  core.Money `json:"gross_amount"`
	NetAmount    core.Money `json:"net_amount"`
	Fees         core.Money `json:"fees"`
	Transactions int        `json:"transactions"`
	Unclassified int        `json:"unclassified"`
	Timestamp    time.Time  `json:"timestamp"`
}

// NewPayoutProcessedMessage builds a message for report with a fresh ID.
func NewPayoutProcessedMessage(filename string, r core.Report) *PayoutProcessedMessage {
	return &PayoutProcessedMessage{
		ID:           uuid.NewString(),
		Filename:     filename,
		Date:         r.Date,
		GrossAmount:  r.GrossAmount,
		NetAmount:    r.NetAmount,
		Fees:         r.Fees,
		Transactions: r.Transactions,
		Unclassified: r.Unclassified,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *PayoutProcessedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PayoutProcessedMessageFromJSON decodes a message body.
func PayoutProcessedMessageFromJSON(data []byte) (*PayoutProcessedMessage, error) {
	var msg PayoutProcessedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
