package models

// PushTaskPayload is the queued payload for delivering one persisted
// notification as a push message.
type PushTaskPayload struct {
	NotificationID string           `json:"notificationId"`
	RecipientID    string           `json:"recipientId"`
	RecipientRole  RecipientRole    `json:"recipientRole"`
	Message        string           `json:"message"`
	Type           NotificationType `json:"type"`
	URL            string           `json:"url,omitempty"`
}

// Email template identifiers handled by the dispatch worker.
const (
	EmailBookingConfirmation = "booking_confirmation"
	EmailBookingCompletion   = "booking_completion"
)

// EmailTaskPayload is the queued payload for one outbound booking email.
type EmailTaskPayload struct {
	Template          string `json:"template"`
	To                string `json:"to"`
	Username          string `json:"username"`
	BookingID         string `json:"bookingId"`
	ServiceName       string `json:"serviceName"`
	FormattedDateTime string `json:"formattedDateTime,omitempty"`
	FormattedPrice    string `json:"formattedPrice,omitempty"`
	ProviderName      string `json:"providerName,omitempty"`
	CompletionTime    string `json:"completionTime,omitempty"`
}
