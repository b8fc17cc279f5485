package interfaces

import "fix-gateway/src/models"

// -----------------------------------------------------------------------------

// IPublisher defines the interface for publishing normalized events
type IPublisher interface {
	// OnEvent processes and publishes one normalized event
	OnEvent(event *models.MEvent)

	// Connect establishes the publisher's transport
	Connect() error

	// Disconnect closes the publisher's transport
	Disconnect() error

	// IsConnected returns the current connection status
	IsConnected() bool
}
