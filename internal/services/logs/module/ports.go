package module

import "immersion/internal/services/logs/domain"

// Ports holds the ports exposed by the logs module
type Ports struct {
	Store domain.StorePort
}
