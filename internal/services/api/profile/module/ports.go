package module

import "immersion/internal/services/api/profile/domain"

// Ports are what the profile module lends to other modules
type Ports struct {
	Zones    domain.ZonePort
	Profiles domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
