package model

// HealthStatus represents the possible health status values
type HealthStatus string

const (
	StatusUp      HealthStatus = "UP"
	StatusDown    HealthStatus = "DOWN"
	StatusUnknown HealthStatus = "UNKNOWN"
)

// ComponentHealthStatus represents the health check structure of a application component
type ComponentHealthStatus struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthResponse represents the health check response of all application
type HealthResponse struct {
	Status     HealthStatus                     `json:"status"`
	Components map[string]ComponentHealthStatus `json:"components"`
}

// UpStatus builds an UP component, details may be nil
func UpStatus(details map[string]string) ComponentHealthStatus {
	if details == nil {
		details = map[string]string{}
	}
	details["message"] = string(StatusUp)
	return ComponentHealthStatus{Status: StatusUp, Details: details}
}

// DownStatus builds a DOWN component carrying the failure message
func DownStatus(err error) ComponentHealthStatus {
	return ComponentHealthStatus{
		Status:  StatusDown,
		Details: map[string]string{"message": err.Error()},
	}
}

// UnknownStatus builds a component that is not enabled in this deployment
func UnknownStatus(message string) ComponentHealthStatus {
	return ComponentHealthStatus{
		Status:  StatusUnknown,
		Details: map[string]string{"message": message},
	}
}
