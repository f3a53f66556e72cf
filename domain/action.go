package domain

import "time"

// ActionKind classifies a mutating operation for the audit trail.
type ActionKind string

const (
	ActionGracefulTerminate ActionKind = "graceful-terminate"
	ActionForceTerminate    ActionKind = "force-terminate"
	ActionContainerStop     ActionKind = "container-stop"
	ActionContainerKill     ActionKind = "container-kill"
	ActionContainerRemove   ActionKind = "container-remove"
	ActionContainerRestart  ActionKind = "container-restart"
)

// ContainerAction is a command against a container, executed by the backend
// through the container engine.
type ContainerAction string

const (
	ContainerStop    ContainerAction = "stop"
	ContainerKill    ContainerAction = "kill"
	ContainerRemove  ContainerAction = "remove"
	ContainerRestart ContainerAction = "restart"
)

// Valid reports whether the action is one the backend understands.
func (a ContainerAction) Valid() bool {
	switch a {
	case ContainerStop, ContainerKill, ContainerRemove, ContainerRestart:
		return true
	}
	return false
}

// Kind maps a container action to its audit classification.
func (a ContainerAction) Kind() ActionKind {
	switch a {
	case ContainerKill:
		return ActionContainerKill
	case ContainerRemove:
		return ActionContainerRemove
	case ContainerRestart:
		return ActionContainerRestart
	default:
		return ActionContainerStop
	}
}

// ActionResult is the structured outcome of a mutating operation. The
// action mediator never raises past its boundary: callers always receive a
// result, even when the remote call failed or was rejected pre-flight.
type ActionResult struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	RequiredElevation bool   `json:"requiredElevation"`
}

// AuditEntry records one mutating action attempt. Entries are immutable
// once created and are appended at the head of the audit log regardless of
// outcome.
type AuditEntry struct {
	ID            string     `json:"id"`
	Timestamp     time.Time  `json:"timestamp"`
	ActionKind    ActionKind `json:"actionKind"`
	TargetName    string     `json:"targetName"`
	PID           int32      `json:"pid"`
	Port          uint16     `json:"port,omitempty"`
	Succeeded     bool       `json:"succeeded"`
	ResultMessage string     `json:"resultMessage"`
}
