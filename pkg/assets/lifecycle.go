package assets

import "fmt"

// Status is the lifecycle status of an asset record.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPendingQC Status = "Pending QC Review"
	StatusApproved  Status = "QC Approved"
	StatusRejected  Status = "QC Rejected"
	StatusArchived  Status = "Archived"
)

// TransitionRule defines an allowed lifecycle transition.
type TransitionRule struct {
	From Status
	To   Status
}

// DefaultTransitions defines the allowed lifecycle status transitions.
// Archiving happens outside the submission core, so every non-archived
// status may be archived; nothing leaves Archived.
var DefaultTransitions = []TransitionRule{
	{From: StatusDraft, To: StatusPendingQC},
	{From: StatusPendingQC, To: StatusApproved},
	{From: StatusPendingQC, To: StatusRejected},
	{From: StatusRejected, To: StatusDraft},
	{From: StatusDraft, To: StatusArchived},
	{From: StatusApproved, To: StatusArchived},
	{From: StatusRejected, To: StatusArchived},
}

// DisallowedTransitions are explicitly forbidden (return specific error).
var DisallowedTransitions = map[Status][]Status{
	StatusArchived: {StatusDraft, StatusPendingQC, StatusApproved, StatusRejected},
	StatusDraft:    {StatusApproved, StatusRejected},
}

// LifecycleMachine validates asset status transitions.
type LifecycleMachine struct {
	transitions []TransitionRule
	disallowed  map[Status][]Status
}

// NewLifecycleMachine creates a machine with default rules.
func NewLifecycleMachine() *LifecycleMachine {
	return &LifecycleMachine{
		transitions: DefaultTransitions,
		disallowed:  DisallowedTransitions,
	}
}

// ValidateTransition checks if a transition from->to is allowed.
// Returns nil if allowed, an error with a machine-readable code if not.
func (m *LifecycleMachine) ValidateTransition(from, to Status) error {
	// Same status is a no-op, allow it.
	if from == to {
		return nil
	}

	if disallowed, ok := m.disallowed[from]; ok {
		for _, d := range disallowed {
			if d == to {
				return &TransitionError{
					Code:    "STATUS_TRANSITION_DENIED",
					From:    from,
					To:      to,
					Message: fmt.Sprintf("transition from %s to %s is not allowed", from, to),
				}
			}
		}
	}

	for _, t := range m.transitions {
		if t.From == from && t.To == to {
			return nil
		}
	}

	return &TransitionError{
		Code:    "STATUS_INVALID_TRANSITION",
		From:    from,
		To:      to,
		Message: fmt.Sprintf("no transition defined from %s to %s", from, to),
	}
}

// AllowedTransitions returns all valid target statuses from the given status.
func (m *LifecycleMachine) AllowedTransitions(from Status) []Status {
	var allowed []Status
	for _, t := range m.transitions {
		if t.From == from {
			allowed = append(allowed, t.To)
		}
	}
	return allowed
}

// Approve moves a pending asset to QC Approved and activates linking.
// Linking stays inactive for every other status.
func (m *LifecycleMachine) Approve(rec *AssetRecord) error {
	if err := m.ValidateTransition(rec.Status, StatusApproved); err != nil {
		return err
	}
	rec.Status = StatusApproved
	rec.LinkingActive = true
	return nil
}

// Reject moves a pending asset to QC Rejected. The asset returns to Draft
// implicitly when it is re-edited.
func (m *LifecycleMachine) Reject(rec *AssetRecord) error {
	if err := m.ValidateTransition(rec.Status, StatusRejected); err != nil {
		return err
	}
	rec.Status = StatusRejected
	rec.LinkingActive = false
	return nil
}

// TransitionError is a structured error for invalid status transitions.
type TransitionError struct {
	Code    string `json:"code"`
	From    Status `json:"from"`
	To      Status `json:"to"`
	Message string `json:"message"`
}

func (e *TransitionError) Error() string {
	return e.Message
}
