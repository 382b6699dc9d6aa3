package services

import "fmt"

// WorkflowStatus is the canonical per-step submission status. Values are
// stored as-is in step_submissions.workflow_status.
type WorkflowStatus string

const (
	StatusGuidePending     WorkflowStatus = "guide_pending"
	StatusGuideConfirmed   WorkflowStatus = "guide_confirmed"
	StatusVideoUploaded    WorkflowStatus = "video_uploaded"
	StatusRevisionRequired WorkflowStatus = "revision_required"
	StatusSNSPending       WorkflowStatus = "sns_pending"
	StatusSNSSubmitted     WorkflowStatus = "sns_submitted"
	StatusReviewPending    WorkflowStatus = "review_pending"
	StatusPointsPaid       WorkflowStatus = "points_paid"
	StatusCompleted        WorkflowStatus = "completed"
)

// WorkflowEvent identifies what happened to a step submission.
type WorkflowEvent string

const (
	EventConfirmGuide      WorkflowEvent = "confirm_guide"
	EventUploadVideo       WorkflowEvent = "upload_video"
	EventSubmitSocialProof WorkflowEvent = "submit_social_proof"
	EventRequestRevision   WorkflowEvent = "request_revision"
	EventPayPoints         WorkflowEvent = "pay_points"
)

// Display stages shown on the tracker card.
const (
	StageUpload      = 1
	StageRevision    = 2
	StageSocialProof = 3
	StagePayout      = 4
)

// TransitionContext carries the per-step facts NextStatus needs besides the
// current status itself.
type TransitionContext struct {
	// SocialProofOnly marks steps that collect an SNS link without their
	// own video upload (the final megawari step).
	SocialProofOnly bool
}

// TransitionError is returned when an event is not legal from the current
// status.
type TransitionError struct {
	From  WorkflowStatus
	Event WorkflowEvent
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %s not allowed from status %s", e.Event, e.From)
}

// IsTerminal reports whether the status marks a finished step.
func IsTerminal(s WorkflowStatus) bool {
	return s == StatusPointsPaid || s == StatusCompleted
}

// InSocialProofPhase reports whether the step has progressed past video
// review into the SNS phase.
func InSocialProofPhase(s WorkflowStatus) bool {
	return s == StatusSNSPending || s == StatusSNSSubmitted || s == StatusReviewPending
}

// IsStepDone reports whether the step counts toward campaign completion.
func IsStepDone(s WorkflowStatus) bool {
	return IsTerminal(s)
}

// NextStatus computes the status after applying event to current. It
// encodes every legal transition of the submission workflow; anything else
// returns a *TransitionError and the status must be left untouched.
func NextStatus(current WorkflowStatus, event WorkflowEvent, ctx TransitionContext) (WorkflowStatus, error) {
	switch event {
	case EventConfirmGuide:
		if current == StatusGuidePending {
			return StatusGuideConfirmed, nil
		}
		return current, &TransitionError{From: current, Event: event}

	case EventUploadVideo:
		if ctx.SocialProofOnly || IsTerminal(current) {
			return current, &TransitionError{From: current, Event: event}
		}
		// An upload while the SNS phase is underway is a revision upload;
		// the status must not regress.
		if InSocialProofPhase(current) {
			return current, nil
		}
		return StatusVideoUploaded, nil

	case EventSubmitSocialProof:
		if IsTerminal(current) {
			return current, &TransitionError{From: current, Event: event}
		}
		if ctx.SocialProofOnly {
			// Social-proof-only steps skip the upload phase entirely.
			return StatusSNSSubmitted, nil
		}
		switch current {
		case StatusVideoUploaded, StatusSNSPending:
			return StatusSNSSubmitted, nil
		}
		return current, &TransitionError{From: current, Event: event}

	case EventRequestRevision:
		switch current {
		case StatusVideoUploaded, StatusSNSPending:
			return StatusRevisionRequired, nil
		}
		return current, &TransitionError{From: current, Event: event}

	case EventPayPoints:
		switch current {
		case StatusSNSSubmitted, StatusReviewPending:
			return StatusPointsPaid, nil
		}
		return current, &TransitionError{From: current, Event: event}
	}

	return current, &TransitionError{From: current, Event: event}
}

// StageFor maps a workflow status to the tracker display stage. Steps
// flagged social-proof-only never show the upload or revision stages.
func StageFor(status WorkflowStatus, socialProofOnly bool) int {
	if IsTerminal(status) {
		return StagePayout
	}
	if socialProofOnly {
		return StageSocialProof
	}
	switch status {
	case StatusGuidePending, StatusGuideConfirmed:
		return StageUpload
	case StatusVideoUploaded, StatusRevisionRequired:
		return StageRevision
	case StatusSNSPending, StatusSNSSubmitted, StatusReviewPending:
		return StageSocialProof
	}
	return StageUpload
}
