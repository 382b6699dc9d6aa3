package services

import (
	"errors"
	"testing"
)

func TestNextStatusHappyPath(t *testing.T) {
	tests := []struct {
		name    string
		current WorkflowStatus
		event   WorkflowEvent
		ctx     TransitionContext
		want    WorkflowStatus
	}{
		{"confirm guide", StatusGuidePending, EventConfirmGuide, TransitionContext{}, StatusGuideConfirmed},
		{"first upload", StatusGuideConfirmed, EventUploadVideo, TransitionContext{}, StatusVideoUploaded},
		{"upload before guide confirm", StatusGuidePending, EventUploadVideo, TransitionContext{}, StatusVideoUploaded},
		{"revision re-upload", StatusRevisionRequired, EventUploadVideo, TransitionContext{}, StatusVideoUploaded},
		{"submit sns after upload", StatusVideoUploaded, EventSubmitSocialProof, TransitionContext{}, StatusSNSSubmitted},
		{"submit sns after approval", StatusSNSPending, EventSubmitSocialProof, TransitionContext{}, StatusSNSSubmitted},
		{"request revision", StatusVideoUploaded, EventRequestRevision, TransitionContext{}, StatusRevisionRequired},
		{"pay after sns", StatusSNSSubmitted, EventPayPoints, TransitionContext{}, StatusPointsPaid},
		{"pay after review", StatusReviewPending, EventPayPoints, TransitionContext{}, StatusPointsPaid},
	}

	for _, tt := range tests {
		got, err := NextStatus(tt.current, tt.event, tt.ctx)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestNextStatusRejectsIllegalTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current WorkflowStatus
		event   WorkflowEvent
		ctx     TransitionContext
	}{
		{"confirm twice", StatusGuideConfirmed, EventConfirmGuide, TransitionContext{}},
		{"sns before upload", StatusGuideConfirmed, EventSubmitSocialProof, TransitionContext{}},
		{"upload after payout", StatusPointsPaid, EventUploadVideo, TransitionContext{}},
		{"upload to sns-only step", StatusGuidePending, EventUploadVideo, TransitionContext{SocialProofOnly: true}},
		{"revision before upload", StatusGuidePending, EventRequestRevision, TransitionContext{}},
		{"pay before sns", StatusVideoUploaded, EventPayPoints, TransitionContext{}},
		{"sns after completion", StatusCompleted, EventSubmitSocialProof, TransitionContext{}},
	}

	for _, tt := range tests {
		got, err := NextStatus(tt.current, tt.event, tt.ctx)
		if err == nil {
			t.Fatalf("%s: expected rejection, got %s", tt.name, got)
		}
		var transitionErr *TransitionError
		if !errors.As(err, &transitionErr) {
			t.Fatalf("%s: expected *TransitionError, got %T", tt.name, err)
		}
		if got != tt.current {
			t.Fatalf("%s: status must stay %s on rejection, got %s", tt.name, tt.current, got)
		}
	}
}

func TestUploadDuringSocialProofPhaseKeepsStatus(t *testing.T) {
	for _, current := range []WorkflowStatus{StatusSNSPending, StatusSNSSubmitted, StatusReviewPending} {
		got, err := NextStatus(current, EventUploadVideo, TransitionContext{})
		if err != nil {
			t.Fatalf("upload during %s: unexpected error: %v", current, err)
		}
		if got != current {
			t.Fatalf("upload during %s must preserve status, got %s", current, got)
		}
	}
}

func TestSocialProofOnlyStepSkipsUploadPhase(t *testing.T) {
	got, err := NextStatus(StatusGuidePending, EventSubmitSocialProof, TransitionContext{SocialProofOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != StatusSNSSubmitted {
		t.Fatalf("expected direct transition to %s, got %s", StatusSNSSubmitted, got)
	}
}

func TestStageFor(t *testing.T) {
	tests := []struct {
		status  WorkflowStatus
		snsOnly bool
		want    int
	}{
		{StatusGuidePending, false, StageUpload},
		{StatusGuideConfirmed, false, StageUpload},
		{StatusVideoUploaded, false, StageRevision},
		{StatusRevisionRequired, false, StageRevision},
		{StatusSNSPending, false, StageSocialProof},
		{StatusSNSSubmitted, false, StageSocialProof},
		{StatusReviewPending, false, StageSocialProof},
		{StatusPointsPaid, false, StagePayout},
		{StatusCompleted, false, StagePayout},

		// Social-proof-only steps never show the upload or revision stages.
		{StatusGuidePending, true, StageSocialProof},
		{StatusVideoUploaded, true, StageSocialProof},
		{StatusSNSSubmitted, true, StageSocialProof},
		{StatusPointsPaid, true, StagePayout},
	}

	for _, tt := range tests {
		if got := StageFor(tt.status, tt.snsOnly); got != tt.want {
			t.Fatalf("StageFor(%s, snsOnly=%v) = %d, want %d", tt.status, tt.snsOnly, got, tt.want)
		}
	}
}
