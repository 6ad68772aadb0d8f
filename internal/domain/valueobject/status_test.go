package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProposalStatus(t *testing.T) {
	s, err := NewProposalStatus("approved")
	assert.NoError(t, err)
	assert.True(t, s.IsTerminal())
	assert.False(t, ProposalStatusPending.IsTerminal())

	_, err = NewProposalStatus("accepted")
	assert.Error(t, err)
}

func TestJobStatus(t *testing.T) {
	_, err := NewJobStatus("closed")
	assert.NoError(t, err)

	_, err = NewJobStatus("draft")
	assert.Error(t, err)
}

func TestNotificationReason(t *testing.T) {
	for _, raw := range []string{"new_proposal_added", "accepted_proposal", "rejected_proposal"} {
		_, err := NewNotificationReason(raw)
		assert.NoError(t, err, raw)
	}
	_, err := NewNotificationReason("AcceptedProposal")
	assert.Error(t, err)
}
