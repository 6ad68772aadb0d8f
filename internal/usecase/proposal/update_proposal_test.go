package proposal_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/marketplace-backend/internal/attachment"
	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/usecase/proposal"
)

func updateInput(p *entity.Proposal, images ...attachment.Attachment) proposal.UpdateProposalInput {
	return proposal.UpdateProposalInput{
		ProposalID:   p.ID,
		JobID:        p.JobID,
		FreelancerID: p.FreelancerID,
		Description:  "Сделаю за пять дней",
		Duration:     5,
		Price:        700,
		ReposLinks:   []string{"https://github.com/ivan/shop"},
		Images:       images,
	}
}

func TestUpdateProposalUseCase_ReplacesImageSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.mustCreate(t, image("a.jpg", 10), image("b.jpg", 10))
	oldIDs := []uuid.UUID{p.Images[0].ID, p.Images[1].ID}

	updated, err := f.update.Execute(ctx, updateInput(p, image("c.png", 30)))
	require.NoError(t, err)

	require.Len(t, updated.Images, 1)
	assert.Equal(t, "c.png", updated.Images[0].FileName)
	assert.Equal(t, "Сделаю за пять дней", updated.Description)
	assert.Equal(t, 5, updated.Duration)
	assert.Equal(t, 700.0, updated.Price)

	for _, id := range oldIDs {
		_, err := f.image.Execute(ctx, p.ID, id)
		assert.True(t, apperror.IsNotFound(err))
	}
	_, images, _ := f.store.Counts()
	assert.Equal(t, 1, images)
}

func TestUpdateProposalUseCase_EmptySetRemovesImages(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, image("a.jpg", 10))

	updated, err := f.update.Execute(context.Background(), updateInput(p))
	require.NoError(t, err)

	assert.Nil(t, updated.Images)
	_, images, _ := f.store.Counts()
	assert.Zero(t, images)
}

func TestUpdateProposalUseCase_InvalidAttachmentKeepsPreviousState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.mustCreate(t, image("a.jpg", 10))

	_, err := f.update.Execute(ctx, updateInput(p, image("doc.pdf", 10)))
	assert.Equal(t, apperror.RuleInvalidExtension, apperror.RuleOf(err))

	view, err := f.get.Execute(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Description, view.Description)
	require.Len(t, view.Images, 1)
	assert.Equal(t, p.Images[0].ID, view.Images[0].ID)
}

func TestUpdateProposalUseCase_RepointsToAnotherJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.mustCreate(t)
	other := f.addJob(t)

	in := updateInput(p)
	in.JobID = other.ID
	updated, err := f.update.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.JobID)

	views, err := f.byJob.Execute(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, other.Title, views[0].JobTitle)
}

func TestUpdateProposalUseCase_MissingReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.mustCreate(t)

	in := updateInput(p)
	in.ProposalID = uuid.New()
	_, err := f.update.Execute(ctx, in)
	assert.True(t, apperror.IsNotFound(err))

	in = updateInput(p)
	in.JobID = uuid.New()
	_, err = f.update.Execute(ctx, in)
	assert.True(t, apperror.IsNotFound(err))

	in = updateInput(p)
	in.FreelancerID = uuid.New()
	_, err = f.update.Execute(ctx, in)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateProposalUseCase_ReviewedProposalIsImmutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.mustCreate(t)
	_, err := f.review.Execute(ctx, proposal.ReviewProposalInput{ProposalID: p.ID, Decision: proposal.DecisionReject})
	require.NoError(t, err)

	_, err = f.update.Execute(ctx, updateInput(p))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.ErrCodeBadRequest, appErr.Code)
}
