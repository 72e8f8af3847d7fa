package broadcast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttradingco/eventbot/internal/common"
	"github.com/ttradingco/eventbot/internal/logging"
)

type fakeRecipients struct {
	ids []int64
	err error
}

func (f *fakeRecipients) BroadcastRecipients(context.Context) ([]int64, error) {
	return f.ids, f.err
}

type fakeCopier struct {
	failFor map[int64]bool
	copied  []int64
}

func (f *fakeCopier) CopyMessage(_ context.Context, toChatID, _ int64, _ int) error {
	if f.failFor[toChatID] {
		return errors.New("blocked by user")
	}
	f.copied = append(f.copied, toChatID)
	return nil
}

func newTestController(recipients Recipients, copier Copier) *Controller {
	c := NewController([]int64{100}, recipients, copier, logging.NewNopLogger())
	c.pacing = time.Microsecond
	return c
}

func TestArm_NonAdminForbidden(t *testing.T) {
	c := newTestController(&fakeRecipients{}, &fakeCopier{})

	err := c.Arm(200)
	assert.True(t, errors.Is(err, common.ErrForbidden))
	assert.False(t, c.Armed(200))
}

func TestArm_AdminThenCancel(t *testing.T) {
	c := newTestController(&fakeRecipients{}, &fakeCopier{})

	require.NoError(t, c.Arm(100))
	assert.True(t, c.Armed(100))

	c.Cancel(100)
	assert.False(t, c.Armed(100))

	// Cancel is idempotent.
	c.Cancel(100)
	assert.False(t, c.Armed(100))
}

func TestRun_CountsSuccessesAndFailuresIndependently(t *testing.T) {
	copier := &fakeCopier{failFor: map[int64]bool{2: true}}
	c := newTestController(&fakeRecipients{ids: []int64{1, 2}}, copier)

	require.NoError(t, c.Arm(100))
	report, err := c.Run(context.Background(), 100, 100, 55)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []int64{1}, copier.copied)
	assert.False(t, c.Armed(100), "idle restored after the run")
}

func TestRun_FailureDoesNotAbortBatch(t *testing.T) {
	copier := &fakeCopier{failFor: map[int64]bool{1: true}}
	c := newTestController(&fakeRecipients{ids: []int64{1, 2, 3}}, copier)

	require.NoError(t, c.Arm(100))
	report, err := c.Run(context.Background(), 100, 100, 55)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []int64{2, 3}, copier.copied)
}

func TestRun_NotArmed(t *testing.T) {
	c := newTestController(&fakeRecipients{ids: []int64{1}}, &fakeCopier{})

	_, err := c.Run(context.Background(), 100, 100, 55)
	assert.True(t, errors.Is(err, common.ErrForbidden))
}

func TestRun_RecipientsErrorRestoresIdle(t *testing.T) {
	c := newTestController(&fakeRecipients{err: errors.New("db down")}, &fakeCopier{})

	require.NoError(t, c.Arm(100))
	_, err := c.Run(context.Background(), 100, 100, 55)
	require.Error(t, err)
	assert.False(t, c.Armed(100), "flag consumed even when the run cannot start")
}
