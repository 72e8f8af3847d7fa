// Package broadcast implements the admin-only relay: an armed/idle flag per
// admin conversation plus the sequential fan-out of one authored message to
// every user that has ever validated.
package broadcast

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ttradingco/eventbot/internal/common"
	"github.com/ttradingco/eventbot/internal/logging"
	"github.com/ttradingco/eventbot/internal/telegram"
)

// Recipients supplies the target list; satisfied by storage.Users.
type Recipients interface {
	BroadcastRecipients(ctx context.Context) ([]int64, error)
}

// Copier is the slice of the transport the fan-out needs.
type Copier interface {
	CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) error
}

// pacing between sends keeps the fan-out under the transport's rate limits.
const defaultPacing = 30 * time.Millisecond

// Report is the aggregate outcome of one broadcast run.
type Report struct {
	Sent   int
	Failed int
}

// Controller tracks which admins are armed and runs the relay. Arming is a
// transient per-conversation flag: the next authored message from an armed
// admin is consumed by Run, and the flag always resets afterwards.
type Controller struct {
	admins     map[int64]bool
	recipients Recipients
	copier     Copier
	log        logging.Logger
	pacing     time.Duration

	mu    sync.Mutex
	armed map[int64]bool
}

func NewController(adminIDs []int64, recipients Recipients, copier Copier, log logging.Logger) *Controller {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &Controller{
		admins:     admins,
		recipients: recipients,
		copier:     copier,
		log:        log,
		pacing:     defaultPacing,
		armed:      make(map[int64]bool),
	}
}

// IsAdmin reports membership in the configured admin set.
func (c *Controller) IsAdmin(userID int64) bool {
	return c.admins[userID]
}

// Arm puts the admin's conversation into broadcast mode. Non-admins get
// ErrForbidden.
func (c *Controller) Arm(userID int64) error {
	if !c.admins[userID] {
		return common.ErrForbidden
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed[userID] = true
	return nil
}

// Cancel forces the conversation back to idle regardless of current state.
func (c *Controller) Cancel(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.armed, userID)
}

// Armed reports whether the next message from userID should be consumed.
func (c *Controller) Armed(userID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed[userID]
}

// Run relays the admin's message (fromChatID/messageID) to every recipient.
// The armed flag is consumed up front so a failure never leaves the admin
// stuck in broadcast mode. Sends are sequential with a fixed pacing delay;
// per-recipient failures are counted, never fatal.
func (c *Controller) Run(ctx context.Context, adminID, fromChatID int64, messageID int) (Report, error) {
	c.mu.Lock()
	wasArmed := c.armed[adminID]
	delete(c.armed, adminID)
	c.mu.Unlock()
	if !wasArmed {
		return Report{}, common.ErrForbidden
	}

	targets, err := c.recipients.BroadcastRecipients(ctx)
	if err != nil {
		return Report{}, err
	}

	runID := uuid.NewString()
	log := c.log.With("broadcast_id", runID, "admin_id", adminID, "targets", len(targets))
	log.Info(ctx, "broadcast started")

	var report Report
	for _, target := range targets {
		if err := c.copier.CopyMessage(ctx, target, fromChatID, messageID); err != nil {
			report.Failed++
			log.Warn(ctx, "broadcast send failed", "target", target, "error", err)
		} else {
			report.Sent++
		}
		time.Sleep(c.pacing)
	}

	log.Info(ctx, "broadcast finished", "sent", report.Sent, "failed", report.Failed)
	return report, nil
}

var _ Copier = (telegram.Client)(nil)
