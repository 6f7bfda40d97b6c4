package session

// Coordinator mirrors the primary view's topline onto a secondary view for
// as long as both panes stay alive. It is either idle (no pairing) or active
// (one primary, one secondary, one live subscription); activating it again
// collapses the previous pairing first, so at most one subscription exists.
type Coordinator struct {
	host      Host
	primary   View
	secondary View
	sub       Subscription
}

// NewCoordinator returns an idle coordinator bound to host.
func NewCoordinator(host Host) *Coordinator {
	return &Coordinator{host: host}
}

// Active reports whether a sync subscription is live.
func (c *Coordinator) Active() bool { return c.sub != nil }

// Activate pairs the two views, installs the scroll subscription and runs one
// immediate sync pass so the secondary view matches the primary before any
// scroll event arrives.
func (c *Coordinator) Activate(primary, secondary View) {
	c.Close()

	c.primary = primary
	c.secondary = secondary
	c.sub = c.host.SubscribeScroll(primary, c.syncPass)
	c.syncPass()
}

// syncPass copies the primary topline onto the secondary view. Runs once at
// activation and then on every primary scroll notification; O(1) per call.
// Detecting a stale view tears the pairing down silently: the user closing
// either pane is a normal way for a session to end.
func (c *Coordinator) syncPass() {
	if !c.Active() {
		return
	}
	if !c.primary.Live() || !c.secondary.Live() {
		c.teardown()
		return
	}
	c.secondary.SetTopline(c.primary.Topline())
}

func (c *Coordinator) teardown() {
	if c.sub != nil {
		c.sub.Cancel()
		c.sub = nil
	}
	c.primary = nil
	c.secondary = nil
}

// Close cancels the subscription and closes the secondary pane. Closing an
// idle coordinator is a no-op.
func (c *Coordinator) Close() {
	if !c.Active() {
		return
	}
	secondary := c.secondary
	c.teardown()
	if secondary.Live() {
		c.host.ClosePane(secondary)
	}
}
