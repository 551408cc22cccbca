// Package interaction holds the per-view gesture state machine: which
// comment is selected, which entry form is open, and whether a drag is in
// flight. One Controller serves one open artwork view and is driven from a
// single goroutine; it is not safe for concurrent use.
package interaction

import (
	"context"
	"errors"

	"artvote/internal/models"
	"artvote/internal/services"
	"artvote/internal/utils"
)

// Comments is the slice of the comment store the controller drives.
type Comments interface {
	Create(ctx context.Context, artworkID uint, text string, pos utils.Position, author, name, avatar string) (*services.CommentView, error)
	SoftDelete(ctx context.Context, commentID, requester string) error
	UpdatePosition(ctx context.Context, commentID, requester string, pos utils.Position) error
	List(ctx context.Context, artworkID uint) ([]services.CommentView, error)
}

// Votes casts vote clicks.
type Votes interface {
	Cast(ctx context.Context, artworkID uint, voter string, t models.VoteType) (*services.VoteResult, error)
}

// Identity supplies the current wallet, the sole authorization token.
type Identity interface {
	// CurrentAddress returns the connected wallet address, false when no
	// wallet is connected.
	CurrentAddress() (string, bool)
	// Profile returns optional display name and avatar for the wallet.
	Profile() (name, avatar string)
}

// FormTarget says which comment-entry form, if any, is open.
type FormTarget int

const (
	FormNone FormTarget = iota
	// FormPositioned was opened by clicking a spot on the image.
	FormPositioned
	// FormQuick was opened by the quick-comment button; it gets a random
	// position on submit.
	FormQuick
)

// ErrNoOpenForm is returned when SubmitForm is called with no form open.
var ErrNoOpenForm = errors.New("no comment form is open")

// Controller orchestrates gestures for one artwork view. After every
// mutation it refetches the authoritative comment list rather than trusting
// its optimistic in-memory edits.
type Controller struct {
	artworkID uint
	comments  Comments
	votes     Votes
	identity  Identity

	list     []services.CommentView
	selected string
	form     FormTarget
	formPos  utils.Position

	dragging bool
	dragID   string

	bubblesVisible  bool
	commentsVisible bool

	voteInFlight bool
	alive        bool
}

func NewController(artworkID uint, comments Comments, votes Votes, identity Identity) *Controller {
	return &Controller{
		artworkID:       artworkID,
		comments:        comments,
		votes:           votes,
		identity:        identity,
		bubblesVisible:  true,
		commentsVisible: true,
		alive:           true,
	}
}

// Open loads the initial comment list.
func (c *Controller) Open(ctx context.Context) error {
	return c.refresh(ctx)
}

// Close tears the view down. Results of any still-outstanding fetch are
// discarded instead of being applied to a dead view.
func (c *Controller) Close() {
	c.alive = false
}

// ClickImage handles a click on the image surface at pixel coordinates
// within the measured container. It returns true when the click should
// surface a connect-wallet prompt instead of opening a form.
func (c *Controller) ClickImage(px utils.Position, container utils.Size) (needsConnect bool) {
	if c.dragging || !c.bubblesVisible || !c.commentsVisible {
		return false
	}
	if _, ok := c.identity.CurrentAddress(); !ok {
		return true
	}

	c.formPos = utils.ToPercent(px, container)
	c.form = FormPositioned
	// Opening a form closes any other and drops the selection.
	c.selected = ""
	return false
}

// OpenQuickForm opens the freeform comment entry that does not need a spot
// on the image. Same connect gating as ClickImage.
func (c *Controller) OpenQuickForm() (needsConnect bool) {
	if _, ok := c.identity.CurrentAddress(); !ok {
		return true
	}
	c.form = FormQuick
	c.selected = ""
	return false
}

// CloseForm dismisses the open form, if any.
func (c *Controller) CloseForm() {
	c.form = FormNone
}

// SubmitForm persists the open form's text, closes the form, and refetches.
// Validation failures leave the form open for correction.
func (c *Controller) SubmitForm(ctx context.Context, text string) error {
	if c.form == FormNone {
		return ErrNoOpenForm
	}
	addr, ok := c.identity.CurrentAddress()
	if !ok {
		return services.ErrUnauthenticated
	}

	pos := c.formPos
	if c.form == FormQuick {
		pos = utils.RandomPosition()
	}

	name, avatar := c.identity.Profile()
	if _, err := c.comments.Create(ctx, c.artworkID, text, pos, addr, name, avatar); err != nil {
		return err
	}

	c.form = FormNone
	return c.refresh(ctx)
}

// SelectComment toggles selection of a bubble. Suppressed while a form is
// open or a drag is in progress, so drag gestures never double as
// selection toggles.
func (c *Controller) SelectComment(id string) {
	if c.dragging || c.form != FormNone {
		return
	}
	if c.selected == id {
		c.selected = ""
	} else {
		c.selected = id
	}
}

// DeleteSelected soft-deletes the selected comment if the current wallet
// owns it, then refetches.
func (c *Controller) DeleteSelected(ctx context.Context) error {
	if c.selected == "" {
		return nil
	}
	addr, ok := c.identity.CurrentAddress()
	if !ok {
		return services.ErrUnauthenticated
	}

	if err := c.comments.SoftDelete(ctx, c.selected, addr); err != nil {
		return err
	}
	c.selected = ""
	return c.refresh(ctx)
}

// StartDrag begins dragging a bubble. Only honored for the comment's owner;
// everyone else sees bubbles as static markers.
func (c *Controller) StartDrag(id string) bool {
	if c.dragging || !c.bubblesVisible || !c.commentsVisible {
		return false
	}
	addr, ok := c.identity.CurrentAddress()
	if !ok {
		return false
	}

	comment := c.find(id)
	if comment == nil || comment.UserAddress != utils.NormalizeAddress(addr) {
		return false
	}

	c.dragging = true
	c.dragID = id
	return true
}

// DragTo updates the bubble's local position while the drag is live. This
// is the optimistic, un-rounded position; nothing is persisted until
// EndDrag.
func (c *Controller) DragTo(px utils.Position, container utils.Size) {
	if !c.dragging {
		return
	}
	if comment := c.find(c.dragID); comment != nil {
		comment.Position = utils.ToPercent(px, container)
	}
}

// EndDrag persists the final position and refetches. The optimistic local
// position is not trusted as final state: whatever the backend has after
// the refetch wins.
func (c *Controller) EndDrag(ctx context.Context, px utils.Position, container utils.Size) error {
	if !c.dragging {
		return nil
	}
	id := c.dragID
	c.dragging = false
	c.dragID = ""
	c.form = FormNone

	addr, ok := c.identity.CurrentAddress()
	if !ok {
		return services.ErrUnauthenticated
	}

	err := c.comments.UpdatePosition(ctx, id, addr, utils.ToPercent(px, container))
	if refreshErr := c.refresh(ctx); err == nil {
		err = refreshErr
	}
	return err
}

// Vote casts a vote click. Returns needsConnect when no wallet is present.
// While one vote is outstanding further clicks are ignored, so a double
// click cannot race itself on the same (artwork, voter) row.
func (c *Controller) Vote(ctx context.Context, t models.VoteType) (needsConnect bool, err error) {
	addr, ok := c.identity.CurrentAddress()
	if !ok {
		return true, nil
	}
	if c.voteInFlight {
		return false, nil
	}

	c.voteInFlight = true
	defer func() { c.voteInFlight = false }()

	_, err = c.votes.Cast(ctx, c.artworkID, addr, t)
	return false, err
}

// ToggleBubbles flips bubble visibility. Hidden bubbles also disable
// placing new ones via image clicks.
func (c *Controller) ToggleBubbles() {
	c.bubblesVisible = !c.bubblesVisible
}

// ToggleComments flips the whole comments layer.
func (c *Controller) ToggleComments() {
	c.commentsVisible = !c.commentsVisible
}

// Refresh refetches the authoritative comment list.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) error {
	list, err := c.comments.List(ctx, c.artworkID)
	if err != nil {
		return err
	}
	if !c.alive {
		// View unmounted while the fetch was outstanding.
		return nil
	}
	c.list = list
	return nil
}

func (c *Controller) find(id string) *services.CommentView {
	for i := range c.list {
		if c.list[i].ID == id {
			return &c.list[i]
		}
	}
	return nil
}

func (c *Controller) Comments() []services.CommentView { return c.list }
func (c *Controller) Selected() string                 { return c.selected }
func (c *Controller) Form() FormTarget                 { return c.form }
func (c *Controller) FormPosition() utils.Position     { return c.formPos }
func (c *Controller) IsDragging() bool                 { return c.dragging }
func (c *Controller) BubblesVisible() bool             { return c.bubblesVisible }
func (c *Controller) CommentsVisible() bool            { return c.commentsVisible }
