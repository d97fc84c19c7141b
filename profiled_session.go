package gmail

import (
	"context"

	"github.com/ProtonMail/gmail/imap"
	"github.com/ProtonMail/gmail/profiling"
	"github.com/ProtonMail/gmail/session"
)

// profiledSession reports every command of the wrapped session to a profiler.
type profiledSession struct {
	session.Session

	profiler profiling.CmdProfiler
}

func (sess *profiledSession) Select(ctx context.Context, mailbox string) error {
	sess.profiler.Start(profiling.CmdTypeSelect)
	defer sess.profiler.Stop(profiling.CmdTypeSelect)

	return sess.Session.Select(ctx, mailbox)
}

func (sess *profiledSession) UIDSearch(ctx context.Context, criteria imap.SearchCriteria) ([]imap.UID, error) {
	sess.profiler.Start(profiling.CmdTypeSearch)
	defer sess.profiler.Stop(profiling.CmdTypeSearch)

	return sess.Session.UIDSearch(ctx, criteria)
}

func (sess *profiledSession) UIDFetch(ctx context.Context, uids []imap.UID, items []imap.FetchItem) ([]*imap.Attributes, error) {
	sess.profiler.Start(profiling.CmdTypeFetch)
	defer sess.profiler.Stop(profiling.CmdTypeFetch)

	return sess.Session.UIDFetch(ctx, uids, items)
}

func (sess *profiledSession) UIDStore(ctx context.Context, uid imap.UID, op imap.StoreOp, values []string) error {
	sess.profiler.Start(profiling.CmdTypeStore)
	defer sess.profiler.Stop(profiling.CmdTypeStore)

	return sess.Session.UIDStore(ctx, uid, op, values)
}

func (sess *profiledSession) Logout(ctx context.Context) error {
	sess.profiler.Start(profiling.CmdTypeLogout)
	defer sess.profiler.Stop(profiling.CmdTypeLogout)

	return sess.Session.Logout(ctx)
}
