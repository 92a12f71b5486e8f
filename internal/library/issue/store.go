// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package issue

import "context"

// Repository is the storage contract for issue rows.
//
// All operations are scoped to the parent series: an issue_id paired with
// the wrong series_id behaves as absent. List and Create report a missing
// parent as a not-found error on the series. List resumes strictly after
// the given position (nil means from the start).
type Repository interface {
	List(ctx context.Context, seriesID int64, f Filter, after *Position, limit int) (items []*Issue, hasMore bool, err error)
	Get(ctx context.Context, seriesID, issueID int64) (*Issue, error)
	Create(ctx context.Context, i *Issue) error
	Update(ctx context.Context, seriesID, issueID int64, p Patch) (*Issue, error)
	Delete(ctx context.Context, seriesID, issueID int64) (bool, error)
}
