// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package copy

import "context"

// Repository is the storage contract for copy rows.
//
// All operations are scoped to the parent issue: a copy_id paired with the
// wrong issue_id behaves as absent. List and Create report a missing parent
// as a not-found error on the issue. List resumes strictly after afterID
// (0 means from the start).
type Repository interface {
	List(ctx context.Context, issueID, afterID int64, limit int) (items []*Copy, hasMore bool, err error)
	Get(ctx context.Context, issueID, copyID int64) (*Copy, error)
	Create(ctx context.Context, c *Copy) error
	Update(ctx context.Context, issueID, copyID int64, p Patch) (*Copy, error)
	Delete(ctx context.Context, issueID, copyID int64) (bool, error)
}
